//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/resources"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceModel_FromDomain(t *testing.T) {
	resource := &resources.ResourceMeta{
		ID:                "res-id",
		ResourceName:      "Greek-English TM",
		MetadataXML:       "<resourceInfo/>",
		PublicationStatus: resources.StatusPublished,
		OwnerID:           "user-id",
		Source:            resources.SourceUpload,
		DateTimeCreated:   time.Now(),
		Contacts: []resources.ContactPerson{
			{ID: "c1", Surname: "Papadopoulou", Position: "Curator", Homepage: "https://example.org"},
			{ID: "c2", Surname: "Nikolaou"},
		},
	}

	model := &ResourceModel{}
	model.FromDomain(resource)

	assert.Equal(t, "p", model.PublicationStatus)
	require.Len(t, model.Contacts, 2)
	assert.Equal(t, "res-id", model.Contacts[0].ResourceID)
	require.NotNil(t, model.Contacts[0].Position)
	assert.Equal(t, "Curator", *model.Contacts[0].Position)
	assert.Nil(t, model.Contacts[1].Position, "empty position is stored as NULL")
	assert.Nil(t, model.Contacts[1].Homepage, "empty homepage is stored as NULL")
}

func TestResourceModel_ToDomain(t *testing.T) {
	homepage := "http://elri.example"
	model := &ResourceModel{
		ID:                "res-id",
		ResourceName:      "Corpus",
		MetadataXML:       "<resourceInfo/>",
		PublicationStatus: "g",
		OwnerID:           "user-id",
		Source:            resources.SourceEDelivery,
		DateTimeCreated:   time.Now(),
		Contacts: []ContactPersonModel{
			{ID: "c1", ResourceID: "res-id", Surname: "Murphy", Homepage: &homepage},
		},
	}

	resource := model.ToDomain()

	assert.Equal(t, resources.StatusIngested, resource.PublicationStatus)
	assert.Equal(t, model.DateTimeCreated, resource.DateTimeCreated)
	require.Len(t, resource.Contacts, 1)
	assert.Equal(t, homepage, resource.Contacts[0].Homepage)
	assert.Empty(t, resource.Contacts[0].Position)
}
