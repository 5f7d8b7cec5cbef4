package models

import (
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
)

// ResourceModel is the GORM database model for resource records (infrastructure concern)
type ResourceModel struct {
	ID                string               `gorm:"primaryKey;type:uuid"`
	ResourceName      string               `gorm:"not null;type:varchar(500)"`
	Description       string               `gorm:"type:text"`
	MetadataXML       string               `gorm:"not null;type:text"`
	PublicationStatus string               `gorm:"not null;type:char(1);default:'i';index"`
	OwnerID           string               `gorm:"not null;index;type:varchar(255)"`
	Source            string               `gorm:"not null;type:varchar(20)"`
	DateTimeCreated   time.Time            `gorm:"not null"`
	DateTimeUpdated   time.Time
	Contacts          []ContactPersonModel `gorm:"foreignKey:ResourceID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (ResourceModel) TableName() string {
	return "resources"
}

// ToDomain converts GORM model to domain entity
func (m *ResourceModel) ToDomain() *resources.ResourceMeta {
	r := &resources.ResourceMeta{
		ID:                m.ID,
		ResourceName:      m.ResourceName,
		Description:       m.Description,
		MetadataXML:       m.MetadataXML,
		PublicationStatus: resources.PublicationStatus(m.PublicationStatus),
		OwnerID:           m.OwnerID,
		Source:            m.Source,
		DateTimeCreated:   m.DateTimeCreated,
		DateTimeUpdated:   m.DateTimeUpdated,
	}
	for i := range m.Contacts {
		r.Contacts = append(r.Contacts, m.Contacts[i].ToDomain())
	}
	return r
}

// FromDomain converts domain entity to GORM model
func (m *ResourceModel) FromDomain(r *resources.ResourceMeta) {
	m.ID = r.ID
	m.ResourceName = r.ResourceName
	m.Description = r.Description
	m.MetadataXML = r.MetadataXML
	m.PublicationStatus = string(r.PublicationStatus)
	m.OwnerID = r.OwnerID
	m.Source = r.Source
	m.DateTimeCreated = r.DateTimeCreated
	m.DateTimeUpdated = r.DateTimeUpdated

	m.Contacts = make([]ContactPersonModel, len(r.Contacts))
	for i := range r.Contacts {
		m.Contacts[i].FromDomain(r.ID, &r.Contacts[i])
	}
}

// ContactPersonModel is the GORM database model for resource contacts
type ContactPersonModel struct {
	ID         string  `gorm:"primaryKey;type:uuid"`
	ResourceID string  `gorm:"not null;index;type:uuid"`
	GivenName  string  `gorm:"type:varchar(100)"`
	Surname    string  `gorm:"not null;type:varchar(100)"`
	Email      string  `gorm:"type:varchar(254)"`
	Position   *string `gorm:"type:varchar(50)"`
	Homepage   *string `gorm:"type:varchar(1000)"`
}

// TableName specifies the table name for GORM
func (ContactPersonModel) TableName() string {
	return "contact_persons"
}

// ToDomain converts GORM model to domain entity
func (m *ContactPersonModel) ToDomain() resources.ContactPerson {
	c := resources.ContactPerson{
		ID:        m.ID,
		GivenName: m.GivenName,
		Surname:   m.Surname,
		Email:     m.Email,
	}
	if m.Position != nil {
		c.Position = *m.Position
	}
	if m.Homepage != nil {
		c.Homepage = *m.Homepage
	}
	return c
}

// FromDomain converts domain entity to GORM model. Empty optional fields are stored as NULL.
func (m *ContactPersonModel) FromDomain(resourceID string, c *resources.ContactPerson) {
	m.ID = c.ID
	m.ResourceID = resourceID
	m.GivenName = c.GivenName
	m.Surname = c.Surname
	m.Email = c.Email
	m.Position = nullable(c.Position)
	m.Homepage = nullable(c.Homepage)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
