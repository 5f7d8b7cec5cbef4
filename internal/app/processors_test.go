//go:build unit
// +build unit

package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/hpusset/ELRI-sub001/internal/domain/processing"
	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/domain/tm"
	"github.com/hpusset/ELRI-sub001/internal/infrastructure/metadataxml"
	"github.com/hpusset/ELRI-sub001/internal/pkg/config"
	"github.com/hpusset/ELRI-sub001/internal/pkg/testutil"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCodec(t *testing.T) *metadataxml.Codec {
	t.Helper()
	codec, err := metadataxml.NewCodec(&config.MetadataSettings{})
	require.NoError(t, err)
	return codec
}

func TestMetadataJSONProcessor(t *testing.T) {
	p := NewMetadataJSONProcessor(newCodec(t))
	assert.Equal(t, ServiceMetadataJSON, p.Info().Name)
	assert.Equal(t, "corpus.json", p.ResultName("corpus.xml"))

	var out bytes.Buffer
	msg, err := p.Process(context.Background(), &processing.Input{
		Name: "corpus.xml",
		Data: []byte(`<resourceInfo><identificationInfo><resourceName>Corpus</resourceName></identificationInfo></resourceInfo>`),
	}, &out)
	require.NoError(t, err)
	assert.Contains(t, msg, "corpus.xml")

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	info := doc["resourceInfo"].(map[string]interface{})["identificationInfo"].(map[string]interface{})
	assert.Equal(t, []interface{}{"Corpus"}, info["resourceName"])
}

func TestXMLValidateProcessor(t *testing.T) {
	p := NewXMLValidateProcessor(newCodec(t))
	assert.Equal(t, "doc.formatted.xml", p.ResultName("doc.xml"))

	var out bytes.Buffer
	_, err := p.Process(context.Background(), &processing.Input{Name: "doc.xml", Data: []byte("<a><b>x</b></a>")}, &out)
	require.NoError(t, err)
	assert.Equal(t, "<a>\n  <b>x</b>\n</a>", out.String())

	out.Reset()
	_, err = p.Process(context.Background(), &processing.Input{Name: "doc.xml", Data: []byte("<a><b></a>")}, &out)
	assert.True(t, errors.Is(err, resources.ErrInvalidMetadata))
}

func TestTMXIngestProcessor(t *testing.T) {
	opener := new(MockSessionOpener)
	session := new(MockSession)
	tmService, err := NewTMService(opener, "elri_tm", testutil.NewRecordingLogger())
	require.NoError(t, err)

	opener.On("Dial", mock.Anything).Return(session, nil)
	session.On("Execute", "CHECK elri_tm").Return("", nil)
	session.On("Replace", "greetings.tmx", sampleTMX).Return(nil)
	session.On("Close").Return(nil)

	p := NewTMXIngestProcessor(tmService)
	assert.False(t, p.Info().AcceptsResource)
	assert.True(t, p.Info().AcceptsUpload)

	var out bytes.Buffer
	msg, err := p.Process(context.Background(), &processing.Input{Name: "greetings.tmx", Data: []byte(sampleTMX)}, &out)
	require.NoError(t, err)
	assert.Equal(t, "added 2 translation units in el, en, en-GB, he", msg)

	var doc tm.Document
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "greetings.tmx", doc.Path)
}
