//go:build unit
// +build unit

package metadataxml

import (
	"errors"
	"strings"
	"testing"

	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/pkg/config"

	"github.com/google/go-cmp/cmp"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMetadata = `<?xml version="1.0" encoding="UTF-8"?>
<resourceInfo xmlns="http://www.elrc-share.eu/ELRC-SHARE_SCHEMA/v2.0/">
  <identificationInfo>
    <resourceName lang="en">Greek-English public administration corpus</resourceName>
    <description lang="en">Parallel texts from ministry web sites &amp; bulletins</description>
  </identificationInfo>
  <languageInfo>
    <languageId>el</languageId>
    <languageName>Greek</languageName>
  </languageInfo>
  <sizeInfo>
    <size>1200</size>
    <sizeUnit>translationUnits</sizeUnit>
  </sizeInfo>
  <distributionInfo>
    <availability>available</availability>
  </distributionInfo>
</resourceInfo>`

func newTestCodec(t *testing.T, fields ...string) *Codec {
	t.Helper()
	codec, err := NewCodec(&config.MetadataSettings{ListFields: fields})
	require.NoError(t, err)
	return codec
}

func decode(t *testing.T, doc []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(doc, &m))
	return m
}

func TestCodec_XMLToJSON_ForcesListFields(t *testing.T) {
	codec := newTestCodec(t)

	out, err := codec.XMLToJSON([]byte(sampleMetadata))
	require.NoError(t, err)

	root := decode(t, out)["resourceInfo"].(map[string]interface{})
	assert.Equal(t, "http://www.elrc-share.eu/ELRC-SHARE_SCHEMA/v2.0/", root["@xmlns"])

	languageInfo, ok := root["languageInfo"].([]interface{})
	require.True(t, ok, "languageInfo must be an array")
	require.Len(t, languageInfo, 1)
	assert.Equal(t, "el", languageInfo[0].(map[string]interface{})["languageId"])

	sizeInfo, ok := root["sizeInfo"].([]interface{})
	require.True(t, ok, "sizeInfo must be an array")
	assert.Equal(t, "1200", sizeInfo[0].(map[string]interface{})["size"], "values stay strings")

	ident := root["identificationInfo"].(map[string]interface{})
	names, ok := ident["resourceName"].([]interface{})
	require.True(t, ok, "resourceName must be an array")
	assert.Equal(t, map[string]interface{}{"@lang": "en", "#text": "Greek-English public administration corpus"}, names[0])

	_, isList := root["distributionInfo"].([]interface{})
	assert.False(t, isList, "distributionInfo is not a list field")
}

func TestCodec_XMLToJSON_CustomListFields(t *testing.T) {
	codec := newTestCodec(t, "availability")

	out, err := codec.XMLToJSON([]byte(sampleMetadata))
	require.NoError(t, err)

	root := decode(t, out)["resourceInfo"].(map[string]interface{})
	dist := root["distributionInfo"].(map[string]interface{})
	assert.Equal(t, []interface{}{"available"}, dist["availability"])

	_, isList := root["languageInfo"].([]interface{})
	assert.False(t, isList, "defaults are replaced by configured fields")
}

func TestCodec_JSONRoundTripIsStable(t *testing.T) {
	codec := newTestCodec(t)

	first, err := codec.XMLToJSON([]byte(sampleMetadata))
	require.NoError(t, err)

	xmlDoc, err := codec.JSONToXML(first)
	require.NoError(t, err)

	second, err := codec.XMLToJSON(xmlDoc)
	require.NoError(t, err)

	if diff := cmp.Diff(decode(t, first), decode(t, second)); diff != "" {
		t.Errorf("JSON -> XML -> JSON mismatch (-first +second):\n%s", diff)
	}
}

func TestCodec_JSONToXML_RepeatsArrayElements(t *testing.T) {
	codec := newTestCodec(t)

	doc := []byte(`{"resourceInfo":{"keywords":["corpus","parallel"],"@version":"2.0"}}`)
	out, err := codec.JSONToXML(doc)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `<resourceInfo version="2.0">`)
	assert.Contains(t, s, "<keywords>corpus</keywords>")
	assert.Contains(t, s, "<keywords>parallel</keywords>")
}

func TestCodec_JSONToXML_Errors(t *testing.T) {
	codec := newTestCodec(t)

	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `{"resourceInfo":`},
		{"two roots", `{"a":{},"b":{}}`},
		{"empty object", `{}`},
		{"array root", `{"a":[{"b":"c"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.JSONToXML([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, resources.ErrInvalidMetadata))
		})
	}
}

func TestCodec_Indent(t *testing.T) {
	codec := newTestCodec(t)

	out, err := codec.Indent([]byte(`<a><b x="1">t</b><c/></a>`))
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n  <b")

	_, err = codec.Indent([]byte(`<a><b></a>`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, resources.ErrInvalidMetadata))

	_, err = codec.Indent([]byte("   "))
	assert.True(t, errors.Is(err, resources.ErrInvalidMetadata))
}

func TestCodec_ElementUsage(t *testing.T) {
	codec := newTestCodec(t)

	usage, err := codec.ElementUsage([]byte(sampleMetadata))
	require.NoError(t, err)

	got := make(map[string]int64)
	for _, u := range usage {
		got[u.Parent+"/"+u.Element] = u.Count
	}
	assert.Equal(t, int64(1), got["/resourceInfo"])
	assert.Equal(t, int64(1), got["resourceInfo/languageInfo"])
	assert.Equal(t, int64(1), got["identificationInfo/resourceName"])
	assert.Equal(t, int64(1), got["sizeInfo/sizeUnit"])
	_, hasAttr := got["resourceName/@lang"]
	assert.False(t, hasAttr)

	_, err = codec.ElementUsage([]byte("<broken>"))
	assert.Error(t, err)
}

func TestCodec_KeepsElementOrder(t *testing.T) {
	codec := newTestCodec(t)

	doc := []byte(`<resourceInfo><identificationInfo><resourceName>A</resourceName><identifier>B</identifier></identificationInfo><distributionInfo/></resourceInfo>`)
	out, err := codec.XMLToJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, `{"resourceInfo":{"identificationInfo":{"resourceName":["A"],"identifier":["B"]},"distributionInfo":""}}`, string(out))

	xmlDoc, err := codec.JSONToXML(out)
	require.NoError(t, err)
	s := string(xmlDoc)
	name, id := strings.Index(s, "<resourceName>"), strings.Index(s, "<identifier>")
	require.True(t, name >= 0 && id >= 0)
	assert.Less(t, name, id, "resourceName stays before identifier")
	assert.Less(t, strings.Index(s, "<identificationInfo>"), strings.Index(s, "<distributionInfo>"))
}

func TestCodec_PrefixedRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	doc := []byte(`<ms:resourceInfo xmlns:ms="urn:x"><ms:identificationInfo><ms:resourceName>A</ms:resourceName><ms:identifier>B</ms:identifier></ms:identificationInfo></ms:resourceInfo>`)
	first, err := codec.XMLToJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, `{"ms:resourceInfo":{"@xmlns:ms":"urn:x","ms:identificationInfo":{"ms:resourceName":["A"],"ms:identifier":["B"]}}}`, string(first))

	xmlDoc, err := codec.JSONToXML(first)
	require.NoError(t, err)
	assert.Contains(t, string(xmlDoc), `<ms:resourceInfo xmlns:ms="urn:x">`)
	assert.Contains(t, string(xmlDoc), `<ms:resourceName>A</ms:resourceName>`)

	second, err := codec.XMLToJSON(xmlDoc)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestCodec_XMLToJSON_RejectsBrokenDocuments(t *testing.T) {
	codec := newTestCodec(t)

	for _, doc := range []string{`<a><b></a>`, `<a/><b/>`, `<a>`, ``, `text<a/>`} {
		_, err := codec.XMLToJSON([]byte(doc))
		require.Error(t, err, doc)
		assert.True(t, errors.Is(err, resources.ErrInvalidMetadata), doc)
	}
}
