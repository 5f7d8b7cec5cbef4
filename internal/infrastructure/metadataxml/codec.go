package metadataxml

import (
	"bytes"
	"encoding/xml"
	"io"
	"sort"
	"sync"

	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/domain/stats"
	"github.com/hpusset/ELRI-sub001/internal/pkg/config"

	"github.com/clbanning/mxj/v2"
	"github.com/pkg/errors"
)

const (
	attrPrefix = "@"
	textKey    = "#text"
	indent     = "  "
)

var setupOnce sync.Once

// mxj keeps its options in package state
func setup() {
	setupOnce.Do(func() {
		mxj.SetAttrPrefix(attrPrefix)
	})
}

// Codec implements resources.MetadataCodec
type Codec struct {
	listFields map[string]struct{}
}

// NewCodec creates a codec forcing the configured list fields into arrays
func NewCodec(settings *config.MetadataSettings) (*Codec, error) {
	if settings == nil {
		return nil, errors.New("metadata settings cannot be nil")
	}
	setup()

	fields := make(map[string]struct{})
	for _, f := range settings.EffectiveListFields() {
		fields[f] = struct{}{}
	}
	return &Codec{listFields: fields}, nil
}

var (
	_ resources.MetadataCodec = (*Codec)(nil)
	_ stats.UsageCounter      = (*Codec)(nil)
)

// Indent re-serializes the document with two-space indentation, keeping element order.
func (c *Codec) Indent(xmlDoc []byte) ([]byte, error) {
	if len(bytes.TrimSpace(xmlDoc)) == 0 {
		return nil, errors.Wrap(resources.ErrInvalidMetadata, "empty XML document")
	}
	if _, err := mxj.NewMapXml(xmlDoc); err != nil {
		return nil, errors.Wrapf(resources.ErrInvalidMetadata, "parse XML: %v", err)
	}

	var buf bytes.Buffer
	dec := xml.NewDecoder(bytes.NewReader(xmlDoc))
	enc := xml.NewEncoder(&buf)
	enc.Indent("", indent)

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(resources.ErrInvalidMetadata, "parse XML: %v", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
		case xml.StartElement:
			tok = flattenStart(t)
		case xml.EndElement:
			tok = xml.EndElement{Name: flattenName(t.Name)}
		}
		if err := enc.EncodeToken(xml.CopyToken(tok)); err != nil {
			return nil, errors.Wrap(err, "encode XML")
		}
	}
	if err := enc.Flush(); err != nil {
		return nil, errors.Wrap(err, "encode XML")
	}
	return buf.Bytes(), nil
}

// flattenName keeps the raw "prefix:local" form so the encoder does not invent namespace declarations
func flattenName(n xml.Name) xml.Name {
	if n.Space == "" {
		return n
	}
	return xml.Name{Local: n.Space + ":" + n.Local}
}

func flattenStart(se xml.StartElement) xml.StartElement {
	out := xml.StartElement{Name: flattenName(se.Name), Attr: make([]xml.Attr, len(se.Attr))}
	for i, a := range se.Attr {
		out.Attr[i] = xml.Attr{Name: flattenName(a.Name), Value: a.Value}
	}
	return out
}

// XMLToJSON converts an XML document to JSON, keeping element order and namespace prefixes
func (c *Codec) XMLToJSON(xmlDoc []byte) ([]byte, error) {
	rootName, root, err := c.parseXML(xmlDoc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, &object{fields: []field{{key: rootName, value: root}}}); err != nil {
		return nil, errors.Wrap(err, "encode JSON")
	}
	return buf.Bytes(), nil
}

// JSONToXML converts a JSON document with a single root object back to XML.
// Members are written in the order they appear.
func (c *Codec) JSONToXML(jsonDoc []byte) ([]byte, error) {
	rootName, root, err := parseJSON(jsonDoc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", indent)
	if err := encodeElement(enc, rootName, root); err != nil {
		if errors.Is(err, resources.ErrInvalidMetadata) {
			return nil, err
		}
		return nil, errors.Wrap(err, "encode XML")
	}
	if err := enc.Flush(); err != nil {
		return nil, errors.Wrap(err, "encode XML")
	}
	return buf.Bytes(), nil
}

// ElementUsage counts the elements of a metadata document per (parent, element)
func (c *Codec) ElementUsage(xmlDoc []byte) ([]*stats.UsageStat, error) {
	setup()

	m, err := mxj.NewMapXml(xmlDoc)
	if err != nil {
		return nil, errors.Wrapf(resources.ErrInvalidMetadata, "parse XML: %v", err)
	}

	counts := make(map[[2]string]int64)
	var walk func(parent string, node interface{})
	walk = func(parent string, node interface{}) {
		switch v := node.(type) {
		case map[string]interface{}:
			for key, child := range v {
				if key == textKey || (len(key) > 1 && key[:1] == attrPrefix) {
					continue
				}
				if list, ok := child.([]interface{}); ok {
					counts[[2]string{parent, key}] += int64(len(list))
					for _, item := range list {
						walk(key, item)
					}
					continue
				}
				counts[[2]string{parent, key}]++
				walk(key, child)
			}
		}
	}
	walk("", map[string]interface{}(m))

	usage := make([]*stats.UsageStat, 0, len(counts))
	for k, n := range counts {
		usage = append(usage, &stats.UsageStat{Parent: k[0], Element: k[1], Count: n})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Parent != usage[j].Parent {
			return usage[i].Parent < usage[j].Parent
		}
		return usage[i].Element < usage[j].Element
	})
	return usage, nil
}
