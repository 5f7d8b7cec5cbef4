package metadataxml

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/hpusset/ELRI-sub001/internal/domain/resources"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// field is one member of an object, kept in document order.
type field struct {
	key   string
	value interface{}
}

// object is an ordered element. Values are *object, []interface{}, string or nil.
type object struct {
	fields []field
}

func (o *object) index(key string) int {
	for i, f := range o.fields {
		if f.key == key {
			return i
		}
	}
	return -1
}

// addChild appends a child element, turning repeated siblings into a list at the first occurrence.
func (o *object) addChild(key string, value interface{}) {
	i := o.index(key)
	if i < 0 {
		o.fields = append(o.fields, field{key: key, value: value})
		return
	}
	if list, ok := o.fields[i].value.([]interface{}); ok {
		o.fields[i].value = append(list, value)
		return
	}
	o.fields[i].value = []interface{}{o.fields[i].value, value}
}

func localName(key string) string {
	if i := strings.LastIndexByte(key, ':'); i >= 0 {
		return key[i+1:]
	}
	return key
}

type xmlFrame struct {
	name string
	obj  *object
	text strings.Builder
}

// parseXML reads a document into an ordered tree. Prefixed names are kept as written.
func (c *Codec) parseXML(xmlDoc []byte) (string, interface{}, error) {
	dec := xml.NewDecoder(bytes.NewReader(xmlDoc))

	var (
		stack    []*xmlFrame
		rootName string
		root     interface{}
		done     bool
	)
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, errors.Wrapf(resources.ErrInvalidMetadata, "parse XML: %v", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if done {
				return "", nil, errors.Wrap(resources.ErrInvalidMetadata, "XML document must have exactly one root element")
			}
			se := flattenStart(t)
			frame := &xmlFrame{name: se.Name.Local, obj: &object{}}
			for _, a := range se.Attr {
				frame.obj.fields = append(frame.obj.fields, field{key: attrPrefix + a.Name.Local, value: a.Value})
			}
			stack = append(stack, frame)
		case xml.EndElement:
			name := flattenName(t.Name).Local
			if len(stack) == 0 || stack[len(stack)-1].name != name {
				return "", nil, errors.Wrapf(resources.ErrInvalidMetadata, "parse XML: unexpected end element </%s>", name)
			}
			frame := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			value := c.closeElement(frame)
			if len(stack) == 0 {
				rootName, root, done = frame.name, value, true
				continue
			}
			stack[len(stack)-1].obj.addChild(frame.name, value)
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) != 0 {
					return "", nil, errors.Wrap(resources.ErrInvalidMetadata, "parse XML: text outside the root element")
				}
				continue
			}
			stack[len(stack)-1].text.Write(t)
		}
	}

	if len(stack) != 0 {
		return "", nil, errors.Wrapf(resources.ErrInvalidMetadata, "parse XML: element <%s> is not closed", stack[len(stack)-1].name)
	}
	if !done {
		return "", nil, errors.Wrap(resources.ErrInvalidMetadata, "XML document has no root element")
	}
	return rootName, root, nil
}

func (c *Codec) closeElement(frame *xmlFrame) interface{} {
	text := strings.TrimSpace(frame.text.String())
	obj := frame.obj
	if len(obj.fields) == 0 {
		return text
	}

	for i, f := range obj.fields {
		if strings.HasPrefix(f.key, attrPrefix) {
			continue
		}
		if _, ok := c.listFields[localName(f.key)]; !ok {
			continue
		}
		if _, isList := f.value.([]interface{}); !isList {
			obj.fields[i].value = []interface{}{f.value}
		}
	}
	if text != "" {
		obj.fields = append(obj.fields, field{key: textKey, value: text})
	}
	return obj
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func writeJSON(buf *bytes.Buffer, value interface{}) error {
	switch v := value.(type) {
	case nil:
		buf.WriteString("null")
	case string:
		return writeJSONString(buf, v)
	case []interface{}:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *object:
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, f.key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, f.value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return errors.Errorf("unsupported value %T", value)
	}
	return nil
}

// jsonReader builds an ordered tree from a tokenizer.
type jsonReader struct {
	tok *json.Tokenizer
}

func (r *jsonReader) next() error {
	if r.tok.Next() {
		return nil
	}
	if r.tok.Err != nil {
		return r.tok.Err
	}
	return io.ErrUnexpectedEOF
}

func (r *jsonReader) expect(delim rune) error {
	if err := r.next(); err != nil {
		return err
	}
	if rune(r.tok.Delim) != delim {
		return errors.Errorf("expected %q, found %s", delim, r.tok.Value)
	}
	return nil
}

// value reads the value starting at the current token.
func (r *jsonReader) value() (interface{}, error) {
	switch rune(r.tok.Delim) {
	case '{':
		return r.object()
	case '[':
		return r.array()
	case 0:
	default:
		return nil, errors.Errorf("unexpected %q", rune(r.tok.Delim))
	}

	v := r.tok.Value
	switch {
	case v.String():
		return string(v.Unquote()), nil
	case v.Null():
		return nil, nil
	default:
		// numbers and booleans become element text as written
		return string(v), nil
	}
}

func (r *jsonReader) object() (*object, error) {
	obj := &object{}
	for {
		if err := r.next(); err != nil {
			return nil, err
		}
		if rune(r.tok.Delim) == '}' && len(obj.fields) == 0 {
			return obj, nil
		}
		if !r.tok.Value.String() || r.tok.Delim != 0 {
			return nil, errors.Errorf("expected object key, found %s", r.tok.Value)
		}
		key := string(r.tok.Value.Unquote())
		if err := r.expect(':'); err != nil {
			return nil, err
		}
		if err := r.next(); err != nil {
			return nil, err
		}
		v, err := r.value()
		if err != nil {
			return nil, err
		}
		obj.fields = append(obj.fields, field{key: key, value: v})

		if err := r.next(); err != nil {
			return nil, err
		}
		switch rune(r.tok.Delim) {
		case ',':
		case '}':
			return obj, nil
		default:
			return nil, errors.Errorf("expected ',' or '}', found %s", r.tok.Value)
		}
	}
}

func (r *jsonReader) array() ([]interface{}, error) {
	list := []interface{}{}
	for {
		if err := r.next(); err != nil {
			return nil, err
		}
		if rune(r.tok.Delim) == ']' && len(list) == 0 {
			return list, nil
		}
		v, err := r.value()
		if err != nil {
			return nil, err
		}
		list = append(list, v)

		if err := r.next(); err != nil {
			return nil, err
		}
		switch rune(r.tok.Delim) {
		case ',':
		case ']':
			return list, nil
		default:
			return nil, errors.Errorf("expected ',' or ']', found %s", r.tok.Value)
		}
	}
}

// parseJSON reads a document whose only member is the root element.
func parseJSON(jsonDoc []byte) (string, interface{}, error) {
	r := &jsonReader{tok: json.NewTokenizer(jsonDoc)}
	if err := r.next(); err != nil {
		return "", nil, errors.Wrapf(resources.ErrInvalidMetadata, "parse JSON: %v", err)
	}
	if rune(r.tok.Delim) != '{' {
		return "", nil, errors.Wrap(resources.ErrInvalidMetadata, "JSON document must be an object")
	}
	doc, err := r.object()
	if err != nil {
		return "", nil, errors.Wrapf(resources.ErrInvalidMetadata, "parse JSON: %v", err)
	}
	if r.tok.Next() || r.tok.Err != nil {
		return "", nil, errors.Wrap(resources.ErrInvalidMetadata, "parse JSON: trailing data after document")
	}

	if len(doc.fields) != 1 {
		return "", nil, errors.Wrapf(resources.ErrInvalidMetadata, "JSON document must have exactly one root element, got %d", len(doc.fields))
	}
	root := doc.fields[0]
	switch root.value.(type) {
	case *object, string:
	default:
		return "", nil, errors.Wrapf(resources.ErrInvalidMetadata, "root element %q must be an object", root.key)
	}
	return root.key, root.value, nil
}

func encodeElement(enc *xml.Encoder, name string, value interface{}) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}

	switch v := value.(type) {
	case nil:
		return encodeText(enc, start, "")
	case string:
		return encodeText(enc, start, v)
	case []interface{}:
		for _, item := range v {
			if _, nested := item.([]interface{}); nested {
				return errors.Wrapf(resources.ErrInvalidMetadata, "element %q cannot hold a nested array", name)
			}
			if err := encodeElement(enc, name, item); err != nil {
				return err
			}
		}
		return nil
	case *object:
		for _, f := range v.fields {
			if f.key == textKey || !strings.HasPrefix(f.key, attrPrefix) {
				continue
			}
			s, ok := f.value.(string)
			if !ok && f.value != nil {
				return errors.Wrapf(resources.ErrInvalidMetadata, "attribute %q of %q must be a scalar", f.key, name)
			}
			start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: strings.TrimPrefix(f.key, attrPrefix)}, Value: s})
		}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for _, f := range v.fields {
			switch {
			case f.key == textKey:
				s, ok := f.value.(string)
				if !ok && f.value != nil {
					return errors.Wrapf(resources.ErrInvalidMetadata, "text of %q must be a scalar", name)
				}
				if err := enc.EncodeToken(xml.CharData(s)); err != nil {
					return err
				}
			case strings.HasPrefix(f.key, attrPrefix):
			default:
				if err := encodeElement(enc, f.key, f.value); err != nil {
					return err
				}
			}
		}
		return enc.EncodeToken(start.End())
	default:
		return errors.Errorf("unsupported value %T", value)
	}
}

func encodeText(enc *xml.Encoder, start xml.StartElement, text string) error {
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}
