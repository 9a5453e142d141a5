package encoding

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/charmap"
)

const (
	// RootElement wraps every MPI document
	RootElement = "MPI_Interface"

	// AttributesKey marks a nested map whose entries become XML attributes of
	// the enclosing element
	AttributesKey = "attributes"

	// ValueKey holds the text of a decoded leaf element that also carries
	// attributes
	ValueKey = "value"

	// indexPrefix is prepended to numeric keys to keep element names valid
	indexPrefix = "item"
)

// Encode converts root into an MPI XML document.
// Entries are written in insertion order.
func Encode(root *Map) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0"`)

	el := doc.CreateElement(RootElement)
	if err := encodeMap(el, root); err != nil {
		return nil, err
	}

	return writeDocument(doc)
}

func encodeMap(parent *etree.Element, m *Map) error {
	for _, key := range m.Keys() {
		value, _ := m.Get(key)

		if key == AttributesKey {
			if err := encodeAttributes(parent, value); err != nil {
				return err
			}
			continue
		}

		name, err := elementName(key)
		if err != nil {
			return err
		}

		child := parent.CreateElement(name)
		if value.IsMap() {
			if err := encodeMap(child, value.Map()); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			continue
		}
		child.SetText(value.Text())
	}
	return nil
}

func encodeAttributes(el *etree.Element, value Value) error {
	if !value.IsMap() {
		return fmt.Errorf("%q on <%s> must be a map of attribute names to values", AttributesKey, el.Tag)
	}

	attrs := value.Map()
	for _, name := range attrs.Keys() {
		attr, _ := attrs.Get(name)
		if attr.IsMap() {
			return fmt.Errorf("attribute %q on <%s> must be a scalar", name, el.Tag)
		}
		if !isName(name) {
			return fmt.Errorf("invalid attribute name %q on <%s>", name, el.Tag)
		}
		el.CreateAttr(name, attr.Text())
	}
	return nil
}

// elementName maps a key to an XML element name.
// Purely numeric keys come from indexed collections and become item<N>.
func elementName(key string) (string, error) {
	if isNumeric(key) {
		return indexPrefix + key, nil
	}
	if !isName(key) {
		return "", fmt.Errorf("invalid element name %q", key)
	}
	return key, nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isName is an ASCII subset of the XML Name production
func isName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

// Parse reads an XML document from body.
// Documents declaring a Latin-1 or Windows-1252 encoding are converted to UTF-8.
func Parse(body []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	return doc, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "iso-8859-1", "iso8859-1", "iso_8859-1", "latin1", "l1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "iso-8859-15", "latin9":
		return charmap.ISO8859_15.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
}

// DecodeElement converts the attributes and children of el back into a Map.
// Leaf elements become scalars and elements with children or attributes become
// nested maps. Attributes are collected under AttributesKey and the text of a
// leaf carrying attributes under ValueKey. Repeated sibling tags become a map
// keyed "0", "1", ... in document order.
func DecodeElement(el *etree.Element) *Map {
	m := NewMap()
	if el == nil {
		return m
	}

	if len(el.Attr) > 0 {
		attrs := NewMap()
		for _, attr := range el.Attr {
			attrs.SetString(attr.Key, attr.Value)
		}
		m.SetMap(AttributesKey, attrs)
		if len(el.ChildElements()) == 0 {
			m.SetString(ValueKey, el.Text())
		}
	}

	children := el.ChildElements()
	counts := make(map[string]int, len(children))
	for _, child := range children {
		counts[child.Tag]++
	}

	for _, child := range children {
		value := decodeChild(child)
		if counts[child.Tag] == 1 {
			m.Set(child.Tag, value)
			continue
		}

		group, ok := m.Get(child.Tag)
		if !ok {
			group = Nested(NewMap())
			m.Set(child.Tag, group)
		}
		list := group.Map()
		list.Set(strconv.Itoa(list.Len()), value)
	}
	return m
}

func decodeChild(el *etree.Element) Value {
	if len(el.ChildElements()) == 0 && len(el.Attr) == 0 {
		return String(el.Text())
	}
	return Nested(DecodeElement(el))
}
