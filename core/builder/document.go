package builder

import (
	"bytes"
	"encoding/json"

	"github.com/FocuswithJustin/treebank/core/morph"
)

// Word is the JSON record written for one treebank word. Field order is
// the output order.
type Word struct {
	Form       string           `json:"form"`
	Lemma      string           `json:"lemma"`
	Postag     string           `json:"postag"`
	Morphology morph.Morphology `json:"morphology"`
	Head       string           `json:"head,omitempty"`
	Relation   string           `json:"relation,omitempty"`
}

// OrderedMap is a string-keyed map that remembers insertion order and
// encodes to a JSON object in that order. The zero value is ready to use.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// Set stores v under key. Replacing an existing key keeps its position.
func (m *OrderedMap[V]) Set(key string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

// Each calls fn for every entry in insertion order.
func (m *OrderedMap[V]) Each(fn func(key string, v V)) {
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// MarshalJSON encodes the map as an object in insertion order.
func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encode(k)
		if err != nil {
			return nil, err
		}
		val, err := encode(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Words holds the words of one group keyed by word id (flat mode) or by
// running number (subdoc mode).
type Words = OrderedMap[Word]

// Document is the converted form of one treebank file.
//
// In flat mode Groups is keyed by sentence id. In subdoc mode it is keyed
// by subdocument and encodes under "text", next to an empty "passage"
// section.
type Document struct {
	Mode   Mode
	Groups OrderedMap[*Words]
	// Replaced counts words dropped in flat mode because a later word in
	// the same sentence reused their id.
	Replaced int
}

// Group returns the words stored under a sentence id or subdocument.
func (d *Document) Group(key string) (*Words, bool) {
	return d.Groups.Get(key)
}

// Keys returns the group keys in document order.
func (d *Document) Keys() []string {
	return d.Groups.Keys()
}

// WordCount returns the number of words across all groups.
func (d *Document) WordCount() int {
	n := 0
	d.Groups.Each(func(_ string, w *Words) {
		n += w.Len()
	})
	return n
}

// MarshalJSON encodes the document in the shape of its mode.
func (d *Document) MarshalJSON() ([]byte, error) {
	groups, err := d.Groups.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if d.Mode != ModeSubdoc {
		return groups, nil
	}
	var buf bytes.Buffer
	buf.WriteString(`{"passage":{},"text":`)
	buf.Write(groups)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Marshal renders doc as indented UTF-8 JSON. Non-ASCII text is written
// as is and HTML characters are not escaped.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
