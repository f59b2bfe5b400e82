package morph

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/FocuswithJustin/treebank/core/errors"
)

// Feature is one decoded category of a postag.
type Feature struct {
	Category Category
	Value    string
}

// Morphology is the decoded form of a postag, in category order. Categories
// whose code was the placeholder or unknown are not present.
type Morphology []Feature

// Get returns the term decoded for c.
func (m Morphology) Get(c Category) (string, bool) {
	for _, f := range m {
		if f.Category == c {
			return f.Value, true
		}
	}
	return "", false
}

// Map returns the morphology keyed by category name.
func (m Morphology) Map() map[string]string {
	out := make(map[string]string, len(m))
	for _, f := range m {
		out[f.Category.String()] = f.Value
	}
	return out
}

// MarshalJSON writes the features as an object in category order. An empty
// morphology encodes as {} rather than null.
func (m Morphology) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Category.String())
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
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

// Decode resolves code against table. Codes shorter than TagLength behave as
// if right-padded with the placeholder; characters past TagLength are
// ignored. Placeholder and unrecognised codes are left out of the result.
// A nil table decodes nothing.
func Decode(code string, table *Table) Morphology {
	m, _ := decode(code, table, false)
	return m
}

// DecodeStrict is Decode, except that an unrecognised non-placeholder code
// is reported as a *errors.ParseError instead of being dropped. A nil
// table is a *errors.ValidationError.
func DecodeStrict(code string, table *Table) (Morphology, error) {
	return decode(code, table, true)
}

func decode(code string, table *Table, strict bool) (Morphology, error) {
	if table == nil {
		if strict {
			return nil, errors.NewValidation("table", "no feature table given")
		}
		return nil, nil
	}
	chars := []rune(code)
	var m Morphology
	for i := 0; i < TagLength; i++ {
		ch := rune(Placeholder)
		if i < len(chars) {
			ch = chars[i]
		}
		if ch == Placeholder {
			continue
		}
		c := Category(i)
		term, ok := table.Term(c, ch)
		if !ok {
			if strict {
				return nil, &errors.ParseError{
					Format:  "postag",
					Message: fmt.Sprintf("unrecognised %s code %q at position %d of %q (%s)", c, ch, i+1, code, table.Name()),
				}
			}
			continue
		}
		m = append(m, Feature{Category: c, Value: term})
	}
	return m, nil
}
