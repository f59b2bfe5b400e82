// Package morph decodes Perseus positional morphology tags.
//
// A postag is a nine-character string; the character at position i is the
// code for Categories()[i], and '-' marks a category that does not apply.
// Codes are resolved against a per-language Table (see Latin and Greek).
package morph

import "fmt"

// Category is one of the nine positional feature slots of a postag.
type Category int

const (
	POS Category = iota
	Person
	Number
	Tense
	Mood
	Voice
	Gender
	Case
	Degree
)

// TagLength is the number of positions in a full postag.
const TagLength = 9

// Placeholder marks an absent feature in a postag.
const Placeholder = '-'

var categoryNames = [TagLength]string{
	"pos", "person", "number", "tense", "mood", "voice", "gender", "case", "degree",
}

// Categories returns the categories in postag position order.
func Categories() []Category {
	out := make([]Category, TagLength)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// String returns the JSON key used for the category.
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Valid reports whether c is one of the nine known categories.
func (c Category) Valid() bool {
	return c >= POS && c <= Degree
}

// ParseCategory maps a JSON key such as "case" back to its Category.
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return 0, false
}
