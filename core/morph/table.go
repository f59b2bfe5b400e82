package morph

import (
	"sort"
	"strings"
)

// Table maps the codes of each category to their English terms for one
// language. A Table cannot be modified after NewTable returns.
type Table struct {
	name    string
	aliases []string
	codes   [TagLength]map[rune]string
}

// NewTable builds a Table from a literal code map. The input is copied, so
// later changes to codes do not affect the table.
func NewTable(name string, aliases []string, codes map[Category]map[rune]string) *Table {
	t := &Table{
		name:    strings.ToLower(name),
		aliases: make([]string, 0, len(aliases)),
	}
	for _, a := range aliases {
		t.aliases = append(t.aliases, strings.ToLower(a))
	}
	for c, m := range codes {
		if !c.Valid() {
			continue
		}
		cp := make(map[rune]string, len(m))
		for k, v := range m {
			if k == Placeholder {
				continue
			}
			cp[k] = v
		}
		t.codes[c] = cp
	}
	return t
}

// Name returns the canonical language name, e.g. "latin".
func (t *Table) Name() string {
	return t.name
}

// Aliases returns the alternative names the table answers to.
func (t *Table) Aliases() []string {
	out := make([]string, len(t.aliases))
	copy(out, t.aliases)
	return out
}

// Term returns the English term for code in category c.
func (t *Table) Term(c Category, code rune) (string, bool) {
	if !c.Valid() {
		return "", false
	}
	term, ok := t.codes[c][code]
	return term, ok
}

// Codes returns the codes defined for category c in ascending order.
func (t *Table) Codes(c Category) []rune {
	if !c.Valid() {
		return nil
	}
	out := make([]rune, 0, len(t.codes[c]))
	for k := range t.codes[c] {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
