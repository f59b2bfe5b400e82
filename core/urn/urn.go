// Package urn parses CTS URNs such as
// urn:cts:latinLit:phi0474.phi013.perseus-lat1:1.1
// and recovers work identifiers from Perseus treebank file names.
package urn

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/treebank/core/errors"
)

// URN is a parsed CTS URN.
type URN struct {
	Namespace string `"urn" ":" "cts" ":" @Segment ":"`
	Work      Work   `@@`
	Passage   string `( ":" @( Segment | "." | "@" )+ )?`
}

// Work is the dotted work component: textgroup[.work[.version[.exemplar]]].
type Work struct {
	TextGroup string `@Segment`
	Work      string `( "." @Segment`
	Version   string `  ( "." @Segment`
	Exemplar  string `    ( "." @Segment )? )? )?`
}

var urnLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Anything between separators: tlg0012, perseus-grc1, 1-1
	{Name: "Segment", Pattern: `[^:.@\s]+`},
	{Name: "Punct", Pattern: `[:.@]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var (
	urnParser = participle.MustBuild[URN](
		participle.Lexer(urnLexer),
		participle.Elide("Whitespace"),
	)
	workParser = participle.MustBuild[Work](
		participle.Lexer(urnLexer),
		participle.Elide("Whitespace"),
	)
)

// Parse parses a CTS URN. The "urn:cts:" prefix is matched case-insensitively.
func Parse(input string) (*URN, error) {
	s := strings.TrimSpace(input)
	if len(s) >= 8 && strings.EqualFold(s[:8], "urn:cts:") {
		s = "urn:cts:" + s[8:]
	}
	u, err := urnParser.ParseString("", s)
	if err != nil {
		return nil, &errors.ParseError{Format: "URN", Message: fmt.Sprintf("%q: %v", input, err), Err: err}
	}
	return u, nil
}

// ParseWork parses a bare dotted work identifier such as
// "tlg0012.tlg001.perseus-grc1".
func ParseWork(input string) (*Work, error) {
	w, err := workParser.ParseString("", strings.TrimSpace(input))
	if err != nil {
		return nil, &errors.ParseError{Format: "URN", Message: fmt.Sprintf("work %q: %v", input, err), Err: err}
	}
	return w, nil
}

// String returns the canonical URN.
func (u *URN) String() string {
	s := "urn:cts:" + u.Namespace + ":" + u.Work.String()
	if u.Passage != "" {
		s += ":" + u.Passage
	}
	return s
}

// WorkID returns the dotted work component without the passage.
func (u *URN) WorkID() string {
	return u.Work.String()
}

// String joins the non-empty work components with dots.
func (w *Work) String() string {
	parts := []string{w.TextGroup}
	for _, p := range []string{w.Work, w.Version, w.Exemplar} {
		if p == "" {
			break
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, ".")
}

// Namespace guesses the CTS namespace from the text group prefix.
func (w *Work) Namespace() string {
	switch {
	case strings.HasPrefix(w.TextGroup, "tlg"):
		return "greekLit"
	case strings.HasPrefix(w.TextGroup, "phi"), strings.HasPrefix(w.TextGroup, "stoa"):
		return "latinLit"
	default:
		return ""
	}
}

// URN returns the work as a full URN when its namespace can be guessed.
func (w *Work) URN() (*URN, bool) {
	ns := w.Namespace()
	if ns == "" {
		return nil, false
	}
	return &URN{Namespace: ns, Work: *w}, true
}

// FromFilename recovers the work identifier from a Perseus treebank file
// name, e.g. "phi0474.phi013.perseus-lat1.tb.xml" gives
// "phi0474.phi013.perseus-lat1". Names without at least a text group and a
// work component are rejected.
func FromFilename(path string) (*Work, bool) {
	name := filepath.Base(path)
	for _, suffix := range []string{".xz", ".gz", ".json", ".xml", ".tb"} {
		name = strings.TrimSuffix(name, suffix)
	}
	w, err := ParseWork(name)
	if err != nil || w.Work == "" {
		return nil, false
	}
	return w, true
}
