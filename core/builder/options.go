package builder

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/treebank/core/errors"
	"github.com/FocuswithJustin/treebank/core/morph"
)

// Mode selects the output shape.
type Mode int

const (
	// ModeFlat keys words by sentence id, then by source word id.
	ModeFlat Mode = iota
	// ModeSubdoc groups words by the sentence subdoc attribute and numbers
	// them with a running counter.
	ModeSubdoc
)

// String returns "flat" or "subdoc".
func (m Mode) String() string {
	switch m {
	case ModeFlat:
		return "flat"
	case ModeSubdoc:
		return "subdoc"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a mode name to a Mode. "subdocument" is accepted as an
// alias for "subdoc".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "flat":
		return ModeFlat, nil
	case "subdoc", "subdocument":
		return ModeSubdoc, nil
	}
	return ModeFlat, errors.NewUnsupported(fmt.Sprintf("mode %q", s), "use flat or subdoc")
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// LanguageAuto selects the table from the treebank's xml:lang attribute.
const LanguageAuto = "auto"

// Options configures a Builder.
type Options struct {
	// Language names the feature table ("latin", "greek", an alias, or
	// LanguageAuto). Empty means morph.DefaultLanguage.
	Language string
	Mode     Mode
	// IncludeSyntax copies the head and relation attributes into each word.
	IncludeSyntax bool
	// Normalize applies Unicode NFC to form and lemma.
	Normalize bool
	// Strict fails the build on the first unrecognised postag code instead
	// of omitting it.
	Strict bool
}

// Validate checks the mode and resolves the language.
func (o Options) Validate() error {
	if o.Mode != ModeFlat && o.Mode != ModeSubdoc {
		return errors.NewUnsupported(o.Mode.String(), "use flat or subdoc")
	}
	if o.auto() {
		return nil
	}
	_, err := morph.Lookup(o.Language)
	return err
}

func (o Options) auto() bool {
	return strings.EqualFold(strings.TrimSpace(o.Language), LanguageAuto)
}
