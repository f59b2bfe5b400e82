// Package builder turns parsed treebanks into JSON documents.
//
// A Builder is configured once with a language table and an output mode
// and can then convert any number of files. It holds no per-file state.
package builder

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/FocuswithJustin/treebank/core/cache"
	"github.com/FocuswithJustin/treebank/core/cas"
	"github.com/FocuswithJustin/treebank/core/errors"
	"github.com/FocuswithJustin/treebank/core/morph"
	"github.com/FocuswithJustin/treebank/core/treebank"
	"github.com/FocuswithJustin/treebank/internal/fileutil"
	"github.com/FocuswithJustin/treebank/internal/logging"
	"github.com/FocuswithJustin/treebank/internal/validation"
)

// OutputSuffix is appended to the input path to name the output file.
const OutputSuffix = ".json"

// OutputPath returns the JSON path written for an input path.
func OutputPath(path string) string {
	return path + OutputSuffix
}

// decodeCacheSize bounds the postag cache. Treebanks use a few hundred
// distinct postags per language.
const decodeCacheSize = 4096

type decodeKey struct {
	table  string
	postag string
}

// Builder converts treebanks with fixed options. It is safe for
// concurrent use.
type Builder struct {
	opts    Options
	table   *morph.Table // nil when the language is resolved per file
	decoded *cache.LRU[decodeKey, morph.Morphology]
}

// New validates opts and returns a Builder.
func New(opts Options) (*Builder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b := &Builder{
		opts:    opts,
		decoded: cache.NewLRU[decodeKey, morph.Morphology](decodeCacheSize),
	}
	if !opts.auto() {
		t, err := morph.Lookup(opts.Language)
		if err != nil {
			return nil, err
		}
		b.table = t
	}
	return b, nil
}

// Options returns the builder's options.
func (b *Builder) Options() Options {
	return b.opts
}

// TableFor returns the feature table used for tb.
func (b *Builder) TableFor(tb *treebank.Treebank) (*morph.Table, error) {
	if b.table != nil {
		return b.table, nil
	}
	if tb.Language == "" {
		return morph.Lookup(morph.DefaultLanguage)
	}
	return morph.Lookup(tb.Language)
}

// Build converts tb into a Document. It does not touch the filesystem.
func (b *Builder) Build(tb *treebank.Treebank) (*Document, error) {
	table, err := b.TableFor(tb)
	if err != nil {
		return nil, err
	}
	if b.opts.Mode == ModeSubdoc {
		return b.buildSubdoc(tb, table)
	}
	return b.buildFlat(tb, table)
}

func (b *Builder) buildFlat(tb *treebank.Treebank, table *morph.Table) (*Document, error) {
	doc := &Document{Mode: ModeFlat}
	for si, s := range tb.Sentences {
		words, ok := doc.Groups.Get(s.ID)
		if !ok {
			words = &Words{}
			doc.Groups.Set(s.ID, words)
		} else {
			logging.Warn("duplicate sentence id, merging words", "path", tb.Path, "sentence", s.ID)
		}
		for wi, w := range s.Words {
			word, err := b.word(w, table, si, wi)
			if err != nil {
				return nil, err
			}
			if words.Has(w.ID) {
				doc.Replaced++
				logging.Warn("duplicate word id, keeping the later word", "path", tb.Path, "sentence", s.ID, "word", w.ID)
			}
			words.Set(w.ID, word)
		}
	}
	return doc, nil
}

// buildSubdoc groups consecutive sentences that share a subdoc value. The
// accumulator is sealed whenever the value changes and once more after the
// last sentence. A value that comes back after another one appends to its
// earlier group.
func (b *Builder) buildSubdoc(tb *treebank.Treebank, table *morph.Table) (*Document, error) {
	doc := &Document{Mode: ModeSubdoc}

	var (
		current string
		acc     *Words
		next    = 1
	)
	seal := func() {
		if acc == nil {
			return
		}
		if prev, ok := doc.Groups.Get(current); ok {
			acc.Each(func(k string, w Word) { prev.Set(k, w) })
		} else {
			doc.Groups.Set(current, acc)
		}
		acc = nil
	}

	for si, s := range tb.Sentences {
		if si == 0 {
			current = s.Subdoc
		} else if s.Subdoc != current {
			seal()
			current = s.Subdoc
		}
		if acc == nil {
			acc = &Words{}
		}
		for wi, w := range s.Words {
			word, err := b.word(w, table, si, wi)
			if err != nil {
				return nil, err
			}
			acc.Set(strconv.Itoa(next), word)
			next++
		}
	}
	seal()
	return doc, nil
}

func (b *Builder) word(w treebank.Word, table *morph.Table, si, wi int) (Word, error) {
	out := Word{
		Form:   w.Form,
		Lemma:  w.Lemma,
		Postag: w.Postag,
	}
	if b.opts.Normalize {
		out.Form = norm.NFC.String(out.Form)
		out.Lemma = norm.NFC.String(out.Lemma)
	}
	if b.opts.IncludeSyntax {
		out.Head = w.Head
		out.Relation = w.Relation
	}
	m, err := b.decode(w.Postag, table)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.Path = fmt.Sprintf("sentence %d, word %d (id %q)", si+1, wi+1, w.ID)
		}
		return Word{}, err
	}
	out.Morphology = m
	return out, nil
}

// decode returns the cached morphology of postag. Results are shared
// between words and must not be modified.
func (b *Builder) decode(postag string, table *morph.Table) (morph.Morphology, error) {
	key := decodeKey{table: table.Name(), postag: postag}
	if m, ok := b.decoded.Get(key); ok {
		return m, nil
	}
	var m morph.Morphology
	if b.opts.Strict {
		var err error
		if m, err = morph.DecodeStrict(postag, table); err != nil {
			return nil, err
		}
	} else {
		m = morph.Decode(postag, table)
	}
	b.decoded.Put(key, m)
	return m, nil
}

// CacheStats reports hits and misses of the postag cache.
func (b *Builder) CacheStats() cache.Stats {
	return b.decoded.Stats()
}

// Result describes one converted file.
type Result struct {
	Document   *Document
	Source     string
	Output     string
	Language   string
	Mode       Mode
	DocumentID string
	Stats      treebank.Stats
	Digest     cas.Digest
	Duration   time.Duration
	// Replaced is the number of input words not present in the output.
	Replaced int
}

// Convert reads the treebank at path, builds its document and writes it to
// OutputPath(path). On any failure nothing is written and the returned
// result is nil.
func (b *Builder) Convert(ctx context.Context, path string) (*Result, error) {
	start := time.Now()
	logging.ConversionStarted(ctx, path, b.opts.Language, b.opts.Mode.String())

	res, err := b.convert(ctx, path)
	if err != nil {
		logging.ConversionFailed(ctx, path, err)
		return nil, err
	}
	res.Duration = time.Since(start)
	logging.ConversionFinished(ctx, path, res.Output, res.Stats.Sentences, res.Stats.Words, res.Duration,
		"language", res.Language, "mode", res.Mode.String(), "replaced", res.Replaced)
	return res, nil
}

func (b *Builder) convert(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := validation.ValidateInputFile(path, OutputSuffix); err != nil {
		return nil, err
	}
	tb, err := treebank.ReadFile(path)
	if err != nil {
		return nil, err
	}
	table, err := b.TableFor(tb)
	if err != nil {
		return nil, err
	}
	doc, err := b.Build(tb)
	if err != nil {
		return nil, err
	}
	data, err := Marshal(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s", path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := OutputPath(path)
	if err := fileutil.WriteFileAtomic(out, data, 0644); err != nil {
		return nil, err
	}
	return &Result{
		Document:   doc,
		Source:     path,
		Output:     out,
		Language:   table.Name(),
		Mode:       b.opts.Mode,
		DocumentID: tb.DocumentID(),
		Stats:      tb.Stats(),
		Replaced:   doc.Replaced,
		Digest:     tb.Digest,
	}, nil
}

// Convert is the single-call entry point: it converts the treebank at path
// in flat mode with the given language (default Latin), writes
// OutputPath(path) and returns the document. On failure the document is
// nil and no file is written.
func Convert(path string, language ...string) (*Document, error) {
	opts := Options{}
	if len(language) > 0 {
		opts.Language = language[0]
	}
	b, err := New(opts)
	if err != nil {
		return nil, err
	}
	res, err := b.Convert(context.Background(), path)
	if err != nil {
		return nil, err
	}
	return res.Document, nil
}
