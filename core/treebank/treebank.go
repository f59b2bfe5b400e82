// Package treebank reads Perseus dependency treebank files into an ordered
// sentence/word model.
//
// The expected layout is
//
//	<treebank xml:lang="lat" version="1.5">
//	  <sentence id="1" document_id="urn:cts:..." subdoc="1.1">
//	    <word id="1" form="..." lemma="..." postag="n-s---fa-" head="2" relation="OBJ"/>
//	  </sentence>
//	</treebank>
//
// Sentences are found anywhere below the root and words anywhere below
// their sentence, in document order.
package treebank

import (
	"bytes"
	"io"

	"github.com/FocuswithJustin/treebank/core/cas"
	"github.com/FocuswithJustin/treebank/core/errors"
	"github.com/FocuswithJustin/treebank/core/xml"
	"github.com/FocuswithJustin/treebank/internal/archive"
)

// Word is one <word> element.
type Word struct {
	ID       string
	Form     string
	Lemma    string
	Postag   string
	Head     string
	Relation string
}

// Sentence is one <sentence> element and its words.
type Sentence struct {
	ID         string
	Subdoc     string
	DocumentID string
	Words      []Word
}

// Treebank is a parsed treebank file.
type Treebank struct {
	// Path is the file the treebank was read from, if any.
	Path string
	// Language is the xml:lang of the root element (e.g. "lat", "grc").
	Language string
	Version  string
	Format   string

	Compression archive.Compression
	Digest      cas.Digest

	Sentences []Sentence
}

// Stats counts sentences and words.
type Stats struct {
	Sentences int `json:"sentences"`
	Words     int `json:"words"`
}

var (
	sentenceExpr = xml.MustCompile("//sentence")
	wordExpr     = xml.MustCompile(".//word")
)

// Parse reads a treebank document from r.
func Parse(r io.Reader) (*Treebank, error) {
	doc, err := xml.ParseReader(r)
	if err != nil {
		return nil, &errors.ParseError{Format: "XML", Message: err.Error(), Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.NewParse("XML", "", "document has no root element")
	}

	rootAttrs := root.Attributes()
	tb := &Treebank{
		Language: rootAttrs["lang"],
		Version:  rootAttrs["version"],
		Format:   rootAttrs["format"],
	}

	for _, s := range doc.Select(sentenceExpr) {
		sentence := Sentence{
			ID:         s.Attr("id"),
			Subdoc:     s.Attr("subdoc"),
			DocumentID: s.Attr("document_id"),
		}
		for _, w := range s.Select(wordExpr) {
			sentence.Words = append(sentence.Words, Word{
				ID:       w.Attr("id"),
				Form:     w.Attr("form"),
				Lemma:    w.Attr("lemma"),
				Postag:   w.Attr("postag"),
				Head:     w.Attr("head"),
				Relation: w.Attr("relation"),
			})
		}
		tb.Sentences = append(tb.Sentences, sentence)
	}
	return tb, nil
}

// ReadFile reads and parses the treebank at path. Gzip and xz compressed
// files are decompressed transparently; the digest is taken over the
// decompressed XML.
func ReadFile(path string) (*Treebank, error) {
	data, compression, err := archive.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tb, err := Parse(bytes.NewReader(data))
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	tb.Path = path
	tb.Compression = compression
	tb.Digest = cas.Sum(data)
	return tb, nil
}

// Stats counts the sentences and words of the treebank.
func (tb *Treebank) Stats() Stats {
	st := Stats{Sentences: len(tb.Sentences)}
	for _, s := range tb.Sentences {
		st.Words += len(s.Words)
	}
	return st
}

// DocumentID returns the first non-empty sentence document_id, which
// Perseus files use to carry the CTS URN of the work.
func (tb *Treebank) DocumentID() string {
	for _, s := range tb.Sentences {
		if s.DocumentID != "" {
			return s.DocumentID
		}
	}
	return ""
}
