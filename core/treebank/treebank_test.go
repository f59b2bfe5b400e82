package treebank

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FocuswithJustin/treebank/core/cas"
	"github.com/FocuswithJustin/treebank/core/errors"
	"github.com/FocuswithJustin/treebank/internal/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const iliad = `<?xml version="1.0" encoding="UTF-8"?>
<treebank version="1.5" xml:lang="grc" format="aldt">
  <annotator><short>perseus</short></annotator>
  <sentence id="2185541" document_id="urn:cts:greekLit:tlg0012.tlg001.perseus-grc1" subdoc="1.1-1.7">
    <word id="1" form="μῆνιν" lemma="μῆνις" postag="n-s---fa-" head="2" relation="OBJ"/>
    <word id="2" form="ἄειδε" lemma="ἀείδω" postag="v2spma---" head="0" relation="PRED"/>
  </sentence>
  <sentence id="2185542" document_id="urn:cts:greekLit:tlg0012.tlg001.perseus-grc1" subdoc="1.1-1.7">
    <word id="1" form="θεά" lemma="θεά" postag="n-s---fv-" head="0" relation="ExD"/>
  </sentence>
</treebank>`

func TestParse(t *testing.T) {
	tb, err := Parse(strings.NewReader(iliad))
	require.NoError(t, err)

	assert.Equal(t, "grc", tb.Language)
	assert.Equal(t, "1.5", tb.Version)
	assert.Equal(t, "aldt", tb.Format)
	require.Len(t, tb.Sentences, 2)

	first := tb.Sentences[0]
	assert.Equal(t, "2185541", first.ID)
	assert.Equal(t, "1.1-1.7", first.Subdoc)
	assert.Equal(t, "urn:cts:greekLit:tlg0012.tlg001.perseus-grc1", first.DocumentID)
	assert.Equal(t, []Word{
		{ID: "1", Form: "μῆνιν", Lemma: "μῆνις", Postag: "n-s---fa-", Head: "2", Relation: "OBJ"},
		{ID: "2", Form: "ἄειδε", Lemma: "ἀείδω", Postag: "v2spma---", Head: "0", Relation: "PRED"},
	}, first.Words)

	assert.Equal(t, Stats{Sentences: 2, Words: 3}, tb.Stats())
	assert.Equal(t, "urn:cts:greekLit:tlg0012.tlg001.perseus-grc1", tb.DocumentID())
}

func TestParseMissingAttributes(t *testing.T) {
	tb, err := Parse(strings.NewReader(`<treebank><sentence><word form="et"/></sentence><sentence id="2"/></treebank>`))
	require.NoError(t, err)
	require.Len(t, tb.Sentences, 2)
	assert.Equal(t, []Word{{Form: "et"}}, tb.Sentences[0].Words)
	assert.Empty(t, tb.Sentences[1].Words)
	assert.Equal(t, "", tb.DocumentID())
}

// TestParseNestedWords verifies that words below intermediate elements are
// still attributed to their sentence.
func TestParseNestedWords(t *testing.T) {
	tb, err := Parse(strings.NewReader(`<treebank><body>
		<sentence id="a"><phrase><word id="1"/></phrase><word id="2"/></sentence>
		<sentence id="b"><word id="3"/></sentence>
	</body></treebank>`))
	require.NoError(t, err)
	require.Len(t, tb.Sentences, 2)
	require.Len(t, tb.Sentences[0].Words, 2)
	assert.Equal(t, "1", tb.Sentences[0].Words[0].ID)
	assert.Equal(t, "2", tb.Sentences[0].Words[1].ID)
	assert.Equal(t, "3", tb.Sentences[1].Words[0].ID)
}

func TestParseMalformed(t *testing.T) {
	for _, input := range []string{
		`<treebank><sentence id="1"></treebank>`,
		"",
		`<treebank><sentence id="1"><word id="1" form="a"/></sentence></treebank>junk`,
		`<treebank><sentence id="1"/></treebank><treebank><sentence id="2"/></treebank>`,
	} {
		_, err := Parse(strings.NewReader(input))
		require.Error(t, err, "input %q", input)
		var pe *errors.ParseError
		assert.ErrorAs(t, err, &pe)
		assert.Equal(t, "XML", pe.Format)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tlg0012.tlg001.perseus-grc1.tb.xml")
	require.NoError(t, os.WriteFile(path, []byte(iliad), 0644))

	tb, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, tb.Path)
	assert.Equal(t, archive.CompressionNone, tb.Compression)
	assert.Equal(t, cas.Sum([]byte(iliad)), tb.Digest)
	assert.Equal(t, 3, tb.Stats().Words)
}

func TestReadFileXZMatchesPlain(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "a.tb.xml")
	require.NoError(t, os.WriteFile(plain, []byte(iliad), 0644))

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write([]byte(iliad))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	compressed := filepath.Join(dir, "a.tb.xml.xz")
	require.NoError(t, os.WriteFile(compressed, buf.Bytes(), 0644))

	a, err := ReadFile(plain)
	require.NoError(t, err)
	b, err := ReadFile(compressed)
	require.NoError(t, err)

	assert.Equal(t, archive.CompressionXZ, b.Compression)
	assert.Equal(t, a.Sentences, b.Sentences)
	assert.Equal(t, a.Digest, b.Digest)
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.xml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte("<treebank><sentence>"), 0644))
	_, err = ReadFile(bad)
	var pe *errors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, bad, pe.Path)
}
