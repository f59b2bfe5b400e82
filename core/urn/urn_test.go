package urn

import (
	"testing"

	"github.com/FocuswithJustin/treebank/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    URN
		workID  string
		canonic string
	}{
		{
			input:   "urn:cts:latinLit:phi0474.phi013.perseus-lat1",
			want:    URN{Namespace: "latinLit", Work: Work{TextGroup: "phi0474", Work: "phi013", Version: "perseus-lat1"}},
			workID:  "phi0474.phi013.perseus-lat1",
			canonic: "urn:cts:latinLit:phi0474.phi013.perseus-lat1",
		},
		{
			input:   "URN:CTS:greekLit:tlg0012.tlg001.perseus-grc1:1.1-1.7",
			want:    URN{Namespace: "greekLit", Work: Work{TextGroup: "tlg0012", Work: "tlg001", Version: "perseus-grc1"}, Passage: "1.1-1.7"},
			workID:  "tlg0012.tlg001.perseus-grc1",
			canonic: "urn:cts:greekLit:tlg0012.tlg001.perseus-grc1:1.1-1.7",
		},
		{
			input:   "urn:cts:greekLit:tlg0012",
			want:    URN{Namespace: "greekLit", Work: Work{TextGroup: "tlg0012"}},
			workID:  "tlg0012",
			canonic: "urn:cts:greekLit:tlg0012",
		},
		{
			input:   "urn:cts:latinLit:phi0448.phi001.perseus-lat2.tokenized:1.1@Gallia",
			want:    URN{Namespace: "latinLit", Work: Work{TextGroup: "phi0448", Work: "phi001", Version: "perseus-lat2", Exemplar: "tokenized"}, Passage: "1.1@Gallia"},
			workID:  "phi0448.phi001.perseus-lat2.tokenized",
			canonic: "urn:cts:latinLit:phi0448.phi001.perseus-lat2.tokenized:1.1@Gallia",
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
			assert.Equal(t, tt.workID, got.WorkID())
			assert.Equal(t, tt.canonic, got.String())
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, input := range []string{
		"",
		"urn:isbn:0451450523",
		"urn:cts:greekLit",
		"urn:cts:greekLit:",
		"tlg0012.tlg001",
		"urn:cts:greekLit:tlg0012..tlg001",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.ErrorAs(t, err, new(*errors.ParseError))
		})
	}
}

func TestFromFilename(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		ns     string
		wantOK bool
	}{
		{"./phi0474.phi013.perseus-lat1.tb.xml", "phi0474.phi013.perseus-lat1", "latinLit", true},
		{"/data/tlg0012.tlg001.perseus-grc1.tb.xml.xz", "tlg0012.tlg001.perseus-grc1", "greekLit", true},
		{"tlg0012.tlg001.tb.xml", "tlg0012.tlg001", "greekLit", true},
		{"caesar.xml", "", "", false},
		{"notes on caesar.xml", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w, ok := FromFilename(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.want, w.String())
			assert.Equal(t, tt.ns, w.Namespace())
		})
	}
}

func TestWorkURN(t *testing.T) {
	w, err := ParseWork("tlg0012.tlg001.perseus-grc1")
	require.NoError(t, err)
	u, ok := w.URN()
	require.True(t, ok)
	assert.Equal(t, "urn:cts:greekLit:tlg0012.tlg001.perseus-grc1", u.String())

	other, err := ParseWork("abc.def")
	require.NoError(t, err)
	_, ok = other.URN()
	assert.False(t, ok)
}
