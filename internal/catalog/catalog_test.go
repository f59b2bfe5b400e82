package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FocuswithJustin/treebank/core/errors"
)

func openTest(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func sample(source, sha string) Entry {
	return Entry{
		Source:    source,
		Output:    source + ".json",
		SHA256:    sha,
		BLAKE3:    "b3-" + sha,
		Language:  "latin",
		Mode:      "flat",
		Sentences: 2,
		Words:     4,
		URN:       "urn:cts:latinLit:phi0474.phi013.perseus-lat1",
		Author:    "Cicero",
		Title:     "In Catilinam",
	}
}

func TestRecordRoundTrip(t *testing.T) {
	c := openTest(t)
	ctx := context.Background()

	stored, err := c.Record(ctx, sample("a.tb.xml", "aa"))
	require.NoError(t, err)
	_, err = uuid.Parse(stored.RunID)
	require.NoError(t, err)
	assert.False(t, stored.CreatedAt.IsZero())

	got, err := c.FindBySource(ctx, "aa")
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestRecordKeepsGivenIDAndTime(t *testing.T) {
	c := openTest(t)
	id := uuid.NewString()
	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	e := sample("a.tb.xml", "aa")
	e.RunID = id
	e.CreatedAt = at
	stored, err := c.Record(context.Background(), e)
	require.NoError(t, err)
	assert.Equal(t, id, stored.RunID)
	assert.True(t, at.Equal(stored.CreatedAt))
}

func TestRecordValidation(t *testing.T) {
	c := openTest(t)

	_, err := c.Record(context.Background(), Entry{})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	e := sample("a.tb.xml", "aa")
	e.RunID = "not-a-uuid"
	_, err = c.Record(context.Background(), e)
	var ve *errors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "run_id", ve.Field)
}

func TestListOrder(t *testing.T) {
	c := openTest(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, src := range []string{"b.xml", "a.xml", "c.xml"} {
		e := sample(src, src)
		e.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := c.Record(ctx, e)
		require.NoError(t, err)
	}

	entries, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "b.xml", entries[0].Source)
	assert.Equal(t, "a.xml", entries[1].Source)
	assert.Equal(t, "c.xml", entries[2].Source)
}

func TestFindBySourceLatest(t *testing.T) {
	c := openTest(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first := sample("a.xml", "same")
	first.CreatedAt = base
	second := sample("a.xml", "same")
	second.Mode = "subdoc"
	second.CreatedAt = base.Add(time.Hour)
	for _, e := range []Entry{first, second} {
		_, err := c.Record(ctx, e)
		require.NoError(t, err)
	}

	got, err := c.FindBySource(ctx, "same")
	require.NoError(t, err)
	assert.Equal(t, "subdoc", got.Mode)
}

func TestFindBySourceMissing(t *testing.T) {
	c := openTest(t)
	_, err := c.FindBySource(context.Background(), "nope")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	c, err := Open(path)
	require.NoError(t, err)
	_, err = c.Record(context.Background(), sample("a.xml", "aa"))
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c, err = Open(path)
	require.NoError(t, err)
	defer c.Close()
	entries, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}
