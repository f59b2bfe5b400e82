// Package metadata loads the URN reference table that maps corpus works to
// author and title information.
//
// The table is a CSV file with a header row. One column (by default "urn")
// holds the identifier; every other column is kept verbatim.
package metadata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/FocuswithJustin/treebank/core/errors"
	"github.com/FocuswithJustin/treebank/internal/logging"
)

// DefaultIDColumn is the identifier column used when none is given.
const DefaultIDColumn = "urn"

// Record is one row of the table keyed by column name.
type Record struct {
	ID     string
	fields map[string]string
}

// Get returns the value of column, or "" when the column does not exist.
func (r Record) Get(column string) string {
	return r.fields[strings.ToLower(column)]
}

// Author returns the "author" column.
func (r Record) Author() string { return r.Get("author") }

// Title returns the "title" column.
func (r Record) Title() string { return r.Get("title") }

// Table is an immutable lookup table of records.
type Table struct {
	idColumn string
	columns  []string
	records  map[string]Record
	order    []string
}

// Load reads a CSV table from r keyed by idColumn.
func Load(r io.Reader, idColumn string) (*Table, error) {
	if idColumn == "" {
		idColumn = DefaultIDColumn
	}
	idColumn = strings.ToLower(idColumn)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewParse("CSV", "", "missing header row")
	}
	if err != nil {
		return nil, &errors.ParseError{Format: "CSV", Message: err.Error(), Err: err}
	}

	columns := make([]string, len(header))
	idIdx := -1
	for i, h := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if columns[i] == idColumn {
			idIdx = i
		}
	}
	if idIdx < 0 {
		return nil, errors.NewParse("CSV", "", fmt.Sprintf("no %q column in header", idColumn))
	}

	t := &Table{
		idColumn: idColumn,
		columns:  columns,
		records:  make(map[string]Record),
	}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &errors.ParseError{Format: "CSV", Message: err.Error(), Err: err}
		}
		if idIdx >= len(row) {
			continue
		}
		id := strings.TrimSpace(row[idIdx])
		if id == "" {
			continue
		}
		if _, dup := t.records[id]; dup {
			logging.Warn("duplicate metadata id, keeping first", "id", id)
			continue
		}
		rec := Record{ID: id, fields: make(map[string]string, len(columns))}
		for i, v := range row {
			if i < len(columns) {
				rec.fields[columns[i]] = strings.TrimSpace(v)
			}
		}
		t.records[id] = rec
		t.order = append(t.order, id)
	}
	return t, nil
}

// LoadFile reads the table at path.
func LoadFile(path, idColumn string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	t, err := Load(f, idColumn)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return t, nil
}

// Lookup finds the record for id. When there is no exact match, id is
// treated as a bare work identifier and matched against the last
// component of each URN.
func (t *Table) Lookup(id string) (Record, bool) {
	if rec, ok := t.records[id]; ok {
		return rec, true
	}
	if id == "" {
		return Record{}, false
	}
	for _, key := range t.order {
		if strings.HasSuffix(key, ":"+id) {
			return t.records[key], true
		}
	}
	return Record{}, false
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.order)
}

// Columns returns the normalised header.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// IDColumn returns the column the table is keyed by.
func (t *Table) IDColumn() string {
	return t.idColumn
}
