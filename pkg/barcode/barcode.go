// Package barcode holds the lineage barcode database: an index from lineage
// name to its defining mutation set, built once per run and shared read-only
// across all workers. Nothing mutates a Database after Build returns.
package barcode

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yumyai/recombar/pkg/mutation"
)

// Defining possible errors. All three are fatal to database construction:
// no partial database is usable.
var (
	ErrMalformedBarcode = errors.New("malformed barcode entry")
	ErrDuplicateLineage = errors.New("duplicate lineage with differing mutations")
	ErrEmptyDatabase    = errors.New("barcode database is empty")
	ErrLineageNotFound  = errors.New("lineage not found")
)

// Barcode is one lineage and its defining mutations, sorted by position.
type Barcode struct {
	Lineage   string
	Mutations []mutation.Mutation
}

// Row is one source record before parsing: a lineage name plus its mutation
// tokens as text. Sources (CSV, sqlite) produce Rows; Build validates them.
type Row struct {
	Lineage string
	Tokens  []string
}

// Database is the immutable lineage index.
type Database struct {
	// Reference names the coordinate system of every barcode position.
	Reference string

	byName map[string]*Barcode
	names  []string
}

// Build parses and validates source rows into a Database.
//
// Rows for the same lineage with identical mutation sets collapse to one
// representative; differing sets are ambiguous and fail the build.
func Build(reference string, rows []Row) (*Database, error) {
	byName := make(map[string]*Barcode, len(rows))

	for _, row := range rows {
		if row.Lineage == "" {
			return nil, fmt.Errorf("%w: empty lineage name", ErrMalformedBarcode)
		}

		muts, err := mutation.ParseAll(row.Tokens)
		if err != nil {
			return nil, fmt.Errorf("%w: lineage %s: %v", ErrMalformedBarcode, row.Lineage, err)
		}

		if existing, ok := byName[row.Lineage]; ok {
			if !sameSet(existing.Mutations, muts) {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateLineage, row.Lineage)
			}
			continue
		}
		byName[row.Lineage] = &Barcode{Lineage: row.Lineage, Mutations: muts}
	}

	if len(byName) == 0 {
		return nil, ErrEmptyDatabase
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Database{Reference: reference, byName: byName, names: names}, nil
}

func sameSet(a, b []mutation.Mutation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Lookup returns the barcode for a lineage name.
func (d *Database) Lookup(lineage string) (*Barcode, error) {
	bc, ok := d.byName[lineage]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLineageNotFound, lineage)
	}
	return bc, nil
}

// All returns every barcode in lexicographic lineage order. The slice and
// the barcodes it points to are shared and must be treated as read-only;
// repeated full scans are free.
func (d *Database) All() []*Barcode {
	out := make([]*Barcode, len(d.names))
	for i, name := range d.names {
		out[i] = d.byName[name]
	}
	return out
}

// Len reports the number of lineages.
func (d *Database) Len() int {
	return len(d.names)
}

// Lineages returns the sorted lineage names.
func (d *Database) Lineages() []string {
	return append([]string(nil), d.names...)
}
