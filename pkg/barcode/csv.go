package barcode

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/yumyai/recombar/internal/util"
)

// ReadCSV parses barcode rows from a two-column CSV:
//
//	lineage,mutations
//	XBB.1.5,C241T A405G T3037C ...
//
// The mutation column holds space-separated tokens. A header row whose first
// field is "lineage" is skipped.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []Row
	first := true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read barcode csv: %w", err)
		}

		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}

		if len(record) < 1 || strings.TrimSpace(record[0]) == "" {
			return nil, fmt.Errorf("%w: row without lineage name", ErrMalformedBarcode)
		}

		row := Row{Lineage: strings.TrimSpace(record[0])}
		if len(record) > 1 {
			row.Tokens = util.SplitFields(record[1])
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// isHeader matches the full header shape, not just the first field: a data
// row for a lineage literally named "lineage" must not be swallowed.
func isHeader(record []string) bool {
	return len(record) == 2 &&
		strings.EqualFold(strings.TrimSpace(record[0]), "lineage") &&
		strings.EqualFold(strings.TrimSpace(record[1]), "mutations")
}

// LoadCSVFile builds a database from a CSV file, transparently handling .xz.
func LoadCSVFile(path, reference string) (*Database, error) {
	r, err := util.OpenMaybeXz(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open barcodes %s: %w", path, err)
	}
	defer r.Close()

	rows, err := ReadCSV(r)
	if err != nil {
		return nil, err
	}
	return Build(reference, rows)
}
