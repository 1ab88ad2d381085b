// Package db loads lineage barcodes out of a sqlite dataset file. Curated
// datasets ship as a single .db with one row per (lineage, mutation); the
// loader regroups rows and hands them to the barcode builder, so sqlite and
// CSV sources go through identical validation.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yumyai/recombar/pkg/barcode"
)

// Open opens a sqlite dataset. The caller is responsible for importing the
// driver (modernc.org/sqlite) and closing the handle.
func Open(path string) (*sql.DB, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	return sqldb, nil
}

// LoadBarcodes reads the barcodes table and builds the in-memory database.
//
// Expected schema: barcodes(lineage TEXT, mutation TEXT).
func LoadBarcodes(sqldb *sql.DB, reference string) (*barcode.Database, error) {
	ctx := context.TODO()

	qstring := `select lineage, mutation from barcodes order by lineage, mutation;`

	stm, err := sqldb.PrepareContext(ctx, qstring)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare barcode query: %w", err)
	}
	defer stm.Close()

	rows, err := stm.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query barcodes: %w", err)
	}
	defer rows.Close()

	var (
		srcRows []barcode.Row
		current *barcode.Row
	)
	for rows.Next() {
		var lineage, mut string
		if err := rows.Scan(&lineage, &mut); err != nil {
			return nil, fmt.Errorf("failed to scan barcode row: %w", err)
		}

		if current == nil || current.Lineage != lineage {
			srcRows = append(srcRows, barcode.Row{Lineage: lineage})
			current = &srcRows[len(srcRows)-1]
		}
		if mut != "" {
			current.Tokens = append(current.Tokens, mut)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read barcode rows: %w", err)
	}

	return barcode.Build(reference, srcRows)
}
