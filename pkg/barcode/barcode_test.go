package barcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAndLookup(t *testing.T) {
	db, err := Build("MN908947.3", []Row{
		{Lineage: "X", Tokens: []string{"A100T", "C200G"}},
		{Lineage: "Y", Tokens: []string{"A300T", "C400G"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, db.Len())
	assert.Equal(t, []string{"X", "Y"}, db.Lineages())

	bc, err := db.Lookup("X")
	require.NoError(t, err)
	require.Len(t, bc.Mutations, 2)
	assert.Equal(t, 100, bc.Mutations[0].Pos)

	_, err = db.Lookup("Z")
	assert.ErrorIs(t, err, ErrLineageNotFound)
}

func TestBuildCollapsesIdenticalDuplicates(t *testing.T) {
	db, err := Build("ref", []Row{
		{Lineage: "X", Tokens: []string{"A100T"}},
		{Lineage: "X", Tokens: []string{"A100T"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, db.Len())
}

func TestBuildRejectsAmbiguousDuplicates(t *testing.T) {
	_, err := Build("ref", []Row{
		{Lineage: "X", Tokens: []string{"A100T"}},
		{Lineage: "X", Tokens: []string{"A100T", "C200G"}},
	})
	assert.ErrorIs(t, err, ErrDuplicateLineage)
}

func TestBuildRejectsMalformed(t *testing.T) {
	_, err := Build("ref", []Row{
		{Lineage: "X", Tokens: []string{"garbage"}},
	})
	assert.ErrorIs(t, err, ErrMalformedBarcode)
}

func TestBuildRejectsEmpty(t *testing.T) {
	_, err := Build("ref", nil)
	assert.ErrorIs(t, err, ErrEmptyDatabase)
}

func TestAllIsSortedAndRestartable(t *testing.T) {
	db, err := Build("ref", []Row{
		{Lineage: "B", Tokens: []string{"A100T"}},
		{Lineage: "A", Tokens: []string{"C200G"}},
		{Lineage: "C", Tokens: []string{"A300T"}},
	})
	require.NoError(t, err)

	// Two full scans over the same database give identical views.
	for i := 0; i < 2; i++ {
		var names []string
		for _, bc := range db.All() {
			names = append(names, bc.Lineage)
		}
		assert.Equal(t, []string{"A", "B", "C"}, names)
	}
}

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"lineage,mutations",
		"X,A100T C200G",
		"Y,300:A:T 400:C:G",
		"Z,",
	}, "\n")

	rows, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "X", rows[0].Lineage)
	assert.Equal(t, []string{"A100T", "C200G"}, rows[0].Tokens)
	assert.Empty(t, rows[2].Tokens)

	db, err := Build("ref", rows)
	require.NoError(t, err)
	assert.Equal(t, 3, db.Len())
}

func TestReadCSVKeepsLineageNamedLineage(t *testing.T) {
	// Only the exact header shape is skipped; a first data row whose
	// lineage happens to be "lineage" is real data.
	rows, err := ReadCSV(strings.NewReader("lineage,A100T C200G\nX,A300T\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "lineage", rows[0].Lineage)
	assert.Equal(t, []string{"A100T", "C200G"}, rows[0].Tokens)
}
