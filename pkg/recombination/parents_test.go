package recombination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/recombar/pkg/barcode"
	"github.com/yumyai/recombar/pkg/config"
	"github.com/yumyai/recombar/pkg/genotype"
	"github.com/yumyai/recombar/pkg/query"
)

func searchDB(t *testing.T) *barcode.Database {
	t.Helper()
	db, err := barcode.Build("ref", []barcode.Row{
		{Lineage: "X", Tokens: []string{"A100T", "C200G"}},
		{Lineage: "Y", Tokens: []string{"A300T", "C400G"}},
		{Lineage: "Z", Tokens: []string{"A900T"}},
	})
	require.NoError(t, err)
	return db
}

func rankedFor(t *testing.T, db *barcode.Database, cfg config.Config, q *query.Profile) *genotype.Result {
	t.Helper()
	res, err := genotype.New(db, cfg).Genotype(q)
	require.NoError(t, err)
	return res
}

func TestSearchParentsAcceptsCombinedPair(t *testing.T) {
	db := searchDB(t)
	cfg := config.Default()
	q := prof(t, "A100T", "C200G", "A300T", "C400G")

	pair := SearchParents(q, rankedFor(t, db, cfg, q), db, cfg)
	require.NotNil(t, pair)
	assert.Equal(t, "X", pair.ParentA)
	assert.Equal(t, "Y", pair.ParentB)
	assert.Equal(t, 4, pair.CombinedMatched)
	assert.Equal(t, 0, pair.Residual)
}

func TestSearchParentsMarginGate(t *testing.T) {
	db := searchDB(t)
	cfg := config.Default()

	// Everything already explained by X alone: no pair can beat the best
	// single lineage by the margin.
	q := prof(t, "A100T", "C200G")
	pair := SearchParents(q, rankedFor(t, db, cfg, q), db, cfg)
	assert.Nil(t, pair)
}

func TestSearchParentsResidualGate(t *testing.T) {
	db := searchDB(t)
	cfg := config.Default()
	cfg.MaxResidual = 1

	// Two parents explain four mutations but two remain unexplained.
	q := prof(t, "A100T", "C200G", "A300T", "C400G", "A600T", "A700T")
	pair := SearchParents(q, rankedFor(t, db, cfg, q), db, cfg)
	assert.Nil(t, pair)

	cfg.MaxResidual = 2
	pair = SearchParents(q, rankedFor(t, db, cfg, q), db, cfg)
	require.NotNil(t, pair)
	assert.Equal(t, 2, pair.Residual)
}

func TestSearchParentsNeedsTwoCandidates(t *testing.T) {
	db := searchDB(t)
	cfg := config.Default()

	// Only Z matches anything: no pair to form.
	q := prof(t, "A900T")
	pair := SearchParents(q, rankedFor(t, db, cfg, q), db, cfg)
	assert.Nil(t, pair)
}

func TestSearchParentsTopNBound(t *testing.T) {
	db := searchDB(t)
	cfg := config.Default()
	cfg.TopN = 1

	q := prof(t, "A100T", "C200G", "A300T", "C400G")
	pair := SearchParents(q, rankedFor(t, db, cfg, q), db, cfg)
	assert.Nil(t, pair, "pool of one lineage cannot form a pair")
}

func TestSearchParentsDeterministic(t *testing.T) {
	db := searchDB(t)
	cfg := config.Default()
	q := prof(t, "A100T", "C200G", "A300T", "C400G")

	first := SearchParents(q, rankedFor(t, db, cfg, q), db, cfg)
	second := SearchParents(q, rankedFor(t, db, cfg, q), db, cfg)
	assert.Equal(t, first, second)
}
