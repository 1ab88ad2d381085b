// Package genotype scores a query profile against every lineage barcode and
// picks the best single-lineage explanation. Everything here is pure: same
// profile, same database, same scores.
package genotype

import (
	"sort"

	"github.com/yumyai/recombar/pkg/barcode"
	"github.com/yumyai/recombar/pkg/config"
	"github.com/yumyai/recombar/pkg/mutation"
	"github.com/yumyai/recombar/pkg/query"
)

// Score summarizes one query-lineage comparison.
//
// Conflict positions (same site, different alternate base) are excluded from
// Matched, Private and Missing: they signal sequencing or alignment noise,
// not real mutation difference.
type Score struct {
	Lineage string
	// Matched counts mutations present in both query and barcode.
	Matched int
	// Private counts query mutations absent from the barcode.
	Private int
	// Missing counts barcode mutations absent from the query.
	Missing int
	// Conflicts lists the excluded positions.
	Conflicts []int
	// Support is Matched over the barcode's defining-mutation count.
	Support float64
	// Precision is Matched over the conflict-free query mutation count.
	Precision float64
}

// Result is the ranked outcome of scoring one query against the database.
type Result struct {
	// Scores holds every lineage, ordered best first: support desc,
	// precision desc, lineage name asc.
	Scores []Score
	// Best is Scores[0].
	Best Score
}

// Genotyper scores profiles against a fixed database. Safe for concurrent
// use: the database is read-only and no state is kept between calls.
type Genotyper struct {
	db  *barcode.Database
	cfg config.Config
}

func New(db *barcode.Database, cfg config.Config) *Genotyper {
	return &Genotyper{db: db, cfg: cfg}
}

// ScoreLineage computes the score of one profile against one barcode.
func ScoreLineage(q *query.Profile, bc *barcode.Barcode) Score {
	conflicts := mutation.ConflictPositions(q.Mutations, bc.Mutations)
	qEff := mutation.WithoutPositions(q.Mutations, conflicts)
	lEff := mutation.WithoutPositions(bc.Mutations, conflicts)

	s := Score{
		Lineage:   bc.Lineage,
		Matched:   len(mutation.Intersect(qEff, lEff)),
		Private:   len(mutation.Difference(qEff, lEff)),
		Missing:   len(mutation.Difference(lEff, qEff)),
		Conflicts: conflicts,
	}

	// Zero denominators yield zero, never a division failure.
	if n := len(bc.Mutations); n > 0 {
		s.Support = float64(s.Matched) / float64(n)
	}
	if n := len(qEff); n > 0 {
		s.Precision = float64(s.Matched) / float64(n)
	}
	return s
}

// Genotype scores the profile against every lineage and ranks the result.
// The only failure mode is an empty database.
func (g *Genotyper) Genotype(q *query.Profile) (*Result, error) {
	if g.db.Len() == 0 {
		return nil, barcode.ErrEmptyDatabase
	}

	scores := make([]Score, 0, g.db.Len())
	for _, bc := range g.db.All() {
		scores = append(scores, ScoreLineage(q, bc))
	}

	sort.Slice(scores, func(i, j int) bool { return less(scores[i], scores[j]) })

	return &Result{Scores: scores, Best: scores[0]}, nil
}

// less orders scores best-first with deterministic tie-breaks.
func less(a, b Score) bool {
	if a.Support != b.Support {
		return a.Support > b.Support
	}
	if a.Precision != b.Precision {
		return a.Precision > b.Precision
	}
	return a.Lineage < b.Lineage
}

// Resolved reports whether the best single lineage explains the query well
// enough to call it non-recombinant without a parent search.
func (g *Genotyper) Resolved(s Score) bool {
	return s.Support >= g.cfg.SupportThreshold && s.Private <= g.cfg.MaxPrivate
}
