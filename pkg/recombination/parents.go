// Package recombination searches for a parental lineage pair that explains a
// query no single lineage can, locates the ancestry breakpoints, and emits
// the final call record.
package recombination

import (
	"github.com/yumyai/recombar/pkg/barcode"
	"github.com/yumyai/recombar/pkg/config"
	"github.com/yumyai/recombar/pkg/genotype"
	"github.com/yumyai/recombar/pkg/mutation"
	"github.com/yumyai/recombar/pkg/query"
)

// PairCandidate is a ranked two-parent explanation of a query.
type PairCandidate struct {
	// ParentA sorts lexicographically before ParentB.
	ParentA string
	ParentB string
	// CombinedMatched counts query mutations explained by either parent.
	CombinedMatched int
	// Residual counts query mutations explained by neither parent,
	// conflicts excluded.
	Residual int
}

// SearchParents enumerates lineage pairs drawn from the top-N single-lineage
// scores and returns the best accepted pair, or nil when no pair clears both
// acceptance gates. Restricting to top-N bounds the pair count; a viable
// parent must explain a meaningful share of the query on its own.
func SearchParents(q *query.Profile, ranked *genotype.Result, db *barcode.Database, cfg config.Config) *PairCandidate {
	// Candidate pool: top-N by the genotype ranking, zero-matched
	// lineages excluded (they cannot contribute a parent).
	var pool []*barcode.Barcode
	for _, s := range ranked.Scores {
		if len(pool) >= cfg.TopN {
			break
		}
		if s.Matched == 0 {
			continue
		}
		bc, err := db.Lookup(s.Lineage)
		if err != nil {
			continue
		}
		pool = append(pool, bc)
	}
	if len(pool) < 2 {
		return nil
	}

	// The pair must beat the best single lineage by the configured margin.
	bestSingle := 0
	for _, s := range ranked.Scores {
		if s.Matched > bestSingle {
			bestSingle = s.Matched
		}
	}

	var best *PairCandidate
	for i := 0; i < len(pool); i++ {
		for j := i + 1; j < len(pool); j++ {
			cand := scorePair(q, pool[i], pool[j])
			if float64(cand.CombinedMatched) < float64(bestSingle)+cfg.MinMargin {
				continue
			}
			if cand.Residual > cfg.MaxResidual {
				continue
			}
			if best == nil || pairLess(cand, *best) {
				c := cand
				best = &c
			}
		}
	}
	return best
}

func scorePair(q *query.Profile, a, b *barcode.Barcode) PairCandidate {
	union := mutation.Union(a.Mutations, b.Mutations)
	conflicts := mutation.ConflictPositions(q.Mutations, union)
	qEff := mutation.WithoutPositions(q.Mutations, conflicts)
	uEff := mutation.WithoutPositions(union, conflicts)

	cand := PairCandidate{
		ParentA:         a.Lineage,
		ParentB:         b.Lineage,
		CombinedMatched: len(mutation.Intersect(qEff, uEff)),
		Residual:        len(mutation.Difference(qEff, uEff)),
	}
	if cand.ParentB < cand.ParentA {
		cand.ParentA, cand.ParentB = cand.ParentB, cand.ParentA
	}
	return cand
}

// pairLess orders candidates best-first: maximum combined matched, minimum
// residual, then lexicographic pair name for determinism.
func pairLess(a, b PairCandidate) bool {
	if a.CombinedMatched != b.CombinedMatched {
		return a.CombinedMatched > b.CombinedMatched
	}
	if a.Residual != b.Residual {
		return a.Residual < b.Residual
	}
	if a.ParentA != b.ParentA {
		return a.ParentA < b.ParentA
	}
	return a.ParentB < b.ParentB
}
