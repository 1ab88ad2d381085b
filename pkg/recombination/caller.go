package recombination

import (
	"errors"
	"fmt"

	"github.com/yumyai/recombar/pkg/barcode"
	"github.com/yumyai/recombar/pkg/config"
	"github.com/yumyai/recombar/pkg/genotype"
	"github.com/yumyai/recombar/pkg/query"
)

// ErrReferenceMismatch means the query's coordinate system differs from the
// barcode database's. The affected query aborts; the batch continues.
var ErrReferenceMismatch = errors.New("reference coordinate system mismatch")

// Status classifies a finished call.
type Status string

const (
	StatusNonRecombinant Status = "non-recombinant"
	StatusRecombinant    Status = "recombinant"
	StatusUnresolved     Status = "unresolved"
)

// Call is the final, immutable result record for one query.
type Call struct {
	SampleID string `json:"sample_id"`
	Status   Status `json:"status"`
	// Lineage is set for non-recombinant calls.
	Lineage string `json:"lineage,omitempty"`
	// ParentA/ParentB are set for recombinant calls, A before B
	// lexicographically.
	ParentA     string       `json:"parent_a,omitempty"`
	ParentB     string       `json:"parent_b,omitempty"`
	Breakpoints []Breakpoint `json:"breakpoints,omitempty"`
	// Confidence is support for non-recombinant calls, explained fraction
	// for recombinant calls, 0 for unresolved.
	Confidence float64 `json:"confidence"`
	// Note carries the error annotation for unresolved calls.
	Note string `json:"note,omitempty"`
}

// Caller runs genotype -> parent search -> breakpoint detection for one
// query at a time. It performs no I/O and keeps no per-query state, so a
// single Caller is shared by all workers.
type Caller struct {
	db  *barcode.Database
	gt  *genotype.Genotyper
	cfg config.Config
}

func NewCaller(db *barcode.Database, cfg config.Config) *Caller {
	return &Caller{db: db, gt: genotype.New(db, cfg), cfg: cfg}
}

// Call evaluates one query profile. Query-scoped failures (reference
// mismatch, insufficient breakpoint evidence) come back as an unresolved
// call with the reason in Note and a nil error; only database-level failure
// returns an error.
func (c *Caller) Call(q *query.Profile) (Call, error) {
	if err := c.checkReference(q); err != nil {
		return unresolved(q, err), nil
	}

	ranked, err := c.gt.Genotype(q)
	if err != nil {
		return Call{}, err
	}

	if c.gt.Resolved(ranked.Best) {
		return Call{
			SampleID:   q.SampleID,
			Status:     StatusNonRecombinant,
			Lineage:    ranked.Best.Lineage,
			Confidence: ranked.Best.Support,
		}, nil
	}

	pair := SearchParents(q, ranked, c.db, c.cfg)
	if pair == nil {
		return unresolved(q, errors.New("no parent pair cleared the acceptance gates")), nil
	}

	parentA, err := c.db.Lookup(pair.ParentA)
	if err != nil {
		return Call{}, err
	}
	parentB, err := c.db.Lookup(pair.ParentB)
	if err != nil {
		return Call{}, err
	}

	breakpoints, err := DetectBreakpoints(q, parentA, parentB, c.cfg.MinRun)
	if err != nil {
		return unresolved(q, err), nil
	}

	confidence := 0.0
	if total := pair.CombinedMatched + pair.Residual; total > 0 {
		confidence = float64(pair.CombinedMatched) / float64(total)
	}

	return Call{
		SampleID:    q.SampleID,
		Status:      StatusRecombinant,
		ParentA:     pair.ParentA,
		ParentB:     pair.ParentB,
		Breakpoints: breakpoints,
		Confidence:  confidence,
	}, nil
}

func (c *Caller) checkReference(q *query.Profile) error {
	if q.Reference == "" || c.db.Reference == "" {
		return nil
	}
	if q.Reference != c.db.Reference {
		return fmt.Errorf("%w: query %s vs database %s", ErrReferenceMismatch, q.Reference, c.db.Reference)
	}
	return nil
}

func unresolved(q *query.Profile, reason error) Call {
	return Call{
		SampleID: q.SampleID,
		Status:   StatusUnresolved,
		Note:     reason.Error(),
	}
}
