package recombination

import (
	"errors"

	"github.com/yumyai/recombar/pkg/barcode"
	"github.com/yumyai/recombar/pkg/mutation"
	"github.com/yumyai/recombar/pkg/query"
)

// ErrInsufficientEvidence means the diagnostic mutations cannot place a
// breakpoint: fewer than two diagnostics per parent, or no ancestry switch
// survived the confirm-run filter. The call degrades to unresolved rather
// than guessing an arbitrary breakpoint.
var ErrInsufficientEvidence = errors.New("insufficient diagnostic evidence for breakpoint placement")

// Breakpoint is the minimal genomic interval containing an ancestry
// transition: the true switch site is bounded only to the region between the
// last diagnostic of the old parent and the first diagnostic of the new one.
type Breakpoint struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type parentSide byte

const (
	sideA parentSide = 'A'
	sideB parentSide = 'B'
)

// diagnostic is one query mutation attributable to exactly one parent.
type diagnostic struct {
	pos  int
	side parentSide
}

// scanState drives the confirm-run state machine. Explicit states keep the
// run-length rule and its edge cases independently testable.
type scanState int

const (
	seekingFirst scanState = iota
	inSegment
	confirmingSwitch
)

// DetectBreakpoints walks the query's diagnostic mutations in genomic order
// and reports every confirmed ancestry switch between parents a and b.
//
// A switch registers only after minRun consecutive diagnostics of the new
// parent; a single isolated flip is treated as noise. Intervals come out
// non-overlapping and ascending by construction of the single monotonic scan.
func DetectBreakpoints(q *query.Profile, a, b *barcode.Barcode, minRun int) ([]Breakpoint, error) {
	if minRun < 1 {
		minRun = 1
	}

	diags := classify(q, a, b)

	countA, countB := 0, 0
	for _, d := range diags {
		if d.side == sideA {
			countA++
		} else {
			countB++
		}
	}
	if countA < 2 || countB < 2 {
		return nil, ErrInsufficientEvidence
	}

	var (
		state       = seekingFirst
		current     parentSide
		lastPos     int // last diagnostic position of the current parent
		candidate   parentSide
		candFirst   int // first diagnostic position of the candidate run
		candLast    int
		runCount    int
		breakpoints []Breakpoint
	)

	confirm := func() {
		breakpoints = append(breakpoints, Breakpoint{Start: lastPos, End: candFirst})
		current = candidate
		lastPos = candLast
		state = inSegment
	}

	for _, d := range diags {
		switch state {
		case seekingFirst:
			// Initial orientation is whichever parent appears first.
			current = d.side
			lastPos = d.pos
			state = inSegment

		case inSegment:
			if d.side == current {
				lastPos = d.pos
				continue
			}
			candidate = d.side
			candFirst = d.pos
			candLast = d.pos
			runCount = 1
			state = confirmingSwitch
			if runCount >= minRun {
				confirm()
			}

		case confirmingSwitch:
			if d.side == candidate {
				runCount++
				candLast = d.pos
				if runCount >= minRun {
					confirm()
				}
				continue
			}
			// Reverted before confirmation: the candidate run was noise.
			lastPos = d.pos
			state = inSegment
		}
	}

	// A trailing unconfirmed run is discarded as noise.

	if len(breakpoints) == 0 {
		return nil, ErrInsufficientEvidence
	}
	return breakpoints, nil
}

// classify splits query mutations into per-parent diagnostics. Shared
// mutations are uninformative for locating the switch and unexplained ones
// belong to the residual; both are skipped. Conflicts are judged against the
// parents' union, the same exclusion the pair scorer applies: a site where
// the query matches one parent's alt stays diagnostic even when the other
// parent defines a different base there.
func classify(q *query.Profile, a, b *barcode.Barcode) []diagnostic {
	union := mutation.Union(a.Mutations, b.Mutations)
	conflicts := mutation.ConflictPositions(q.Mutations, union)
	muts := mutation.WithoutPositions(q.Mutations, conflicts)

	inA := toSet(mutation.Intersect(muts, a.Mutations))
	inB := toSet(mutation.Intersect(muts, b.Mutations))

	var diags []diagnostic
	for _, m := range muts {
		switch {
		case inA[m] && inB[m]:
			// shared
		case inA[m]:
			diags = append(diags, diagnostic{pos: m.Pos, side: sideA})
		case inB[m]:
			diags = append(diags, diagnostic{pos: m.Pos, side: sideB})
		default:
			// unexplained
		}
	}
	return diags
}

func toSet(muts []mutation.Mutation) map[mutation.Mutation]bool {
	set := make(map[mutation.Mutation]bool, len(muts))
	for _, m := range muts {
		set[m] = true
	}
	return set
}
