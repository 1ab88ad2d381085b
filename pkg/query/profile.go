// Package query models a single sample's mutation profile, the unit of work
// for the detection pipeline. Profiles are created by the loader, consumed by
// exactly one worker, and never mutated after construction.
package query

import (
	"github.com/yumyai/recombar/pkg/mutation"
)

// Profile is a reference-aligned sample reduced to its mutation list.
type Profile struct {
	SampleID string
	// Reference names the coordinate system the mutation positions refer
	// to. It must match the barcode database's reference; the caller turns
	// a mismatch into an unresolved call for this sample only.
	Reference string
	// Mutations is sorted by position; at most one entry per position
	// after upstream quality filtering.
	Mutations []mutation.Mutation
	// GenomeLength, when known, bounds positions; 0 means unknown.
	GenomeLength int
	// Missing lists uncovered positions (the coverage mask). Currently
	// informational; scoring treats them like any absent mutation.
	Missing []int
}
