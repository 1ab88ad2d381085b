package mutation

// Set operations over position-sorted mutation slices. All functions are
// pure: inputs are never modified and results are fresh slices. Inputs must
// be sorted by (Pos, Alt); everything produced by ParseAll or Union is.

// Intersect returns mutations present in both a and b: same position and
// same alternate base.
func Intersect(a, b []Mutation) []Mutation {
	var out []Mutation
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := a[i].Compare(b[j]); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// Difference returns mutations in a that are not in b. A position where a
// and b carry different alternate bases still counts as "in a, not in b";
// scoring excludes such conflict positions separately.
func Difference(a, b []Mutation) []Mutation {
	var out []Mutation
	i, j := 0, 0
	for i < len(a) {
		if j >= len(b) {
			out = append(out, a[i])
			i++
			continue
		}
		switch c := a[i].Compare(b[j]); {
		case c < 0:
			out = append(out, a[i])
			i++
		case c > 0:
			j++
		default:
			i++
			j++
		}
	}
	return out
}

// ConflictPositions returns positions where a and b both carry a mutation
// but disagree on the alternate base. Such sites signal sequencing or
// alignment disagreement and are excluded from scoring.
func ConflictPositions(a, b []Mutation) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Pos < b[j].Pos:
			i++
		case a[i].Pos > b[j].Pos:
			j++
		default:
			pos := a[i].Pos
			conflict := false
			// Walk every pairing at this position; profiles hold one
			// mutation per position but barcodes may list variants.
			for ii := i; ii < len(a) && a[ii].Pos == pos; ii++ {
				match := false
				for jj := j; jj < len(b) && b[jj].Pos == pos; jj++ {
					if a[ii].Alt == b[jj].Alt {
						match = true
						break
					}
				}
				if !match {
					conflict = true
				}
			}
			if conflict {
				out = append(out, pos)
			}
			for i < len(a) && a[i].Pos == pos {
				i++
			}
			for j < len(b) && b[j].Pos == pos {
				j++
			}
		}
	}
	return out
}

// Union merges a and b into one sorted set, dropping duplicate (Pos, Alt)
// entries. Positions where the two inputs disagree keep both records.
func Union(a, b []Mutation) []Mutation {
	out := make([]Mutation, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := a[i].Compare(b[j]); {
		case c < 0:
			out = append(out, a[i])
			i++
		case c > 0:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// WithoutPositions filters out mutations at any of the given sorted positions.
func WithoutPositions(muts []Mutation, positions []int) []Mutation {
	if len(positions) == 0 {
		return muts
	}
	skip := make(map[int]bool, len(positions))
	for _, p := range positions {
		skip[p] = true
	}
	out := make([]Mutation, 0, len(muts))
	for _, m := range muts {
		if !skip[m.Pos] {
			out = append(out, m)
		}
	}
	return out
}
