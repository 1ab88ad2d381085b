// Package mutation holds the canonical representation of a single-position
// genomic change and the set algebra used by genotyping and breakpoint
// scanning. Collections are kept sorted by position so every operation is a
// single merge pass.
package mutation

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrMalformed reports a mutation token that cannot be parsed into a valid
// position / base pair.
var ErrMalformed = errors.New("malformed mutation")

// Mutation is an immutable substitution relative to the reference genome.
// Identity for matching is (Pos, Alt): two records describe the same mutation
// when they put the same alternate base at the same position.
type Mutation struct {
	Pos int  `json:"pos"`
	Ref byte `json:"ref"`
	Alt byte `json:"alt"`
}

// String renders the conventional barcode form, e.g. A123T.
func (m Mutation) String() string {
	return fmt.Sprintf("%c%d%c", m.Ref, m.Pos, m.Alt)
}

// Compare orders by position, then alternate base.
func (m Mutation) Compare(other Mutation) int {
	if m.Pos != other.Pos {
		if m.Pos < other.Pos {
			return -1
		}
		return 1
	}
	if m.Alt != other.Alt {
		if m.Alt < other.Alt {
			return -1
		}
		return 1
	}
	return 0
}

// Same reports match identity: same position and same alternate base.
func (m Mutation) Same(other Mutation) bool {
	return m.Pos == other.Pos && m.Alt == other.Alt
}

func validBase(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T', 'N', '-':
		return true
	}
	return false
}

// Parse accepts both text forms seen in barcode tables:
//
//	A123T     (ref, position, alt)
//	123:A:T   (position, ref, alt)
func Parse(token string) (Mutation, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Mutation{}, fmt.Errorf("%w: empty token", ErrMalformed)
	}

	var m Mutation
	if strings.Contains(token, ":") {
		parts := strings.Split(token, ":")
		if len(parts) != 3 || len(parts[1]) != 1 || len(parts[2]) != 1 {
			return Mutation{}, fmt.Errorf("%w: %q", ErrMalformed, token)
		}
		pos, err := strconv.Atoi(parts[0])
		if err != nil {
			return Mutation{}, fmt.Errorf("%w: %q", ErrMalformed, token)
		}
		m = Mutation{Pos: pos, Ref: parts[1][0], Alt: parts[2][0]}
	} else {
		if len(token) < 3 {
			return Mutation{}, fmt.Errorf("%w: %q", ErrMalformed, token)
		}
		pos, err := strconv.Atoi(token[1 : len(token)-1])
		if err != nil {
			return Mutation{}, fmt.Errorf("%w: %q", ErrMalformed, token)
		}
		m = Mutation{Pos: pos, Ref: token[0], Alt: token[len(token)-1]}
	}

	m.Ref = upperBase(m.Ref)
	m.Alt = upperBase(m.Alt)
	if m.Pos < 1 || !validBase(m.Ref) || !validBase(m.Alt) {
		return Mutation{}, fmt.Errorf("%w: %q", ErrMalformed, token)
	}
	return m, nil
}

func upperBase(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// ParseAll parses a list of tokens into a sorted, deduplicated set.
func ParseAll(tokens []string) ([]Mutation, error) {
	muts := make([]Mutation, 0, len(tokens))
	for _, tok := range tokens {
		m, err := Parse(tok)
		if err != nil {
			return nil, err
		}
		muts = append(muts, m)
	}
	Sort(muts)
	return Dedupe(muts), nil
}

// Sort orders by position then alternate base.
func Sort(muts []Mutation) {
	sort.Slice(muts, func(i, j int) bool { return muts[i].Compare(muts[j]) < 0 })
}

// Dedupe collapses adjacent identical (Pos, Alt) entries of a sorted slice.
func Dedupe(muts []Mutation) []Mutation {
	if len(muts) < 2 {
		return muts
	}
	out := muts[:1]
	for _, m := range muts[1:] {
		if !m.Same(out[len(out)-1]) {
			out = append(out, m)
		}
	}
	return out
}
