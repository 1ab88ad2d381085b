package mutation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBarcodeForm(t *testing.T) {
	m, err := Parse("A123T")
	require.NoError(t, err)
	assert.Equal(t, Mutation{Pos: 123, Ref: 'A', Alt: 'T'}, m)
	assert.Equal(t, "A123T", m.String())
}

func TestParseColonForm(t *testing.T) {
	m, err := Parse("123:A:T")
	require.NoError(t, err)
	assert.Equal(t, Mutation{Pos: 123, Ref: 'A', Alt: 'T'}, m)
}

func TestParseLowercase(t *testing.T) {
	m, err := Parse("c241t")
	require.NoError(t, err)
	assert.Equal(t, Mutation{Pos: 241, Ref: 'C', Alt: 'T'}, m)
}

func TestParseMalformed(t *testing.T) {
	bad := []string{"", "AT", "A0T", "AxT", "12:AA:T", "1:Z:T", "A-5T", "::"}
	for _, tok := range bad {
		_, err := Parse(tok)
		assert.ErrorIs(t, err, ErrMalformed, "token %q", tok)
	}
}

func TestParseAllSortsAndDedupes(t *testing.T) {
	muts, err := ParseAll([]string{"C300G", "A100T", "A100T", "A200G"})
	require.NoError(t, err)
	require.Len(t, muts, 3)
	assert.Equal(t, 100, muts[0].Pos)
	assert.Equal(t, 200, muts[1].Pos)
	assert.Equal(t, 300, muts[2].Pos)
}

func mustParse(t *testing.T, tokens ...string) []Mutation {
	t.Helper()
	muts, err := ParseAll(tokens)
	require.NoError(t, err)
	return muts
}

func TestIntersect(t *testing.T) {
	a := mustParse(t, "A100T", "C200G", "A300T")
	b := mustParse(t, "C200G", "A300T", "C400G")

	got := Intersect(a, b)
	assert.Equal(t, mustParse(t, "C200G", "A300T"), got)
}

func TestIntersectIgnoresConflictingAlt(t *testing.T) {
	a := mustParse(t, "A100T")
	b := mustParse(t, "A100G")

	assert.Empty(t, Intersect(a, b))
}

func TestDifference(t *testing.T) {
	a := mustParse(t, "A100T", "C200G", "A300T")
	b := mustParse(t, "C200G")

	got := Difference(a, b)
	assert.Equal(t, mustParse(t, "A100T", "A300T"), got)
}

func TestDifferenceEmptyInputs(t *testing.T) {
	a := mustParse(t, "A100T")
	assert.Equal(t, a, Difference(a, nil))
	assert.Empty(t, Difference(nil, a))
}

func TestConflictPositions(t *testing.T) {
	a := mustParse(t, "A100T", "C200G", "A300T")
	b := mustParse(t, "A100G", "C200G", "A300C")

	got := ConflictPositions(a, b)
	assert.Equal(t, []int{100, 300}, got)
}

func TestConflictPositionsNoOverlap(t *testing.T) {
	a := mustParse(t, "A100T")
	b := mustParse(t, "C200G")
	assert.Empty(t, ConflictPositions(a, b))
}

func TestUnion(t *testing.T) {
	a := mustParse(t, "A100T", "C200G")
	b := mustParse(t, "C200G", "A300T")

	got := Union(a, b)
	assert.Equal(t, mustParse(t, "A100T", "C200G", "A300T"), got)
}

func TestUnionKeepsDisagreeingAlts(t *testing.T) {
	a := mustParse(t, "A100T")
	b := mustParse(t, "A100G")

	got := Union(a, b)
	require.Len(t, got, 2)
	assert.Equal(t, 100, got[0].Pos)
	assert.Equal(t, 100, got[1].Pos)
}

func TestWithoutPositions(t *testing.T) {
	a := mustParse(t, "A100T", "C200G", "A300T")
	got := WithoutPositions(a, []int{200})
	assert.Equal(t, mustParse(t, "A100T", "A300T"), got)
}
