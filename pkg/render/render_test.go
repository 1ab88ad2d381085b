package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/recombar/pkg/recombination"
)

func sampleCalls() []recombination.Call {
	return []recombination.Call{
		{
			SampleID:   "s1",
			Status:     recombination.StatusNonRecombinant,
			Lineage:    "X",
			Confidence: 1.0,
		},
		{
			SampleID:    "s2",
			Status:      recombination.StatusRecombinant,
			ParentA:     "X",
			ParentB:     "Y",
			Breakpoints: []recombination.Breakpoint{{Start: 200, End: 300}},
			Confidence:  1.0,
		},
		{
			SampleID: "s3",
			Status:   recombination.StatusUnresolved,
			Note:     "no parent pair cleared the acceptance gates",
		},
	}
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, sampleCalls()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "sample_id\tstatus"))
	assert.Contains(t, lines[1], "non-recombinant")
	assert.Contains(t, lines[1], "1.0000")
	assert.Contains(t, lines[2], "X,Y")
	assert.Contains(t, lines[2], "200-300")
	assert.Contains(t, lines[3], "unresolved")
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleCalls()))

	var decoded []recombination.Call
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleCalls(), decoded)
}

func TestWriteJSONDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, WriteJSON(&a, sampleCalls()))
	require.NoError(t, WriteJSON(&b, sampleCalls()))
	assert.Equal(t, a.Bytes(), b.Bytes())
}
