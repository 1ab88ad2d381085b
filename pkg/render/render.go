// Package render writes call records to tabular or structured output. The
// core hands over immutable calls; serialization choices live entirely here.
package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yumyai/recombar/pkg/recombination"
)

// WriteTSV renders one header line plus one row per call.
func WriteTSV(w io.Writer, calls []recombination.Call) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, "sample_id\tstatus\tlineage\tparents\tbreakpoints\tconfidence\tnote"); err != nil {
		return err
	}
	for _, call := range calls {
		parents := ""
		if call.ParentA != "" {
			parents = call.ParentA + "," + call.ParentB
		}
		row := strings.Join([]string{
			call.SampleID,
			string(call.Status),
			call.Lineage,
			parents,
			formatBreakpoints(call.Breakpoints),
			strconv.FormatFloat(call.Confidence, 'f', 4, 64),
			call.Note,
		}, "\t")
		if _, err := fmt.Fprintln(bw, row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatBreakpoints(bps []recombination.Breakpoint) string {
	if len(bps) == 0 {
		return ""
	}
	parts := make([]string, len(bps))
	for i, bp := range bps {
		parts[i] = fmt.Sprintf("%d-%d", bp.Start, bp.End)
	}
	return strings.Join(parts, ";")
}

// WriteJSON renders the calls as an indented JSON array with stable field
// order, so identical inputs produce byte-identical files.
func WriteJSON(w io.Writer, calls []recombination.Call) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(calls)
}
