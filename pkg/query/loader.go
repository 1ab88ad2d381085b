package query

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/yumyai/recombar/internal/util"
	"github.com/yumyai/recombar/pkg/mutation"
)

// Load reads sample profiles from a tab-separated stream:
//
//	sample_id <TAB> reference <TAB> mutation tokens (space separated)
//
// The mutation column may be empty (a sample identical to the reference).
// Blank lines and '#' comments are skipped.
func Load(r io.Reader) ([]*Profile, error) {
	var profiles []*Profile

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) < 2 {
			return nil, fmt.Errorf("profile line %d: expected sample<TAB>reference[<TAB>mutations], got %q", lineNo, line)
		}

		sample := strings.TrimSpace(cols[0])
		reference := strings.TrimSpace(cols[1])
		if sample == "" {
			return nil, fmt.Errorf("profile line %d: empty sample id", lineNo)
		}

		var muts []mutation.Mutation
		if len(cols) > 2 {
			tokens := util.SplitFields(cols[2])
			var err error
			muts, err = mutation.ParseAll(tokens)
			if err != nil {
				return nil, fmt.Errorf("profile line %d (%s): %w", lineNo, sample, err)
			}
		}

		profiles = append(profiles, &Profile{
			SampleID:  sample,
			Reference: reference,
			Mutations: muts,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}

	return profiles, nil
}

// LoadFile reads profiles from a TSV file, transparently handling .xz.
func LoadFile(path string) ([]*Profile, error) {
	r, err := util.OpenMaybeXz(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profiles %s: %w", path, err)
	}
	defer r.Close()

	return Load(r)
}
