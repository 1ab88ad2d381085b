// Package pipeline fans query profiles out over a bounded worker pool and
// streams the resulting calls to a visit callback. Queries are independent;
// the only shared state is the read-only barcode database inside the caller,
// so workers need no locking.
package pipeline

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/yumyai/recombar/pkg/query"
	"github.com/yumyai/recombar/pkg/recombination"
)

// Config controls the evaluation pool.
type Config struct {
	// Threads is the worker count; 0 or less means one per CPU.
	Threads int
}

// ForEachCall evaluates every profile and hands completed calls to visit in
// completion order. Query-scoped failures surface as unresolved calls and
// never stop the batch; the first database-level or visit error aborts and
// is returned (including context cancellation).
func ForEachCall(
	ctx context.Context,
	cfg Config,
	caller *recombination.Caller,
	profiles []*query.Profile,
	visit func(recombination.Call) error,
) error {
	threads := cfg.Threads
	if threads < 1 {
		threads = runtime.NumCPU()
	}

	type outcome struct {
		call recombination.Call
		err  error
	}
	jobs := make(chan *query.Profile, threads*2)
	results := make(chan outcome, threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case q, ok := <-jobs:
					if !ok {
						return
					}
					call, err := caller.Call(q)
					select {
					case results <- outcome{call: call, err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for out := range results {
			if cerr != nil {
				continue
			}
			if out.err != nil {
				cerr = out.err
				continue
			}
			if err := visit(out.call); err != nil && cerr == nil {
				cerr = err
			}
		}
	}()

	// Feed work
feed:
	for _, q := range profiles {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- q:
		}
	}
	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if cerr != nil {
		return cerr
	}
	return ctx.Err()
}

// RunBatch collects every call and returns them ordered by sample id, the
// stable view downstream writers want for byte-identical reruns.
func RunBatch(
	ctx context.Context,
	cfg Config,
	caller *recombination.Caller,
	profiles []*query.Profile,
) ([]recombination.Call, error) {
	// visit runs on the single collector goroutine, so a plain append is safe.
	var calls []recombination.Call
	err := ForEachCall(ctx, cfg, caller, profiles, func(call recombination.Call) error {
		calls = append(calls, call)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(calls, func(i, j int) bool { return calls[i].SampleID < calls[j].SampleID })
	return calls, nil
}
