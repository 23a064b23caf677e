package index

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/ncosearch/internal/domain/vocabulary"
)

// DefaultWorkers bounds concurrent per-record tokenization.
const DefaultWorkers = 4

// termStats is the per-record term frequency table produced by a worker.
type termStats struct {
	freq  map[string]int
	total int
}

// Build compiles records into a new Index out of place. Records are processed
// in code order, so the result depends only on the snapshot contents.
// Duplicate codes fail the build; nothing is published on error.
func Build(ctx context.Context, records []vocabulary.Record, workers int) (*Index, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	sorted := make([]vocabulary.Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code() < sorted[j].Code() })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Code() == sorted[i-1].Code() {
			return nil, fmt.Errorf("duplicate code %q in snapshot", sorted[i].Code())
		}
	}

	stats := make([]termStats, len(sorted))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range sorted {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("tokenize %s: %w", sorted[i].Code(), err)
			}
			terms := sorted[i].Terms()
			freq := make(map[string]int, len(terms))
			for _, t := range terms {
				freq[t]++
			}
			stats[i] = termStats{freq: freq, total: len(terms)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ix := &Index{
		postings: make(map[string][]Posting),
		records:  make(map[string]vocabulary.Record, len(sorted)),
		codes:    make([]string, 0, len(sorted)),
	}
	for i, r := range sorted {
		code := r.Code()
		ix.records[code] = r
		ix.codes = append(ix.codes, code)

		st := stats[i]
		for tok, n := range st.freq {
			ix.postings[tok] = append(ix.postings[tok], Posting{
				Code:   code,
				Weight: float64(n) / float64(st.total),
			})
		}
	}

	ix.tokens = make([]string, 0, len(ix.postings))
	for tok := range ix.postings {
		ix.tokens = append(ix.tokens, tok)
	}
	sort.Strings(ix.tokens)

	return ix, nil
}
