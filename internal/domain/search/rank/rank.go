// Package rank scores index candidates against an expanded query.
package rank

import (
	"math"
	"sort"

	"github.com/kailas-cloud/ncosearch/internal/domain/expansion"
	"github.com/kailas-cloud/ncosearch/internal/domain/index"
	"github.com/kailas-cloud/ncosearch/internal/domain/search/result"
)

// Scoring defaults.
const (
	DefaultTitleBonus       = 0.2
	DefaultOverlapThreshold = 0.5
)

// Scoring tunes the title-overlap bonus.
//
//	base    = |expanded ∩ record tokens| / |expanded|
//	overlap = |query ∩ title tokens| / |query|
//	score   = clamp(base + TitleBonus*overlap, 0, 1) when overlap >= OverlapThreshold
type Scoring struct {
	TitleBonus       float64
	OverlapThreshold float64
}

// DefaultScoring returns the default bonus settings.
func DefaultScoring() Scoring {
	return Scoring{TitleBonus: DefaultTitleBonus, OverlapThreshold: DefaultOverlapThreshold}
}

// Rank returns at most topK results from ix, ordered by confidence
// descending then code ascending. A nil result means no candidates.
func Rank(ix *index.Index, exp expansion.Expansion, topK int, s Scoring) []result.Result {
	expanded := exp.Tokens()
	if len(expanded) == 0 || ix.IsEmpty() || topK <= 0 {
		return nil
	}

	// Each expanded token is distinct and appears at most once in a posting
	// list, so the count per code is |expanded ∩ record tokens|.
	matched := make(map[string]int)
	for _, tok := range expanded {
		for _, p := range ix.Postings(tok) {
			matched[p.Code]++
		}
	}
	if len(matched) == 0 {
		return nil
	}

	query := exp.Query()
	results := make([]result.Result, 0, len(matched))
	for code, n := range matched {
		rec, ok := ix.Record(code)
		if !ok {
			continue
		}
		conf := float64(n) / float64(len(expanded))
		if ov := overlap(query, rec.TitleTokens()); len(query) > 0 && ov >= s.OverlapThreshold {
			conf += s.TitleBonus * ov
		}
		results = append(results, result.New(
			rec.Code(), rec.Title(), rec.Description(), rec.Path(), clamp(conf),
		))
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Confidence() != results[j].Confidence() {
			return results[i].Confidence() > results[j].Confidence()
		}
		return results[i].Code() < results[j].Code()
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// overlap returns the share of query tokens present in title, which must be
// sorted and distinct (vocabulary.Record.TitleTokens).
func overlap(query, title []string) float64 {
	if len(query) == 0 {
		return 0
	}
	n := 0
	for _, q := range query {
		i := sort.SearchStrings(title, q)
		if i < len(title) && title[i] == q {
			n++
		}
	}
	return float64(n) / float64(len(query))
}

// clamp bounds v to [0,1] and rounds to four decimals.
func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		v = 1
	}
	return math.Round(v*1e4) / 1e4
}
