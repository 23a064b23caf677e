// Package expansion widens a raw query with administrator-curated synonyms.
package expansion

import (
	"strings"

	"github.com/kailas-cloud/ncosearch/internal/domain/synonym"
	"github.com/kailas-cloud/ncosearch/internal/domain/text"
)

// Expansion is the outcome of expanding one raw query.
type Expansion struct {
	query    []string
	expanded []string
}

// Query returns the distinct raw query tokens in encounter order.
func (e *Expansion) Query() []string { return e.query }

// Tokens returns the expanded token set: query tokens first, then synonym
// tokens in encounter order, without duplicates.
func (e *Expansion) Tokens() []string { return e.expanded }

// Display returns the expanded tokens joined by single spaces.
func (e *Expansion) Display() string { return strings.Join(e.expanded, " ") }

// IsEmpty reports whether the query produced no tokens at all.
func (e *Expansion) IsEmpty() bool { return len(e.expanded) == 0 }

// Option configures an Expander.
type Option func(*Expander)

// WithBidirectional also expands a matched term back to its anchor.
func WithBidirectional(enabled bool) Option {
	return func(x *Expander) {
		x.bidirectional = enabled
	}
}

// Expander matches query tokens against a fixed synonym snapshot.
type Expander struct {
	entries       []synonym.Entry
	bidirectional bool
}

// New creates an Expander over entries, which must be in creation order.
func New(entries []synonym.Entry, opts ...Option) *Expander {
	x := &Expander{entries: entries}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Expand tokenizes raw and unions in the tokens of every synonym whose anchor
// matches. An anchor matches when its tokens occur as a contiguous run of
// query tokens; normalization makes the match case-insensitive.
func (x *Expander) Expand(raw string) Expansion {
	tokens := text.Tokenize(raw)
	query := text.Unique(tokens)

	out := make([]string, 0, len(query))
	out = append(out, query...)
	seen := make(map[string]struct{}, len(query))
	for _, t := range query {
		seen[t] = struct{}{}
	}
	add := func(ts []string) {
		for _, t := range ts {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}

	for i := range tokens {
		for j := range x.entries {
			e := &x.entries[j]
			if hasPrefix(tokens[i:], e.AnchorTokens()) {
				add(e.TermTokens())
			}
			if x.bidirectional && hasPrefix(tokens[i:], e.TermTokens()) {
				add(e.AnchorTokens())
			}
		}
	}

	if len(out) == 0 {
		out = nil
	}
	return Expansion{query: query, expanded: out}
}

func hasPrefix(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
	for i, p := range phrase {
		if tokens[i] != p {
			return false
		}
	}
	return true
}
