package synonym

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/ncosearch/internal/domain/text"
)

// MaxTermLength bounds both the anchor and the alternate phrase.
const MaxTermLength = 256

// Entry maps an anchor term to one alternate phrase (immutable value object).
type Entry struct {
	id           string
	anchor       string
	term         string
	createdAt    int64
	anchorTokens []string
	termTokens   []string
}

// New validates and creates an Entry. Anchor and term are trimmed; blank values are rejected.
func New(id, anchor, term string, createdAt int64) (Entry, error) {
	if id == "" {
		return Entry{}, fmt.Errorf("synonym ID is required")
	}
	anchor = strings.TrimSpace(anchor)
	term = strings.TrimSpace(term)
	if anchor == "" {
		return Entry{}, fmt.Errorf(`"for" is required`)
	}
	if term == "" {
		return Entry{}, fmt.Errorf(`"term" is required`)
	}
	if len(anchor) > MaxTermLength || len(term) > MaxTermLength {
		return Entry{}, fmt.Errorf("synonym too long (max %d)", MaxTermLength)
	}
	return Reconstruct(id, anchor, term, createdAt), nil
}

// Reconstruct creates an Entry without validation (storage hydration).
func Reconstruct(id, anchor, term string, createdAt int64) Entry {
	return Entry{
		id:           id,
		anchor:       anchor,
		term:         term,
		createdAt:    createdAt,
		anchorTokens: text.Tokenize(anchor),
		termTokens:   text.Tokenize(term),
	}
}

// ID returns the entry identifier.
func (e *Entry) ID() string { return e.id }

// For returns the anchor term as entered.
func (e *Entry) For() string { return e.anchor }

// Term returns the alternate phrase as entered.
func (e *Entry) Term() string { return e.term }

// CreatedAt returns the creation time in unix milliseconds.
func (e *Entry) CreatedAt() int64 { return e.createdAt }

// AnchorTokens returns the normalized anchor tokens.
func (e *Entry) AnchorTokens() []string { return e.anchorTokens }

// TermTokens returns the normalized alternate-phrase tokens.
func (e *Entry) TermTokens() []string { return e.termTokens }
