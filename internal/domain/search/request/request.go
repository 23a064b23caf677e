package request

import (
	"fmt"
	"strings"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultTopK    = 5
	MaxTopK        = 50
)

// Request is a validated search query.
type Request struct {
	query string
	topK  int
}

// New validates search parameters. A blank query or a non-positive topK is
// rejected; topK above maxTopK is clipped. maxTopK <= 0 selects MaxTopK.
func New(query string, topK, maxTopK int) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if topK <= 0 {
		return Request{}, fmt.Errorf("top_k must be a positive integer")
	}
	if maxTopK <= 0 {
		maxTopK = MaxTopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}

	return Request{query: query, topK: topK}, nil
}

// Query returns the raw query text as submitted.
func (r *Request) Query() string { return r.query }

// TopK returns the effective result bound.
func (r *Request) TopK() int { return r.topK }
