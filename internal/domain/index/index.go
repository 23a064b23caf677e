package index

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/ncosearch/internal/domain/vocabulary"
)

// Posting is one (code, weight) pair under a token. Weight is the token's
// term frequency within the record divided by the record's term count.
type Posting struct {
	Code   string  `json:"code"`
	Weight float64 `json:"weight"`
}

// Index is an immutable inverted index over one Record Store snapshot.
// Postings under every token are sorted by code.
type Index struct {
	postings map[string][]Posting
	records  map[string]vocabulary.Record
	codes    []string // sorted
	tokens   []string // sorted
}

// Empty returns an index with no records.
func Empty() *Index {
	return &Index{
		postings: map[string][]Posting{},
		records:  map[string]vocabulary.Record{},
	}
}

// Postings returns the postings for a normalized token (nil when absent).
// The returned slice must not be modified.
func (ix *Index) Postings(token string) []Posting {
	return ix.postings[token]
}

// Record returns the snapshot record with the given code.
func (ix *Index) Record(code string) (vocabulary.Record, bool) {
	r, ok := ix.records[code]
	return r, ok
}

// Len returns the number of indexed records.
func (ix *Index) Len() int { return len(ix.codes) }

// TokenCount returns the number of distinct indexed tokens.
func (ix *Index) TokenCount() int { return len(ix.tokens) }

// IsEmpty reports whether the index holds no records.
func (ix *Index) IsEmpty() bool { return len(ix.codes) == 0 }

type encodedRecord struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
}

type encodedToken struct {
	Token    string    `json:"token"`
	Postings []Posting `json:"postings"`
}

type encodedIndex struct {
	Records []encodedRecord `json:"records"`
	Tokens  []encodedToken  `json:"tokens"`
}

// MarshalBinary returns the canonical encoding of the index. Identical
// record snapshots always produce identical bytes.
func (ix *Index) MarshalBinary() ([]byte, error) {
	enc := encodedIndex{
		Records: make([]encodedRecord, 0, len(ix.codes)),
		Tokens:  make([]encodedToken, 0, len(ix.tokens)),
	}
	for _, code := range ix.codes {
		r := ix.records[code]
		enc.Records = append(enc.Records, encodedRecord{
			Code: r.Code(), Title: r.Title(), Description: r.Description(), Path: r.Path(),
		})
	}
	for _, tok := range ix.tokens {
		enc.Tokens = append(enc.Tokens, encodedToken{Token: tok, Postings: ix.postings[tok]})
	}
	data, err := json.Marshal(enc)
	if err != nil {
		return nil, fmt.Errorf("encode index: %w", err)
	}
	return data, nil
}

// Digest returns the hex SHA-256 of the canonical encoding.
func (ix *Index) Digest() (string, error) {
	data, err := ix.MarshalBinary()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
