package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	RecordStore
	SynonymStore
	AuditStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RecordRow is the stored form of one vocabulary record.
type RecordRow struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
}

// RecordStore holds the committed vocabulary snapshot.
type RecordStore interface {
	// ReplaceRecords swaps the whole snapshot. Readers observe either the
	// previous rows or all of rows, never a mix.
	ReplaceRecords(ctx context.Context, rows []RecordRow) error
	// Records returns the last committed snapshot in unspecified order.
	Records(ctx context.Context) ([]RecordRow, error)
}

// SynonymRow is the stored form of one synonym entry.
// Seq is assigned by the store and orders rows by creation.
type SynonymRow struct {
	ID        string `json:"id"`
	For       string `json:"for"`
	Term      string `json:"term"`
	CreatedAt int64  `json:"created_at"`
	Seq       int64  `json:"seq"`
}

// SynonymStore manages synonym entries.
type SynonymStore interface {
	AddSynonym(ctx context.Context, row SynonymRow) (SynonymRow, error)
	// Synonyms returns all rows ordered by Seq.
	Synonyms(ctx context.Context) ([]SynonymRow, error)
	// DeleteSynonym removes a row; a missing id is not an error.
	DeleteSynonym(ctx context.Context, id string) error
}

// AuditResultRow is one returned hit inside an audit row.
type AuditResultRow struct {
	Code       string  `json:"code"`
	Title      string  `json:"title"`
	Confidence float64 `json:"confidence"`
}

// AuditRow is the stored form of one audit entry.
type AuditRow struct {
	ID       string           `json:"id"`
	At       int64            `json:"at"`
	Query    string           `json:"q"`
	Expanded string           `json:"expanded"`
	TopK     int              `json:"top_k"`
	Results  []AuditResultRow `json:"results"`
}

// AuditStore is the append-only audit trail.
type AuditStore interface {
	AppendAudit(ctx context.Context, row AuditRow) error
	// AuditEntries returns the newest limit rows in insertion order.
	// limit <= 0 returns every row.
	AuditEntries(ctx context.Context, limit int) ([]AuditRow, error)
}
