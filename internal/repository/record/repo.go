package record

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/ncosearch/internal/db"
	"github.com/kailas-cloud/ncosearch/internal/domain/vocabulary"
)

// store is the consumer interface for vocabulary records (ISP).
type store interface {
	ReplaceRecords(ctx context.Context, rows []db.RecordRow) error
	Records(ctx context.Context) ([]db.RecordRow, error)
}

// Repo implements usecase/ingest.Repository and usecase/index.Repository.
type Repo struct {
	store store
}

// New creates a record repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Replace commits records as the new snapshot.
func (r *Repo) Replace(ctx context.Context, records []vocabulary.Record) error {
	rows := make([]db.RecordRow, len(records))
	for i := range records {
		rows[i] = toRow(&records[i])
	}
	if err := r.store.ReplaceRecords(ctx, rows); err != nil {
		return fmt.Errorf("replace %d records: %w", len(rows), err)
	}
	return nil
}

// List returns the last committed snapshot.
func (r *Repo) List(ctx context.Context) ([]vocabulary.Record, error) {
	rows, err := r.store.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	out := make([]vocabulary.Record, len(rows))
	for i, row := range rows {
		out[i] = fromRow(row)
	}
	return out, nil
}
