package audit

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/ncosearch/internal/db"
	domaudit "github.com/kailas-cloud/ncosearch/internal/domain/audit"
)

// store is the consumer interface for the audit trail (ISP).
type store interface {
	AppendAudit(ctx context.Context, row db.AuditRow) error
	AuditEntries(ctx context.Context, limit int) ([]db.AuditRow, error)
}

// Repo implements usecase/audit.Repository.
type Repo struct {
	store store
}

// New creates an audit repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Append persists one entry.
func (r *Repo) Append(ctx context.Context, e *domaudit.Entry) error {
	if err := r.store.AppendAudit(ctx, toRow(e)); err != nil {
		return fmt.Errorf("append audit %s: %w", e.ID(), err)
	}
	return nil
}

// List returns the newest limit entries in chronological order (limit <= 0: all).
func (r *Repo) List(ctx context.Context, limit int) ([]domaudit.Entry, error) {
	rows, err := r.store.AuditEntries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	out := make([]domaudit.Entry, len(rows))
	for i := range rows {
		out[i] = fromRow(&rows[i])
	}
	return out, nil
}
