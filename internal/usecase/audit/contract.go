package audit

import (
	"context"

	domaudit "github.com/kailas-cloud/ncosearch/internal/domain/audit"
)

// Repository is the append-only audit trail.
type Repository interface {
	Append(ctx context.Context, e *domaudit.Entry) error
	List(ctx context.Context, limit int) ([]domaudit.Entry, error)
}
