package search

import (
	"context"

	domaudit "github.com/kailas-cloud/ncosearch/internal/domain/audit"
	"github.com/kailas-cloud/ncosearch/internal/domain/search/result"
	domsyn "github.com/kailas-cloud/ncosearch/internal/domain/synonym"
)

// SynonymSource reads the current synonym entries.
type SynonymSource interface {
	List(ctx context.Context) ([]domsyn.Entry, error)
}

// AuditRecorder appends one entry per completed search.
type AuditRecorder interface {
	Record(
		ctx context.Context, query, expanded string, topK int, results []result.Result,
	) (domaudit.Entry, error)
}
