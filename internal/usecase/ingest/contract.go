package ingest

import (
	"context"

	"github.com/kailas-cloud/ncosearch/internal/domain/vocabulary"
)

// Repository commits a complete vocabulary snapshot.
type Repository interface {
	Replace(ctx context.Context, records []vocabulary.Record) error
}
