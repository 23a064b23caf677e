package index

import (
	"context"

	"github.com/kailas-cloud/ncosearch/internal/domain/vocabulary"
)

// RecordReader reads the last committed vocabulary snapshot.
type RecordReader interface {
	List(ctx context.Context) ([]vocabulary.Record, error)
}
