package health

import (
	"context"

	domidx "github.com/kailas-cloud/ncosearch/internal/domain/index"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexReader exposes the published index snapshot.
type IndexReader interface {
	Load() *domidx.Snapshot
}
