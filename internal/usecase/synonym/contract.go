package synonym

import (
	"context"

	domsyn "github.com/kailas-cloud/ncosearch/internal/domain/synonym"
)

// Repository persists synonym entries.
type Repository interface {
	Add(ctx context.Context, e *domsyn.Entry) error
	List(ctx context.Context) ([]domsyn.Entry, error)
	Delete(ctx context.Context, id string) error
}
