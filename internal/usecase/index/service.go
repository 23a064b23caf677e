package index

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ncosearch/internal/domain"
	domidx "github.com/kailas-cloud/ncosearch/internal/domain/index"
	"github.com/kailas-cloud/ncosearch/internal/metrics"
)

// Service rebuilds the inverted index from the Record Store and publishes it.
type Service struct {
	records RecordReader
	active  *domidx.Active
	workers int
	logger  *zap.Logger
	mu      sync.Mutex
	now     func() time.Time
}

// New creates an index service publishing into active.
func New(records RecordReader, active *domidx.Active, workers int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		records: records,
		active:  active,
		workers: workers,
		logger:  logger,
		now:     time.Now,
	}
}

// Build compiles the committed snapshot and swaps it in. Builds are
// serialized; on any failure the previously active index stays published.
func (s *Service) Build(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.now()

	recs, err := s.records.List(ctx)
	if err != nil {
		metrics.IndexBuildsTotal.WithLabelValues(metrics.StatusError).Inc()
		return 0, fmt.Errorf("read records: %w", err)
	}
	if len(recs) == 0 {
		metrics.IndexBuildsTotal.WithLabelValues(metrics.StatusError).Inc()
		return 0, domain.ErrEmptyVocabulary
	}

	ix, err := domidx.Build(ctx, recs, s.workers)
	if err != nil {
		metrics.IndexBuildsTotal.WithLabelValues(metrics.StatusError).Inc()
		s.logger.Error("Index build failed", zap.Int("records", len(recs)), zap.Error(err))
		return 0, fmt.Errorf("build index: %w", err)
	}

	snap := s.active.Swap(ix, s.now())
	duration := s.now().Sub(start)

	metrics.IndexBuildsTotal.WithLabelValues(metrics.StatusOK).Inc()
	metrics.IndexBuildDuration.Observe(duration.Seconds())
	metrics.IndexRecords.Set(float64(ix.Len()))
	metrics.IndexTokens.Set(float64(ix.TokenCount()))

	fields := []zap.Field{
		zap.Uint64("generation", snap.Generation),
		zap.Int("records", ix.Len()),
		zap.Int("tokens", ix.TokenCount()),
		zap.Duration("duration", duration),
	}
	if digest, err := ix.Digest(); err == nil {
		fields = append(fields, zap.String("digest", digest))
	}
	s.logger.Info("Index swapped", fields...)

	return ix.Len(), nil
}

// Current returns the published snapshot.
func (s *Service) Current() *domidx.Snapshot {
	return s.active.Load()
}
