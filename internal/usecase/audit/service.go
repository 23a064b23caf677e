package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	domaudit "github.com/kailas-cloud/ncosearch/internal/domain/audit"
	"github.com/kailas-cloud/ncosearch/internal/domain/search/result"
	"github.com/kailas-cloud/ncosearch/internal/metrics"
)

// DefaultListLimit bounds List when the caller passes no limit.
const DefaultListLimit = 200

// Service records completed searches and lists them back.
type Service struct {
	repo         Repository
	defaultLimit int
	mu           sync.Mutex
	now          func() time.Time
	newID        func() string
}

// New creates an audit service. defaultLimit <= 0 selects DefaultListLimit.
func New(repo Repository, defaultLimit int) *Service {
	if defaultLimit <= 0 {
		defaultLimit = DefaultListLimit
	}
	return &Service{
		repo:         repo,
		defaultLimit: defaultLimit,
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
	}
}

// Record appends one entry for a completed search. Appends are serialized
// so entries land in completion order.
func (s *Service) Record(
	ctx context.Context, query, expanded string, topK int, results []result.Result,
) (domaudit.Entry, error) {
	hits := make([]domaudit.Hit, len(results))
	for i := range results {
		hits[i] = domaudit.Hit{
			Code:       results[i].Code(),
			Title:      results[i].Title(),
			Confidence: results[i].Confidence(),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := domaudit.New(s.newID(), s.now().UnixMilli(), query, expanded, topK, hits)
	if err := s.repo.Append(ctx, &e); err != nil {
		return domaudit.Entry{}, fmt.Errorf("record audit: %w", err)
	}
	metrics.AuditEntriesTotal.Inc()
	return e, nil
}

// List returns the newest entries in chronological order. A nil limit uses the
// default; zero returns everything.
func (s *Service) List(ctx context.Context, limit *int) ([]domaudit.Entry, error) {
	n := s.defaultLimit
	if limit != nil {
		n = *limit
	}
	entries, err := s.repo.List(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	return entries, nil
}
