package synonym

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ncosearch/internal/domain"
	domsyn "github.com/kailas-cloud/ncosearch/internal/domain/synonym"
)

// Service manages administrator-curated synonyms.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// New creates a synonym service.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// Add stores a new anchor -> term mapping. Duplicates are kept as separate entries.
func (s *Service) Add(ctx context.Context, anchor, term string) (domsyn.Entry, error) {
	e, err := domsyn.New(s.newID(), anchor, term, s.now().UnixMilli())
	if err != nil {
		return domsyn.Entry{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	if err := s.repo.Add(ctx, &e); err != nil {
		return domsyn.Entry{}, fmt.Errorf("add synonym: %w", err)
	}
	s.logger.Info("Synonym added",
		zap.String("id", e.ID()),
		zap.String("for", e.For()),
		zap.String("term", e.Term()),
	)
	return e, nil
}

// List returns every entry in creation order.
func (s *Service) List(ctx context.Context) ([]domsyn.Entry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list synonyms: %w", err)
	}
	return entries, nil
}

// Delete removes an entry. Deleting an unknown id succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.InvalidRequestf("id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete synonym: %w", err)
	}
	s.logger.Info("Synonym deleted", zap.String("id", id))
	return nil
}
