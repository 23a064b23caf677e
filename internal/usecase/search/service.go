package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ncosearch/internal/domain"
	"github.com/kailas-cloud/ncosearch/internal/domain/expansion"
	domidx "github.com/kailas-cloud/ncosearch/internal/domain/index"
	"github.com/kailas-cloud/ncosearch/internal/domain/search/rank"
	"github.com/kailas-cloud/ncosearch/internal/domain/search/request"
	"github.com/kailas-cloud/ncosearch/internal/domain/search/result"
	"github.com/kailas-cloud/ncosearch/internal/metrics"
)

// MessageNoResults is returned when nothing in the index matches.
const MessageNoResults = "No results"

// Config tunes request bounds and scoring.
type Config struct {
	DefaultTopK   int
	MaxTopK       int
	Scoring       rank.Scoring
	Bidirectional bool
}

// DefaultConfig returns the stock search configuration.
func DefaultConfig() Config {
	return Config{
		DefaultTopK:   request.DefaultTopK,
		MaxTopK:       request.MaxTopK,
		Scoring:       rank.DefaultScoring(),
		Bidirectional: true,
	}
}

// Response is the outcome of one search.
type Response struct {
	Message  string
	Expanded string
	Results  []result.Result
}

// Service answers free-text queries against the active index.
type Service struct {
	synonyms SynonymSource
	audit    AuditRecorder
	active   *domidx.Active
	cfg      Config
	logger   *zap.Logger
}

// New creates a search service.
func New(synonyms SynonymSource, audit AuditRecorder, active *domidx.Active, cfg Config, logger *zap.Logger) *Service {
	if cfg.DefaultTopK <= 0 {
		cfg.DefaultTopK = request.DefaultTopK
	}
	if cfg.MaxTopK <= 0 {
		cfg.MaxTopK = request.MaxTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{synonyms: synonyms, audit: audit, active: active, cfg: cfg, logger: logger}
}

// DefaultTopK is the bound applied when the caller gives none.
func (s *Service) DefaultTopK() int { return s.cfg.DefaultTopK }

// Search validates the request, expands the query with the current synonyms,
// ranks candidates from the index snapshot current at call time and records
// exactly one audit entry. Rejected requests leave no audit entry.
func (s *Service) Search(ctx context.Context, query string, topK int) (Response, error) {
	req, err := request.New(query, topK, s.cfg.MaxTopK)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return Response{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	snap := s.active.Load()

	entries, err := s.synonyms.List(ctx)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return Response{}, fmt.Errorf("load synonyms: %w", err)
	}

	exp := expansion.New(entries, expansion.WithBidirectional(s.cfg.Bidirectional)).Expand(req.Query())
	results := rank.Rank(snap.Index, exp, req.TopK(), s.cfg.Scoring)

	if _, err := s.audit.Record(ctx, req.Query(), exp.Display(), req.TopK(), results); err != nil {
		s.logger.Error("Audit write failed", zap.String("query", req.Query()), zap.Error(err))
		metrics.SearchesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return Response{}, err
	}

	resp := Response{Message: resultMessage(len(results)), Expanded: exp.Display(), Results: results}
	if len(results) == 0 {
		metrics.SearchesTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
	} else {
		metrics.SearchesTotal.WithLabelValues(metrics.OutcomeHit).Inc()
	}
	metrics.SearchResults.Observe(float64(len(results)))
	return resp, nil
}

func resultMessage(n int) string {
	switch n {
	case 0:
		return MessageNoResults
	case 1:
		return "Found 1 result"
	default:
		return fmt.Sprintf("Found %d results", n)
	}
}
