package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ncosearch/internal/domain"
	"github.com/kailas-cloud/ncosearch/internal/domain/vocabulary"
	"github.com/kailas-cloud/ncosearch/internal/metrics"
)

// Source is one uploaded vocabulary file.
type Source struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Service parses vocabulary sources and commits them to the Record Store.
type Service struct {
	repo   Repository
	logger *zap.Logger
	mu     sync.Mutex
}

// New creates an ingest service.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Ingest parses src and replaces the whole Record Store with its records.
// Any decoding or row problem fails with a *domain.ValidationError and
// leaves the store untouched. The index is not rebuilt.
func (s *Service) Ingest(ctx context.Context, src Source) (int, error) {
	start := time.Now()

	format, err := DetectFormat(src.Name, src.ContentType)
	if err != nil {
		return 0, domain.NewValidationError(0, "", err.Error())
	}

	table, err := format.Decode(src.Body)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return 0, err
		}
		return 0, domain.NewValidationError(0, "", "unreadable file: "+err.Error())
	}

	records, err := Parse(table)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Replace(ctx, records); err != nil {
		return 0, fmt.Errorf("commit records: %w", err)
	}

	metrics.IngestRecordsTotal.Add(float64(len(records)))
	s.logger.Info("Vocabulary ingested",
		zap.String("file", src.Name),
		zap.String("format", string(format)),
		zap.Int("records", len(records)),
		zap.Duration("duration", time.Since(start)),
	)
	return len(records), nil
}

// Parse validates a decoded table and builds records through vocabulary.FromRow.
func Parse(table Table) ([]vocabulary.Record, error) {
	for _, col := range vocabulary.RequiredColumns {
		if !table.HasColumn(col) {
			return nil, domain.NewValidationError(0, col, "required column missing")
		}
	}
	if len(table.Rows) == 0 {
		return nil, domain.NewValidationError(0, "", "no data rows")
	}

	records := make([]vocabulary.Record, 0, len(table.Rows))
	seen := make(map[string]int, len(table.Rows))
	for i, row := range table.Rows {
		n := i + 1
		for _, col := range vocabulary.RequiredColumns {
			if strings.TrimSpace(row[col]) == "" {
				return nil, domain.NewValidationError(n, col, "value is blank")
			}
		}
		rec, err := vocabulary.FromRow(row)
		if err != nil {
			return nil, domain.NewValidationError(n, "", err.Error())
		}
		if first, dup := seen[rec.Code()]; dup {
			return nil, domain.NewValidationError(n, vocabulary.ColumnCode,
				fmt.Sprintf("duplicate code %q (first seen in row %d)", rec.Code(), first))
		}
		seen[rec.Code()] = n
		records = append(records, rec)
	}
	return records, nil
}
