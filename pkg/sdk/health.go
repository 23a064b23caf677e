package ncosearch

import (
	"context"

	healthuc "github.com/kailas-cloud/ncosearch/internal/usecase/health"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status          string            // "ok" or "degraded"
	Checks          map[string]string // component → "ok"/"error"/"empty"
	IndexGeneration uint64
	IndexRecords    int
}

// Health checks the store and reports whether an index is published.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:          string(report.Status),
		Checks:          checks,
		IndexGeneration: report.Generation,
		IndexRecords:    report.Records,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
