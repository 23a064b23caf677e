package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckEmpty indicates no index has been built yet. It does not degrade the service.
	CheckEmpty CheckResult = "empty"
)

// Report aggregates health check results.
type Report struct {
	Status     Status
	Checks     map[string]CheckResult
	Generation uint64
	Records    int
}

// Service coordinates health checks.
type Service struct {
	db    DBPinger
	index IndexReader
}

// New creates a Service. index can be nil.
func New(db DBPinger, index IndexReader) *Service {
	return &Service{db: db, index: index}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	r := Report{Status: Healthy, Checks: checks}

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		r.Status = Degraded
	} else {
		checks["database"] = CheckOK
	}

	if s.index != nil {
		snap := s.index.Load()
		if snap == nil || snap.Index.IsEmpty() {
			checks["index"] = CheckEmpty
		} else {
			checks["index"] = CheckOK
			r.Generation = snap.Generation
			r.Records = snap.Index.Len()
		}
	}

	return r
}
