package ncosearch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/ncosearch/internal/domain"
	"github.com/kailas-cloud/ncosearch/internal/metrics"
)

// Operation names used as metric labels and log fields.
const (
	opPing          = "ping"
	opIngest        = "ingest"
	opBuildIndex    = "build_index"
	opSearch        = "search"
	opAddSynonym    = "add_synonym"
	opListSynonyms  = "list_synonyms"
	opDeleteSynonym = "delete_synonym"
	opAudit         = "audit"
)

// Call status label values.
const (
	statusOK       = "ok"
	statusRejected = "rejected"
	statusError    = "error"
)

// Vocabulary stage label values.
const (
	stageIngested = "ingested"
	stageIndexed  = "indexed"
)

// sdkMetrics mirrors the server's domain metrics under the sdk subsystem.
type sdkMetrics struct {
	calls         *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	searchResults *prometheus.HistogramVec
	vocabulary    *prometheus.GaugeVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	const ns, sub = metrics.Namespace, "sdk"

	m := &sdkMetrics{}
	var err error
	if m.calls, err = adopt(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns, Subsystem: sub,
		Name: "operations_total",
		Help: "SDK calls by operation and status (ok, rejected, error).",
	}, []string{"operation", "status"})); err != nil {
		return nil, err
	}
	if m.latency, err = adopt(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns, Subsystem: sub,
		Name:    "operation_duration_seconds",
		Help:    "SDK call latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"operation"})); err != nil {
		return nil, err
	}
	if m.searchResults, err = adopt(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns, Subsystem: sub,
		Name:    "search_results",
		Help:    "Results returned per search by outcome.",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	if m.vocabulary, err = adopt(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: ns, Subsystem: sub,
		Name: "vocabulary_records",
		Help: "Records in the last committed ingest and in the active index.",
	}, []string{"stage"})); err != nil {
		return nil, err
	}
	return m, nil
}

// adopt registers c, or returns the collector already registered under the
// same descriptor so several clients can share one registry.
func adopt[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return c, fmt.Errorf("ncosearch: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return c, fmt.Errorf("ncosearch: metric registered as %T", are.ExistingCollector)
	}
	return existing, nil
}

// observer reports SDK calls to an optional slog logger and prometheus registry.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

// call is one in-flight SDK operation. Methods fill in the domain counts
// before end reports it.
type call struct {
	obs   *observer
	op    string
	start time.Time

	records  int // ingest, build_index
	results  int // search
	expanded string
}

func (o *observer) begin(op string) *call {
	return &call{obs: o, op: op, start: time.Now()}
}

func (c *call) end(err error) {
	if c.obs == nil {
		return
	}
	dur := time.Since(c.start)
	status := callStatus(err)

	if m := c.obs.metrics; m != nil {
		m.calls.WithLabelValues(c.op, status).Inc()
		m.latency.WithLabelValues(c.op).Observe(dur.Seconds())

		switch c.op {
		case opSearch:
			outcome := searchOutcome(status, c.results)
			m.searchResults.WithLabelValues(outcome).Observe(float64(c.results))
		case opIngest:
			if err == nil {
				m.vocabulary.WithLabelValues(stageIngested).Set(float64(c.records))
			}
		case opBuildIndex:
			if err == nil {
				m.vocabulary.WithLabelValues(stageIndexed).Set(float64(c.records))
			}
		}
	}

	if c.obs.logger == nil {
		return
	}
	attrs := []any{"op", c.op, "status", status, "duration", dur}
	switch c.op {
	case opSearch:
		attrs = append(attrs, "results", c.results, "expanded", c.expanded)
	case opIngest, opBuildIndex:
		attrs = append(attrs, "records", c.records)
	}
	switch status {
	case statusOK:
		c.obs.logger.Debug("operation completed", attrs...)
	case statusRejected:
		c.obs.logger.Info("operation rejected", append(attrs, "error", err)...)
	default:
		c.obs.logger.Warn("operation failed", append(attrs, "error", err)...)
	}
}

// callStatus separates caller mistakes from store or internal failures.
func callStatus(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyVocabulary):
		return statusRejected
	default:
		return statusError
	}
}

func searchOutcome(status string, results int) string {
	switch status {
	case statusRejected:
		return metrics.OutcomeRejected
	case statusError:
		return metrics.OutcomeError
	}
	if results == 0 {
		return metrics.OutcomeEmpty
	}
	return metrics.OutcomeHit
}
