package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ncosearch/internal/domain"
	logpkg "github.com/kailas-cloud/ncosearch/internal/logger"
	"github.com/kailas-cloud/ncosearch/internal/metrics"
	audituc "github.com/kailas-cloud/ncosearch/internal/usecase/audit"
	healthuc "github.com/kailas-cloud/ncosearch/internal/usecase/health"
	indexuc "github.com/kailas-cloud/ncosearch/internal/usecase/index"
	ingestuc "github.com/kailas-cloud/ncosearch/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/ncosearch/internal/usecase/search"
	synonymuc "github.com/kailas-cloud/ncosearch/internal/usecase/synonym"
)

const (
	// DefaultMaxUploadBytes bounds an ingest upload.
	DefaultMaxUploadBytes int64 = 10 << 20

	multipartMemory      = 1 << 20
	internalErrorMessage = "internal error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the NCO search core over HTTP.
type Server struct {
	ingest         *ingestuc.Service
	index          *indexuc.Service
	search         *searchuc.Service
	synonyms       *synonymuc.Service
	audit          *audituc.Service
	health         *healthuc.Service
	logger         *zap.Logger
	maxUploadBytes int64
	now            func() time.Time
	errorHandlers  []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	ingest *ingestuc.Service,
	index *indexuc.Service,
	search *searchuc.Service,
	synonyms *synonymuc.Service,
	audit *audituc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		ingest:         ingest,
		index:          index,
		search:         search,
		synonyms:       synonyms,
		audit:          audit,
		health:         health,
		logger:         logger,
		maxUploadBytes: DefaultMaxUploadBytes,
		now:            time.Now,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest),
		sentinelHandler(domain.ErrEmptyVocabulary, http.StatusBadRequest),
	}
	return s
}

// WithMaxUploadBytes sets the ingest upload limit.
func (s *Server) WithMaxUploadBytes(n int64) *Server {
	if n > 0 {
		s.maxUploadBytes = n
	}
	return s
}

// Routes builds the chi router with the full middleware stack.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(Recoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestEventMiddleware(s.logger))
	r.Use(metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/api/ping", s.Ping)

	r.Route("/api/nco", func(r chi.Router) {
		r.Post("/ingest", s.Ingest)
		r.Post("/build_index", s.BuildIndex)
		r.Get("/search", s.Search)
		r.Get("/synonyms", s.ListSynonyms)
		r.Post("/synonyms", s.AddSynonym)
		r.Delete("/synonyms", s.DeleteSynonym)
		r.Delete("/synonyms/{id}", s.DeleteSynonym)
		r.Get("/audit", s.ListAudit)
	})
	return r
}

// Ingest handles POST /api/nco/ingest (multipart field "file").
func (s *Server) Ingest(w http.ResponseWriter, r *http.Request) {
	tooLarge := fmt.Sprintf("file exceeds upload limit of %d bytes", s.maxUploadBytes)
	if r.ContentLength > s.maxUploadBytes {
		writeError(w, http.StatusBadRequest, tooLarge)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusBadRequest, tooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, `multipart form with a "file" field is required`)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, `"file" is required`)
		return
	}
	defer func() { _ = f.Close() }()

	annotate(r, zap.String("file", hdr.Filename), zap.Int64("file_bytes", hdr.Size))
	n, err := s.ingest.Ingest(r.Context(), ingestuc.Source{
		Name:        hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Body:        f,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	annotate(r, zap.Int("records", n))
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// BuildIndex handles POST /api/nco/build_index.
func (s *Server) BuildIndex(w http.ResponseWriter, r *http.Request) {
	n, err := s.index.Build(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	annotate(r, zap.Int("records", n))
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// Search handles GET /api/nco/search?q=&top_k=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	annotate(r, zap.String("q", q.Get("q")), zap.String("top_k", q.Get("top_k")))

	topK := s.search.DefaultTopK()
	if raw := strings.TrimSpace(q.Get("top_k")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			metrics.SearchesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
			s.handleDomainError(w, r, domain.InvalidRequestf("top_k must be an integer"))
			return
		}
		topK = n
	}

	resp, err := s.search.Search(r.Context(), q.Get("q"), topK)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	annotate(r, zap.String("expanded", resp.Expanded), zap.Int("results", len(resp.Results)))

	writeJSON(w, http.StatusOK, searchResponseToDTO(&resp))
}

// ListSynonyms handles GET /api/nco/synonyms.
func (s *Server) ListSynonyms(w http.ResponseWriter, r *http.Request) {
	entries, err := s.synonyms.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]synonymItem, len(entries))
	for i := range entries {
		items[i] = synonymToDTO(&entries[i])
	}
	writeJSON(w, http.StatusOK, synonymListResponse{Synonyms: items})
}

// AddSynonym handles POST /api/nco/synonyms.
func (s *Server) AddSynonym(w http.ResponseWriter, r *http.Request) {
	var req addSynonymRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	e, err := s.synonyms.Add(r.Context(), req.For, req.Term)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	annotate(r, zap.String("synonym_id", e.ID()))
	writeJSON(w, http.StatusCreated, addSynonymResponse{ID: e.ID()})
}

// DeleteSynonym handles DELETE /api/nco/synonyms?id= and DELETE /api/nco/synonyms/{id}.
func (s *Server) DeleteSynonym(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		id = r.URL.Query().Get("id")
	}

	if err := s.synonyms.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListAudit handles GET /api/nco/audit?limit=.
func (s *Server) ListAudit(w http.ResponseWriter, r *http.Request) {
	var limit *int
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.handleDomainError(w, r, domain.InvalidRequestf("limit must be a non-negative integer"))
			return
		}
		limit = &n
	}

	entries, err := s.audit.List(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	annotate(r, zap.Int("audit_entries", len(entries)))
	items := make([]auditItem, len(entries))
	for i := range entries {
		items[i] = auditToDTO(&entries[i])
	}
	writeJSON(w, http.StatusOK, auditListResponse{Audit: items})
}

// Ping handles GET /api/ping.
func (s *Server) Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, pingResponse{Status: "ok", Time: s.now().UTC()})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, healthToDTO(&report))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// Matched errors are caller mistakes, so their text is safe to return.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("request rejected", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, internalErrorMessage)
}
