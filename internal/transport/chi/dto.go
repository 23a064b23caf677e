package chi

import (
	"time"

	domaudit "github.com/kailas-cloud/ncosearch/internal/domain/audit"
	"github.com/kailas-cloud/ncosearch/internal/domain/search/result"
	domsyn "github.com/kailas-cloud/ncosearch/internal/domain/synonym"
	healthuc "github.com/kailas-cloud/ncosearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/ncosearch/internal/usecase/search"
)

type errorResponse struct {
	Error string `json:"error"`
}

type countResponse struct {
	Count int `json:"count"`
}

type searchResultItem struct {
	Code        string  `json:"code"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Path        string  `json:"path"`
	Confidence  float64 `json:"confidence"`
}

type searchResponse struct {
	Message  string             `json:"message"`
	Expanded string             `json:"expanded"`
	Results  []searchResultItem `json:"results"`
}

type synonymItem struct {
	ID        string    `json:"id"`
	For       string    `json:"for"`
	Term      string    `json:"term"`
	CreatedAt time.Time `json:"created_at"`
}

type synonymListResponse struct {
	Synonyms []synonymItem `json:"synonyms"`
}

type addSynonymRequest struct {
	For  string `json:"for"`
	Term string `json:"term"`
}

type addSynonymResponse struct {
	ID string `json:"id"`
}

type auditHitItem struct {
	Code       string  `json:"code"`
	Title      string  `json:"title"`
	Confidence float64 `json:"confidence"`
}

type auditItem struct {
	ID       string         `json:"id"`
	At       time.Time      `json:"at"`
	Query    string         `json:"q"`
	Expanded string         `json:"expanded"`
	TopK     int            `json:"top_k"`
	Results  []auditHitItem `json:"results"`
}

type auditListResponse struct {
	Audit []auditItem `json:"audit"`
}

type pingResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

type healthResponse struct {
	Status          string            `json:"status"`
	Checks          map[string]string `json:"checks"`
	IndexGeneration uint64            `json:"index_generation,omitempty"`
	IndexRecords    int               `json:"index_records,omitempty"`
}

func searchResponseToDTO(resp *searchuc.Response) searchResponse {
	items := make([]searchResultItem, len(resp.Results))
	for i := range resp.Results {
		items[i] = searchResultToDTO(&resp.Results[i])
	}
	return searchResponse{Message: resp.Message, Expanded: resp.Expanded, Results: items}
}

func searchResultToDTO(r *result.Result) searchResultItem {
	return searchResultItem{
		Code:        r.Code(),
		Title:       r.Title(),
		Description: r.Description(),
		Path:        r.Path(),
		Confidence:  r.Confidence(),
	}
}

func synonymToDTO(e *domsyn.Entry) synonymItem {
	return synonymItem{
		ID:        e.ID(),
		For:       e.For(),
		Term:      e.Term(),
		CreatedAt: time.UnixMilli(e.CreatedAt()).UTC(),
	}
}

func auditToDTO(e *domaudit.Entry) auditItem {
	hits := make([]auditHitItem, len(e.Hits()))
	for i, h := range e.Hits() {
		hits[i] = auditHitItem{Code: h.Code, Title: h.Title, Confidence: h.Confidence}
	}
	return auditItem{
		ID:       e.ID(),
		At:       time.UnixMilli(e.At()).UTC(),
		Query:    e.Query(),
		Expanded: e.Expanded(),
		TopK:     e.TopK(),
		Results:  hits,
	}
}

func healthToDTO(r *healthuc.Report) healthResponse {
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return healthResponse{
		Status:          string(r.Status),
		Checks:          checks,
		IndexGeneration: r.Generation,
		IndexRecords:    r.Records,
	}
}
