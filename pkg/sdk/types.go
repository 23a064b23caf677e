package ncosearch

import "time"

// Result is one ranked vocabulary hit.
type Result struct {
	Code        string
	Title       string
	Description string
	Path        string
	Confidence  float64 // in [0,1]
}

// SearchResponse is the outcome of a search.
type SearchResponse struct {
	Message  string
	Expanded string // expanded query as recorded in the audit trail
	Results  []Result
}

// Synonym maps an anchor term to an alternate phrase.
type Synonym struct {
	ID        string
	For       string
	Term      string
	CreatedAt time.Time
}

// AuditHit is a returned result as captured in the audit trail.
type AuditHit struct {
	Code       string
	Title      string
	Confidence float64
}

// AuditEntry records one completed search.
type AuditEntry struct {
	ID       string
	At       time.Time
	Query    string
	Expanded string
	TopK     int
	Results  []AuditHit
}
