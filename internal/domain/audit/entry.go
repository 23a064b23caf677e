package audit

// Hit is one returned result as captured in the audit trail.
type Hit struct {
	Code       string
	Title      string
	Confidence float64
}

// Entry is the immutable record of one completed search.
type Entry struct {
	id       string
	at       int64
	query    string
	expanded string
	topK     int
	hits     []Hit
}

// New creates an Entry. The hits slice is copied.
func New(id string, at int64, query, expanded string, topK int, hits []Hit) Entry {
	var cp []Hit
	if len(hits) > 0 {
		cp = make([]Hit, len(hits))
		copy(cp, hits)
	}
	return Entry{id: id, at: at, query: query, expanded: expanded, topK: topK, hits: cp}
}

// ID returns the entry identifier.
func (e *Entry) ID() string { return e.id }

// At returns the completion time in unix milliseconds.
func (e *Entry) At() int64 { return e.at }

// Query returns the raw query as submitted.
func (e *Entry) Query() string { return e.query }

// Expanded returns the expansion display string.
func (e *Entry) Expanded() string { return e.expanded }

// TopK returns the effective result bound of the search.
func (e *Entry) TopK() int { return e.topK }

// Hits returns the returned results in rank order.
func (e *Entry) Hits() []Hit { return e.hits }
