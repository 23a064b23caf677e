package result

// Result is a single ranked vocabulary hit.
type Result struct {
	code        string
	title       string
	description string
	path        string
	confidence  float64
}

// New creates a search result.
func New(code, title, description, path string, confidence float64) Result {
	return Result{
		code: code, title: title, description: description,
		path: path, confidence: confidence,
	}
}

// Code returns the NCO code.
func (r *Result) Code() string { return r.code }

// Title returns the occupation title.
func (r *Result) Title() string { return r.title }

// Description returns the occupation description.
func (r *Result) Description() string { return r.description }

// Path returns the hierarchical classification path.
func (r *Result) Path() string { return r.path }

// Confidence returns the match confidence in [0,1].
func (r *Result) Confidence() float64 { return r.confidence }
