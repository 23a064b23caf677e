package vocabulary

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/ncosearch/internal/domain/text"
)

// MaxCodeLength is the maximum NCO code length in bytes.
const MaxCodeLength = 64

// Record is one NCO vocabulary entry (immutable value object).
type Record struct {
	code        string
	title       string
	description string
	path        string
	tokens      []string
	titleTokens []string
}

// New validates and creates a Record. Code and title are required;
// title and description have their whitespace collapsed.
func New(code, title, description, path string) (Record, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Record{}, fmt.Errorf("code is required")
	}
	if len(code) > MaxCodeLength {
		return Record{}, fmt.Errorf("code too long (max %d)", MaxCodeLength)
	}
	title = text.CollapseSpace(title)
	if title == "" {
		return Record{}, fmt.Errorf("title is required")
	}
	return Reconstruct(code, title, text.CollapseSpace(description), strings.TrimSpace(path)), nil
}

// Reconstruct creates a Record without validation (storage hydration).
func Reconstruct(code, title, description, path string) Record {
	r := Record{code: code, title: title, description: description, path: path}
	r.tokens = text.Set(r.Terms())
	r.titleTokens = text.Set(text.Tokenize(title))
	return r
}

// Code returns the unique classification code.
func (r *Record) Code() string { return r.code }

// Title returns the occupation title.
func (r *Record) Title() string { return r.title }

// Description returns the occupation description.
func (r *Record) Description() string { return r.description }

// Path returns the hierarchical classification path.
func (r *Record) Path() string { return r.path }

// Tokens returns the sorted distinct normalized terms of title, description and path.
func (r *Record) Tokens() []string { return r.tokens }

// Terms returns every normalized term of title, description and path in order, duplicates included.
func (r *Record) Terms() []string {
	terms := text.Tokenize(r.title)
	terms = append(terms, text.Tokenize(r.description)...)
	return append(terms, text.Tokenize(r.path)...)
}

// TitleTokens returns the sorted distinct normalized title terms.
func (r *Record) TitleTokens() []string { return r.titleTokens }
