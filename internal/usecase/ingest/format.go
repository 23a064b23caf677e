package ingest

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kailas-cloud/ncosearch/internal/domain"
	"github.com/kailas-cloud/ncosearch/internal/domain/vocabulary"
)

// Format is the tag of a supported vocabulary source encoding.
type Format string

// Supported source formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

var errUnknownFormat = errors.New("unsupported file format (want .csv, .json or .xlsx)")

var contentTypes = map[string]Format{
	"text/csv":                 FormatCSV,
	"application/csv":          FormatCSV,
	"application/vnd.ms-excel": FormatCSV,
	"application/json":         FormatJSON,
	"text/json":                FormatJSON,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": FormatXLSX,
}

// DetectFormat picks the format from the file extension, falling back to the
// declared content type.
func DetectFormat(name, contentType string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	if contentType != "" {
		if mt, _, err := mime.ParseMediaType(contentType); err == nil {
			if f, ok := contentTypes[mt]; ok {
				return f, nil
			}
		}
	}
	return "", errUnknownFormat
}

// Table is a decoded source: normalized column names plus one Row per data row.
type Table struct {
	Columns []string
	Rows    []vocabulary.Row
}

// HasColumn reports whether the source declared column name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Decode reads r according to the format.
func (f Format) Decode(r io.Reader) (Table, error) {
	switch f {
	case FormatCSV:
		return decodeCSV(r)
	case FormatJSON:
		return decodeJSON(r)
	case FormatXLSX:
		return decodeXLSX(r)
	default:
		return Table{}, errUnknownFormat
	}
}

func decodeCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parse csv: %w", err)
	}
	return fromGrid(records)
}

func decodeXLSX(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, fmt.Errorf("xlsx has no sheets")
	}
	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromGrid(grid)
}

// fromGrid treats the first row as the header. Short rows are padded and
// fully blank rows are skipped. Two headers that normalize to the same name
// are rejected.
func fromGrid(grid [][]string) (Table, error) {
	if len(grid) == 0 {
		return Table{}, nil
	}
	cols := make([]string, len(grid[0]))
	seen := make(map[string]struct{}, len(grid[0]))
	for i, h := range grid[0] {
		c := vocabulary.NormalizeColumn(h)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			return Table{}, domain.NewValidationError(0, c, "duplicate column")
		}
		seen[c] = struct{}{}
		cols[i] = c
	}

	rows := make([]vocabulary.Row, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		if isBlank(cells) {
			continue
		}
		row := make(vocabulary.Row, len(cols))
		for i, c := range cols {
			if c == "" {
				continue
			}
			if i < len(cells) {
				row[c] = cells[i]
			} else {
				row[c] = ""
			}
		}
		rows = append(rows, row)
	}
	return Table{Columns: cols, Rows: rows}, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// decodeJSON accepts an array of flat objects. Scalar values are stringified;
// the column set is the union of keys.
func decodeJSON(r io.Reader) (Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var items []map[string]any
	if err := dec.Decode(&items); err != nil {
		return Table{}, fmt.Errorf("parse json: want an array of objects: %w", err)
	}

	seen := make(map[string]struct{})
	rows := make([]vocabulary.Row, 0, len(items))
	for i, item := range items {
		row := make(vocabulary.Row, len(item))
		for k, v := range item {
			col := vocabulary.NormalizeColumn(k)
			if _, dup := row[col]; dup {
				return Table{}, domain.NewValidationError(i+1, col, "duplicate key")
			}
			s, err := scalarString(v)
			if err != nil {
				return Table{}, fmt.Errorf("item %d, key %q: %w", i+1, k, err)
			}
			row[col] = s
			seen[col] = struct{}{}
		}
		rows = append(rows, row)
	}

	cols := make([]string, 0, len(seen))
	for c := range seen {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return Table{Columns: cols, Rows: rows}, nil
}

func scalarString(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case bool:
		if x {
			return "true", nil
		}
		return "false", nil
	default:
		return "", fmt.Errorf("nested %T value not supported", x)
	}
}
