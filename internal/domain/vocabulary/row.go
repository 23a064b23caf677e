package vocabulary

import (
	"strings"
)

// Column names recognized in vocabulary sources (matched case-insensitively).
const (
	ColumnCode        = "code"
	ColumnTitle       = "title"
	ColumnDescription = "description"
	ColumnPath        = "path"
)

// RequiredColumns must be present in every vocabulary source.
var RequiredColumns = []string{ColumnCode, ColumnTitle}

// HierarchyColumns build the path, outermost first, when no path column is given.
var HierarchyColumns = []string{"division", "group", "subgroup", "minor", "unit"}

// PathSeparator joins hierarchy levels.
const PathSeparator = " > "

// Row is one decoded source row keyed by lowercase column name.
type Row map[string]string

// NormalizeColumn lowercases and trims a header cell, dropping a UTF-8 BOM.
func NormalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

// FromRow is the single canonical constructor every source format feeds.
func FromRow(row Row) (Record, error) {
	path, ok := row[ColumnPath]
	if !ok {
		path = hierarchyPath(row)
	}
	return New(row[ColumnCode], row[ColumnTitle], row[ColumnDescription], path)
}

func hierarchyPath(row Row) string {
	parts := make([]string, 0, len(HierarchyColumns))
	for _, c := range HierarchyColumns {
		if v := strings.TrimSpace(row[c]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, PathSeparator)
}
