package persistence

import (
	"strings"
)

// sortSpec whitelists the columns a listing may be ordered by. Column names
// reach SQL unquoted, so nothing outside Fields is ever used.
type sortSpec struct {
	Fields       map[string]bool
	DefaultField string
	DefaultDir   string
}

// tagSort orders tag listings alphabetically unless asked otherwise
var tagSort = sortSpec{
	Fields: map[string]bool{
		"id":         true,
		"name":       true,
		"active":     true,
		"created_at": true,
		"updated_at": true,
	},
	DefaultField: "name",
	DefaultDir:   "ASC",
}

// normalizeSortDir returns ASC or DESC, or fallback for anything else
func normalizeSortDir(dir, fallback string) string {
	switch strings.ToUpper(strings.TrimSpace(dir)) {
	case "ASC":
		return "ASC"
	case "DESC":
		return "DESC"
	default:
		return fallback
	}
}

// orderClause builds an ORDER BY expression for field and dir. Rows are
// tie-broken by id so pages stay stable when the sort column repeats.
func (s sortSpec) orderClause(field, dir string) string {
	column := strings.TrimSpace(field)
	if !s.Fields[column] {
		column = s.DefaultField
	}
	direction := normalizeSortDir(dir, s.DefaultDir)
	if column == "id" {
		return "id " + direction
	}
	return column + " " + direction + ", id ASC"
}
