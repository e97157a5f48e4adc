// Package entry defines the core domain type for bibliographic records.
package entry

import "strings"

// Entry represents a single record from a citation export.
// Fields holds every field/value pair from the source record with field
// names lowercased; Type is the entry type (article, book, ...) and Key
// is the citation key, either of which may be empty in malformed input.
type Entry struct {
	Type   string
	Key    string
	Fields map[string]string
}

// Get returns the value of a field, or "" if the field is absent.
// Field names are matched case-insensitively.
func (e Entry) Get(name string) string {
	if e.Fields == nil {
		return ""
	}
	return e.Fields[strings.ToLower(name)]
}

// Has reports whether a field is present with a non-empty value.
func (e Entry) Has(name string) bool {
	return e.Get(name) != ""
}

// Title returns the title field, or "Untitled" if absent.
func (e Entry) Title() string {
	if t := e.Get("title"); t != "" {
		return t
	}
	return "Untitled"
}

// Year returns the year field, or "" if unknown.
func (e Entry) Year() string {
	return e.Get("year")
}
