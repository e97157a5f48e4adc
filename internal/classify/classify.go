// Package classify decides topical relevance of library documents and
// aggregates the results by tag.
package classify

import (
	"strings"

	"github.com/calder-lab/zotshelf/internal/extract"
	"github.com/calder-lab/zotshelf/internal/library"
)

// DefaultKeywords is the built-in environmental/climate keyword list.
// Matching is case-insensitive substring containment.
var DefaultKeywords = []string{
	"environment", "climate", "energy", "sustainability",
	"carbon", "emission", "renewable", "net zero", "green",
}

// SearchFields are the metadata fields scanned before falling back to
// full text, in order.
var SearchFields = []string{"title", "abstract", "note", "extra_keywords"}

// Classifier decides whether a document references the keyword domain.
type Classifier struct {
	Keywords    []string
	LibraryRoot string

	// extractText is swappable in tests; defaults to extract.FromFiles.
	extractText func(root string, relPaths []string) string
}

// NewClassifier builds a classifier for a library rooted at root.
// Passing nil keywords selects DefaultKeywords.
func NewClassifier(root string, keywords []string) *Classifier {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	return &Classifier{
		Keywords:    keywords,
		LibraryRoot: root,
		extractText: extract.FromFiles,
	}
}

// Relevant reports whether a document references any keyword.
// Metadata fields are scanned first; full text is extracted only when
// metadata alone does not decide, since extraction is the expensive
// step. A document with no keyword hit and no files is not relevant.
func (c *Classifier) Relevant(doc library.Document) bool {
	for _, field := range SearchFields {
		if containsAnyKeyword(doc.Field(field), c.Keywords) {
			return true
		}
	}

	if len(doc.FilePaths) == 0 {
		return false
	}

	fulltext := c.extractText(c.LibraryRoot, doc.FilePaths)
	return containsAnyKeyword(fulltext, c.Keywords)
}

// containsAnyKeyword does a case-insensitive substring scan.
func containsAnyKeyword(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
