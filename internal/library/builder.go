package library

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/calder-lab/zotshelf/internal/entry"
)

// Info is the library summary block. Every count here is a cache: it is
// recomputable from the document sequence alone (see ComputeInfo).
type Info struct {
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	TotalDocuments int            `json:"total_documents"`
	Created        string         `json:"created"`
	Source         string         `json:"source"`
	Categories     map[string]int `json:"categories"`
	TotalTags      int            `json:"total_tags"`
	Years          []string       `json:"years"`
	WithPDFs       int            `json:"with_pdfs"`
}

// Library is the full persisted collection.
type Library struct {
	Info      Info       `json:"info"`
	Documents []Document `json:"documents"`
}

// mappedFields are the entry fields with dedicated Document attributes.
// Everything else an entry carries is preserved under extra_<field>.
var mappedFields = map[string]bool{
	"title": true, "author": true, "year": true, "journal": true,
	"booktitle": true, "publisher": true, "volume": true, "number": true,
	"pages": true, "doi": true, "url": true, "isbn": true, "issn": true,
	"abstract": true, "note": true, "file": true,
}

// Builder drives the ingestion pipeline: tags, file association, file
// organization and categorization per entry, then summary statistics
// over the whole run.
type Builder struct {
	FilesRoot  string // folder of candidate source files (may not exist)
	OutputRoot string // library root; documents/ is created beneath it
	Source     string // human-readable source description for Info

	// Progress, if set, is called once per entry before processing.
	Progress func(i, n int, title string)

	// now is injected in tests for a stable Created date.
	now func() time.Time
}

// Build converts entries into a Library, copying associated files into
// the organized layout beneath OutputRoot. File association misses are
// recorded as zero files, not errors; only filesystem failures while
// copying abort the run.
func (b *Builder) Build(entries []entry.Entry) (*Library, error) {
	docs := make([]Document, 0, len(entries))
	seenIDs := make(map[string]bool)

	for i, e := range entries {
		if b.Progress != nil {
			b.Progress(i+1, len(entries), e.Title())
		}

		matches := AssociateFiles(e, b.FilesRoot)
		category := Categorize(e.Type)

		filePaths, err := OrganizeFiles(e, category, matches, b.OutputRoot)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i+1, e.Key, err)
		}

		doc := buildDocument(e, i, category, filePaths)
		doc.ID = uniqueID(seenIDs, doc.ID)
		seenIDs[doc.ID] = true
		docs = append(docs, doc)
	}

	nowFn := b.now
	if nowFn == nil {
		nowFn = time.Now
	}

	info := ComputeInfo(docs)
	info.Title = "Research Library"
	info.Description = "Converted from citation export"
	info.Created = nowFn().Format("2006-01-02")
	info.Source = b.Source

	return &Library{Info: info, Documents: docs}, nil
}

// buildDocument assembles one document record from an entry.
// Entries without a citation key get a positional synthetic id.
func buildDocument(e entry.Entry, index int, category string, filePaths []string) Document {
	id := e.Key
	if id == "" {
		id = fmt.Sprintf("doc_%d", index)
	}

	doc := Document{
		ID:        id,
		Title:     e.Title(),
		Authors:   strings.ReplaceAll(e.Get("author"), " and ", ", "),
		Year:      e.Year(),
		Journal:   e.Get("journal"),
		Booktitle: e.Get("booktitle"),
		Publisher: e.Get("publisher"),
		Volume:    e.Get("volume"),
		Number:    e.Get("number"),
		Pages:     e.Get("pages"),
		DOI:       e.Get("doi"),
		URL:       e.Get("url"),
		ISBN:      e.Get("isbn"),
		ISSN:      e.Get("issn"),
		Abstract:  e.Get("abstract"),
		Note:      e.Get("note"),
		Tags:      ExtractTags(e),
		Category:  category,
		EntryType: e.Type,
		FilePaths: filePaths,
		HasPDF:    len(filePaths) > 0,
		PDFCount:  len(filePaths),
	}

	for field, value := range e.Fields {
		if !mappedFields[field] && value != "" {
			if doc.Extra == nil {
				doc.Extra = make(map[string]string)
			}
			doc.Extra[field] = value
		}
	}

	return doc
}

// uniqueID returns baseID if unused, otherwise baseID-2, baseID-3, ...
// Duplicate citation keys happen in merged exports.
func uniqueID(seen map[string]bool, baseID string) string {
	if !seen[baseID] {
		return baseID
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", baseID, i)
		if !seen[candidate] {
			return candidate
		}
	}
}

// ComputeInfo recomputes the summary statistics from a document
// sequence. Save-time info blocks must always equal this function's
// output over the same documents.
func ComputeInfo(docs []Document) Info {
	categories := make(map[string]int)
	tags := make(map[string]struct{})
	yearSet := make(map[string]struct{})
	withPDFs := 0

	for _, doc := range docs {
		categories[doc.Category]++
		for _, tag := range doc.Tags {
			tags[tag] = struct{}{}
		}
		if doc.Year != "" {
			yearSet[doc.Year] = struct{}{}
		}
		if doc.HasPDF {
			withPDFs++
		}
	}

	years := make([]string, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Strings(years)

	return Info{
		TotalDocuments: len(docs),
		Categories:     categories,
		TotalTags:      len(tags),
		Years:          years,
		WithPDFs:       withPDFs,
	}
}

// TagVocabulary returns the sorted union of all document tags.
func (l *Library) TagVocabulary() []string {
	set := make(map[string]struct{})
	for _, doc := range l.Documents {
		for _, tag := range doc.Tags {
			set[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
