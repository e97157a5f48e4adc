package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/calder-lab/zotshelf/internal/library"
)

// SaveLibrary writes the library and its derived index files under
// root: metadata/library.json, metadata/tags.json (sorted vocabulary)
// and metadata/categories.json (category → count), plus a README.md
// with summary statistics in the root itself.
func SaveLibrary(root string, lib *library.Library) error {
	if err := os.MkdirAll(MetadataPath(root), 0755); err != nil {
		return fmt.Errorf("creating metadata directory: %w", err)
	}

	if err := writeJSON(LibraryPath(root), lib); err != nil {
		return fmt.Errorf("writing library: %w", err)
	}
	if err := writeJSON(TagsPath(root), lib.TagVocabulary()); err != nil {
		return fmt.Errorf("writing tags index: %w", err)
	}
	if err := writeJSON(CategoriesPath(root), lib.Info.Categories); err != nil {
		return fmt.Errorf("writing categories index: %w", err)
	}
	if err := writeREADME(root, lib); err != nil {
		return fmt.Errorf("writing README: %w", err)
	}

	return nil
}

// LoadLibrary reads metadata/library.json from a library root.
func LoadLibrary(root string) (*library.Library, error) {
	data, err := os.ReadFile(LibraryPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading library: %w", err)
	}

	var lib library.Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parsing library: %w", err)
	}

	return &lib, nil
}

// writeJSON writes a value as indented JSON.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// writeREADME renders the library summary as Markdown in the root.
func writeREADME(root string, lib *library.Library) error {
	info := lib.Info

	yearRange := "N/A"
	if len(info.Years) > 0 {
		yearRange = fmt.Sprintf("%s - %s", info.Years[0], info.Years[len(info.Years)-1])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", info.Title)
	fmt.Fprintf(&b, "%s on %s\n\n", info.Description, info.Created)
	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- **Total Documents**: %d\n", info.TotalDocuments)
	fmt.Fprintf(&b, "- **Documents with PDFs**: %d\n", info.WithPDFs)
	fmt.Fprintf(&b, "- **Categories**: %d\n", len(info.Categories))
	fmt.Fprintf(&b, "- **Unique Tags**: %d\n", info.TotalTags)
	fmt.Fprintf(&b, "- **Year Range**: %s\n\n", yearRange)
	b.WriteString("## Categories\n\n")

	names := make([]string, 0, len(info.Categories))
	for name := range info.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		count := info.Categories[name]
		pct := 0.0
		if info.TotalDocuments > 0 {
			pct = float64(count) / float64(info.TotalDocuments) * 100
		}
		fmt.Fprintf(&b, "- **%s**: %d documents (%.1f%%)\n", titleCase(name), count, pct)
	}

	fmt.Fprintf(&b, "\n---\n*Generated from %s • Last updated: %s*\n", info.Source, info.Created)

	return os.WriteFile(filepath.Join(root, "README.md"), []byte(b.String()), 0644)
}

// titleCase turns "journal_articles" into "Journal Articles".
func titleCase(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
