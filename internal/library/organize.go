package library

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/calder-lab/zotshelf/internal/entry"
)

// maxCleanNameLen caps cleaned filename components.
const maxCleanNameLen = 80

var (
	unsafeChars  = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespace   = regexp.MustCompile(`\s+`)
	specialChars = regexp.MustCompile(`[^\w\s-]`)
)

// CleanFilename makes text safe for use as a filename component:
// filesystem-reserved characters removed, whitespace collapsed to
// underscores, remaining specials stripped, truncated. Empty input
// becomes "untitled".
func CleanFilename(text string) string {
	if text == "" {
		return "untitled"
	}
	text = unsafeChars.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, "_")
	text = specialChars.ReplaceAllString(text, "")
	if len(text) > maxCleanNameLen {
		text = text[:maxCleanNameLen]
	}
	return text
}

// FirstAuthorSurname extracts the surname of the first author from a
// BibTeX author field ("Last, First and Last, First" or "First Last").
// Returns "" when the entry has no author field.
func FirstAuthorSurname(e entry.Entry) string {
	author := e.Get("author")
	if author == "" {
		return ""
	}

	first := author
	if idx := strings.Index(author, " and "); idx >= 0 {
		first = author[:idx]
	} else if idx := strings.Index(author, ","); idx >= 0 {
		first = author[:idx]
	}

	if idx := strings.Index(first, ","); idx >= 0 {
		first = strings.TrimSpace(first[:idx])
	} else if parts := strings.Fields(first); len(parts) > 0 {
		first = parts[len(parts)-1]
	}

	return CleanFilename(first)
}

// BaseName computes the deterministic base filename for an entry's
// organized files: <author>_<year>_<title>, each component cleaned.
func BaseName(e entry.Entry, year string) string {
	return fmt.Sprintf("%s_%s_%s", FirstAuthorSurname(e), year, CleanFilename(e.Title()))
}

// TargetDir returns the directory for an entry's files relative to the
// output root: documents/<category>/<year>, with "unknown" for missing
// years.
func TargetDir(category, year string) string {
	if year == "" {
		year = "unknown"
	}
	return filepath.Join("documents", category, year)
}

// OrganizeFiles copies an entry's associated files into the library
// layout and returns their paths relative to outputRoot. With several
// files the base name gets a 1-based index suffix. Files are copied,
// never moved; the naming is deterministic, so a rerun overwrites the
// same targets. Base-name collisions across distinct entries sharing
// author, year and title are an accepted limitation.
func OrganizeFiles(e entry.Entry, category string, matches []Match, outputRoot string) ([]string, error) {
	if len(matches) == 0 {
		return nil, nil
	}

	year := e.Year()
	relDir := TargetDir(category, year)
	if year == "" {
		year = "unknown"
	}

	absDir := filepath.Join(outputRoot, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", absDir, err)
	}

	base := BaseName(e, year)

	var relPaths []string
	for i, m := range matches {
		name := base + ".pdf"
		if len(matches) > 1 {
			name = fmt.Sprintf("%s_%d.pdf", base, i+1)
		}

		target := filepath.Join(absDir, name)
		if err := copyFile(m.Path, target); err != nil {
			return nil, fmt.Errorf("copying %s: %w", m.Path, err)
		}
		relPaths = append(relPaths, filepath.Join(relDir, name))
	}

	return relPaths, nil
}

// copyFile copies src to dst, truncating any existing file at dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
