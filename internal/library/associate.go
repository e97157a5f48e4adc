package library

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/calder-lab/zotshelf/internal/entry"
)

// MatchStrategy identifies which heuristic produced a file match.
type MatchStrategy string

const (
	// StrategyFileField means the entry's structured file field named the
	// file, either by its recorded path or by exact filename search.
	StrategyFileField MatchStrategy = "file_field"

	// StrategyFilenameScan means the fallback scan matched the filename
	// against the entry key or leading title words. Lower confidence:
	// several entries could claim the same loosely matched file.
	StrategyFilenameScan MatchStrategy = "filename_scan"
)

// Match is one candidate file confirmed to belong to an entry.
type Match struct {
	Path     string        // absolute path under the files root
	Token    string        // the filename token that matched
	Strategy MatchStrategy // which heuristic found it
}

// fileRef is one filename:path:mimetype tuple from a structured file field.
type fileRef struct {
	Filename string
	Path     string
}

// AssociateFiles returns the files under filesRoot that belong to an
// entry. The structured file field is tried first; the filename scan
// runs only when the file field yields nothing. An empty result means
// the entry has no associated files, which is not an error.
func AssociateFiles(e entry.Entry, filesRoot string) []Match {
	if filesRoot == "" || !isDir(filesRoot) {
		return nil
	}

	if matches := matchByFileField(e, filesRoot); len(matches) > 0 {
		return matches
	}
	return matchByFilenameScan(e, filesRoot)
}

// matchByFileField resolves the entry's file field tuples to existing
// files. A tuple's recorded relative path is tried first; if the file
// moved, an exact-filename search over the whole tree finds it.
func matchByFileField(e entry.Entry, filesRoot string) []Match {
	var matches []Match

	for _, ref := range parseFileField(e.Get("file")) {
		if !strings.HasSuffix(strings.ToLower(ref.Filename), ".pdf") {
			continue
		}

		direct := filepath.Join(filesRoot, filepath.FromSlash(ref.Path))
		if isFile(direct) {
			matches = append(matches, Match{Path: direct, Token: ref.Filename, Strategy: StrategyFileField})
			continue
		}

		for _, found := range findByName(filesRoot, ref.Filename) {
			matches = append(matches, Match{Path: found, Token: ref.Filename, Strategy: StrategyFileField})
		}
	}

	return matches
}

// matchByFilenameScan scans every PDF under the root and accepts files
// whose name contains the entry key, or any of the first three title
// words longer than three characters (all case-insensitive).
func matchByFilenameScan(e entry.Entry, filesRoot string) []Match {
	key := strings.ToLower(e.Key)

	var titleWords []string
	for _, w := range strings.Fields(e.Get("title")) {
		if len(w) > 3 {
			titleWords = append(titleWords, strings.ToLower(w))
		}
	}
	if len(titleWords) > 3 {
		titleWords = titleWords[:3]
	}

	var matches []Match
	for _, path := range listPDFs(filesRoot) {
		name := strings.ToLower(filepath.Base(path))

		if key != "" && strings.Contains(name, key) {
			matches = append(matches, Match{Path: path, Token: key, Strategy: StrategyFilenameScan})
			continue
		}

		for _, w := range titleWords {
			if strings.Contains(name, w) {
				matches = append(matches, Match{Path: path, Token: w, Strategy: StrategyFilenameScan})
				break
			}
		}
	}

	return matches
}

// parseFileField splits a structured file field into its tuples.
// Format: "filename:relative/path:mimetype" with tuples joined by ";".
// Tuples missing the path component are dropped.
func parseFileField(raw string) []fileRef {
	if raw == "" {
		return nil
	}

	var refs []fileRef
	for _, part := range strings.Split(raw, ";") {
		if !strings.Contains(part, ":") {
			continue
		}
		components := strings.Split(part, ":")
		if len(components) < 2 {
			continue
		}
		filename := strings.TrimSpace(components[0])
		path := strings.TrimSpace(components[1])
		if filename != "" && path != "" {
			refs = append(refs, fileRef{Filename: filename, Path: path})
		}
	}
	return refs
}

// findByName returns all files under root with an exactly matching base name.
func findByName(root, filename string) []string {
	var found []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable subtrees
		}
		if !d.IsDir() && d.Name() == filename {
			found = append(found, path)
		}
		return nil
	})
	return found
}

// listPDFs returns all .pdf files under root, in walk order.
func listPDFs(root string) []string {
	var pdfs []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(d.Name()), ".pdf") {
			pdfs = append(pdfs, path)
		}
		return nil
	})
	return pdfs
}
