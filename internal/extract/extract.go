// Package extract converts stored documents into plain text.
//
// Extraction is failure-tolerant: a corrupt or unreadable file is
// logged as a warning and contributes empty text, it never aborts the
// caller. Only PDF and HTML are understood; other extensions are
// ignored without complaint.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Warnf reports recoverable extraction failures. It writes to stderr by
// default; tests replace it to capture warnings.
var Warnf = func(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[WARN] "+format+"\n", args...)
}

// FromFile extracts plain text from one file, dispatching on its
// extension. Unsupported extensions and extraction failures both yield
// "".
func FromFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := pdfText(path)
		if err != nil {
			Warnf("could not read PDF %s: %v", path, err)
			return ""
		}
		return text
	case ".html", ".htm":
		text, err := htmlText(path)
		if err != nil {
			Warnf("could not read HTML %s: %v", path, err)
			return ""
		}
		return text
	default:
		return ""
	}
}

// FromFiles extracts and concatenates text from a document's files.
// Paths are relative to the library root; separators from either
// platform are tolerated.
func FromFiles(libraryRoot string, relPaths []string) string {
	var builder strings.Builder
	for _, rel := range relPaths {
		rel = strings.ReplaceAll(rel, "\\", "/")
		abs := filepath.Join(libraryRoot, filepath.FromSlash(rel))
		builder.WriteString(FromFile(abs))
		builder.WriteString("\n")
	}
	return builder.String()
}
