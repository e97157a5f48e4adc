package library

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/calder-lab/zotshelf/internal/entry"
)

// writeFiles creates empty files at the given relative paths under root.
func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, rel := range paths {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte("%PDF-1.4"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestParseFileField(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []fileRef
	}{
		{
			"single tuple",
			"paper.pdf:files/ABC/paper.pdf:application/pdf",
			[]fileRef{{Filename: "paper.pdf", Path: "files/ABC/paper.pdf"}},
		},
		{
			"multiple tuples",
			"a.pdf:x/a.pdf:application/pdf;b.pdf:y/b.pdf:application/pdf",
			[]fileRef{{Filename: "a.pdf", Path: "x/a.pdf"}, {Filename: "b.pdf", Path: "y/b.pdf"}},
		},
		{"no colon", "justsometext", nil},
		{"empty", "", nil},
		{"missing path", "a.pdf::application/pdf", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFileField(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFileField(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAssociateFiles_FileFieldDirectPath(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "ABC/paper.pdf")

	e := entry.Entry{Key: "Smith2021", Fields: map[string]string{
		"file": "paper.pdf:ABC/paper.pdf:application/pdf",
	}}

	matches := AssociateFiles(e, root)
	if len(matches) != 1 {
		t.Fatalf("AssociateFiles() returned %d matches, want 1", len(matches))
	}
	if matches[0].Strategy != StrategyFileField {
		t.Errorf("Strategy = %q, want %q", matches[0].Strategy, StrategyFileField)
	}
	if want := filepath.Join(root, "ABC", "paper.pdf"); matches[0].Path != want {
		t.Errorf("Path = %q, want %q", matches[0].Path, want)
	}
}

func TestAssociateFiles_FileFieldFallsBackToNameSearch(t *testing.T) {
	root := t.TempDir()
	// The recorded path is stale; the file moved to another subdirectory
	writeFiles(t, root, "moved/deeper/paper.pdf")

	e := entry.Entry{Key: "Smith2021", Fields: map[string]string{
		"file": "paper.pdf:old/location/paper.pdf:application/pdf",
	}}

	matches := AssociateFiles(e, root)
	if len(matches) != 1 {
		t.Fatalf("AssociateFiles() returned %d matches, want 1", len(matches))
	}
	if matches[0].Strategy != StrategyFileField {
		t.Errorf("Strategy = %q, want %q", matches[0].Strategy, StrategyFileField)
	}
}

func TestAssociateFiles_FileFieldSkipsNonPDF(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "notes.txt")

	e := entry.Entry{Fields: map[string]string{
		"file": "notes.txt:notes.txt:text/plain",
	}}

	// The non-PDF tuple is ignored; with no PDFs in the tree the
	// fallback scan also finds nothing.
	if matches := AssociateFiles(e, root); len(matches) != 0 {
		t.Errorf("AssociateFiles() = %v, want empty", matches)
	}
}

func TestAssociateFiles_ScanMatchesEntryKey(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "dl/Smith2021-net-zero.pdf", "dl/unrelated.pdf")

	e := entry.Entry{Key: "smith2021", Fields: map[string]string{
		"title": "Municipal Budgeting Frameworks",
	}}

	matches := AssociateFiles(e, root)
	if len(matches) != 1 {
		t.Fatalf("AssociateFiles() returned %d matches, want 1", len(matches))
	}
	if matches[0].Strategy != StrategyFilenameScan {
		t.Errorf("Strategy = %q, want %q", matches[0].Strategy, StrategyFilenameScan)
	}
}

func TestAssociateFiles_ScanMatchesTitleWords(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "dl/pathways-to-decarbonization.pdf")

	e := entry.Entry{Key: "X99", Fields: map[string]string{
		// "Net" and "for" are too short to count; "Zero" misses;
		// "Pathways" (first three long words include it) hits.
		"title": "Net Zero Pathways Review for Cities",
	}}

	matches := AssociateFiles(e, root)
	if len(matches) != 1 {
		t.Fatalf("AssociateFiles() returned %d matches, want 1", len(matches))
	}
}

func TestAssociateFiles_ScanNeverRunsWhenFileFieldHits(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "ABC/paper.pdf", "dl/Smith2021-extra.pdf")

	e := entry.Entry{Key: "Smith2021", Fields: map[string]string{
		"file": "paper.pdf:ABC/paper.pdf:application/pdf",
	}}

	matches := AssociateFiles(e, root)
	if len(matches) != 1 {
		t.Fatalf("AssociateFiles() returned %d matches, want 1 (fallback must not run)", len(matches))
	}
	if matches[0].Strategy != StrategyFileField {
		t.Errorf("Strategy = %q, want %q", matches[0].Strategy, StrategyFileField)
	}
}

func TestAssociateFiles_NoMatchesIsNotAnError(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "dl/other.pdf")

	e := entry.Entry{Key: "Zzz", Fields: map[string]string{"title": "Completely Different Work"}}

	if matches := AssociateFiles(e, root); len(matches) != 0 {
		t.Errorf("AssociateFiles() = %v, want empty", matches)
	}
}

func TestAssociateFiles_MissingRoot(t *testing.T) {
	e := entry.Entry{Key: "a"}
	if matches := AssociateFiles(e, filepath.Join(t.TempDir(), "nope")); matches != nil {
		t.Errorf("AssociateFiles() = %v, want nil", matches)
	}
}
