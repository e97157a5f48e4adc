// Package integration exercises the full conversion pipeline end to end.
package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/calder-lab/zotshelf/internal/bibtex"
	"github.com/calder-lab/zotshelf/internal/classify"
	"github.com/calder-lab/zotshelf/internal/library"
	"github.com/calder-lab/zotshelf/internal/storage"
)

const testBib = `@article{Smith2021,
  title = {Net Zero Pathways},
  author = {Smith, Jane and Doe, John},
  year = {2021},
  journal = {Climate Policy},
  keywords = {State;Midwest},
  file = {paper.pdf:ABC/paper.pdf:application/pdf}
}

@techreport{Lee2019,
  title = {Municipal Road Maintenance},
  author = {Lee, Ann},
  year = {2019},
  keywords = {City}
}
`

// setupExport builds an export directory: one .bib file plus a files/
// folder holding the referenced PDF.
func setupExport(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "export.bib"), []byte(testBib), 0644); err != nil {
		t.Fatal(err)
	}

	pdfDir := filepath.Join(dir, "files", "ABC")
	if err := os.MkdirAll(pdfDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pdfDir, "paper.pdf"), []byte("%PDF-1.4 stub"), 0644); err != nil {
		t.Fatal(err)
	}

	return dir
}

// convert runs the full pipeline into a fresh output root.
func convert(t *testing.T, exportDir string) (string, *library.Library) {
	t.Helper()
	outputDir := t.TempDir()

	bibPath, err := bibtex.FindExportFile(exportDir)
	if err != nil {
		t.Fatalf("FindExportFile() error = %v", err)
	}

	entries, errs := bibtex.ParseFile(bibPath)
	if len(errs) > 0 {
		t.Fatalf("ParseFile() errors: %v", errs)
	}

	builder := &library.Builder{
		FilesRoot:  filepath.Join(exportDir, "files"),
		OutputRoot: outputDir,
		Source:     "Citation Export (export.bib)",
	}
	lib, err := builder.Build(entries)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if err := storage.SaveLibrary(outputDir, lib); err != nil {
		t.Fatalf("SaveLibrary() error = %v", err)
	}

	return outputDir, lib
}

func TestConvert_EndToEnd(t *testing.T) {
	exportDir := setupExport(t)
	outputDir, lib := convert(t, exportDir)

	if len(lib.Documents) != 2 {
		t.Fatalf("built %d documents, want 2", len(lib.Documents))
	}

	// The referenced PDF lands at its deterministic organized path
	organized := filepath.Join(outputDir, "documents", "journal_articles", "2021",
		"Smith_2021_Net_Zero_Pathways.pdf")
	if _, err := os.Stat(organized); err != nil {
		t.Errorf("organized PDF missing: %v", err)
	}

	smith := lib.Documents[0]
	if !smith.HasPDF || smith.PDFCount != 1 {
		t.Errorf("Smith2021 HasPDF/PDFCount = %v/%d, want true/1", smith.HasPDF, smith.PDFCount)
	}

	lee := lib.Documents[1]
	if lee.HasPDF || len(lee.FilePaths) != 0 {
		t.Errorf("Lee2019 should have no files, got %v", lee.FilePaths)
	}

	// Source files are copied, never moved
	if _, err := os.Stat(filepath.Join(exportDir, "files", "ABC", "paper.pdf")); err != nil {
		t.Errorf("source PDF was moved: %v", err)
	}
}

func TestConvert_PersistedLibraryRoundTrip(t *testing.T) {
	exportDir := setupExport(t)
	outputDir, lib := convert(t, exportDir)

	loaded, err := storage.LoadLibrary(outputDir)
	if err != nil {
		t.Fatalf("LoadLibrary() error = %v", err)
	}
	if len(loaded.Documents) != len(lib.Documents) {
		t.Fatalf("round trip lost documents: %d vs %d", len(loaded.Documents), len(lib.Documents))
	}

	// Summary counts stay recomputable from the document sequence
	recomputed := library.ComputeInfo(loaded.Documents)
	if recomputed.TotalDocuments != loaded.Info.TotalDocuments ||
		recomputed.WithPDFs != loaded.Info.WithPDFs ||
		recomputed.TotalTags != loaded.Info.TotalTags {
		t.Errorf("stored info diverges from recomputed: %+v vs %+v", loaded.Info, recomputed)
	}

	sum := 0
	for _, count := range loaded.Info.Categories {
		sum += count
	}
	if sum != len(loaded.Documents) {
		t.Errorf("category counts sum to %d, want %d", sum, len(loaded.Documents))
	}
}

func TestConvert_ClassifyAggregates(t *testing.T) {
	exportDir := setupExport(t)
	outputDir, lib := convert(t, exportDir)

	classifier := classify.NewClassifier(outputDir, nil)
	relevant, total := classify.AggregateByTag(lib.Documents, classifier.Relevant)

	// Smith2021's title carries "Net Zero"; Lee2019 matches nothing and
	// has no stored files to scan.
	if total["State"] != 1 || total["Midwest"] != 1 || total["City"] != 1 {
		t.Errorf("total counts = %v", total)
	}
	if relevant["State"] != 1 || relevant["Midwest"] != 1 {
		t.Errorf("relevant counts = %v", relevant)
	}
	if relevant["City"] != 0 {
		t.Errorf("City relevant = %d, want 0", relevant["City"])
	}

	for tag, count := range relevant {
		if count > total[tag] {
			t.Errorf("tag %q: relevant %d > total %d", tag, count, total[tag])
		}
	}
}

func TestConvert_IndexMirrorsLibrary(t *testing.T) {
	exportDir := setupExport(t)
	outputDir, lib := convert(t, exportDir)

	db, err := storage.OpenLibraryDB(outputDir)
	if err != nil {
		t.Fatalf("OpenLibraryDB() error = %v", err)
	}
	defer db.Close()

	if err := db.ReplaceAll(lib.Documents); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	count, err := db.CountDocuments()
	if err != nil {
		t.Fatal(err)
	}
	if count != len(lib.Documents) {
		t.Errorf("indexed %d documents, want %d", count, len(lib.Documents))
	}

	counts, err := db.CountByCategory()
	if err != nil {
		t.Fatal(err)
	}
	for category, want := range lib.Info.Categories {
		if counts[category] != want {
			t.Errorf("category %q: index %d, library %d", category, counts[category], want)
		}
	}
}
