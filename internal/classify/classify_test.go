package classify

import (
	"testing"

	"github.com/calder-lab/zotshelf/internal/library"
)

// fixedExtractor returns canned full text and records invocations.
type fixedExtractor struct {
	text  string
	calls int
}

func (f *fixedExtractor) extract(root string, relPaths []string) string {
	f.calls++
	return f.text
}

func newTestClassifier(text string) (*Classifier, *fixedExtractor) {
	ex := &fixedExtractor{text: text}
	c := NewClassifier("/lib", nil)
	c.extractText = ex.extract
	return c, ex
}

func TestRelevant_MetadataShortCircuitsExtraction(t *testing.T) {
	c, ex := newTestClassifier("no keywords here")

	doc := library.Document{
		Title:     "Carbon Accounting in Cities",
		FilePaths: []string{"documents/reports/2020/x.pdf"},
	}

	if !c.Relevant(doc) {
		t.Fatal("Relevant() = false, want true via title match")
	}
	if ex.calls != 0 {
		t.Errorf("extraction ran %d times, want 0 (metadata short-circuit)", ex.calls)
	}
}

func TestRelevant_MetadataFields(t *testing.T) {
	tests := []struct {
		name string
		doc  library.Document
		want bool
	}{
		{"abstract hit", library.Document{Abstract: "We model renewable adoption."}, true},
		{"note hit", library.Document{Note: "see NET ZERO appendix"}, true},
		{"extra keywords hit", library.Document{Extra: map[string]string{"keywords": "green transition"}}, true},
		{"case-insensitive", library.Document{Title: "CLIMATE adaptation"}, true},
		{"no hit anywhere", library.Document{Title: "Medieval Poetry", Abstract: "Verse forms."}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClassifier("")
			if got := c.Relevant(tt.doc); got != tt.want {
				t.Errorf("Relevant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRelevant_FallsBackToFullText(t *testing.T) {
	c, ex := newTestClassifier("the full text mentions sustainability goals")

	doc := library.Document{
		Title:     "Annual Review",
		FilePaths: []string{"documents/reports/2020/x.pdf"},
	}

	if !c.Relevant(doc) {
		t.Fatal("Relevant() = false, want true via full text")
	}
	if ex.calls != 1 {
		t.Errorf("extraction ran %d times, want 1", ex.calls)
	}
}

func TestRelevant_NoFilesNoMatch(t *testing.T) {
	c, ex := newTestClassifier("irrelevant")

	doc := library.Document{Title: "Annual Review"} // no files, no keyword

	if c.Relevant(doc) {
		t.Error("Relevant() = true, want false with no metadata hit and no files")
	}
	if ex.calls != 0 {
		t.Errorf("extraction ran %d times, want 0 with no files", ex.calls)
	}
}

func TestRelevant_FullTextMiss(t *testing.T) {
	c, _ := newTestClassifier("nothing matching in the body")

	doc := library.Document{
		Title:     "Annual Review",
		FilePaths: []string{"documents/reports/2020/x.pdf"},
	}

	if c.Relevant(doc) {
		t.Error("Relevant() = true, want false")
	}
}

func TestNewClassifier_DefaultKeywords(t *testing.T) {
	c := NewClassifier("/lib", nil)
	if len(c.Keywords) != len(DefaultKeywords) {
		t.Errorf("Keywords = %v, want defaults", c.Keywords)
	}

	custom := NewClassifier("/lib", []string{"biodiversity"})
	if len(custom.Keywords) != 1 || custom.Keywords[0] != "biodiversity" {
		t.Errorf("Keywords = %v, want custom list", custom.Keywords)
	}
}
