package library

import "strings"

// Category names used in the on-disk layout and summary counts.
const (
	CategoryJournalArticles  = "journal_articles"
	CategoryConferencePapers = "conference_papers"
	CategoryBooks            = "books"
	CategoryBookChapters     = "book_chapters"
	CategoryReports          = "reports"
	CategoryTheses           = "theses"
	CategoryPatents          = "patents"
	CategoryMiscellaneous    = "miscellaneous"
	CategoryPreprints        = "preprints"
	CategoryWebResources     = "web_resources"
	CategorySoftware         = "software"
	CategoryDatasets         = "datasets"
	CategoryUncategorized    = "uncategorized"
)

// categoryByType maps entry types to category buckets.
var categoryByType = map[string]string{
	"article":       CategoryJournalArticles,
	"inproceedings": CategoryConferencePapers,
	"proceedings":   CategoryConferencePapers,
	"book":          CategoryBooks,
	"incollection":  CategoryBookChapters,
	"inbook":        CategoryBookChapters,
	"techreport":    CategoryReports,
	"report":        CategoryReports,
	"phdthesis":     CategoryTheses,
	"mastersthesis": CategoryTheses,
	"thesis":        CategoryTheses,
	"patent":        CategoryPatents,
	"misc":          CategoryMiscellaneous,
	"unpublished":   CategoryPreprints,
	"online":        CategoryWebResources,
	"webpage":       CategoryWebResources,
	"software":      CategorySoftware,
	"dataset":       CategoryDatasets,
}

// Categorize maps an entry type to its category bucket.
// The lookup is case-insensitive; unknown or empty types map to
// CategoryUncategorized. Total over all strings, no failure mode.
func Categorize(entryType string) string {
	if cat, ok := categoryByType[strings.ToLower(entryType)]; ok {
		return cat
	}
	return CategoryUncategorized
}
