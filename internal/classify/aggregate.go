package classify

import (
	"sort"

	"github.com/calder-lab/zotshelf/internal/library"
)

// TagCounts maps tag → document count.
type TagCounts map[string]int

// AggregateByTag counts, per tag, how many documents are relevant and
// how many carry the tag at all. For every tag,
// relevant[tag] <= total[tag].
func AggregateByTag(docs []library.Document, relevant func(library.Document) bool) (TagCounts, TagCounts) {
	relevantCounts := make(TagCounts)
	totalCounts := make(TagCounts)

	for _, doc := range docs {
		for _, tag := range doc.Tags {
			totalCounts[tag]++
		}
		if relevant(doc) {
			for _, tag := range doc.Tags {
				relevantCounts[tag]++
			}
		}
	}

	return relevantCounts, totalCounts
}

// FilterTags restricts both count maps to the given tag set. Every
// filter tag appears in the output, zero-filled when absent from the
// data.
func FilterTags(relevantCounts, totalCounts TagCounts, filter []string) (TagCounts, TagCounts) {
	rel := make(TagCounts, len(filter))
	total := make(TagCounts, len(filter))
	for _, tag := range filter {
		rel[tag] = relevantCounts[tag]
		total[tag] = totalCounts[tag]
	}
	return rel, total
}

// SortedTags returns the tags of a count map in sorted order.
func SortedTags(counts TagCounts) []string {
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
