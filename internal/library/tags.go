package library

import (
	"sort"
	"strings"

	"github.com/calder-lab/zotshelf/internal/entry"
)

// TagFields lists the entry fields that may carry tags, in scan order.
var TagFields = []string{"keywords", "mendeley-tags", "tags", "annote"}

// tagDelimiters lists the recognized tag delimiters. Only the delimiter
// occurring earliest in a field value is honored: "policy, climate;energy"
// splits on the comma and keeps "climate;energy" as one compound tag.
// That can leave compound tokens unsplit, but it mirrors the source data
// convention and is pinned by tests rather than second-guessed.
var tagDelimiters = []string{";", ",", "\n", "|"}

// ExtractTags collects tags from all tag-bearing fields of an entry,
// deduplicates them, and returns them sorted.
func ExtractTags(e entry.Entry) []string {
	set := make(map[string]struct{})

	for _, field := range TagFields {
		raw := e.Get(field)
		if raw == "" {
			continue
		}
		for _, tag := range SplitTagField(raw) {
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

// SplitTagField splits one raw tag field value into trimmed tags.
// The field is split on exactly one delimiter, the one found first in
// the value; if none occur the whole value is a single tag. Empty
// tokens after trimming are dropped.
func SplitTagField(raw string) []string {
	delim := ""
	first := len(raw)
	for _, d := range tagDelimiters {
		if idx := strings.Index(raw, d); idx >= 0 && idx < first {
			first = idx
			delim = d
		}
	}

	if delim == "" {
		if tok := strings.TrimSpace(raw); tok != "" {
			return []string{tok}
		}
		return nil
	}

	var tags []string
	for _, tok := range strings.Split(raw, delim) {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			tags = append(tags, tok)
		}
	}
	return tags
}
