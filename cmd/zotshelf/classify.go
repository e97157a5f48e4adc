package main

import (
	"fmt"
	"strings"

	"github.com/calder-lab/zotshelf/internal/classify"
	"github.com/calder-lab/zotshelf/internal/storage"
	"github.com/spf13/cobra"
)

var (
	classifyTags     string
	classifyKeywords string
)

func init() {
	classifyCmd.Flags().StringVar(&classifyTags, "tags", "", "Comma-separated tag filter (filtered tags always appear, zero-filled)")
	classifyCmd.Flags().StringVar(&classifyKeywords, "keywords", "", "YAML file with a custom keyword list")
	rootCmd.AddCommand(classifyCmd)
}

var classifyCmd = &cobra.Command{
	Use:   "classify <library-root>",
	Short: "Report keyword relevance counts per tag",
	Long: `Report keyword relevance counts per tag.

Each document is scanned for the keyword list: metadata fields first
(title, abstract, note, extra keywords), then the extracted full text
of its stored files when metadata alone does not match.

Usage:
  zotshelf classify ./library
  zotshelf classify ./library --tags State,City
  zotshelf classify ./library --keywords keywords.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

// TagReport is one row of the classification report.
type TagReport struct {
	Tag      string `json:"tag"`
	Relevant int    `json:"relevant"`
	Total    int    `json:"total"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	root := resolvePath(args[0])

	lib, err := storage.LoadLibrary(root)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	keywords := classify.DefaultKeywords
	if classifyKeywords != "" {
		keywords, err = classify.LoadKeywords(classifyKeywords)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	classifier := classify.NewClassifier(root, keywords)
	relevantCounts, totalCounts := classify.AggregateByTag(lib.Documents, classifier.Relevant)

	if classifyTags != "" {
		var filter []string
		for _, tag := range strings.Split(classifyTags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filter = append(filter, tag)
			}
		}
		relevantCounts, totalCounts = classify.FilterTags(relevantCounts, totalCounts, filter)
	}

	var report []TagReport
	for _, tag := range classify.SortedTags(totalCounts) {
		report = append(report, TagReport{
			Tag:      tag,
			Relevant: relevantCounts[tag],
			Total:    totalCounts[tag],
		})
	}

	if humanOutput {
		fmt.Println("Keyword Reference Statistics by Tag:")
		fmt.Println(strings.Repeat("-", 50))
		fmt.Printf("%-20s %-12s %-10s\n", "Tag", "Relevant", "Total")
		fmt.Println(strings.Repeat("-", 50))
		for _, row := range report {
			fmt.Printf("%-20s %-12d %-10d\n", row.Tag, row.Relevant, row.Total)
		}
	} else {
		outputJSON(report)
	}

	return nil
}
