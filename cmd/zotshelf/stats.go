package main

import (
	"fmt"
	"sort"

	"github.com/calder-lab/zotshelf/internal/library"
	"github.com/calder-lab/zotshelf/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats <library-root>",
	Short: "Recompute and report library summary statistics",
	Long: `Recompute and report library summary statistics.

The stored info block is a cache of the document sequence; this command
recomputes every count from the documents and reports whether the
stored block still agrees.`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

// StatsResult is the JSON output of the stats command.
type StatsResult struct {
	TotalDocuments int            `json:"total_documents"`
	WithPDFs       int            `json:"with_pdfs"`
	Categories     map[string]int `json:"categories"`
	TotalTags      int            `json:"total_tags"`
	Years          []string       `json:"years"`
	InfoConsistent bool           `json:"info_consistent"`
}

func runStats(cmd *cobra.Command, args []string) error {
	root := resolvePath(args[0])

	lib, err := storage.LoadLibrary(root)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	computed := library.ComputeInfo(lib.Documents)
	stored := lib.Info

	consistent := computed.TotalDocuments == stored.TotalDocuments &&
		computed.WithPDFs == stored.WithPDFs &&
		computed.TotalTags == stored.TotalTags &&
		equalCounts(computed.Categories, stored.Categories)

	if humanOutput {
		fmt.Printf("Total documents:     %d\n", computed.TotalDocuments)
		fmt.Printf("Documents with PDFs: %d\n", computed.WithPDFs)
		fmt.Printf("Unique tags:         %d\n", computed.TotalTags)
		fmt.Println("Categories:")
		names := make([]string, 0, len(computed.Categories))
		for name := range computed.Categories {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-20s %d\n", name, computed.Categories[name])
		}
		if !consistent {
			fmt.Println("\nwarning: stored info block disagrees with recomputed statistics")
		}
	} else {
		outputJSON(StatsResult{
			TotalDocuments: computed.TotalDocuments,
			WithPDFs:       computed.WithPDFs,
			Categories:     computed.Categories,
			TotalTags:      computed.TotalTags,
			Years:          computed.Years,
			InfoConsistent: consistent,
		})
	}

	return nil
}

// equalCounts compares two category count maps.
func equalCounts(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
