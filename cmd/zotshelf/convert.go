package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/calder-lab/zotshelf/internal/bibtex"
	"github.com/calder-lab/zotshelf/internal/library"
	"github.com/calder-lab/zotshelf/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <export-dir> <output-dir>",
	Short: "Convert a citation export into an organized document library",
	Long: `Convert a citation export into an organized document library.

The export directory must contain one .bib file; a sibling files/
folder holds the source documents referenced by its entries. The output
directory receives the organized documents/ tree and metadata/ files.

Usage:
  zotshelf convert ./zotero-export ./library`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

// ConvertResult is the JSON summary of a conversion run.
type ConvertResult struct {
	OutputDir      string         `json:"output_dir"`
	TotalDocuments int            `json:"total_documents"`
	WithPDFs       int            `json:"with_pdfs"`
	Categories     map[string]int `json:"categories"`
	TotalTags      int            `json:"total_tags"`
	YearRange      string         `json:"year_range,omitempty"`
	ParseErrors    []string       `json:"parse_errors,omitempty"`
}

func runConvert(cmd *cobra.Command, args []string) error {
	exportDir := resolvePath(args[0])
	outputDir := resolvePath(args[1])

	if _, err := os.Stat(exportDir); err != nil {
		exitWithError(ExitInputError, "export directory does not exist: %s", exportDir)
	}

	bibPath, err := bibtex.FindExportFile(exportDir)
	if err != nil {
		exitWithError(ExitInputError, "%v", err)
	}

	entries, parseErrors := bibtex.ParseFile(bibPath)
	if len(entries) == 0 {
		exitWithError(ExitDataError, "no entries parsed from %s", bibPath)
	}

	builder := &library.Builder{
		FilesRoot:  filepath.Join(exportDir, "files"),
		OutputRoot: outputDir,
		Source:     fmt.Sprintf("Citation Export (%s)", filepath.Base(bibPath)),
	}
	if humanOutput {
		fmt.Printf("Processing %s (%d entries)\n", bibPath, len(entries))
		builder.Progress = func(i, n int, title string) {
			fmt.Printf("  %3d/%d: %s\n", i, n, truncateString(title, 60))
		}
	}

	lib, err := builder.Build(entries)
	if err != nil {
		exitWithError(ExitError, "building library: %v", err)
	}

	if err := storage.SaveLibrary(outputDir, lib); err != nil {
		exitWithError(ExitError, "saving library: %v", err)
	}

	errStrs := make([]string, len(parseErrors))
	for i, e := range parseErrors {
		errStrs[i] = e.Error()
	}

	info := lib.Info
	yearRange := ""
	if len(info.Years) > 0 {
		yearRange = fmt.Sprintf("%s - %s", info.Years[0], info.Years[len(info.Years)-1])
	}

	if humanOutput {
		fmt.Println("\nConversion complete!")
		fmt.Printf("  Output directory:    %s\n", outputDir)
		fmt.Printf("  Total documents:     %d\n", info.TotalDocuments)
		fmt.Printf("  Documents with PDFs: %d\n", info.WithPDFs)
		fmt.Printf("  Categories:          %d\n", len(info.Categories))
		fmt.Printf("  Unique tags:         %d\n", info.TotalTags)
		if yearRange != "" {
			fmt.Printf("  Year range:          %s\n", yearRange)
		}
		for _, e := range errStrs {
			fmt.Fprintf(os.Stderr, "warning: %s\n", e)
		}
	} else {
		outputJSON(ConvertResult{
			OutputDir:      outputDir,
			TotalDocuments: info.TotalDocuments,
			WithPDFs:       info.WithPDFs,
			Categories:     info.Categories,
			TotalTags:      info.TotalTags,
			YearRange:      yearRange,
			ParseErrors:    errStrs,
		})
	}

	return nil
}
