package main

import (
	"fmt"

	"github.com/calder-lab/zotshelf/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index <library-root>",
	Short: "Build the SQLite query index from library.json",
	Long: `Build the SQLite query index from library.json.

The index lives at metadata/cache/library.db and is a disposable cache:
rebuilding it never changes the library itself.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

// IndexResult is the JSON summary of an index build.
type IndexResult struct {
	Path    string `json:"path"`
	Indexed int    `json:"indexed"`
}

func runIndex(cmd *cobra.Command, args []string) error {
	root := resolvePath(args[0])

	lib, err := storage.LoadLibrary(root)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	db, err := storage.OpenLibraryDB(root)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	if err := db.ReplaceAll(lib.Documents); err != nil {
		exitWithError(ExitError, "indexing documents: %v", err)
	}

	count, err := db.CountDocuments()
	if err != nil {
		exitWithError(ExitError, "counting documents: %v", err)
	}

	if humanOutput {
		fmt.Printf("Indexed %d documents into %s\n", count, storage.DBPath(root))
	} else {
		outputJSON(IndexResult{Path: storage.DBPath(root), Indexed: count})
	}

	return nil
}
