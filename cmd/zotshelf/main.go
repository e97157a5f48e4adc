// Package main provides the zotshelf CLI entry point.
package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zotshelf",
	Short: "Citation export to document library converter",
	Long: `zotshelf converts a citation export (a .bib file plus its files
folder) into a normalized, self-describing document library, and
classifies the stored documents by keyword relevance.

Commands output JSON by default for easy scripting; pass --human for
readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// resolvePath resolves a path argument, honoring the ZOTSHELF_ROOT
// environment variable (loaded from .env if present) for relative paths.
func resolvePath(path string) string {
	_ = godotenv.Load()
	if root := os.Getenv("ZOTSHELF_ROOT"); root != "" && !filepath.IsAbs(path) {
		return filepath.Join(root, path)
	}
	return path
}
