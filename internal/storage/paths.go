// Package storage persists the document library: JSON metadata files
// under metadata/ and an ephemeral SQLite index for ad-hoc queries.
package storage

import "path/filepath"

const (
	MetadataDir    = "metadata"
	DocumentsDir   = "documents"
	LibraryFile    = "library.json"
	TagsFile       = "tags.json"
	CategoriesFile = "categories.json"
	CacheDir       = "cache"
	DBFile         = "library.db"
)

// MetadataPath returns the metadata directory under a library root.
func MetadataPath(root string) string {
	return filepath.Join(root, MetadataDir)
}

// DocumentsPath returns the organized documents directory under a library root.
func DocumentsPath(root string) string {
	return filepath.Join(root, DocumentsDir)
}

// LibraryPath returns the path to library.json under a library root.
func LibraryPath(root string) string {
	return filepath.Join(root, MetadataDir, LibraryFile)
}

// TagsPath returns the path to tags.json under a library root.
func TagsPath(root string) string {
	return filepath.Join(root, MetadataDir, TagsFile)
}

// CategoriesPath returns the path to categories.json under a library root.
func CategoriesPath(root string) string {
	return filepath.Join(root, MetadataDir, CategoriesFile)
}

// CachePath returns the cache directory under a library root.
func CachePath(root string) string {
	return filepath.Join(root, MetadataDir, CacheDir)
}

// DBPath returns the SQLite index path under a library root.
func DBPath(root string) string {
	return filepath.Join(root, MetadataDir, CacheDir, DBFile)
}
