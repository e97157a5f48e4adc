package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/calder-lab/zotshelf/internal/library"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite query index. The index is a disposable cache of
// library.json: it can be rebuilt at any time and is never the source
// of truth.
type DB struct {
	db *sql.DB
}

// selectDocFields is the standard field list for SELECT queries.
const selectDocFields = `id, title, authors, year, category, entry_type,
	doi, url, has_pdf, pdf_count, tags_json, file_paths_json`

// OpenDB opens or creates the SQLite index at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// OpenLibraryDB opens the index under a library root, creating the
// cache directory if needed.
func OpenLibraryDB(root string) (*DB, error) {
	if err := os.MkdirAll(CachePath(root), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return OpenDB(DBPath(root))
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the index schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			authors TEXT,
			year TEXT,
			category TEXT NOT NULL,
			entry_type TEXT,
			doi TEXT,
			url TEXT,
			has_pdf INTEGER NOT NULL DEFAULT 0,
			pdf_count INTEGER NOT NULL DEFAULT 0,
			tags_json TEXT,
			file_paths_json TEXT
		);

		CREATE TABLE IF NOT EXISTS document_tags (
			doc_id TEXT NOT NULL,
			tag TEXT NOT NULL,
			PRIMARY KEY (doc_id, tag)
		);

		CREATE INDEX IF NOT EXISTS idx_documents_category ON documents(category);
		CREATE INDEX IF NOT EXISTS idx_documents_year ON documents(year);
		CREATE INDEX IF NOT EXISTS idx_document_tags_tag ON document_tags(tag);
	`
	_, err := db.Exec(schema)
	return err
}

// ReplaceAll rebuilds the index from a document sequence in one
// transaction.
func (d *DB) ReplaceAll(docs []library.Document) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM documents`); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM document_tags`); err != nil {
		return fmt.Errorf("clearing tags: %w", err)
	}

	insertDoc, err := tx.Prepare(`
		INSERT INTO documents (` + selectDocFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer insertDoc.Close()

	insertTag, err := tx.Prepare(`INSERT INTO document_tags (doc_id, tag) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing tag insert: %w", err)
	}
	defer insertTag.Close()

	for _, doc := range docs {
		tagsJSON, err := json.Marshal(doc.Tags)
		if err != nil {
			return fmt.Errorf("encoding tags for %s: %w", doc.ID, err)
		}
		pathsJSON, err := json.Marshal(doc.FilePaths)
		if err != nil {
			return fmt.Errorf("encoding paths for %s: %w", doc.ID, err)
		}

		if _, err := insertDoc.Exec(
			doc.ID, doc.Title, doc.Authors, doc.Year, doc.Category,
			doc.EntryType, doc.DOI, doc.URL,
			boolToInt(doc.HasPDF), doc.PDFCount,
			string(tagsJSON), string(pathsJSON),
		); err != nil {
			return fmt.Errorf("inserting %s: %w", doc.ID, err)
		}

		for _, tag := range doc.Tags {
			if _, err := insertTag.Exec(doc.ID, tag); err != nil {
				return fmt.Errorf("inserting tag %s for %s: %w", tag, doc.ID, err)
			}
		}
	}

	return tx.Commit()
}

// CountDocuments returns the number of indexed documents.
func (d *DB) CountDocuments() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&count)
	return count, err
}

// CountByCategory returns category → document count.
func (d *DB) CountByCategory() (map[string]int, error) {
	rows, err := d.db.Query(`SELECT category, COUNT(*) FROM documents GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

// GetByID fetches one document from the index, or nil if absent.
func (d *DB) GetByID(id string) (*library.Document, error) {
	row := d.db.QueryRow(`SELECT `+selectDocFields+` FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

// ListByTag returns all documents carrying a tag, ordered by id.
func (d *DB) ListByTag(tag string) ([]library.Document, error) {
	rows, err := d.db.Query(`
		SELECT `+selectDocFields+` FROM documents
		WHERE id IN (SELECT doc_id FROM document_tags WHERE tag = ?)
		ORDER BY id`, tag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []library.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanDocument.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanDocument scans one selectDocFields row into a Document.
func scanDocument(row scanner) (*library.Document, error) {
	var doc library.Document
	var hasPDF int
	var tagsJSON, pathsJSON string

	err := row.Scan(
		&doc.ID, &doc.Title, &doc.Authors, &doc.Year, &doc.Category,
		&doc.EntryType, &doc.DOI, &doc.URL,
		&hasPDF, &doc.PDFCount, &tagsJSON, &pathsJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	doc.HasPDF = hasPDF != 0
	if err := json.Unmarshal([]byte(tagsJSON), &doc.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags for %s: %w", doc.ID, err)
	}
	if err := json.Unmarshal([]byte(pathsJSON), &doc.FilePaths); err != nil {
		return nil, fmt.Errorf("decoding paths for %s: %w", doc.ID, err)
	}

	return &doc, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
