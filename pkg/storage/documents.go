package storage

import (
	"fmt"
	"strings"
)

// Builtin document types. Custom content types use their own type name.
const (
	DocTypePost       = "post"
	DocTypePage       = "page"
	DocTypeAttachment = "attachment"
)

// Document statuses.
const (
	StatusPublish = "publish"
	StatusDraft   = "draft"
	StatusPending = "pending"
	StatusPrivate = "private"
)

var statusLabels = map[string]string{
	StatusPublish: "Published",
	StatusDraft:   "Draft",
	StatusPending: "Pending",
	StatusPrivate: "Private",
}

// StatusLabel returns the human-readable label for a document status.
// Unknown statuses are returned as-is.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// Document is one row of the document store: a post, page, attachment or
// custom content type entry.
type Document struct {
	ID       int64
	DocType  string
	Title    string
	Slug     string
	Status   string
	AuthorID int64
	ThumbURL string
}

// SearchDocuments returns the documents of the given types whose title
// contains query, case-insensitive, ordered by title ascending. Soft-deleted
// rows are excluded. Matching is plain substring containment; no tokenizing
// and no ranking.
func (s *Store) SearchDocuments(docTypes []string, query string) ([]Document, error) {
	if len(docTypes) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(docTypes))
	args := make([]interface{}, 0, len(docTypes)+1)
	for i, t := range docTypes {
		placeholders[i] = "?"
		args = append(args, t)
	}
	args = append(args, strings.ToLower(query))

	rows, err := s.db.Query(`
		SELECT id, doc_type, title, slug, status, author_id, thumb_url
		FROM documents
		WHERE deleted_at IS NULL
		  AND doc_type IN (`+strings.Join(placeholders, ", ")+`)
		  AND instr(lower(title), ?) > 0
		ORDER BY title COLLATE NOCASE ASC, id ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			fmt.Printf("Warning: failed to close rows: %v\n", err)
		}
	}()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.DocType, &d.Title, &d.Slug, &d.Status, &d.AuthorID, &d.ThumbURL); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

// InsertDocument adds a document and returns its id.
func (s *Store) InsertDocument(d Document) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO documents (doc_type, title, slug, status, author_id, thumb_url)
		VALUES (?, ?, ?, ?, ?, ?)
	`, d.DocType, d.Title, d.Slug, d.Status, d.AuthorID, d.ThumbURL)
	if err != nil {
		return 0, fmt.Errorf("inserting document: %w", err)
	}
	return res.LastInsertId()
}

// ContentType describes one entry of the content-type registry.
type ContentType struct {
	Name          string
	SingularLabel string
	Icon          string
	Builtin       bool
	Public        bool
}

// CustomContentTypes returns the non-builtin public content types, ordered
// by name. These drive the extensible content-type provider.
func (s *Store) CustomContentTypes() ([]ContentType, error) {
	rows, err := s.db.Query(`
		SELECT name, singular_label, icon, builtin, public
		FROM content_types
		WHERE builtin = 0 AND public = 1
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying content types: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			fmt.Printf("Warning: failed to close rows: %v\n", err)
		}
	}()

	var types []ContentType
	for rows.Next() {
		var ct ContentType
		if err := rows.Scan(&ct.Name, &ct.SingularLabel, &ct.Icon, &ct.Builtin, &ct.Public); err != nil {
			return nil, fmt.Errorf("scanning content type row: %w", err)
		}
		types = append(types, ct)
	}

	return types, rows.Err()
}

// UpsertContentType registers or updates a content type.
func (s *Store) UpsertContentType(ct ContentType) error {
	_, err := s.db.Exec(`
		INSERT INTO content_types (name, singular_label, icon, builtin, public)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			singular_label = excluded.singular_label,
			icon = excluded.icon,
			builtin = excluded.builtin,
			public = excluded.public
	`, ct.Name, ct.SingularLabel, ct.Icon, ct.Builtin, ct.Public)
	if err != nil {
		return fmt.Errorf("upserting content type %s: %w", ct.Name, err)
	}
	return nil
}
