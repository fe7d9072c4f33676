// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the database access layer. Each store wraps a
// *sql.DB handle injected at startup; there is no package-level connection.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"contentpress/internal/models"
)

// Sentinel errors callers match with errors.Is to pick a response status.
var (
	// ErrNotFound is returned when no content record matches the lookup.
	ErrNotFound = errors.New("content not found")

	// ErrDuplicateSlug is returned when a write collides with the unique
	// index on the slug column.
	ErrDuplicateSlug = errors.New("slug already exists")
)

// contentColumns is the canonical select list, kept in one place so every
// query scans the same shape.
const contentColumns = `id, title, slug, category, description, image,
       table_rows, meta_title, meta_description, canonical_tag,
       meta_keywords, faq_schema, created_at, updated_at`

// ContentStore handles all content-related database operations.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

// Create inserts a new content record and returns it with the generated ID
// and timestamps. Returns ErrDuplicateSlug on a slug collision.
func (s *ContentStore) Create(c *models.Content) (*models.Content, error) {
	row := s.db.QueryRow(`
		INSERT INTO content (title, slug, category, description, image,
		                     table_rows, meta_title, meta_description,
		                     canonical_tag, meta_keywords, faq_schema)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+contentColumns,
		c.Title, c.Slug, c.Category, c.Description, c.Image,
		c.Table, c.MetaTitle, c.MetaDescription,
		c.CanonicalTag, c.MetaKeywords, c.FAQSchema,
	)

	result, err := scanContent(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create content %q: %w", c.Slug, ErrDuplicateSlug)
		}
		return nil, fmt.Errorf("create content: %w", err)
	}
	return result, nil
}

// List returns every content record, newest-created first.
func (s *ContentStore) List() ([]models.Content, error) {
	rows, err := s.db.Query(`
		SELECT ` + contentColumns + `
		FROM content
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	items := []models.Content{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a content record by its UUID.
func (s *ContentStore) FindByID(id uuid.UUID) (*models.Content, error) {
	row := s.db.QueryRow(`
		SELECT `+contentColumns+`
		FROM content WHERE id = $1
	`, id)

	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a content record by its slug, the human-readable
// alternate key used by public pages.
func (s *ContentStore) FindBySlug(slug string) (*models.Content, error) {
	row := s.db.QueryRow(`
		SELECT `+contentColumns+`
		FROM content WHERE slug = $1
	`, slug)

	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find content by slug: %w", err)
	}
	return c, nil
}

// Update writes all mutable fields of the record and restamps updated_at.
// Callers load the record first and modify only the fields they mean to
// change, so partial updates happen at the handler level.
func (s *ContentStore) Update(c *models.Content) (*models.Content, error) {
	row := s.db.QueryRow(`
		UPDATE content SET
			title = $1, slug = $2, category = $3, description = $4,
			image = $5, table_rows = $6, meta_title = $7,
			meta_description = $8, canonical_tag = $9,
			meta_keywords = $10, faq_schema = $11,
			updated_at = now()
		WHERE id = $12
		RETURNING `+contentColumns,
		c.Title, c.Slug, c.Category, c.Description,
		c.Image, c.Table, c.MetaTitle,
		c.MetaDescription, c.CanonicalTag,
		c.MetaKeywords, c.FAQSchema,
		c.ID,
	)

	result, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("update content %q: %w", c.Slug, ErrDuplicateSlug)
		}
		return nil, fmt.Errorf("update content: %w", err)
	}
	return result, nil
}

// Delete removes a content record by ID. Returns ErrNotFound if no record
// matched. The underlying uploaded file, if any, is left in place.
func (s *ContentStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete content rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveImage clears the image reference of a record without touching any
// other field. Idempotent: clearing an already-null image succeeds.
func (s *ContentStore) RemoveImage(id uuid.UUID) (*models.Content, error) {
	row := s.db.QueryRow(`
		UPDATE content SET image = NULL, updated_at = now()
		WHERE id = $1
		RETURNING `+contentColumns,
		id,
	)

	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("remove content image: %w", err)
	}
	return c, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(row rowScanner) (*models.Content, error) {
	c := &models.Content{}
	err := row.Scan(
		&c.ID, &c.Title, &c.Slug, &c.Category, &c.Description, &c.Image,
		&c.Table, &c.MetaTitle, &c.MetaDescription, &c.CanonicalTag,
		&c.MetaKeywords, &c.FAQSchema, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation
// (the slug index is the only unique constraint on the content table).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
