// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Content is the single entity managed by the API. The table rows, FAQ
// entries, and keyword list live in JSONB columns; clients submit them
// as serialized strings inside the multipart form and receive them back
// as structured JSON.
type Content struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	Image           *string   `json:"image"`
	Table           TableRows `json:"table"`
	MetaTitle       *string   `json:"metaTitle,omitempty"`
	MetaDescription *string   `json:"metaDescription,omitempty"`
	CanonicalTag    *string   `json:"canonicalTag,omitempty"`
	MetaKeywords    Keywords  `json:"metaKeywords"`
	FAQSchema       FAQList   `json:"faqSchema"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FAQEntry is a single question/answer pair attached to a content record
// for structured-data purposes. Both fields are required.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// TableRows holds the loosely structured tabular blob of a content record.
// Each row is an open string-keyed map; values may be strings, numbers,
// booleans, null, or nested structures.
type TableRows []map[string]any

// FAQList is an ordered list of FAQ entries.
type FAQList []FAQEntry

// Keywords is the list of meta keyword tokens.
type Keywords []string

// Value serializes the rows to JSON for JSONB storage.
func (t TableRows) Value() (driver.Value, error) {
	if t == nil {
		t = TableRows{}
	}
	return json.Marshal(t)
}

// Scan decodes a JSONB column into the rows.
func (t *TableRows) Scan(src any) error {
	return scanJSON(src, t, "table rows")
}

func (f FAQList) Value() (driver.Value, error) {
	if f == nil {
		f = FAQList{}
	}
	return json.Marshal(f)
}

func (f *FAQList) Scan(src any) error {
	return scanJSON(src, f, "faq schema")
}

func (k Keywords) Value() (driver.Value, error) {
	if k == nil {
		k = Keywords{}
	}
	return json.Marshal(k)
}

func (k *Keywords) Scan(src any) error {
	return scanJSON(src, k, "meta keywords")
}

// scanJSON handles the two representations drivers hand back for JSONB
// ([]byte or string) plus NULL.
func scanJSON(src, dst any, what string) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("scan %s: unsupported type %T", what, src)
	}
}
