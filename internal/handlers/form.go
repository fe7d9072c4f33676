// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"contentpress/internal/models"
)

// contentForm holds the decoded multipart fields of a create or update
// request. The compound fields (table, faqSchema, metaKeywords) arrive as
// serialized strings; the present flags distinguish "absent" from an
// explicit empty value so updates only touch supplied fields. Matching
// the original API, an empty string is treated as absent.
type contentForm struct {
	title       string
	category    string
	description string

	metaTitle       string
	metaDescription string
	canonicalTag    string

	table      models.TableRows
	tableSet   bool
	faq        models.FAQList
	faqSet     bool
	keywords   models.Keywords
	keywordSet bool
}

// parseContentForm decodes the multipart fields shared by create and
// update. Returns an error message suitable for the client, or "" on
// success. A malformed compound field fails the whole request; nothing
// is persisted.
func parseContentForm(r *http.Request) (*contentForm, string) {
	f := &contentForm{
		title:           r.FormValue("title"),
		category:        r.FormValue("category"),
		description:     r.FormValue("description"),
		metaTitle:       r.FormValue("metaTitle"),
		metaDescription: r.FormValue("metaDescription"),
		canonicalTag:    r.FormValue("canonicalTag"),
	}

	if errMsg := validateLengths(f.title, f.category, f.description); errMsg != "" {
		return nil, errMsg
	}
	metaKw := r.FormValue("metaKeywords")
	if errMsg := validateMetadata(f.metaTitle, f.metaDescription, f.canonicalTag, metaKw); errMsg != "" {
		return nil, errMsg
	}

	if raw := r.FormValue("table"); raw != "" {
		rows, errMsg := parseTableRows(raw)
		if errMsg != "" {
			return nil, errMsg
		}
		f.table = rows
		f.tableSet = true
	}

	if raw := r.FormValue("faqSchema"); raw != "" {
		faq, errMsg := parseFAQSchema(raw)
		if errMsg != "" {
			return nil, errMsg
		}
		f.faq = faq
		f.faqSet = true
	}

	if metaKw != "" {
		f.keywords = splitKeywords(metaKw)
		f.keywordSet = true
	}

	return f, ""
}

// parseTableRows decodes the serialized table blob.
func parseTableRows(raw string) (models.TableRows, string) {
	var rows models.TableRows
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, "Invalid table payload: expected a JSON array of row objects."
	}
	return rows, ""
}

// parseFAQSchema decodes the serialized FAQ list and checks that every
// entry carries both a question and an answer.
func parseFAQSchema(raw string) (models.FAQList, string) {
	var faq models.FAQList
	if err := json.Unmarshal([]byte(raw), &faq); err != nil {
		return nil, "Invalid faqSchema payload: expected a JSON array of {question, answer} objects."
	}
	for _, entry := range faq {
		if strings.TrimSpace(entry.Question) == "" || strings.TrimSpace(entry.Answer) == "" {
			return nil, "Every faqSchema entry needs both a question and an answer."
		}
	}
	return faq, ""
}

// splitKeywords splits a comma-separated keyword string into trimmed,
// non-empty tokens.
func splitKeywords(raw string) models.Keywords {
	parts := strings.Split(raw, ",")
	keywords := make(models.Keywords, 0, len(parts))
	for _, p := range parts {
		if kw := strings.TrimSpace(p); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// optional returns a pointer for non-empty form values, nil otherwise.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
