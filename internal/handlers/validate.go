package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for content fields.
const (
	maxTitleLen        = 300
	maxCategoryLen     = 100
	maxDescriptionLen  = 100_000
	maxMetaTitleLen    = 300
	maxMetaDescLen     = 500
	maxCanonicalLen    = 2_000
	maxMetaKeywordsLen = 500
)

// validateRequired checks the fields every record must carry and returns
// the first error found, or "".
func validateRequired(title, category, description string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if strings.TrimSpace(category) == "" {
		return "Category is required."
	}
	if strings.TrimSpace(description) == "" {
		return "Description is required."
	}
	return ""
}

// validateLengths checks field size limits and returns the first error
// found, or "".
func validateLengths(title, category, description string) string {
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(category) > maxCategoryLen {
		return "Category is too long (max 100 characters)."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 100,000 characters)."
	}
	return ""
}

// validateMetadata checks optional SEO metadata fields.
func validateMetadata(metaTitle, metaDesc, canonical, metaKw string) string {
	if utf8.RuneCountInString(metaTitle) > maxMetaTitleLen {
		return "Meta title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(metaDesc) > maxMetaDescLen {
		return "Meta description is too long (max 500 characters)."
	}
	if utf8.RuneCountInString(canonical) > maxCanonicalLen {
		return "Canonical tag is too long (max 2,000 characters)."
	}
	if utf8.RuneCountInString(metaKw) > maxMetaKeywordsLen {
		return "Meta keywords are too long (max 500 characters)."
	}
	return ""
}
