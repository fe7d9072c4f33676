// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"contentpress/internal/cache"
	"contentpress/internal/models"
	"contentpress/internal/slug"
	"contentpress/internal/storage"
	"contentpress/internal/store"
)

// maxUploadSize is the maximum allowed image upload size (50 MB).
const maxUploadSize = 50 << 20

// allowedImageTypes defines MIME types accepted for the image field.
var allowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// Content groups the content CRUD handlers with their dependencies.
type Content struct {
	store   *store.ContentStore
	storage storage.Storage
	cache   *cache.ContentCache
}

// NewContent creates the content handler group. cache may be nil when
// Valkey is not configured.
func NewContent(contentStore *store.ContentStore, blobStorage storage.Storage, contentCache *cache.ContentCache) *Content {
	return &Content{
		store:   contentStore,
		storage: blobStorage,
		cache:   contentCache,
	}
}

// Create handles POST /api/content. Title, category, and description are
// required; the slug is always derived from the title. The image part, if
// present, is stored before the record is inserted.
func (h *Content) Create(w http.ResponseWriter, r *http.Request) {
	if errMsg, status := parseRequestForm(w, r); errMsg != "" {
		writeError(w, status, errMsg)
		return
	}

	f, errMsg := parseContentForm(r)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	if errMsg := validateRequired(f.title, f.category, f.description); errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	contentSlug := slug.Generate(f.title)
	if contentSlug == "" {
		writeError(w, http.StatusBadRequest, "Title must contain at least one letter or digit.")
		return
	}

	imageRef, errMsg, status := h.saveImage(r)
	if errMsg != "" {
		writeError(w, status, errMsg)
		return
	}

	c := &models.Content{
		Title:           f.title,
		Slug:            contentSlug,
		Category:        f.category,
		Description:     f.description,
		Image:           imageRef,
		Table:           f.table,
		MetaTitle:       optional(f.metaTitle),
		MetaDescription: optional(f.metaDescription),
		CanonicalTag:    optional(f.canonicalTag),
		MetaKeywords:    f.keywords,
		FAQSchema:       f.faq,
	}

	created, err := h.store.Create(c)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateSlug) {
			writeError(w, http.StatusConflict, fmt.Sprintf("Content with slug %q already exists.", contentSlug))
			return
		}
		slog.Error("create content failed", "error", err, "slug", contentSlug)
		writeError(w, http.StatusInternalServerError, "Failed to create content.")
		return
	}

	h.cache.Invalidate(r.Context(), created.Slug)
	writeData(w, http.StatusCreated, created)
}

// List handles GET /api/content. Returns every record, newest-created
// first; an empty store yields an empty array.
func (h *Content) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List()
	if err != nil {
		slog.Error("list content failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list content.")
		return
	}
	writeData(w, http.StatusOK, items)
}

// GetByID handles GET /api/content/{id}.
func (h *Content) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w)
		return
	}

	c, err := h.store.FindByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w)
			return
		}
		slog.Error("get content failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Failed to fetch content.")
		return
	}
	writeData(w, http.StatusOK, c)
}

// GetBySlug handles GET /api/content/slug/{slug}, the public read path.
// Served from the cache when possible.
func (h *Content) GetBySlug(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")

	if c, ok := h.cache.Get(r.Context(), s); ok {
		writeData(w, http.StatusOK, c)
		return
	}

	c, err := h.store.FindBySlug(s)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w)
			return
		}
		slog.Error("get content by slug failed", "error", err, "slug", s)
		writeError(w, http.StatusInternalServerError, "Failed to fetch content.")
		return
	}

	h.cache.Set(r.Context(), c)
	writeData(w, http.StatusOK, c)
}

// Update handles PUT /api/content/{id}. Partial: only supplied fields
// change. A new title recomputes the slug; a new image file replaces the
// reference (the previous file stays in storage).
func (h *Content) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w)
		return
	}

	if errMsg, status := parseRequestForm(w, r); errMsg != "" {
		writeError(w, status, errMsg)
		return
	}

	f, errMsg := parseContentForm(r)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	c, err := h.store.FindByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w)
			return
		}
		slog.Error("load content for update failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Failed to update content.")
		return
	}
	previousSlug := c.Slug

	if f.title != "" {
		newSlug := slug.Generate(f.title)
		if newSlug == "" {
			writeError(w, http.StatusBadRequest, "Title must contain at least one letter or digit.")
			return
		}
		c.Title = f.title
		c.Slug = newSlug
	}
	if f.category != "" {
		c.Category = f.category
	}
	if f.description != "" {
		c.Description = f.description
	}
	if f.tableSet {
		c.Table = f.table
	}
	if f.faqSet {
		c.FAQSchema = f.faq
	}
	if f.keywordSet {
		c.MetaKeywords = f.keywords
	}
	if f.metaTitle != "" {
		c.MetaTitle = &f.metaTitle
	}
	if f.metaDescription != "" {
		c.MetaDescription = &f.metaDescription
	}
	if f.canonicalTag != "" {
		c.CanonicalTag = &f.canonicalTag
	}

	imageRef, errMsg, status := h.saveImage(r)
	if errMsg != "" {
		writeError(w, status, errMsg)
		return
	}
	if imageRef != nil {
		c.Image = imageRef
	}

	updated, err := h.store.Update(c)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeNotFound(w)
		case errors.Is(err, store.ErrDuplicateSlug):
			writeError(w, http.StatusConflict, fmt.Sprintf("Content with slug %q already exists.", c.Slug))
		default:
			slog.Error("update content failed", "error", err, "id", id)
			writeError(w, http.StatusInternalServerError, "Failed to update content.")
		}
		return
	}

	h.cache.Invalidate(r.Context(), previousSlug, updated.Slug)
	writeData(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/content/{id}. Hard delete; the uploaded
// image file, if any, is left in storage.
func (h *Content) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w)
		return
	}

	// Load first so the cached slug can be invalidated.
	c, err := h.store.FindByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w)
			return
		}
		slog.Error("load content for delete failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Failed to delete content.")
		return
	}

	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w)
			return
		}
		slog.Error("delete content failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Failed to delete content.")
		return
	}

	h.cache.Invalidate(r.Context(), c.Slug)
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Content deleted successfully"})
}

// RemoveImage handles PATCH /api/content/{id}/remove-image. Clears the
// image reference only; the stored file is not deleted.
func (h *Content) RemoveImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w)
		return
	}

	c, err := h.store.RemoveImage(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w)
			return
		}
		slog.Error("remove content image failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Failed to remove image.")
		return
	}

	h.cache.Invalidate(r.Context(), c.Slug)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: c, Message: "Image removed"})
}

// parseID reads the {id} route parameter. An unparseable ID cannot match
// any record, so callers treat it as not found.
func parseID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// parseRequestForm bounds the request body and parses the multipart form.
// Returns ("", 0) on success. Plain urlencoded bodies are accepted too;
// FormValue reads them without a multipart parse.
func parseRequestForm(w http.ResponseWriter, r *http.Request) (string, int) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024*1024)

	err := r.ParseMultipartForm(maxUploadSize)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return "", 0
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return "Request too large. Maximum upload size is 50 MB.", http.StatusRequestEntityTooLarge
	}
	return "Malformed form body.", http.StatusBadRequest
}

// saveImage extracts the optional image part, verifies its type by
// sniffing, and persists it. Returns the public reference, or nil when no
// file was sent. Storage failures surface as 500s; nothing is swallowed.
func (h *Content) saveImage(r *http.Request) (*string, string, int) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", 0
		}
		return nil, "Failed to read image upload.", http.StatusBadRequest
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		return nil, "Image too large. Maximum size is 50 MB.", http.StatusRequestEntityTooLarge
	}

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		return nil, "Failed to read image upload.", http.StatusInternalServerError
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	// SVG detection: DetectContentType returns text/xml or plain text for SVGs.
	if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}

	if !allowedImageTypes[contentType] {
		return nil, fmt.Sprintf("File type %q is not allowed for the image field.", contentType), http.StatusBadRequest
	}

	// Seek back to start after sniffing.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, "Failed to process image upload.", http.StatusInternalServerError
	}

	key := storage.UploadKey(header.Filename)
	if err := h.storage.Save(r.Context(), key, contentType, file, header.Size); err != nil {
		slog.Error("image upload failed", "error", err, "key", key)
		return nil, "Failed to store image.", http.StatusInternalServerError
	}

	ref := h.storage.PublicPath(key)
	return &ref, "", 0
}
