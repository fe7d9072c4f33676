// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Parsing and validation tests run anywhere; CRUD tests are integration
// tests skipped when PostgreSQL is unavailable.
package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"contentpress/internal/database"
	"contentpress/internal/storage"
	"contentpress/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "contentpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "contentpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds the handler under test with its dependencies.
type testEnv struct {
	handler   *Content
	router    chi.Router
	db        *sql.DB
	uploadDir string
}

// newTestEnv wires a Content handler against the test database, a temp
// upload directory, and no cache.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	dir := t.TempDir()
	local, err := storage.NewLocal(dir)
	if err != nil {
		t.Fatalf("local storage: %v", err)
	}

	h := NewContent(store.NewContentStore(db), local, nil)
	return &testEnv{
		handler:   h,
		router:    contentRoutes(h),
		db:        db,
		uploadDir: dir,
	}
}

// contentRoutes mirrors the real route table for the content API.
func contentRoutes(h *Content) chi.Router {
	r := chi.NewRouter()
	r.Route("/api/content", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/slug/{slug}", h.GetBySlug)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Patch("/{id}/remove-image", h.RemoveImage)
	})
	return r
}

// do serves a request through the route table and returns the recorder.
func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// cleanSlugs removes test rows after the test.
func (env *testEnv) cleanSlugs(t *testing.T, slugs ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, s := range slugs {
			env.db.Exec("DELETE FROM content WHERE slug = $1", s)
		}
	})
}

// apiResponse decodes an envelope whose data is a single record.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not a valid envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return resp
}

// record is the wire shape of a content record as tests read it.
type record struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Slug            string              `json:"slug"`
	Category        string              `json:"category"`
	Description     string              `json:"description"`
	Image           *string             `json:"image"`
	Table           []map[string]any    `json:"table"`
	MetaTitle       *string             `json:"metaTitle"`
	MetaDescription *string             `json:"metaDescription"`
	CanonicalTag    *string             `json:"canonicalTag"`
	MetaKeywords    []string            `json:"metaKeywords"`
	FAQSchema       []map[string]string `json:"faqSchema"`
	CreatedAt       string              `json:"createdAt"`
	UpdatedAt       string              `json:"updatedAt"`
}

func decodeRecord(t *testing.T, rec *httptest.ResponseRecorder) (apiResponse, record) {
	t.Helper()
	resp := decodeEnvelope(t, rec)
	var c record
	if err := json.Unmarshal(resp.Data, &c); err != nil {
		t.Fatalf("data is not a record: %v\ndata: %s", err, resp.Data)
	}
	return resp, c
}

// multipartUpload builds a multipart request with form fields plus a file
// part under the given field name.
func multipartUpload(t *testing.T, method, target string, fields map[string]string, fileField, filename string, fileBody []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %q: %v", k, err)
		}
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := io.Copy(fw, bytes.NewReader(fileBody)); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	mw.Close()

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// multipartForm is multipartUpload without a file part.
func multipartForm(t *testing.T, method, target string, fields map[string]string) *http.Request {
	t.Helper()
	return multipartUpload(t, method, target, fields, "", "", nil)
}
