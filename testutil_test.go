package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

// setupTestDB opens a migrated sqlite database in a temporary directory.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := Config{DatabaseURL: "sqlite:///" + filepath.Join(t.TempDir(), "test.db")}
	db, err := openDB(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// getTestConfig returns a configuration with caching and mail disabled.
func getTestConfig() Config {
	return Config{
		Port:          8000,
		SMTPPort:      587,
		SMTPFromEmail: "noreply@portfolio.com",
	}
}

// setupTestServer returns the API handler backed by a fresh database.
func setupTestServer(t *testing.T, cfg Config, mailer Mailer) (*Server, http.Handler) {
	t.Helper()
	srv := NewServer(setupTestDB(t), cfg, mailer)
	return srv, srv.Routes()
}

// makeRequest creates an HTTP test request with an optional JSON body.
func makeRequest(method, path string, body interface{}) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	var raw []byte
	switch b := body.(type) {
	case string:
		raw = []byte(b)
	default:
		raw, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// do sends a request through h and returns the recorded response.
func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, makeRequest(method, path, body))
	return w
}

// assertStatus checks that the response has the expected status code.
func assertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Fatalf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// decodeJSON decodes the response body into v.
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

func strPtr(s string) *string { return &s }
