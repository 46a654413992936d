package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"deploy-dashboard/internal/config"
	"deploy-dashboard/internal/database"
)

func setupTestServer(t *testing.T) *Server {
	db, err := database.InitDB(filepath.Join(t.TempDir(), "server.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	cfg := &config.Config{
		Port:          "16166",
		LinkBaseURL:   "https://sentry.example.com",
		DefaultLocale: "en",
		IngestSecret:  "test-secret",
	}
	return NewServer(cfg, db, nil)
}

func do(s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func TestRoutes(t *testing.T) {
	s := setupTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"health", "GET", "/health", http.StatusOK},
		{"widget html", "GET", "/xyz/abc/deploys", http.StatusOK},
		{"widget json", "GET", "/xyz/abc/deploys.json", http.StatusOK},
		{"unknown project api", "GET", "/api/projects/abc", http.StatusNotFound},
		{"wrong method", "POST", "/health", http.StatusMethodNotAllowed},
		{"unknown route", "GET", "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(s, tt.method, tt.path, "", nil)
			if rr.Code != tt.expectedStatus {
				t.Errorf("%s %s = %v, want %v", tt.method, tt.path, rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestIngestRequiresSecret(t *testing.T) {
	s := setupTestServer(t)
	body := `{"version":"v2","environment":"production","dateFinished":"2024-03-01T00:00:00Z"}`

	rr := do(s, "POST", "/api/projects/abc/deploys", body, map[string]string{"X-Secret-Key": "wrong"})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status without valid secret = %v, want %v", rr.Code, http.StatusUnauthorized)
	}

	rr = do(s, "POST", "/api/projects/abc/deploys", body, map[string]string{"X-Secret-Key": "test-secret"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status with secret = %v, want %v: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	rr = do(s, "GET", "/xyz/abc/deploys", "", nil)
	if !strings.Contains(rr.Body.String(), `href="https://sentry.example.com/xyz/abc/releases/v2/"`) {
		t.Errorf("widget missing release link:\n%s", rr.Body.String())
	}
}
