package http

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"salesdash/internal/config"
	"salesdash/internal/services"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:               "8080",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       30 * time.Second,
		IdleTimeout:        60 * time.Second,
		MaxUploadBytes:     10 << 20,
		MaxRows:            10000,
		PreviewRows:        5,
		RateLimitPerMinute: 1000,
		LogLevel:           "error",
	}
}

func testServer(t *testing.T) *Server {
	t.Helper()
	svc := services.NewDashboardService(5, 10000)
	srv := NewServer(":0", svc, testConfig())
	t.Cleanup(func() {
		srv.rateLimiter.stop()
	})
	return srv
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("dataset", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, mw.FormDataContentType()
}

const sampleCSV = "Category,$ Sales,Date Ordered,Service Satisfaction Rating\n" +
	"Smoothie,300,2024-01-01,5\n" +
	"Juice,100,2024-01-02,4\n"

func TestHealthEndpoints(t *testing.T) {
	srv := testServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestIndexBeforeUpload(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please upload") {
		t.Error("empty dashboard should prompt for an upload")
	}
}

func TestIndexUnknownPath(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /nope = %d, want 404", rec.Code)
	}
}

func TestUploadAndRender(t *testing.T) {
	srv := testServer(t)

	body, contentType := multipartUpload(t, "sales.csv", []byte(sampleCSV))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /upload = %d, want 303: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, rec.Header().Get("Location"), nil)
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	page := rec.Body.String()
	if !strings.Contains(page, "Successfully analyzed") {
		t.Error("dashboard should confirm the upload after redirect")
	}
	if !strings.Contains(page, "Smoothie") {
		t.Error("rendered dashboard should show the top category")
	}
	if !strings.Contains(page, "Total Sales by Category") {
		t.Error("rendered dashboard should include the category chart title")
	}
	if !strings.Contains(page, "sales.csv") {
		t.Error("rendered dashboard should name the uploaded dataset")
	}
}

func TestUploadRendersColumnWarnings(t *testing.T) {
	srv := testServer(t)

	// No sales column: the resolver warning must render as a warning,
	// distinct from the per-view error notices.
	csv := "Category,Date Ordered,Service Satisfaction Rating\n" +
		"Smoothie,2024-01-01,5\n"
	body, contentType := multipartUpload(t, "sales.csv", []byte(csv))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /upload = %d, want 303: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	page := rec.Body.String()
	if !strings.Contains(page, "notice-warning") {
		t.Error("unresolved-role warning should use the warning notice class")
	}
	if !strings.Contains(page, "notice-error") {
		t.Error("unavailable views should still carry error notices")
	}
}

func TestUploadRejectsUnknownExtension(t *testing.T) {
	srv := testServer(t)

	body, contentType := multipartUpload(t, "sales.txt", []byte(sampleCSV))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("POST /upload .txt = %d, want 400", rec.Code)
	}
}

func TestUploadCorruptWorkbook(t *testing.T) {
	srv := testServer(t)

	body, contentType := multipartUpload(t, "sales.xlsx", []byte("not a workbook"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("POST /upload corrupt = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "could not be processed") {
		t.Error("failure page should carry the dashboard-level notice")
	}
}

func TestUploadMethodNotAllowed(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/upload", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /upload = %d, want 405", rec.Code)
	}
}

func TestUploadRateLimited(t *testing.T) {
	svc := services.NewDashboardService(5, 10000)
	cfg := testConfig()
	cfg.RateLimitPerMinute = 1
	srv := NewServer(":0", svc, cfg)
	t.Cleanup(func() { srv.rateLimiter.stop() })

	for i := 0; i < 2; i++ {
		body, contentType := multipartUpload(t, "sales.csv", []byte(sampleCSV))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		req.RemoteAddr = "203.0.113.9:4567"
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, req)

		if i == 1 && rec.Code != http.StatusTooManyRequests {
			t.Errorf("second POST = %d, want 429", rec.Code)
		}
	}
}

func TestSampleDownload(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/sample.csv", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /sample.csv = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	data, _ := io.ReadAll(rec.Body)
	if !bytes.Contains(data, []byte("Date Ordered")) {
		t.Error("sample dataset should carry the expected headers")
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{1536, "1.5 KB"},
		{10 << 20, "10.0 MB"},
	}
	for _, tt := range tests {
		if got := formatFileSize(tt.size); got != tt.want {
			t.Errorf("formatFileSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
