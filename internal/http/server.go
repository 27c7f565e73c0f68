package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"salesdash/assets"
	"salesdash/internal/config"
	applog "salesdash/internal/log"
	"salesdash/internal/services"
	appweb "salesdash/web"
)

type Server struct {
	http.Server
	templates  *template.Template
	dashboards *services.DashboardService

	maxUploadBytes int64
	rateLimiter    *rateLimiter
	metrics        *securityMetrics
	shutdownOnce   sync.Once

	// current holds the last computed dashboard; every upload replaces
	// it wholesale. There is no other cross-request state.
	mu      sync.Mutex
	current *services.Dashboard
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, svc *services.DashboardService, cfg *config.Config) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		dashboards:     svc,
		maxUploadBytes: cfg.MaxUploadBytes,
		rateLimiter:    newRateLimiter(cfg.RateLimitPerMinute),
		metrics:        &securityMetrics{},
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/", s.withSecurity(s.handleIndex))
	mux.HandleFunc("/upload", s.withSecurity(s.handleUpload))
	mux.HandleFunc("/sample.csv", s.withSecurity(s.handleSample))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	return s
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurity adds security headers, rate limiting, and request logging.
func (s *Server) withSecurity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		reqLogger := applog.FromContext(ctx).
			WithComponent(applog.ComponentHTTP).
			With(applog.FieldRequestID, requestID, applog.FieldClientIP, clientIP)
		ctx = applog.WithLogger(ctx, reqLogger)
		r = r.WithContext(ctx)

		reqLogger.Info("Request started",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldUserAgent, r.Header.Get("User-Agent"))

		if detectSuspiciousRequest(r, s.metrics) {
			reqLogger.Warn("Suspicious request",
				applog.FieldComponent, applog.ComponentSecurity,
				applog.FieldPath, r.URL.Path)
		}

		// Uploads are the expensive path; everything else is cheap reads.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP, s.metrics) {
			reqLogger.Warn("Rate limit exceeded",
				applog.FieldComponent, applog.ComponentSecurity,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		reqLogger.Info("Request completed",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, duration.Milliseconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleSample serves the embedded demo dataset so users can try the
// dashboard without hunting for a file.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="juice_sales_sample.csv"`)
	_, _ = w.Write(assets.SampleSalesCSV)
}

// setCurrent replaces the stored dashboard; the previous one is gone.
func (s *Server) setCurrent(d *services.Dashboard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = d
}

func (s *Server) getCurrent() *services.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
