// Package server exposes the worksheet flow over HTTP: a small HTML page
// plus a JSON API backed by a session.Manager.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"

	"github.com/abhisek/mathsheet/internal/session"
)

const (
	DefaultAddr     = "127.0.0.1:8080"
	DefaultTokenTTL = 24 * time.Hour

	cookieName     = "mathsheet"
	cookieSession  = "sid"
	shutdownPeriod = 10 * time.Second
)

// Config configures the HTTP server.
type Config struct {
	Addr           string
	AllowedOrigins []string

	// Secret signs session cookies and bearer tokens. A random secret is
	// generated when empty, so logins do not survive a restart.
	Secret   []byte
	TokenTTL time.Duration

	// SecureCookies marks the session cookie Secure (HTTPS only).
	SecureCookies bool
}

// DefaultConfig returns a loopback server config with a fresh secret.
func DefaultConfig() Config {
	return Config{
		Addr:     DefaultAddr,
		TokenTTL: DefaultTokenTTL,
	}
}

// ConfigFromEnv overlays MATHSHEET_ADDR, MATHSHEET_SECRET and
// MATHSHEET_ALLOWED_ORIGINS (comma separated) on the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("MATHSHEET_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("MATHSHEET_SECRET"); v != "" {
		cfg.Secret = []byte(v)
	}
	if v := os.Getenv("MATHSHEET_ALLOWED_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	return cfg
}

// Server serves the worksheet UI and API.
type Server struct {
	config   Config
	sessions *session.Manager
	cookies  *sessions.CookieStore
	tokens   *tokenIssuer
	handler  http.Handler
}

// New builds a Server around mgr.
func New(mgr *session.Manager, cfg Config) (*Server, error) {
	if mgr == nil {
		return nil, errors.New("session manager is required")
	}
	if len(cfg.Secret) == 0 {
		cfg.Secret = securecookie.GenerateRandomKey(32)
		if cfg.Secret == nil {
			return nil, errors.New("generate server secret")
		}
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}

	cookies := sessions.NewCookieStore(cfg.Secret)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}

	s := &Server{
		config:   cfg,
		sessions: mgr,
		cookies:  cookies,
		tokens:   &tokenIssuer{secret: cfg.Secret, ttl: cfg.TokenTTL, now: time.Now},
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root handler, CORS included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.requireSession(s.handleLogout))
	mux.HandleFunc("GET /api/me", s.requireSession(s.handleMe))
	mux.HandleFunc("POST /api/worksheets", s.requireSession(s.handleGenerate))
	mux.HandleFunc("GET /api/worksheets/current", s.requireSession(s.handleCurrent))
	mux.HandleFunc("GET /api/worksheets/current/download", s.requireSession(s.handleDownload))
	mux.HandleFunc("POST /api/upgrade", s.requireSession(s.handleUpgrade))
	mux.HandleFunc("POST /api/upgrade/dismiss", s.requireSession(s.handleDismissUpgrade))

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Accept", "Origin"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           86400,
	})
	return c.Handler(logRequests(mux))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.config.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()
	log.Printf("Shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
