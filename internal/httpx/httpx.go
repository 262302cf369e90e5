// Package httpx contains the HTTP delivery layer for the Vanish frontend.
// It renders the creation form and the secret viewer, maps upstream API
// results onto view state, and enforces security headers and input
// validation. Handlers are split across files (index.go, create.go, view.go,
// prefs.go, health.go, errors.go).
package httpx

import (
	"context"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vanishlink/vanish/internal/config"
	"github.com/vanishlink/vanish/internal/domain"
	"github.com/vanishlink/vanish/internal/upstream"
)

// SecretClient abstracts the upstream API client used by the handlers.
// Satisfied by *upstream.Client in production and mocked in tests.
type SecretClient interface {
	Create(ctx context.Context, p upstream.CreatePayload) (upstream.Created, error)
	Retrieve(ctx context.Context, code, password string) (upstream.Outcome, error)
}

// Recorder is the subset of the metrics manager the handlers use.
// A nil Recorder disables recording.
type Recorder interface {
	Inc(name string, delta int64)
	Observe(name string, value int64)
}

// Clock abstracts time for deterministic TTL derivation in tests.
type Clock interface {
	Now() time.Time
}

// Handler wires HTTP endpoints to the upstream client and templates.
// It is safe for concurrent use. Zero-value is not valid; construct via New.
type Handler struct {
	Client    SecretClient
	Clock     Clock
	Metrics   Recorder                    // optional
	Readiness func(context.Context) error // optional readiness probe

	IndexTmpl  Renderer
	SecretTmpl Renderer
	AboutTmpl  Renderer
	ErrorTmpl  Renderer
	Assets     http.FileSystem

	MetricsHandler http.Handler // optional, mounted at /metrics

	BasePath      string
	DefaultTheme  config.Theme
	DefaultLocale string
	Limits        domain.Limits
}

// New returns a configured Handler.
func New(client SecretClient, clock Clock, lim domain.Limits) *Handler {
	return &Handler{Client: client, Clock: clock, Limits: lim, DefaultTheme: config.ThemeAuto}
}

// Router constructs the http.Handler with all routes mounted, honoring the
// configured base path.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(CorrelationIDMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(h.secureHeaders)

	r.Get("/", h.handleIndex)
	r.Post("/", h.handleCreateForm)
	r.Post("/api/links", h.handleCreateJSON)
	r.Get("/s/{code}", h.handleViewSecret)
	r.Post("/s/{code}", h.handleViewSecret)
	r.Post("/prefs", h.handlePrefs)
	r.Get("/about", h.handleAbout)
	r.Get("/healthz", h.handleHealth)
	r.Get("/readyz", h.handleReady)
	if h.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", h.MetricsHandler)
	}
	if h.Assets != nil {
		r.Get("/static/*", h.staticHandler())
	}

	if h.BasePath != "" {
		outer := chi.NewRouter()
		outer.Mount(h.BasePath, r)
		return outer
	}
	return r
}

// secureHeaders adds standard security and cache-control headers. Dynamic
// pages default to no-store; the static handler overrides with a short TTL.
func (h *Handler) secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		if ct := w.Header().Get("Content-Type"); ct == "" {
			w.Header().Set("Cache-Control", "no-store")
			w.Header().Set("Pragma", "no-cache")
		}
		w.Header().Set("Content-Security-Policy", "default-src 'none'; script-src 'self'; style-src 'self'; img-src 'self' data:; connect-src 'self'; font-src 'self'; frame-ancestors 'none'; base-uri 'none'; form-action 'self'")
		next.ServeHTTP(w, r)
	})
}

// staticHandler serves embedded assets under /static/. Directory listings
// and extensionless paths are rejected.
func (h *Handler) staticHandler() http.HandlerFunc {
	fileServer := http.FileServer(h.Assets)
	return func(w http.ResponseWriter, r *http.Request) {
		rest := chi.URLParam(r, "*")
		if rest == "" || strings.HasSuffix(rest, "/") || path.Ext(rest) == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=300")
		r2 := r.Clone(r.Context())
		r2.URL.Path = "/" + rest
		fileServer.ServeHTTP(w, r2)
	}
}

// inc/observe are nil-safe metric helpers.
func (h *Handler) inc(name string) {
	if h.Metrics != nil {
		h.Metrics.Inc(name, 1)
	}
}

func (h *Handler) observe(name string, v int64) {
	if h.Metrics != nil {
		h.Metrics.Observe(name, v)
	}
}

// now returns the clock time, defaulting to wall time when no clock is set.
func (h *Handler) now() time.Time {
	if h.Clock != nil {
		return h.Clock.Now()
	}
	return time.Now().UTC()
}
