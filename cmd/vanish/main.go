// Package main provides the vanish binary entry point that serves the web
// frontend for a self-destructing secret link service. It loads configuration,
// opens the metrics database, parses the embedded templates, and runs the
// HTTP server until interrupted.
//
// The application flow:
//  1. Load and validate configuration.
//  2. Ensure the data directory and open the metrics database.
//  3. Parse partials plus page templates from the web assets.
//  4. Wire the upstream API client, metrics manager, and HTTP handlers.
//  5. Serve until SIGINT/SIGTERM, then drain connections and flush metrics.
package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vanishlink/vanish/internal/config"
	"github.com/vanishlink/vanish/internal/domain"
	"github.com/vanishlink/vanish/internal/httpx"
	"github.com/vanishlink/vanish/internal/metrics"
	"github.com/vanishlink/vanish/internal/upstream"
	"github.com/vanishlink/vanish/web"
)

// realClock implements httpx.Clock using time.Now.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "err", err)
		os.Exit(2)
	}
	return cfg
}

// ensureDataDir creates the metrics data directory when missing.
func ensureDataDir(dir string) error {
	st, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.MkdirAll(dir, 0o700)
		}
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("data path %s is not a directory", dir)
	}
	return nil
}

// openDatabase opens the metrics database and verifies the file is usable.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", cfg.SQLiteDSN())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

type templates struct{ index, about, secret, errorPage *template.Template }

// tplSpec describes a template file to parse with a name added to the base partials template.
type tplSpec struct{ name, file string }

// loadTemplates parses partials plus page templates using a generic loop to avoid duplication.
func loadTemplates() (*templates, error) {
	return loadTemplatesFrom(web.Assets)
}

func loadTemplatesFrom(fsys fs.FS) (*templates, error) {
	partialsBytes, err := fs.ReadFile(fsys, "partials.tmpl.html")
	if err != nil {
		return nil, err
	}
	base := string(partialsBytes)
	specs := []tplSpec{
		{"index", "index.tmpl.html"},
		{"about", "about.tmpl.html"},
		{"secret", "secret.tmpl.html"},
		{"error", "error.tmpl.html"},
	}
	out := &templates{}
	for _, spec := range specs {
		pageBytes, err := fs.ReadFile(fsys, spec.file)
		if err != nil {
			return nil, err
		}
		t, err := template.New("partials").Parse(base)
		if err == nil {
			t, err = t.New(spec.name).Parse(string(pageBytes))
		}
		if err != nil {
			return nil, err
		}
		switch spec.name {
		case "index":
			out.index = t
		case "about":
			out.about = t
		case "secret":
			out.secret = t
		case "error":
			out.errorPage = t
		}
	}
	return out, nil
}

// apiClient joins the handler-facing client surface with the reachability
// probe readiness uses.
type apiClient interface {
	httpx.SecretClient
	Ping(ctx context.Context) error
}

func buildHandler(cfg *config.Config, client apiClient, mgr *metrics.Manager, tmpls *templates) http.Handler {
	lim := domain.Limits{MaxSecretBytes: cfg.MaxSecretBytes, MinTTL: cfg.MinTTL, MaxTTL: cfg.MaxTTL}
	h := httpx.New(client, realClock{}, lim)
	h.Metrics = mgr
	// Readiness tracks the one collaborator this frontend cannot work
	// without; the metrics database stays out of the gate.
	h.Readiness = client.Ping
	h.IndexTmpl = httpx.TemplateRenderer{T: tmpls.index}
	h.AboutTmpl = httpx.TemplateRenderer{T: tmpls.about}
	h.SecretTmpl = httpx.TemplateRenderer{T: tmpls.secret}
	h.ErrorTmpl = httpx.TemplateRenderer{T: tmpls.errorPage}
	h.Assets = http.FS(web.Assets)
	h.MetricsHandler = metrics.Handler(mgr, cfg.MetricsToken)
	h.BasePath = cfg.BasePath
	h.DefaultTheme = cfg.DefaultTheme
	h.DefaultLocale = cfg.DefaultLocale
	return h.Router()
}

func newServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{Addr: cfg.Addr, Handler: handler, ReadTimeout: 5 * time.Second, WriteTimeout: 10 * time.Second, IdleTimeout: 120 * time.Second}
}

func run() error {
	cfg := loadConfig()
	if err := ensureDataDir(cfg.DataDir); err != nil {
		return fmt.Errorf("data directory: %w", err)
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("metrics database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mgr := metrics.New(db, metrics.Config{FlushInterval: cfg.MetricsFlush})
	if err := mgr.InitSchema(ctx); err != nil {
		return err
	}
	mgr.Start(ctx)

	client := upstream.New(cfg.UpstreamURL, cfg.UpstreamTimeout, nil)
	tmpls, err := loadTemplates()
	if err != nil {
		return err
	}

	srv := newServer(cfg, buildHandler(cfg, client, mgr, tmpls))
	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.Addr, "upstream", cfg.UpstreamURL, "pid", os.Getpid())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("shutdown", "err", err)
		}
		mgr.Stop(shutdownCtx)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
