package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/haulcalc/internal/config"
	"github.com/Simplici0/haulcalc/internal/db"
	"github.com/Simplici0/haulcalc/internal/format"
	"github.com/Simplici0/haulcalc/internal/logger"
	"github.com/Simplici0/haulcalc/internal/migrations"
	"github.com/Simplici0/haulcalc/internal/pricing"
	"github.com/Simplici0/haulcalc/internal/seed"
	"github.com/Simplici0/haulcalc/web"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	db        *sql.DB
	log       *zap.Logger
	inputMode pricing.ParseMode
	templates map[string]*template.Template
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "haulcalc: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := migrations.Up(ctx, database, log); err != nil {
		return err
	}

	stats, err := seed.Run(ctx, database, seed.Config{RateCard: pricing.DefaultRateCard()})
	if err != nil {
		return err
	}
	log.Info("database ready",
		zap.String("path", cfg.DBPath),
		zap.Int("seed_inserts", stats.Inserts),
	)

	srv, err := newServer(database, log, cfg.InputMode)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			zap.String("addr", httpServer.Addr),
			zap.String("env", cfg.Env),
			zap.Stringer("input_mode", cfg.InputMode),
		)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func newServer(database *sql.DB, log *zap.Logger, inputMode pricing.ParseMode) (*server, error) {
	templates, err := parseTemplates(web.Templates(), "calculator.html", "admin_rates.html")
	if err != nil {
		return nil, err
	}

	return &server{
		db:        database,
		log:       log,
		inputMode: inputMode,
		templates: templates,
	}, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	r.Get("/", s.handleCalculator)
	r.Post("/api/quote", s.handleQuoteAPI)
	r.Get("/admin/rates", s.handleAdminRatesForm)
	r.Post("/admin/rates", s.handleAdminRatesSubmit)
	r.Get("/healthz", s.handleHealth)

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.log.Error("health check failed", zap.Error(err))
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func parseTemplates(fsys fs.FS, pages ...string) (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"dollars": format.WholeDollars,
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(fsys, "layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = tmpl
	}
	return templates, nil
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := s.templates[page]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		s.log.Error("render template", zap.String("page", page), zap.Error(err))
	}
}
