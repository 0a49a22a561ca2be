package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"github.com/birrflow/birrflow/internal/config"
	"github.com/birrflow/birrflow/internal/database"
)

// Application wires configuration, database, router, scheduler, and
// server lifecycle.
type Application struct {
	cfg       config.Application
	db        *sql.DB
	router    *mux.Router
	srv       *http.Server
	scheduler *cron.Cron
	deps      *Dependencies
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	deps := BuildDependencies(db, cfg)

	SetupMiddleware(r, deps, cfg)

	RegisterRoutes(r, deps, cfg)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Alerts.Schedule, func() {
		deps.AlertService.Run(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("invalid alert schedule %q: %w", cfg.Alerts.Schedule, err)
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(r)

	srv := &http.Server{
		Handler:      handler,
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{
		cfg:       cfg,
		db:        db,
		router:    r,
		srv:       srv,
		scheduler: scheduler,
		deps:      deps,
	}, nil
}

// Run starts the scheduler and the HTTP server, then blocks until the
// process receives an interrupt and the server has drained.
func (a *Application) Run() error {
	a.scheduler.Start()
	if a.cfg.Alerts.RunOnStart {
		go a.deps.AlertService.Run(context.Background())
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Infof("Received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown failed: %v", err)
	}

	cronCtx := a.scheduler.Stop()
	<-cronCtx.Done()

	if err := a.db.Close(); err != nil {
		log.Errorf("closing database failed: %v", err)
	}
	return nil
}
