// Package picstash is a small image hosting service built with Go, Echo,
// and templ. It accepts image uploads, stores the originals on disk,
// derives 100x100 thumbnails on a background worker, and serves both back
// by numeric id with substring tag search.
package picstash

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	_ "modernc.org/sqlite"
)

// App is the central picstash application. It wires together the record
// store, blob store, thumbnail worker, middleware, and handlers.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  *Store
	Blobs  *BlobStore
	Thumbs *Thumbnailer

	worker *ThumbnailWorker
}

// New creates a picstash App with the given configuration.
func New(cfg Config) *App {
	cfg.setDefaults()
	return &App{
		Config: cfg,
		Echo:   echo.New(),
	}
}

// Start initializes storage, runs the thumbnail backfill, and serves HTTP
// until the server stops.
func (a *App) Start() error {
	if err := a.init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// init wires storage, the worker, middleware, and routes. Split from Start
// so tests can exercise the full app without binding a listener.
func (a *App) init() error {
	if a.Config.DatabaseURL == "" {
		return fmt.Errorf("picstash: DatabaseURL is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("picstash: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("picstash: init store: %w", err)
	}
	a.Store = store

	blobs, err := NewBlobStore(a.Config.DataDir)
	if err != nil {
		return fmt.Errorf("picstash: init blob store: %w", err)
	}
	a.Blobs = blobs
	a.Thumbs = NewThumbnailer(blobs)

	if err := Backfill(a.Store, a.Blobs, a.Thumbs); err != nil {
		return fmt.Errorf("picstash: %w", err)
	}

	a.worker = NewThumbnailWorker(a.Thumbs, a.Echo.Logger, a.Config.QueueDepth)

	a.setupMiddleware()
	a.setupRoutes()
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/", a.handleIndex)
	e.POST("/upload", a.handleUpload)
	e.GET("/image/:id", a.handleImage)
	e.GET("/thumb/:id", a.handleThumb)
	e.GET("/images", a.handleList)
	e.POST("/search", a.handleSearch)
}

// Close drains the thumbnail queue and releases resources. Call this when
// the app is shutting down.
func (a *App) Close() error {
	if a.worker != nil {
		a.worker.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("picstash: required environment variable %s is not set", key)
	}
	return v
}
