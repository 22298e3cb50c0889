package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/lookupgo/internal/config"
	"github.com/specialistvlad/lookupgo/internal/ctxlog"
	"github.com/specialistvlad/lookupgo/internal/manifest"
	"github.com/specialistvlad/lookupgo/internal/scene"
)

// ErrNoManifest is returned by Load when no manifest path is configured.
var ErrNoManifest = errors.New("no scene manifest configured")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	cfg      *config.Config
	catalog  *scene.Catalog
	manifest *manifest.Manifest
	scene    *scene.Scene
}

// NewApp creates an App writing results to outW and logs to logW. It has its
// own logger and catalog; nothing global is touched.
func NewApp(outW, logW io.Writer, cfg *config.Config) *App {
	logger := newLogger(cfg.Logging.Level, cfg.Logging.Format, logW)
	logger.Debug("Logger configured successfully.", "level", cfg.Logging.Level, "format", cfg.Logging.Format)

	return &App{
		outW:    outW,
		logger:  logger,
		cfg:     cfg,
		catalog: scene.NewCatalog(logger),
	}
}

// Context returns ctx carrying the app logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Load reads the configured manifests and builds the scene.
func (a *App) Load(ctx context.Context) error {
	ctx = a.Context(ctx)
	if len(a.cfg.Scene.Manifests) == 0 {
		return ErrNoManifest
	}

	m, err := manifest.Load(ctx, a.cfg.Scene.Manifests...)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}
	if len(m.Actors) == 0 && len(m.Cameras) == 0 {
		a.logger.Warn("Manifest declares no objects.", "paths", a.cfg.Scene.Manifests)
	}

	sc, err := manifest.Build(ctx, m, a.catalog)
	if err != nil {
		return fmt.Errorf("failed to build scene: %w", err)
	}

	a.manifest = m
	a.scene = sc
	return nil
}

// Scene returns the loaded scene, or nil before Load. Primarily for tests.
func (a *App) Scene() *scene.Scene { return a.scene }

// Catalog returns the app catalog.
func (a *App) Catalog() *scene.Catalog { return a.catalog }

// Close disposes the scene.
func (a *App) Close() {
	if a.scene != nil {
		a.scene.Dispose()
		a.scene = nil
	}
}
