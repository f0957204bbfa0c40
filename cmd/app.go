package cmd

import (
	"context"
	"net/http"
	"time"

	"hotel-catalog/config"
	"hotel-catalog/fetcher"
	"hotel-catalog/scraper/site"
	"hotel-catalog/storage"
	"hotel-catalog/utils"
)

// app is what every command runs against: resolved config, logger, the
// catalog sources and, when enabled, the snapshot store.
type app struct {
	cfg    *config.Config
	logger *utils.Logger
	client *fetcher.Client
	store  *storage.SnapshotStore
}

// newApp loads config and wires the sources. requireStore makes a snapshot
// store connection failure fatal; otherwise it only disables degraded mode.
func newApp(ctx context.Context, requireStore bool) (*app, error) {
	cfg, err := config.Load(nil)
	if err != nil {
		return nil, err
	}

	logger := utils.NewLogger(utils.ParseLevel(cfg.LogLevel))
	a := &app{
		cfg:    cfg,
		logger: logger,
		client: fetcher.NewClient(cfg.APIBaseURL, &http.Client{Timeout: 30 * time.Second}, logger),
	}

	if cfg.SnapshotEnabled || requireStore {
		retry := &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		}
		store, err := storage.NewSnapshotStore(ctx, cfg.DSN(), retry, logger)
		switch {
		case err == nil:
			a.store = store
		case requireStore:
			return nil, err
		default:
			logger.Warn("[app] Snapshot store unavailable, degraded mode disabled: %v", err)
		}
	}
	return a, nil
}

// catalogSource picks the REST client or the rendered site per CATALOG_SOURCE.
// Availability always comes from the API.
func (a *app) catalogSource() fetcher.CatalogSource {
	if a.cfg.CatalogSource == config.SourceBrowser {
		return site.NewBrowserSource(a.cfg.SiteURL, a.cfg.ChromeBin, a.logger)
	}
	return a.client
}

func (a *app) loader() *fetcher.Loader {
	l := fetcher.NewLoader(a.catalogSource(), a.client, a.logger)
	if a.store != nil {
		l.WithSnapshot(a.store)
	}
	return l
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("[app] Closing snapshot store: %v", err)
		}
	}
}
