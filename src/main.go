package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contre95/discogsmeta/src/features/config"
	"github.com/contre95/discogsmeta/src/features/hosting"
	"github.com/contre95/discogsmeta/src/features/logging"
	"github.com/contre95/discogsmeta/src/features/metadata"
	"github.com/contre95/discogsmeta/src/features/metrics"
	"github.com/contre95/discogsmeta/src/infra/discogs"
	"github.com/contre95/discogsmeta/src/infra/tag"
	"github.com/contre95/discogsmeta/src/infra/watcher"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	// Load configuration
	cfgManager, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Setup default logger with slog
	slog.SetDefault(logging.SetupLogger(cfgManager))

	cfg := cfgManager.Get()
	timeout := time.Duration(cfg.Discogs.TimeoutSeconds) * time.Second

	// Metrics are always collected; the config only decides whether they are served
	appMetrics := metrics.New()

	catalog := discogs.NewClient(discogs.Options{
		BaseURL:           cfg.Discogs.APIURL,
		Token:             cfg.Discogs.Token,
		UserAgent:         cfg.Discogs.UserAgent,
		RequestsPerMinute: cfg.Discogs.RequestsPerMinute,
		Timeout:           timeout,
		Observer:          appMetrics,
	})

	albums, err := metadata.NewAlbumResolver(catalog, cfgManager, appMetrics)
	if err != nil {
		log.Fatalf("failed to create album resolver: %v", err)
	}
	artists, err := metadata.NewArtistResolver(catalog, cfgManager, appMetrics)
	if err != nil {
		log.Fatalf("failed to create artist resolver: %v", err)
	}

	proxy := metadata.NewImageProxy(&http.Client{Timeout: timeout}, cfg.Discogs.UserAgent, cfg.Discogs.ImageHosts)
	metadataService := metadata.NewService(albums, artists, proxy, tag.NewTagReader(), cfgManager)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reload the configuration when the file changes
	if cfg.WatchConfig {
		events := make(chan watcher.FileEvent, 1)
		configWatcher, err := watcher.NewWatcher(events, 0)
		if err != nil {
			slog.Error("Failed to create config watcher", "error", err)
		} else if err := configWatcher.Start(ctx, *configPath); err != nil {
			slog.Error("Failed to watch config file", "path", *configPath, "error", err)
		} else {
			defer configWatcher.Stop()
			go reloadOnChange(ctx, cfgManager, *configPath, events)
		}
	}

	// Create and start the HTTP server
	server := hosting.NewServer(cfgManager, metadataService, metrics.NewHandler(metrics.NewService(appMetrics)))
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfg.Server.Port)

	// Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")
	cancel()

	if err := server.Shutdown(); err != nil {
		log.Fatalf("failed to shutdown server: %v", err)
	}
	slog.Info("Server gracefully shut down.")
}

// reloadOnChange applies every change of the config file until ctx is done. The catalog
// client keeps the token and rate it was built with; resolver flags apply immediately.
func reloadOnChange(ctx context.Context, cfgManager *config.Manager, path string, events <-chan watcher.FileEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-events:
			if event.EventType == watcher.FileRemoved {
				slog.Warn("Config file removed, keeping the current configuration", "path", path)
				continue
			}
			if err := config.Reload(cfgManager, path); err != nil {
				continue
			}
			slog.SetDefault(logging.SetupLogger(cfgManager))
			slog.Info("Configuration reloaded", "path", path)
		}
	}
}
