package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fr4nk3nst1ner/jobmap/internal/config"
	"github.com/fr4nk3nst1ner/jobmap/internal/dashboard"
	"github.com/fr4nk3nst1ner/jobmap/internal/dataset"
	"github.com/fr4nk3nst1ner/jobmap/internal/mapview"
	"github.com/fr4nk3nst1ner/jobmap/internal/models"
	"github.com/fr4nk3nst1ner/jobmap/internal/session"
	"github.com/fr4nk3nst1ner/jobmap/internal/ui"
	"github.com/fr4nk3nst1ner/jobmap/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	dataPath := flag.String("data", "", "CSV file of job listings (overrides config)")
	port := flag.String("port", "", "Port to listen on (overrides config)")
	variant := flag.String("variant", "", "Dashboard layout: numbered or arrowed (overrides config)")
	progress := flag.Bool("progress", false, "Show a progress bar while loading the data file")
	debug := flag.Bool("debug", false, "Enable debug logging")

	// Banner control flags (two aliases for the same functionality)
	silence := flag.Bool("silence", false, "Silence the banner")
	noBanner := flag.Bool("nobanner", false, "Silence the banner (alias for -silence)")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ui.PrintBanner(*silence || *noBanner)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *variant != "" {
		cfg.Display.Variant = *variant
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ds, err := loadListings(cfg.Data, *progress)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Data.Path).Msg("load listings")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newSessionStore(ctx, cfg.Session)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Session.Backend).Msg("create session store")
	}
	defer closeStore()

	layout := models.ParseVariant(cfg.Display.Variant)
	dash := dashboard.NewService(ds.Listings, dashboard.Options{
		Variant:  layout,
		PageSize: cfg.Display.PageSize,
		Map: mapview.Options{
			CenterLat: cfg.Display.Map.CenterLat,
			CenterLng: cfg.Display.Map.CenterLng,
			Zoom:      cfg.Display.Map.Zoom,
		},
	})

	srv, err := web.NewServer(cfg, dash, store)
	if err != nil {
		log.Fatal().Err(err).Msg("create web server")
	}

	if err := ui.PrintSummary(ui.Summary{
		DataPath: cfg.Data.Path,
		Read:     ds.Read,
		Kept:     ds.Len(),
		Dropped:  ds.Dropped,
		Cities:   len(dash.Facets().Cities),
		Variant:  string(layout),
		PageSize: cfg.Display.PageSize,
		Session:  cfg.Session.Backend,
		Addr:     cfg.Server.Addr(),
		APIAuth:  cfg.Auth.Enabled(),
	}); err != nil {
		log.Debug().Err(err).Msg("print summary")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("web server stopped")
		}
		return
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

// loadListings reads the data file, optionally behind a byte progress bar
func loadListings(cfg config.DataConfig, progress bool) (*dataset.Dataset, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	r, done := ui.ProgressReader(f, size, progress)
	ds, err := dataset.Load(r, dataset.Options{
		DropColumns: cfg.DropColumns,
		Comma:       cfg.Comma(),
	})
	done()
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("read", ds.Read).
		Int("listings", ds.Len()).
		Int("dropped", ds.Dropped).
		Msg("listings loaded")
	return ds, nil
}

// newSessionStore builds the configured page store and a func releasing it
func newSessionStore(ctx context.Context, cfg config.SessionConfig) (session.Store, func(), error) {
	switch cfg.Backend {
	case "redis":
		client, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(client, cfg.TTL), func() { client.Close() }, nil
	default:
		store := session.NewMemoryStore(cfg.TTL)
		go store.RunCleanup(ctx, 10*time.Minute)
		return store, func() {}, nil
	}
}
