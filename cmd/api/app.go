package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pet-companion/internal/adapters/auth/remote"
	"pet-companion/internal/adapters/notify/natsbus"
	mem "pet-companion/internal/adapters/storage/memory"
	"pet-companion/internal/adapters/storage/kvrest"
	pg "pet-companion/internal/adapters/storage/postgres"
	"pet-companion/internal/adapters/storage/sqlite"
	"pet-companion/internal/domain/care"
	"pet-companion/internal/platform/config"
	"pet-companion/internal/platform/logger"
	"pet-companion/internal/platform/metrics"
	"pet-companion/internal/router"
)

const shutdownTimeout = 10 * time.Second

func loadConfig(f serveFlags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(f.addr); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := strings.TrimSpace(f.logLevel); v != "" {
		cfg.Log.Level = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, f serveFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	opts := router.Options{
		Care: care.Options{
			TickInterval: cfg.Care.TickInterval,
			SaveDelay:    cfg.Care.SaveDelay,
			LoadTimeout:  cfg.Care.LoadTimeout,
			SaveTimeout:  cfg.Care.SaveTimeout,
		},
		Metrics: metrics.NewCare(),
		Logger:  log,
	}

	closeStore, err := wireStorage(ctx, cfg, &opts)
	if err != nil {
		return err
	}
	defer closeStore()
	log.Info("storage ready", map[string]any{"driver": cfg.Storage.Driver})

	if cfg.NATS.URL != "" {
		nc, err := natsbus.Connect(cfg.NATS.URL, cfg.Log.App)
		if err != nil {
			return err
		}
		defer nc.Drain()
		opts.Publisher = natsbus.NewPublisher(nc, cfg.NATS.SubjectPrefix)
		log.Info("publishing stats to nats", map[string]any{"url": cfg.NATS.URL, "prefix": cfg.NATS.SubjectPrefix})
	}

	if cfg.Auth.BaseURL != "" {
		v, err := remote.NewVerifier(remote.Config{
			BaseURL: cfg.Auth.BaseURL,
			APIKey:  cfg.Auth.APIKey,
			Timeout: cfg.Auth.Timeout,
		})
		if err != nil {
			return fmt.Errorf("auth verifier: %w", err)
		}
		opts.AuthVerifier = v
	}

	h, mgr := router.NewRouter(opts)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.HTTP.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = mgr.Shutdown(context.Background())
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", map[string]any{"error": err})
	}
	// Flush final de cada mascota activa antes de cerrar el store.
	if err := mgr.Shutdown(shutdownCtx); err != nil {
		log.Error("care shutdown", map[string]any{"error": err})
		return err
	}
	return nil
}

// wireStorage elige el stats store según el driver. Pets y actividad van a
// Postgres solo con driver postgres; el resto usa memoria.
func wireStorage(ctx context.Context, cfg *config.Config, opts *router.Options) (func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		opts.Stats = mem.NewStatsStore()
		return noop, nil

	case config.DriverPostgres:
		db, err := pg.Open(cfg.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		opts.Stats = pg.NewStatsStore(db)
		opts.PetsRepo = pg.NewPetsRepo(db)
		opts.ActivityRepo = pg.NewActivityRepo(db)
		return closeDB(db), nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		opts.Stats = sqlite.NewStatsStore(db)
		return closeDB(db), nil

	case config.DriverKV:
		s, err := kvrest.NewStatsStore(kvrest.Config{
			BaseURL: cfg.Storage.KV.BaseURL,
			APIKey:  cfg.Storage.KV.APIKey,
			Timeout: cfg.Storage.KV.Timeout,
		})
		if err != nil {
			return nil, err
		}
		opts.Stats = s
		return noop, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func closeDB(db *sql.DB) func() {
	return func() { _ = db.Close() }
}
