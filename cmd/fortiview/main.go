package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/netsentry/fortiview/internal/auth"
	"github.com/netsentry/fortiview/internal/config"
	"github.com/netsentry/fortiview/internal/fortigate"
	"github.com/netsentry/fortiview/internal/inventory"
	"github.com/netsentry/fortiview/internal/metrics"
	"github.com/netsentry/fortiview/internal/server"
	"github.com/netsentry/fortiview/internal/services"
	"github.com/netsentry/fortiview/internal/settings"
	"github.com/netsentry/fortiview/internal/store"
	"github.com/netsentry/fortiview/internal/version"
	"github.com/netsentry/fortiview/internal/whitelist"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("FortiView server starting", zap.String("version", version.Short()))

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Open the SQLite store and build repositories
	st, err := store.New(cfg.GetString("db.path"))
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settingsRepo, err := services.NewSQLiteSettingsRepository(ctx, st)
	if err != nil {
		logger.Fatal("failed to initialize settings store", zap.Error(err))
	}
	whitelistRepo, err := services.NewSQLiteWhitelistRepository(ctx, st)
	if err != nil {
		logger.Fatal("failed to initialize whitelist store", zap.Error(err))
	}

	if err := seedSettings(ctx, settingsRepo, cfg); err != nil {
		logger.Fatal("failed to seed settings", zap.Error(err))
	}

	// Wire the services
	m := metrics.New()
	client := fortigate.NewClient(fortigate.DefaultTimeout, logger, m)
	inventorySvc := inventory.NewService(client, whitelistRepo, settingsRepo, logger)

	secret := cfg.GetString("auth.jwt_secret")
	if secret == "" {
		// No configured secret: generate one per process. Tokens stop
		// working across restarts, which is acceptable for a dashboard.
		secret = uuid.New().String()
		logger.Warn("auth.jwt_secret not set, using an ephemeral secret")
	}
	authSvc := auth.NewService(settingsRepo, []byte(secret), cfg.GetDuration("auth.token_ttl"), logger)
	authHandler := auth.NewHandler(authSvc, logger)

	// Create the HTTP server and mount feature routes
	addr := cfg.GetString("server.host") + ":" + cfg.GetString("server.port")
	srv := server.New(addr, logger, m)

	authHandler.RegisterRoutes(srv.Mux())
	inventory.NewHandler(inventorySvc, logger).RegisterRoutes(srv.Mux())
	whitelist.NewHandler(whitelistRepo, logger).RegisterRoutes(srv.Mux(), authHandler.RequireAuth)
	settings.NewHandler(settingsRepo, logger).RegisterRoutes(srv.Mux(), authHandler.RequireAuth)

	// Start server in background
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("FortiView server ready", zap.String("addr", addr))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("FortiView server stopped")
}

// seedSettings copies config values into the settings store for keys
// that have never been written. Runtime edits via the settings API win
// over config on subsequent boots.
func seedSettings(ctx context.Context, repo services.SettingsRepository, cfg *config.Config) error {
	seeds := map[string]string{
		services.SettingRetentionHours: cfg.GetString("retention_hours"),
		services.SettingFortiGateHost:  cfg.GetString("fortigate.host"),
		services.SettingFortiGateToken: cfg.GetString("fortigate.token"),
		services.SettingAuthUsername:   cfg.GetString("auth.username"),
	}

	for key, value := range seeds {
		if err := seedIfAbsent(ctx, repo, key, value); err != nil {
			return err
		}
	}

	// The password is stored as a bcrypt hash, never in the clear.
	if _, err := repo.Get(ctx, services.SettingAuthPasswordHash); err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			return fmt.Errorf("read setting %q: %w", services.SettingAuthPasswordHash, err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.GetString("auth.password")), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash initial password: %w", err)
		}
		if err := repo.Set(ctx, services.SettingAuthPasswordHash, string(hash)); err != nil {
			return fmt.Errorf("seed setting %q: %w", services.SettingAuthPasswordHash, err)
		}
	}

	return nil
}

func seedIfAbsent(ctx context.Context, repo services.SettingsRepository, key, value string) error {
	_, err := repo.Get(ctx, key)
	if err == nil {
		return nil
	}
	if !errors.Is(err, services.ErrNotFound) {
		return fmt.Errorf("read setting %q: %w", key, err)
	}
	if err := repo.Set(ctx, key, value); err != nil {
		return fmt.Errorf("seed setting %q: %w", key, err)
	}
	return nil
}
