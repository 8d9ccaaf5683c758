// Package main is the entry point for the catalog admin server.
// It loads configuration, prepares the site directories, sets up routing,
// and starts the HTTP server with graceful shutdown support. With
// --regenerate it rewrites the image-path module once and exits.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"dianabeauty/internal/cache"
	"dianabeauty/internal/catalog"
	"dianabeauty/internal/config"
	"dianabeauty/internal/handlers"
	"dianabeauty/internal/inventory"
	"dianabeauty/internal/media"
	"dianabeauty/internal/router"
	"dianabeauty/internal/store"
)

func main() {
	root := pflag.StringP("root", "r", "", "site checkout holding public/ and src/data/ (overrides SITE_ROOT)")
	regenerate := pflag.Bool("regenerate", false, "rewrite the image-path module and exit")
	pflag.Parse()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *root != "" {
		cfg.SiteRoot = *root
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"root", cfg.SiteRoot,
	)

	// Create the inventory folders and the product data file when missing.
	if err := inventory.EnsureDirectories(cfg.ImagesDir()); err != nil {
		slog.Error("failed to prepare image directories", "error", err)
		os.Exit(1)
	}
	scanner := inventory.NewScanner(cfg.ImagesDir())

	if *regenerate {
		counts, err := inventory.Regenerate(scanner, cfg.ImagePathsFile())
		if err != nil {
			slog.Error("failed to regenerate image paths", "error", err)
			os.Exit(1)
		}
		slog.Info("image paths written", "per_folder", counts.PerFolder, "total", counts.Total)
		return
	}

	productData := store.NewProductDataStore(cfg.ProductDataFile())
	if err := productData.EnsureFile(); err != nil {
		slog.Error("failed to prepare product data file", "error", err)
		os.Exit(1)
	}
	overrides := store.NewOverrideStore(cfg.OverridesFile())
	library := media.NewLibrary(cfg.PublicDir(), cfg.MaxUploadBytes)

	// Connect to Valkey when configured. Without it the catalog is not
	// cached and the browser-local store lives in memory.
	var (
		catalogCache *cache.CatalogCache
		kv           store.KV = store.NewMemoryKV()
	)
	if cfg.ValkeyEnabled() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		catalogCache = cache.NewCatalogCache(valkeyClient, cfg.CatalogCacheTTL)
		kv = cache.NewKV(valkeyClient)
	} else {
		slog.Warn("valkey not configured, catalog cache disabled")
	}
	local := store.NewLocalOverrideStore(kv)

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(overrides, productData, library, scanner, cfg.ImagePathsFile(), catalogCache)
	publicHandlers := handlers.NewPublic(catalog.NewLoader(scanner, overrides, productData, local), local, catalogCache)

	r := router.New(adminHandlers, publicHandlers, cfg.PublicDir(), cfg.CORSOrigin)

	// Uploads of several images can take a while on slow links.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
