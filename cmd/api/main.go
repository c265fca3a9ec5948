package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/olifog/musejump/backend/internal/adapters/analyser"
	"github.com/olifog/musejump/backend/internal/adapters/clerk"
	"github.com/olifog/musejump/backend/internal/adapters/postgres"
	"github.com/olifog/musejump/backend/internal/adapters/rest"
	"github.com/olifog/musejump/backend/internal/adapters/spotify"
	"github.com/olifog/musejump/backend/internal/adapters/sqlite"
	"github.com/olifog/musejump/backend/internal/config"
	"github.com/olifog/musejump/backend/internal/core/ports"
	"github.com/olifog/musejump/backend/internal/core/services"
)

func main() {
	// 1. Configuration (Environment Variables)
	// It's best practice to crash early if required config is missing.
	cfg := config.Load()
	if cfg.ClerkSecretKey == "" {
		log.Fatal("FATAL: CLERK_SECRET_KEY environment variable is required")
	}
	if cfg.AnalyserBaseURL == "" {
		log.Println("WARN: ANALYSER_URL not set, track views will not include analysis")
	}

	// 2. Initialize "Driven" Adapters (The Tools)
	// -- Database Adapter
	var repo ports.JumpRepository
	var repoCloser func() error

	switch cfg.StorageDriver {
	case "sqlite":
		dbAdapter, err := sqlite.NewAdapter(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize database: %v", err)
		}
		repo = dbAdapter
		repoCloser = dbAdapter.Close
	case "postgres":
		if cfg.DatabaseURL == "" {
			log.Fatal("FATAL: DATABASE_URL is required for the postgres driver")
		}
		dbAdapter, err := postgres.NewAdapter(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize database: %v", err)
		}
		repo = dbAdapter
		repoCloser = dbAdapter.Close
	default:
		log.Fatalf("Unknown storage driver: %s", cfg.StorageDriver)
	}
	defer repoCloser()

	// -- Identity and Catalog Adapters
	// Clerk hands out per-user Spotify access tokens; the client cache keeps
	// an authenticated Spotify client per user until its token nears expiry.
	exchanger := clerk.NewClient(nil, cfg.ClerkBaseURL, cfg.ClerkSecretKey)
	catalog := spotify.NewClientCache(exchanger, "", cfg.TokenSafetyMargin)

	// -- Analyser Adapter
	analysisClient := &http.Client{Timeout: cfg.AnalysisTimeout}
	analysisProvider := analyser.NewClient(analysisClient, cfg.AnalyserBaseURL)

	// 3. Initialize Core Logic (The Driver)
	// This is Dependency Injection in action.
	// We inject the specific adapters into the agnostic service.
	// The compiler guarantees that repo implements ports.JumpRepository,
	// catalog implements ports.CatalogProvider and analysisProvider
	// implements ports.AnalysisProvider.
	svc := services.NewTrackService(catalog, repo, analysisProvider)

	// 4. Initialize "Driving" Adapter (The Interface)
	// The HTTP handler talks to the Service.
	handler := rest.NewHandler(svc)

	// 5. Start the Server
	log.Println("------------------------------------------------")
	log.Printf("🎶 musejump API is running on http://localhost%s", cfg.Addr)
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
