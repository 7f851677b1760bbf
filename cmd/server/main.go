package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/liconlabs/corporate-legends/backend/internal/api"
	"github.com/liconlabs/corporate-legends/backend/internal/collection"
	"github.com/liconlabs/corporate-legends/backend/internal/roster"
	"github.com/liconlabs/corporate-legends/backend/internal/services"
	"github.com/liconlabs/corporate-legends/backend/internal/store"
)

func main() {
	// Database path
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./album.db"
	}

	// Initialize blob store
	blobStore, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open blob store: %v", err)
	}

	// Engine configuration from environment
	cfg := engineConfig()

	// Initialize roster provider (Gemini generation with static fallback)
	rosterSize := envInt("ROSTER_SIZE", 250)
	rosterService := roster.NewService(roster.NewGeminiClient(), blobStore, rosterSize)

	// Initialize album service (loads persisted state)
	albumService, err := services.NewAlbumService(blobStore, rosterService, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize album service: %v", err)
	}
	log.Printf("Album service ready (pack_size=%d, daily_policy=%s)", cfg.PackSize, cfg.DailyPolicy)

	// Initialize trade offer board and image storage
	offerService := services.NewTradeOfferService(blobStore)
	imageService := services.NewCardImageService()

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start stats worker in background
	statsWorker := services.NewStatsWorker(albumService)
	go statsWorker.Start(ctx)

	// Optionally resolve the roster up front so the first pack open is fast
	if os.Getenv("WARM_ROSTER_ON_STARTUP") == "true" {
		go func() {
			if cards, err := rosterService.Roster(ctx); err == nil {
				log.Printf("Roster warmed: %d cards", len(cards))
			}
		}()
	}

	// Setup router
	router := api.SetupRouter(albumService, rosterService, offerService, imageService, blobStore)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel the context to stop background workers
	cancel()

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// engineConfig assembles the collection engine tuning from the environment.
func engineConfig() collection.Config {
	cfg := collection.DefaultConfig()

	cfg.PackSize = envInt("PACK_SIZE", cfg.PackSize)
	cfg.StarterPackGrant = envInt("STARTER_PACK_GRANT", cfg.StarterPackGrant)

	if hours := envInt("PACK_COOLDOWN_HOURS", 0); hours > 0 {
		cfg.Cooldown = time.Duration(hours) * time.Hour
	}

	switch collection.DailyPackPolicy(os.Getenv("DAILY_PACK_POLICY")) {
	case collection.PolicyAlways:
		cfg.DailyPolicy = collection.PolicyAlways
	case collection.PolicyInventoryGated:
		cfg.DailyPolicy = collection.PolicyInventoryGated
	case collection.PolicyCooldown:
		cfg.DailyPolicy = collection.PolicyCooldown
	case "":
		// keep default
	default:
		log.Printf("Unknown DAILY_PACK_POLICY %q, using %s", os.Getenv("DAILY_PACK_POLICY"), cfg.DailyPolicy)
	}

	// First two packs reveal the curated starter cards.
	if os.Getenv("STARTER_SEQUENCES") != "disabled" {
		cfg.StarterSequences = [][]int{
			{1, 2, 3, 4, 5},
			{6, 7},
		}
	}

	return cfg
}

func envInt(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Invalid %s=%q, using %d", name, os.Getenv(name), fallback)
	}
	return fallback
}
