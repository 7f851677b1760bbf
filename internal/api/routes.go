package api

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/liconlabs/corporate-legends/backend/internal/api/handlers"
	"github.com/liconlabs/corporate-legends/backend/internal/services"
)

func SetupRouter(albumService *services.AlbumService, rosterService services.RosterProvider, offerService *services.TradeOfferService, imageService *services.CardImageService, blobStore services.StateStore) *gin.Engine {
	router := gin.Default()

	// CORS configuration - allow origins from environment or use defaults
	config := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = false
	router.Use(cors.New(config))

	// Initialize handlers
	albumHandler := handlers.NewAlbumHandler(albumService, rosterService)
	tradeHandler := handlers.NewTradeHandler(albumService, offerService)
	adminHandler := handlers.NewAdminHandler(blobStore, imageService)

	// Serve uploaded card and branding images
	if imageService != nil {
		router.Static("/images/cards", imageService.GetStorageDir())
	}

	// API routes
	api := router.Group("/api")
	{
		api.POST("/register", albumHandler.Register)
		api.GET("/state", albumHandler.GetState)
		api.GET("/state/stats", albumHandler.GetStats)
		api.GET("/roster", albumHandler.GetRoster)
		api.GET("/achievements", albumHandler.GetAchievements)

		packs := api.Group("/packs")
		{
			packs.POST("/open", albumHandler.OpenPack)
		}

		trades := api.Group("/trades")
		{
			trades.POST("/burn", tradeHandler.BurnTrade)
			trades.GET("/offers", tradeHandler.ListOffers)
			trades.POST("/offers", tradeHandler.CreateOffer)
			trades.DELETE("/offers/:id", tradeHandler.DeleteOffer)
		}

		admin := api.Group("/admin")
		{
			admin.PUT("/cards/:id", adminHandler.UpsertCardOverride)
			admin.DELETE("/cards/:id", adminHandler.DeleteCardOverride)
			admin.GET("/assets", adminHandler.GetGlobalAssets)
			admin.PUT("/assets", adminHandler.UpdateGlobalAssets)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
