package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/patrimonio/api/config"
	_ "github.com/patrimonio/api/docs"
	"github.com/patrimonio/api/internal/cache"
	"github.com/patrimonio/api/internal/database"
	"github.com/patrimonio/api/internal/handlers"
	"github.com/patrimonio/api/internal/marketdata"
	"github.com/patrimonio/api/internal/middleware"
	"github.com/patrimonio/api/internal/repository"
	"github.com/patrimonio/api/internal/services"
)

// @title Patrimonio API
// @version 1.0
// @description Personal investment-tracking REST API
// @BasePath /
func main() {
	// Money and quantities serialize as plain JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize database connection
	db, err := database.New(ctx, cfg.PGURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize quote client and cache
	quoteClient := marketdata.NewClient(cfg.FMPKey)
	memCache := cache.NewMemoryCache(5 * time.Minute)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.Pool)
	portfolioRepo := repository.NewPortfolioRepository(db.Pool)
	transactionRepo := repository.NewTransactionRepository(db.Pool)
	priceRepo := repository.NewPriceRepository(db.Pool)
	settingsRepo := repository.NewSettingsRepository(db.Pool)

	// Initialize services
	priceFeedSvc := services.NewPriceFeedService(memCache, priceRepo, quoteClient)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.RefreshSecret)
	ledgerSvc := services.NewLedgerService(userRepo, portfolioRepo, priceFeedSvc)
	portfolioSvc := services.NewPortfolioService(userRepo, portfolioRepo, priceFeedSvc)
	watchlistSvc := services.NewWatchlistService(userRepo, priceFeedSvc)
	transactionSvc := services.NewTransactionService(userRepo, transactionRepo)
	userSvc := services.NewUserService(userRepo, settingsRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authSvc)
	portfolioHandler := handlers.NewPortfolioHandler(ledgerSvc, portfolioSvc)
	watchlistHandler := handlers.NewWatchlistHandler(watchlistSvc)
	transactionHandler := handlers.NewTransactionHandler(transactionSvc)
	userHandler := handlers.NewUserHandler(userSvc)
	marketHandler := handlers.NewMarketHandler(priceFeedSvc)

	// Setup Gin router
	router := gin.Default()

	// Health check and docs
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	router.POST("/signin", authHandler.SignIn)
	router.POST("/login", authHandler.Login)
	router.POST("/logout", authHandler.Logout)
	router.POST("/refresh-token", authHandler.RefreshToken)
	router.POST("/prices", marketHandler.RefreshPrices)

	// Authenticated routes
	auth := router.Group("/", middleware.Authenticate(cfg.JWTSecret))
	{
		auth.GET("/users", userHandler.Profile)
		auth.PUT("/users/:id", userHandler.Update)
		auth.DELETE("/users/:id", userHandler.Delete)

		auth.POST("/me/add", portfolioHandler.Buy)
		auth.POST("/me/sell", portfolioHandler.Sell)
		auth.GET("/me/assets", portfolioHandler.Assets)
		auth.GET("/me/patrimonio", portfolioHandler.Patrimony)
		auth.GET("/me/recently-added", portfolioHandler.RecentlyAdded)
		auth.GET("/me/settings", userHandler.Settings)
		auth.PATCH("/me/settings", userHandler.UpdateSettings)

		auth.GET("/myWatchlist", watchlistHandler.List)
		auth.GET("/watchlist/count", watchlistHandler.Count)
		auth.POST("/addSymbol", watchlistHandler.Add)
		auth.POST("/removeSymbol", watchlistHandler.Remove)

		auth.GET("/transactions", transactionHandler.Query)
		auth.GET("/transactions/:id", transactionHandler.Get)
		auth.POST("/transactions", transactionHandler.Create)

		auth.GET("/all-data/top-assets", marketHandler.TopAssets)
		auth.GET("/all-data/top-crypto", marketHandler.TopCrypto)
	}

	// Schedule the daily price refresh
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.PriceRefreshSpec, func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := priceFeedSvc.RefreshAll(refreshCtx); err != nil {
			log.WithError(err).Error("scheduled price refresh failed")
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule price refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
