package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/incognitoworld123-dev/RationalART/controllers"
	"github.com/incognitoworld123-dev/RationalART/database"
	"github.com/incognitoworld123-dev/RationalART/gemini"
	"github.com/incognitoworld123-dev/RationalART/kafka"
	"github.com/incognitoworld123-dev/RationalART/middleware"
	"github.com/incognitoworld123-dev/RationalART/payment"
	"github.com/incognitoworld123-dev/RationalART/repository"
	"github.com/incognitoworld123-dev/RationalART/routes"
	"github.com/incognitoworld123-dev/RationalART/services"
)

func main() {
	// Initialize structured logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	// --- 1. Infrastructure ---

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zap.L().Fatal("Failed to connect to Postgres", zap.Error(err))
	}

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.OrderTopic, logger)
	defer producer.Close()

	aiClient := gemini.New(gemini.Options{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Logger:  logger,
	})

	// --- 2. Dependency Injection ---

	productRepo := repository.NewRedisProductRepository(redisClient, logger)
	if err := productRepo.EnsureSeed(context.Background()); err != nil {
		zap.L().Warn("Failed to seed catalog", zap.Error(err))
	}
	cartRepo := repository.NewRedisCartRepository(redisClient, 7*24*time.Hour)
	orderRepo := repository.NewGormOrderRepository(db)
	requestRepo := repository.NewRedisDesignRequestRepository(redisClient)

	registry := payment.NewRegistry()
	provider := payment.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret, registry, logger)

	refiner := services.NewPromptRefiner(aiClient, logger)
	imageGen := services.NewImageGenerator(aiClient, logger)
	conceptService := services.NewConceptService(aiClient, refiner, imageGen, logger)
	tracker := services.NewPreviewTracker()
	orderService := services.NewOrderService(orderRepo, productRepo, producer, logger)
	checkoutService := services.NewCheckoutService(cartRepo, productRepo, orderService, provider, services.CheckoutSettings{
		CODSettleDelay: cfg.CODSettleDelay,
		SimulateDelay:  cfg.SimulateDelay,
	}, logger)

	// --- 3. HTTP Server & Middleware ---

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	routes.RegisterRoutes(r, routes.Controllers{
		Products: controllers.NewProductController(productRepo, logger),
		Carts:    controllers.NewCartController(cartRepo, productRepo, logger),
		Checkout: controllers.NewCheckoutController(checkoutService, logger),
		Concepts: controllers.NewConceptController(conceptService, tracker, requestRepo, logger),
		Orders:   controllers.NewOrderController(orderService, logger),
		Webhook:  controllers.NewPaymentWebhookController(provider, logger),
	}, cfg.AdminPasskey)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// --- 4. Graceful Shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("RationalART storefront starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		zap.L().Error("Failed to close Redis", zap.Error(err))
	}

	zap.L().Info("Stopped gracefully")
}
