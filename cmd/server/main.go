package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/alimahmoud/usdt-orders/internal/config"
	"github.com/alimahmoud/usdt-orders/internal/notifier"
	"github.com/alimahmoud/usdt-orders/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// init configures the application logging based on environment settings
// In development mode, it enables pretty printing with timestamps
// Debug logging can be enabled via DEBUG environment variable
func init() {
	// Configure pretty logging for development
	if os.Getenv("ENV") != "production" {
		output := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		zlog.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set global log level
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("DEBUG") == "true" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// main initializes and runs the order intake server with graceful shutdown
// support. It wires the notifier service, middleware and API routes.
func main() {
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.ResendAPIKey == "" {
		zlog.Warn().Msg("RESEND_API_KEY is empty, order dispatch will fail")
	}

	// Initialize router
	router := gin.Default()

	// Initialize services and handlers
	sender := notifier.NewResendSender(cfg.ResendAPIKey)
	notifierService := notifier.NewService(sender, cfg.OrderInbox, cfg.OrderFrom)
	notifierHandlers := notifier.NewGinHandlers(notifierService)

	// Setup middleware
	router.Use(middleware.RateLimit())

	// Setup API routes
	setupRoutes(router, notifierHandlers)

	// The form is served from a separate origin, mirror its permissive CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(router)

	// Create server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsHandler,
	}

	// Graceful shutdown setup
	go func() {
		zlog.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("listen")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info().Msg("Shutting down server...")

	// Give outstanding operations 5 seconds to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	zlog.Info().Msg("Server exiting")
}

// setupRoutes configures all API endpoints and their handlers:
// - Order submission: the endpoint the form posts the finished record to
// - Quote: fee breakdown preview for the amount the customer is typing
// - Reference: read-only tables backing the form's selectors
func setupRoutes(router *gin.Engine, notifierHandlers *notifier.GinHandlers) {
	v1 := router.Group("/api/v1")
	{
		v1.POST("/orders", notifierHandlers.SubmitOrderHandler())
		v1.GET("/quote", notifierHandlers.QuoteHandler())

		reference := v1.Group("/reference")
		{
			reference.GET("/rates", notifierHandlers.RatesHandler())
			reference.GET("/payment-methods", notifierHandlers.PaymentMethodsHandler())
			reference.GET("/deposit-addresses", notifierHandlers.DepositAddressesHandler())
		}
	}
}
