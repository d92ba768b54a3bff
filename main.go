package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"assetledger/config"
	"assetledger/database"
	"assetledger/handlers"
	"assetledger/mailer"
	"assetledger/middleware"
	"assetledger/routes"
	"assetledger/storage"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	config.LoadConfig()

	// Database connection
	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	handlers.InitCollections()

	// Outbound collaborators. Both are optional: without object
	// storage asset uploads fail per-request, without SMTP the
	// credentials email is skipped.
	var store *storage.Client
	if config.OSSEndpoint != "" {
		var err error
		store, err = storage.New(config.OSSEndpoint, config.OSSAccessKeyID,
			config.OSSAccessSecret, config.OSSImageBucket, config.OSSInvoiceBucket)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
	} else {
		log.Println("OSS_ENDPOINT not set, asset file uploads disabled")
	}

	var mail *mailer.Mailer
	if config.SMTPHost != "" {
		mail = mailer.New(config.SMTPHost, config.SMTPPort, config.SMTPUser,
			config.SMTPPass, config.MailFrom)
	} else {
		log.Println("SMTP_HOST not set, credentials emails disabled")
	}

	handlers.InitServices(store, mail)

	// Router setup
	router := mux.NewRouter()
	routes.RegisterRoutes(router)

	// Global middlewares (order matters!)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.CorsMiddleware)

	// HTTP server configuration
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Asset inventory backend running on http://localhost:%s", config.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	database.Disconnect()
	log.Println("Server stopped gracefully")
}
