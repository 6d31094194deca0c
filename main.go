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

	"github.com/lnfurey-oss/pm-exploration/config"
	"github.com/lnfurey-oss/pm-exploration/database"
	"github.com/lnfurey-oss/pm-exploration/handlers"
	"github.com/lnfurey-oss/pm-exploration/middleware"
	"github.com/lnfurey-oss/pm-exploration/retention"
	"github.com/lnfurey-oss/pm-exploration/routes"
	"github.com/lnfurey-oss/pm-exploration/websocket"
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
	handlers.InitGenerator()
	websocket.StartHub()

	// Retention sweeper runs until shutdown
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go retention.Run(sweepCtx, config.RetentionDays)

	// Router setup: API routes first, static form frontend last so the
	// catch-all does not shadow /api paths.
	router := mux.NewRouter()
	routes.RegisterRoutes(router)

	fs := http.FileServer(http.Dir("./static"))
	router.PathPrefix("/").Handler(fs)

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
		log.Printf("Decision journal running on http://localhost:%s", config.Port)
		if config.OpenAIAPIKey == "" {
			log.Println("No OPENAI_API_KEY set: mitigation actions will use deterministic rules")
		}

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	<-quit
	log.Println("Shutting down server...")
	stopSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	database.Disconnect()
	log.Println("Server stopped")
}
