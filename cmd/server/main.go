package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/wishyoulucky/storefront/pkg/storefront"
	"github.com/wishyoulucky/storefront/pkg/storefront/api"
	"github.com/wishyoulucky/storefront/pkg/storefront/config"
)

// AppConfig covers server-level settings; storage, database and
// notification settings come through config.WithEnv.
type AppConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`
}

func main() {
	_ = godotenv.Load()

	var appCfg AppConfig
	if err := cleanenv.ReadEnv(&appCfg); err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}

	cfg, err := config.Load(
		config.WithPort(appCfg.Port),
		config.WithEnvironment(appCfg.Environment),
		config.WithEnv(""),
	)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	publisher, err := cfg.BuildPublisher()
	if err != nil {
		log.Fatalf("Failed to build publisher: %v", err)
	}

	repo, err := cfg.BuildRepository()
	if err != nil {
		log.Fatalf("Failed to build repository: %v", err)
	}

	notifier, err := cfg.BuildNotifier()
	if err != nil {
		log.Fatalf("Failed to build notifier: %v", err)
	}

	if cfg.DatabaseType == "postgres" {
		if err := config.PingPostgres(cfg.DatabaseURL); err != nil {
			log.Fatalf("Database check failed: %v", err)
		}
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: routes(cfg, publisher, repo, notifier),
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Storefront server starting on port %s (env: %s)", cfg.Port, cfg.Environment)
		log.Printf("Default storage backend: %s", cfg.DefaultStorageBackend)
		log.Printf("Upload folder: %s", cfg.UploadFolder)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func routes(cfg *config.ServerConfig, publisher *storefront.Publisher, repo storefront.Repository, notifier storefront.NotificationSink) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS for development
	if cfg.Environment == "development" {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

				if r.Method == "OPTIONS" {
					w.WriteHeader(http.StatusOK)
					return
				}

				next.ServeHTTP(w, r)
			})
		})
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{
			"status":      "ok",
			"environment": cfg.Environment,
		})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/assets", api.NewAssetsHandler(publisher).Routes())
		r.Mount("/", api.NewStoreHandler(repo, notifier).Routes())
	})

	return r
}
