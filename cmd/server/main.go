package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"culturefeed-backend/db"
	"culturefeed-backend/internal/api/middleware"
	"culturefeed-backend/internal/api/routes"
	"culturefeed-backend/internal/auth"
	"culturefeed-backend/internal/config"
	"culturefeed-backend/internal/dispatch"
	"culturefeed-backend/internal/extract/aggregator"
	"culturefeed-backend/internal/extract/image"
	"culturefeed-backend/internal/extract/site"
	"culturefeed-backend/internal/geo"
	"culturefeed-backend/internal/ingest"
	"culturefeed-backend/internal/logger"
	"culturefeed-backend/internal/sweep"
)

func main() {
	environment := getEnv("ENVIRONMENT", config.EnvDevelopment)
	envFile := fmt.Sprintf(".env.%s", environment)
	log.Printf("Loading environment file for environment: %s", environment)
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("Warning: %s file not found, trying .env: %v", envFile, err)
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: no .env file found: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	isProduction := environment == config.EnvProduction
	logger.Init(isProduction, !isProduction)

	if sentryDSN := os.Getenv("SENTRY_DSN"); sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              sentryDSN,
			Environment:      environment,
			Debug:            !isProduction,
			TracesSampleRate: 0.1,
			EnableTracing:    true,
		}); err != nil {
			log.Printf("Sentry initialization failed: %v", err)
		} else {
			log.Printf("Sentry initialized for environment: %s", environment)
		}
		defer sentry.Flush(2 * time.Second)
	} else {
		log.Printf("SENTRY_DSN not set, error tracking disabled")
	}

	if err := db.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := auth.SetupGoth(cfg); err != nil {
		log.Fatalf("Failed to setup Goth: %v", err)
	}

	jwtService := auth.NewService(cfg.JWT)
	ingestEngine := ingest.NewEngine(db.GetDB(), ingest.DefaultBatchSize)
	scraper := site.New()
	aggregatorClient := aggregator.NewClient(os.Getenv("AGGREGATOR_BASE_URL"))
	dispatcher := dispatch.NewDispatcher(db.GetDB(), scraper, aggregatorClient, ingestEngine)

	var llmClient *image.LLMClient
	if cfg.Anthropic.APIKey != "" {
		llmClient = image.NewLLMClient(cfg.Anthropic.APIKey)
	}
	imageExtractor := image.NewExtractor(db.GetDB(), nil, llmClient, nil)

	router := chi.NewMux()

	router.Use(middleware.RequestIDMiddleware)

	sentryHandler := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
	router.Use(sentryHandler.Handle)

	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := logger.GetRequestID(r.Context())
			logger.Default().Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"origin", r.Header.Get("Origin"),
				"request_id", requestID,
			)
			next.ServeHTTP(w, r)
		})
	})

	log.Printf("CORS Configuration: Origins=%v, Methods=%v, Headers=%v, Credentials=%v",
		cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders, cfg.CORS.AllowCredentials)

	allowedOriginsMap := make(map[string]bool)
	for _, origin := range cfg.CORS.AllowedOrigins {
		allowedOriginsMap[origin] = true
	}

	corsMiddleware := cors.New(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			if allowedOriginsMap[origin] {
				return true
			}
			if strings.HasSuffix(origin, ".vercel.app") {
				return true
			}
			return false
		},
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           300,
		Debug:            !isProduction,
	})
	router.Use(corsMiddleware.Handler)

	router.Use(middleware.SecurityHeaders)

	var geoClient *geo.GeocodeClient
	if cfg.Geocoding.APIKey != "" {
		geoClient = geo.NewGeocodeClient(cfg.Geocoding.APIKey)
	}
	geoResolver := geo.NewResolver(geoClient)

	_ = routes.SetupRoutes(router, routes.Dependencies{
		DB:             db.GetDB(),
		JWT:            jwtService,
		Dispatcher:     dispatcher,
		IngestEngine:   ingestEngine,
		ImageExtractor: imageExtractor,
		GeoResolver:    geoResolver,
		Config:         cfg,
		BlockedHosts:   config.ImageProxyBlockedHosts,
	})

	sweepService := sweep.NewService(db.GetDB())
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	sweepService.Start(sweepCtx)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("error while attempting to listen: %s\n", err)
		}
	}()

	log.Printf("Now serving Culturefeed API at http://%s\n", cfg.Server.Addr)
	log.Printf("OAuth providers configured: Google=%t, GitHub=%t",
		cfg.OAuth.GoogleClientID != "", cfg.OAuth.GitHubClientID != "")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Culturefeed API...")

	sweepCancel()
	sweepService.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("error during shutdown: %s\n", err)
	}

	log.Println("Server gracefully stopped.")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
