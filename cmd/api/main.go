package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medfind/medfinder/internal/adapters/cache"
	"github.com/medfind/medfinder/internal/adapters/providers/drug"
	"github.com/medfind/medfinder/internal/adapters/providers/facilities"
	"github.com/medfind/medfinder/internal/adapters/providers/geolocation"
	"github.com/medfind/medfinder/internal/api/handlers"
	"github.com/medfind/medfinder/internal/api/routes"
	"github.com/medfind/medfinder/internal/application/services"
	"github.com/medfind/medfinder/internal/domain/providers"
	redisclient "github.com/medfind/medfinder/internal/infrastructure/clients/redis"
	"github.com/medfind/medfinder/internal/infrastructure/observability"
	"github.com/medfind/medfinder/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize the lookup cache
	var lookupCache providers.CacheProvider
	if cfg.Cache.Backend == "redis" {
		redisClient, err := redisclient.NewClient(&cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to connect to Redis, falling back to in-memory cache")
			lookupCache = cache.NewMemoryAdapter()
		} else {
			defer redisClient.Close()
			lookupCache = cache.NewRedisAdapter(redisClient)
			logger.Info().Msg("Redis lookup cache initialized")
		}
	} else {
		lookupCache = cache.NewMemoryAdapter()
	}

	// Select geocoding and facility providers once, based on credential
	// presence; the choice holds for the process lifetime
	var geocodingProvider providers.GeocodingProvider
	var facilityProvider providers.FacilityProvider
	if cfg.UseGooglePrimary() {
		geocodingProvider = geolocation.NewGoogleProvider(cfg.GoogleMaps.APIKey)
		facilityProvider = facilities.NewGooglePlacesProvider(cfg.GoogleMaps.APIKey)
		logger.Info().Msg("using Google geocoding and places providers")
	} else {
		geocodingProvider = geolocation.NewNominatimProviderWithOptions(cfg.Nominatim.BaseURL, nil)
		facilityProvider = facilities.NewOverpassProviderWithOptions(cfg.Overpass.BaseURL, nil)
		logger.Info().Msg("no Google Maps credential configured, using Nominatim and Overpass providers")
	}

	drugProvider := drug.NewRxNormProviderWithOptions(cfg.RxNorm.BaseURL, nil)

	// Initialize services
	medicineService := services.NewMedicineService(drugProvider, lookupCache, metrics)
	locationService := services.NewLocationService(geocodingProvider, lookupCache, metrics)
	searchService := services.NewSearchService(medicineService, locationService, facilityProvider, metrics)

	// Initialize handlers and router
	searchHandler := handlers.NewSearchHandler(searchService)
	router := routes.NewRouter(searchHandler, metrics)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server stopped")
}
