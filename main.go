package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"shoreSquadAPI/handlers"
	"shoreSquadAPI/internal/geolocate"
	"shoreSquadAPI/internal/types/weather"
	"shoreSquadAPI/internal/weatherapi"
	"shoreSquadAPI/middleware"
	"shoreSquadAPI/services"

	_ "net/http/pprof"
)

var (
	rallyService       *services.RallyService
	beachService       *services.BeachService
	weatherService     *services.WeatherService
	leaderboardService *services.LeaderboardService
	mapService         *services.MapService
	statsService       *services.StatsService
	preferenceService  *services.PreferenceService
	shareService       *services.ShareService
	crewService        *services.CrewService
	bootstrapService   *services.BootstrapService
	liveFeed           *services.LiveFeed
	resolver           *geolocate.Resolver
)

var (
	flagPort    string
	flagEnvFile string
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "shoresquad-api",
		Short: "ShoreSquad beach cleanup API",
		Long: `ShoreSquad API serves the beach cleanup crew app: rallies,
beaches, weather, leaderboards, the cleanup map and a live rally feed.`,
		Run: func(cmd *cobra.Command, args []string) {
			if flagEnvFile != "" {
				if err := godotenv.Load(flagEnvFile); err != nil {
					log.Printf("Could not load %s: %v", flagEnvFile, err)
				}
			}
			if flagPort != "" {
				os.Setenv("PORT", flagPort)
			}
			runServer()
		},
	}

	// Flags
	rootCmd.Flags().StringVarP(&flagPort, "port", "p", "", "Listen port (overrides PORT)")
	rootCmd.Flags().StringVar(&flagEnvFile, "env-file", "", "Extra env file to load before starting")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildServices() {
	clock := clockwork.NewRealClock()

	rallyService = services.NewRallyService(clock)
	liveFeed = services.NewLiveFeed(clock, envDuration("LIVE_DEBOUNCE", services.DefaultLiveDebounce))
	liveFeed.OnCountChange = middleware.SetLiveFeedClients
	rallyService.SetListener(liveFeed)

	beachService = services.NewBeachService()
	leaderboardService = services.NewLeaderboardService()
	mapService = services.NewMapService(beachService)
	statsService = services.NewStatsService(envDuration("WARMUP_DELAY", services.DefaultWarmupDuration), clock)
	preferenceService = services.NewPreferenceService(envString("DATA_DIR", "./data"))
	shareService = services.NewShareService(rallyService)
	crewService = services.NewCrewService()

	var provider weather.Provider
	switch os.Getenv("WEATHER_PROVIDER") {
	case "live":
		provider = weatherapi.NewClient(os.Getenv("WEATHER_BASE_URL"), envDuration("WEATHER_TIMEOUT", 5*time.Second))
		log.Println("Weather provider: live")
	default:
		provider = services.NewMockWeatherProvider(envDuration("WEATHER_DELAY", services.DefaultWeatherDelay), clock)
		log.Println("Weather provider: mock")
	}
	weatherService = services.NewWeatherService(provider)

	var locator geolocate.Locator
	if os.Getenv("GEOLOCATE_ENABLED") == "true" {
		locator = geolocate.NewClient(os.Getenv("GEOLOCATE_URL"), envDuration("GEOLOCATE_TIMEOUT", geolocate.DefaultTimeout))
		log.Println("Geolocation lookup enabled")
	} else {
		log.Println("Geolocation lookup disabled, every caller gets the default coordinate")
	}
	resolver = geolocate.NewResolver(locator, envDuration("GEOLOCATE_TIMEOUT", geolocate.DefaultTimeout), clock)

	if os.Getenv("OFFLINE_CACHE") == "true" {
		bootstrapService = services.NewBootstrapService(beachService, mapService, leaderboardService, statsService, rallyService, envDuration("OFFLINE_REFRESH", services.DefaultBootstrapRefresh), clock)
		log.Println("Offline bootstrap snapshot enabled")
	}

	middleware.InitPrometheus()
}

func runServer() {
	buildServices()

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	rallyService.SeedDemoData(appCtx)
	go liveFeed.Run()
	statsService.Start(appCtx)
	if bootstrapService != nil {
		bootstrapService.Start(appCtx)
	}

	// Initialize handlers
	rallyHandler := handlers.NewRallyHandler(rallyService)
	beachHandler := handlers.NewBeachHandler(beachService)
	weatherHandler := handlers.NewWeatherHandler(weatherService, resolver)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	mapHandler := handlers.NewMapHandler(mapService, resolver)
	statsHandler := handlers.NewStatsHandler(statsService)
	geoHandler := handlers.NewGeoHandler(resolver)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService)
	shareHandler := handlers.NewShareHandler(shareService)
	crewHandler := handlers.NewCrewHandler(crewService)
	liveHandler := handlers.NewLiveHandler(liveFeed, rallyService)
	docsHandler := handlers.NewDocsHandler(rallyService, crewService, statsService)

	r := mux.NewRouter()

	// The websocket route lives on the root router so the per-request
	// middleware never wraps a long-lived connection.
	r.HandleFunc("/api/v1/live", liveHandler.JoinFeed)

	standardRouter := r.PathPrefix("/").Subrouter()

	go middleware.CleanupVisitors()

	standardRouter.Use(middleware.MonitorMiddleware)
	standardRouter.Use(middleware.RequestLoggerMiddleware)
	standardRouter.Use(middleware.RateLimitMiddleware)

	standardRouter.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	standardRouter.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	standardRouter.HandleFunc("/", docsHandler.ServeLanding).Methods("GET")
	standardRouter.HandleFunc("/health", docsHandler.HealthCheck).Methods("GET")
	standardRouter.HandleFunc("/readyz", docsHandler.ReadinessCheck).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	// This inherits middleware from standardRouter
	api := standardRouter.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/rallies", rallyHandler.GetRallies).Methods("GET")
	api.HandleFunc("/rallies", rallyHandler.CreateRally).Methods("POST")
	api.HandleFunc("/rallies/next/join", rallyHandler.JoinNext).Methods("POST")
	api.HandleFunc("/rallies/{id}", rallyHandler.GetRally).Methods("GET")
	api.HandleFunc("/rallies/{id}/join", rallyHandler.JoinRally).Methods("POST")
	api.HandleFunc("/rallies/{id}/share", shareHandler.ShareRally).Methods("GET")

	api.HandleFunc("/beaches", beachHandler.GetBeaches).Methods("GET")
	api.HandleFunc("/weather", weatherHandler.GetWeather).Methods("GET")
	api.HandleFunc("/leaderboard", leaderboardHandler.GetLeaderboard).Methods("GET")
	api.HandleFunc("/map", mapHandler.GetMap).Methods("GET")
	api.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")
	api.HandleFunc("/locate", geoHandler.Locate).Methods("GET")

	api.HandleFunc("/preferences", preferenceHandler.GetPreferences).Methods("GET")
	api.HandleFunc("/preferences", preferenceHandler.UpdatePreferences).Methods("PUT")

	api.HandleFunc("/crew/signup", crewHandler.Signup).Methods("POST")

	if bootstrapService != nil {
		bootstrapHandler := handlers.NewBootstrapHandler(bootstrapService)
		api.HandleFunc("/bootstrap", bootstrapHandler.GetBootstrap).Methods("GET")
	}

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r), // Pass the root router 'r'
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	appCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("WARN: bad %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
