package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"cinedex/api"
	"cinedex/config"
	"cinedex/handlers"
	"cinedex/internal/database"
	"cinedex/services/classifier"
	"cinedex/services/omdb"
	"cinedex/utils"
)

func main() {
	// .env is optional; settings.json and real env vars are the source of truth
	_ = godotenv.Load()

	settingsPath := os.Getenv("CINEDEX_SETTINGS")
	if settingsPath == "" {
		settingsPath = "settings.json"
	}
	cfgManager, err := config.NewManager(settingsPath)
	if err != nil {
		log.Fatalf("[main] failed to load settings: %v", err)
	}
	settings := cfgManager.Get()

	setupLogging(settings.LogPath)

	if settings.OMDbAPIKey == "" {
		log.Printf("[main] WARNING: no OMDb API key configured, lookups will come back not found")
	}

	db, err := database.NewDB(database.Config{DatabasePath: settings.DatabasePath})
	if err != nil {
		log.Fatalf("[main] failed to open database: %v", err)
	}
	defer db.Close()

	provider := omdb.NewClient(settings.OMDbAPIKey, settings.OMDbBaseURL, nil)
	engine := classifier.NewService(provider, db.Movies)

	classifyHandler := handlers.NewClassifyHandler(engine)
	movieHandler := handlers.NewMovieHandler(db.Movies)
	watchlistHandler := handlers.NewWatchlistHandler(db.Watchlists)
	exportHandler := handlers.NewExportHandler(engine)

	// Provider-backed endpoints get a per-IP cap on top of the engine's own
	// pacing delay: 30 requests/minute, burst 5.
	providerLimit := api.NewIPRateLimiter(rate.Every(2*time.Second), 5)

	router := utils.NewRouter()
	router.Handle("/api/lookup",
		providerLimit.Middleware(http.HandlerFunc(classifyHandler.Lookup))).Methods(http.MethodPost, http.MethodOptions)
	router.Handle("/api/classify",
		providerLimit.Middleware(http.HandlerFunc(classifyHandler.Classify))).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/stats", classifyHandler.Stats).Methods(http.MethodGet)

	router.HandleFunc("/api/movies", movieHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/api/movies/search", movieHandler.Search).Methods(http.MethodGet)

	router.HandleFunc("/api/watchlists", watchlistHandler.Create).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/watchlists", watchlistHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/api/watchlists/{id}", watchlistHandler.Delete).Methods(http.MethodDelete, http.MethodOptions)
	router.HandleFunc("/api/watchlists/{id}/movies", watchlistHandler.AddMovie).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/watchlists/{id}/movies", watchlistHandler.Movies).Methods(http.MethodGet)

	router.HandleFunc("/api/export/results.csv", exportHandler.ResultsCSV).Methods(http.MethodGet)
	router.HandleFunc("/api/export/results.json", exportHandler.ResultsJSON).Methods(http.MethodGet)
	router.HandleFunc("/api/export/stats.json", exportHandler.StatsJSON).Methods(http.MethodGet)

	server := &http.Server{
		Addr:         settings.ListenAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		// classify batches block for the whole run (serial lookups + pacing),
		// so the write timeout has to cover a large batch
		WriteTimeout: 15 * time.Minute,
	}

	go func() {
		log.Printf("[main] listening on %s", settings.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
}

// setupLogging mirrors process logs to a rotating file alongside stdout.
func setupLogging(logPath string) {
	if logPath == "" {
		return
	}
	rotator := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
}
