// main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/quickflightcal/backend/config"
	"github.com/quickflightcal/backend/handlers"
	"github.com/quickflightcal/backend/llm"
	"github.com/quickflightcal/backend/resolver"
	"github.com/quickflightcal/backend/services"
	"github.com/quickflightcal/backend/timetable"
)

func main() {
	log.Println("Starting QuickFlightCal Backend Application...")

	configPath := "config/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = "config.yaml"
		if _, errFallback := os.Stat(configPath); os.IsNotExist(errFallback) {
			log.Fatalf("Config file not found at default paths. Error: %v", errFallback)
		}
	}

	if err := config.LoadConfig(configPath); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	log.Printf("Configuration loaded. Server port: %s, resolver mode: %s",
		config.AppConfig.Server.Port, config.AppConfig.Resolver.Mode)

	// Static timetable store: loaded at process start, refreshed on demand.
	store := timetable.NewStore()
	updater := services.NewTimetableUpdater(store)
	if err := updater.LoadLocalTimetable(); err != nil {
		log.Printf("WARN Main: Could not load local timetable: %v", err)
	}

	// Pick the route resolution source by configuration.
	var source resolver.Source
	switch config.AppConfig.Resolver.Mode {
	case "static":
		source = &resolver.StaticSource{
			Table:       store,
			FeedbackURL: config.AppConfig.Links.FeedbackURL,
		}
	case "remote":
		if config.AppConfig.Retrieval.APIKey == "" {
			log.Fatal("Resolver mode 'remote' requires OPENAI_API_KEY to be set (environment or .env)")
		}
		source = &resolver.RemoteSource{
			Client: llm.NewClient(
				config.AppConfig.Retrieval.APIKey,
				config.AppConfig.Retrieval.BaseURL,
				config.AppConfig.Retrieval.Model,
				config.AppConfig.Retrieval.Timeout,
			),
		}
	default:
		log.Fatalf("Unknown resolver mode %q. Use 'static' or 'remote'.", config.AppConfig.Resolver.Mode)
	}
	log.Printf("Using '%s' route resolution source.", source.Name())

	resolution := services.NewResolutionService(
		source,
		config.AppConfig.Resolver.MaxAttempts,
		config.AppConfig.Resolver.BaseDelay,
	)

	// --- Setup HTTP routes ---
	http.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"status": "ok", "message": "QuickFlightCal backend is healthy"}`)
	})

	http.HandleFunc("/api/flight-info", handlers.FlightInfoHandler(resolution))
	http.HandleFunc("/api/calendar-links", handlers.CalendarLinksHandler(resolution))

	// Admin routes for managing the static timetable dataset.
	http.HandleFunc("/api/admin/refresh-timetable", handlers.ForceRefreshTimetableHandler(updater))
	http.HandleFunc("/api/admin/check-update-timetable", handlers.CheckAndUpdateTimetableHandler(updater))

	serverAddr := ":" + config.AppConfig.Server.Port
	log.Printf("Server starting on http://localhost%s\n", serverAddr)
	if err := http.ListenAndServe(serverAddr, nil); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
