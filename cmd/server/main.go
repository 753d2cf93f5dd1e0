package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"itinerary-planner-service/internal/adapters/cache"
	"itinerary-planner-service/internal/adapters/llm"
	"itinerary-planner-service/internal/adapters/repositories"
	"itinerary-planner-service/internal/adapters/venues"
	"itinerary-planner-service/internal/adapters/weather"
	"itinerary-planner-service/internal/api"
	"itinerary-planner-service/internal/config"
	"itinerary-planner-service/internal/knowledge"
	"itinerary-planner-service/internal/platform/db"
	"itinerary-planner-service/internal/ports"
	"itinerary-planner-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (OpenAI, Google Places, Open-Meteo, SQLite)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("CITY_SEED_PATH", "data/seeds/london.json")
	port := config.Get("PORT", "8080")
	model := config.Get("OPENAI_MODEL", "gpt-4o-mini")

	openaiKey := os.Getenv("OPENAI_API_KEY")
	if strings.TrimSpace(openaiKey) == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}
	placesKey := os.Getenv("GOOGLE_PLACES_API_KEY")
	if strings.TrimSpace(placesKey) == "" {
		log.Fatal("GOOGLE_PLACES_API_KEY is required")
	}

	city, kb, err := knowledge.Load(seedPath)
	if err != nil {
		log.Fatal(err)
	}

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := repositories.InitSchema(db); err != nil {
		log.Fatal(err)
	}

	// Venue lookups are cached so repeated requests skip the Places API.
	// Backend order: Redis, shared Postgres, local SQLite.
	venueCache := newVenueCache(db)

	provider, err := venues.NewGooglePlacesProvider(placesKey, venueCache)
	if err != nil {
		log.Fatal(err)
	}

	parser, err := llm.NewOpenAIParser(openaiKey, model)
	if err != nil {
		log.Fatal(err)
	}

	planner := services.NewPlanner(city, kb, parser, provider, weather.NewOpenMeteoProvider())
	repo := repositories.NewSqliteItineraryRepository(db)
	router := api.NewRouter(planner, repo)

	// Timeouts are tuned for cold-cache planning (LLM plus Places latency).
	log.Printf("Server listening addr=:%s city=%s", port, city.Slug)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func newVenueCache(sqlite *sql.DB) ports.VenueCache {
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		rc, err := cache.NewRedisVenueCache(addr)
		if err != nil {
			log.Printf("redis unavailable at %s, falling back: %v", addr, err)
		} else {
			return rc
		}
	}

	if dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); dbURL != "" {
		pg, err := db.Open(dbURL)
		if err != nil {
			log.Printf("postgres unavailable, falling back to sqlite cache: %v", err)
		} else if err := repositories.InitSchemaPG(pg); err != nil {
			log.Printf("postgres schema init failed, falling back to sqlite cache: %v", err)
		} else {
			return cache.NewSQLVenueCache(pg)
		}
	}

	return cache.NewSqliteVenueCache(sqlite)
}
