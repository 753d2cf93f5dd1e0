package main

import (
	"database/sql"
	"log"
	"os"
	"strings"

	"itinerary-planner-service/internal/adapters/repositories"
	"itinerary-planner-service/internal/config"
	"itinerary-planner-service/internal/knowledge"
	"itinerary-planner-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// kbtool validates a city seed file and prepares the backing databases:
// the local SQLite cache/history schema at DB_PATH, and the Postgres venue
// cache schema when DATABASE_URL is set.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	seedPath := config.Get("CITY_SEED_PATH", "data/seeds/london.json")
	dbPath := config.Get("DB_PATH", "data/app.db")

	log.Printf("Validating city seed %s...", seedPath)
	city, kb, err := knowledge.Load(seedPath)
	if err != nil {
		log.Fatalf("seed validation failed: %v", err)
	}
	log.Printf("Seed OK: city=%s areas=%d timezone=%s", city.Slug, len(kb.Areas()), city.Timezone)

	log.Printf("Initializing sqlite schema at %s...", dbPath)
	if err := initSqlite(dbPath); err != nil {
		log.Fatalf("sqlite schema initialization failed: %v", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Println("DATABASE_URL not set, skipping postgres schema initialization.")
		return
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing postgres schema...")
	if err := repositories.InitSchemaPG(conn); err != nil {
		log.Fatalf("postgres schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}

func initSqlite(dbPath string) error {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()
	return repositories.InitSchema(conn)
}
