// cmd/seed/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pokedle-game/pokedle_api/seed/seeders"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Parse command line flags
	var (
		generation = flag.Int("generation", 1, "Pokemon generation to seed (default: 1)")
		dbPath     = flag.String("db", "", "Database path/name (overrides DB_DATABASE env var)")
		help       = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := openDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	log.Printf("Seeding Generation %d pokemon from PokeAPI...", *generation)
	if err := mainSeeder.SeedAll(*generation); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding completed successfully")
}

func openDatabase(dbPath string) (*gorm.DB, error) {
	database := dbPath
	if database == "" {
		database = os.Getenv("DB_DATABASE")
		if database == "" {
			database = "pokedle.db"
		}
	}

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	driver := strings.ToLower(os.Getenv("DB_DRIVER"))
	if driver == "postgres" {
		host := os.Getenv("POSTGRES_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("POSTGRES_PORT")
		if port == "" {
			port = "5432"
		}
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, os.Getenv("POSTGRES_USER"), os.Getenv("POSTGRES_PASSWORD"), database)
		return gorm.Open(postgres.Open(dsn), gormCfg)
	}

	return gorm.Open(sqlite.Open(database), gormCfg)
}

func showHelp() {
	fmt.Println("Pokedle database seeder")
	fmt.Println()
	fmt.Println("Usage: seed [flags]")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -generation int  Pokemon generation to seed (default 1)")
	fmt.Println("  -db string       Database path/name (overrides DB_DATABASE)")
	fmt.Println("  -help            Show this message")
}
