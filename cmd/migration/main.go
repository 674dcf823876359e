package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/drivers/database"

	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "maximum number of migrations to apply, 0 means all")
	flag.Parse()

	var migrateDirection migrate.MigrationDirection
	switch *direction {
	case "up":
		migrateDirection = migrate.Up
	case "down":
		migrateDirection = migrate.Down
	default:
		log.Fatalf("Unknown migration direction %q", *direction)
	}

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Error getting working directory: %v", err)
	}

	migrations := &migrate.FileMigrationSource{
		Dir: filepath.Join(wd, "internal/migration"),
	}

	db := database.NewPostgresDB(config.NewDriverConfig())
	defer db.Close()

	n, err := migrate.ExecMax(db, "postgres", migrations, migrateDirection, *steps)
	if err != nil {
		log.Fatalf("Error executing migration: %v", err)
	}

	log.Printf("Applied %d migrations %s!\n", n, *direction)
}
