// Command migrate applies schema migrations.
//
// Connect skips AutoMigrate in production; this command is how production
// schemas get updated, deliberately as a separate deploy step.
package main

import (
	"log"

	"chirp/internal/config"
	"chirp/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations applied")
}
