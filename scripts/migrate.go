package main

import (
	"flag"
	"log"
	"os"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/johnquangdev/scrum-assistant/internal/infrastructure/database"
	"github.com/johnquangdev/scrum-assistant/pkg/config"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if !*down {
		if err := database.AutoMigrate(db, cfg.Database.MigrationsDir); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		return
	}

	log.Printf("🔄 Rolling back one migration from %s/ ...", cfg.Database.MigrationsDir)
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database connection: %v", err)
	}

	migrations := &migrate.FileMigrationSource{Dir: cfg.Database.MigrationsDir}
	n, err := migrate.ExecMax(sqlDB, "postgres", migrations, migrate.Down, 1)
	if err != nil {
		log.Printf("Failed to roll back migration: %v", err)
		os.Exit(1)
	}

	log.Printf("✅ Rolled back %d migration(s)!\n", n)
}
