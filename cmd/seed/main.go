package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/DaniilChichenkov/abik/internal/config"
	"github.com/DaniilChichenkov/abik/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedAdmin(db); err != nil {
		logrus.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := database.SeedContactInfo(db); err != nil {
		logrus.Fatalf("Failed to seed contact info: %v", err)
	}

	logrus.Info("Seeding completed")
}
