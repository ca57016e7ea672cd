package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/DaniilChichenkov/abik/internal/config"
	"github.com/DaniilChichenkov/abik/internal/database"
	"github.com/DaniilChichenkov/abik/internal/models"
	"github.com/DaniilChichenkov/abik/internal/services"
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

	search := services.NewSearchService(cfg)

	if err := search.DeleteAll(); err != nil {
		logrus.Fatalf("Failed to clear search indexes: %v", err)
	}

	var items []models.ServiceItem
	if err := db.Find(&items).Error; err != nil {
		logrus.Fatalf("Failed to load service items: %v", err)
	}
	if err := search.IndexItems(items); err != nil {
		logrus.Fatalf("Failed to index service items: %v", err)
	}
	logrus.Infof("Indexed %d service items", len(items))

	var requests []models.ServiceRequest
	if err := db.Find(&requests).Error; err != nil {
		logrus.Fatalf("Failed to load service requests: %v", err)
	}
	if err := search.IndexRequests(requests); err != nil {
		logrus.Fatalf("Failed to index service requests: %v", err)
	}
	logrus.Infof("Indexed %d service requests", len(requests))

	logrus.Info("Search reindex completed")
}
