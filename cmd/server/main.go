package main

import (
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/DaniilChichenkov/abik/internal/assets"
	"github.com/DaniilChichenkov/abik/internal/config"
	"github.com/DaniilChichenkov/abik/internal/database"
	"github.com/DaniilChichenkov/abik/internal/models"
	"github.com/DaniilChichenkov/abik/internal/router"
)

func main() {
	// Load environment variables
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

	assetManager := assets.NewManager(cfg)
	reconcileAssets(db, assetManager)

	r := router.Setup(db, cfg, assetManager)

	logrus.Infof("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

// reconcileAssets brings the on-disk category directories in line with the
// database. Missing directories are recreated, orphans are only reported.
func reconcileAssets(db *gorm.DB, mgr *assets.Manager) {
	for _, kind := range []models.CategoryKind{models.KindGallery, models.KindService} {
		var ids []uuid.UUID
		if err := db.Model(&models.Category{}).Where("kind = ?", kind).Pluck("id", &ids).Error; err != nil {
			logrus.Warnf("Failed to list %s categories for reconciliation: %v", kind, err)
			continue
		}
		if err := mgr.Reconcile(kind, ids); err != nil {
			logrus.Warnf("Asset reconciliation for %s failed: %v", kind, err)
		}
	}
}
