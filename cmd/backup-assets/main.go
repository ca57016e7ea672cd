package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/DaniilChichenkov/abik/internal/config"
	"github.com/DaniilChichenkov/abik/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()

	storage, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	// Each run uploads under a timestamped prefix so older backups survive
	prefix := time.Now().UTC().Format("2006-01-02T15-04-05")

	trees := map[string]string{
		"gallery":  cfg.GalleryRoot,
		"services": cfg.ServicesRoot,
	}

	total := 0
	for name, root := range trees {
		count, err := storage.BackupTree(ctx, root, prefix+"/"+name)
		if err != nil {
			logrus.Fatalf("Backup of %s tree failed: %v", name, err)
		}
		logrus.Infof("Backed up %d files from %s", count, root)
		total += count
	}

	logrus.Infof("Backup completed: %d files under prefix %s", total, prefix)
}
