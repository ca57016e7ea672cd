package database

import (
	"os"

	"github.com/DaniilChichenkov/abik/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the admin account if no admin exists in the database
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logrus.Info("Admin user already exists, skipping seed")
		return nil
	}

	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername == "" {
		adminUsername = "admin"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "AdminPassword123!"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     adminUsername,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logrus.Infof("Created default admin user: %s", adminUsername)
	return nil
}

// SeedContactInfo creates the single contact-info row the site footer reads,
// with placeholder values an admin is expected to replace.
func SeedContactInfo(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.ContactInfo{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	contact := models.ContactInfo{
		Tel:     "+372 0000 0000",
		Email:   "info@example.ee",
		Address: "Tallinn, Estonia",
	}

	if err := db.Create(&contact).Error; err != nil {
		return err
	}

	logrus.Info("Created initial contact info row")
	return nil
}
