package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DaniilChichenkov/abik/internal/models"
)

type UpdateContactInfoRequest struct {
	Tel     string `json:"tel"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// GetContactInfo returns the single contact-info row the site footer shows
// GET /api/v1/contact
func GetContactInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var contact models.ContactInfo
		if err := db.First(&contact).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "errors": gin.H{"noContactInfo": true}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "data": contact})
	}
}

// UpdateContactInfo replaces the contact details (admin only)
// PUT /api/v1/admin/contact
func UpdateContactInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateContactInfoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"invalidBody": true}})
			return
		}

		if req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noEmailProvided": true}})
			return
		}
		if req.Tel == "" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noTelProvided": true}})
			return
		}
		if req.Address == "" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noAddressProvided": true}})
			return
		}

		var contact models.ContactInfo
		if err := db.First(&contact).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}

		updates := map[string]interface{}{
			"tel":     req.Tel,
			"email":   req.Email,
			"address": req.Address,
		}
		if err := db.Model(&contact).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "data": contact})
	}
}
