package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DaniilChichenkov/abik/internal/models"
)

const maxFeedbackMessageLength = 200

// CreateFeedback accepts a feedback form submission with the same anti-spam
// checks as the request form
// POST /api/v1/feedback
func CreateFeedback(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.PostForm("email")
		message := c.PostForm("message")
		agreement := c.PostForm("agreedToProceed")
		honeypot := c.PostForm("website")
		ts := c.PostForm("ts")

		if agreement != "on" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"proceedAgreementWasNotProvided": true}})
			return
		}

		if strings.TrimSpace(honeypot) != "" {
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}

		if email == "" || message == "" || ts == "" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noCredentialsProvided": true}})
			return
		}

		tsMillis, err := strconv.ParseInt(ts, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"invalidTs": true}})
			return
		}

		age := time.Since(time.UnixMilli(tsMillis))
		if age < requestFormMinFillTime {
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		if age > requestFormMaxAge {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"formExpired": true}})
			return
		}

		if len(message) > maxFeedbackMessageLength {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"hugeMessage": true}})
			return
		}

		if !strings.Contains(email, "@") || len(email) > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"invalidEmail": true}})
			return
		}

		feedback := models.Feedback{
			Email:   email,
			Message: message,
		}
		if err := db.Create(&feedback).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"errorDuringRequest": true}})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"ok": true})
	}
}

// ListFeedback lists feedback, unread by default (admin only)
// GET /api/v1/admin/feedback?red=true|false
func ListFeedback(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		red := c.DefaultQuery("red", "false") == "true"

		var feedback []models.Feedback
		if err := db.Where("red = ?", red).Order("created_at DESC").Find(&feedback).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "data": feedback})
	}
}

// MarkFeedbackRed marks one feedback entry as read (admin only)
// PUT /api/v1/admin/feedback/:id/red
func MarkFeedbackRed(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		feedbackID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noItemProvided": true}})
			return
		}

		result := db.Model(&models.Feedback{}).Where("id = ?", feedbackID).Update("red", true)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "errors": gin.H{"noFeedbackFound": true}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// DeleteFeedback removes one feedback entry (admin only)
// DELETE /api/v1/admin/feedback/:id
func DeleteFeedback(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		feedbackID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noItemProvided": true}})
			return
		}

		result := db.Delete(&models.Feedback{}, "id = ?", feedbackID)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "errors": gin.H{"noFeedbackFound": true}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
