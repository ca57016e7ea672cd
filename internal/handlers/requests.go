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
	"github.com/DaniilChichenkov/abik/internal/services"
)

// Forms older than this are treated as expired.
const requestFormMaxAge = time.Hour

// Forms submitted faster than a human plausibly could are dropped.
const requestFormMinFillTime = 1500 * time.Millisecond

// CreateServiceRequest accepts a customer's order form. The anti-spam
// checks mirror the site forms: a honeypot field answered with a fake
// success, a fill-time floor, and a form-age ceiling.
// POST /api/v1/requests
func CreateServiceRequest(db *gorm.DB, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.PostForm("serviceRequestEmail")
		phoneNumber := c.PostForm("serviceRequestTel")
		categoryIDRaw := c.PostForm("selectedServiceCategoryId")
		itemIDRaw := c.PostForm("selectedServiceId")
		agreement := c.PostForm("serviceRequestAgreedToProceed")
		honeypot := c.PostForm("website")
		ts := c.PostForm("ts")

		if agreement != "on" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"proceedAgreementWasNotProvided": true}})
			return
		}

		// A filled honeypot means a bot; pretend success and do nothing
		if strings.TrimSpace(honeypot) != "" {
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}

		if email == "" || ts == "" || categoryIDRaw == "" || itemIDRaw == "" {
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
			// Instant submissions are bots too
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		if age > requestFormMaxAge {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"formExpired": true}})
			return
		}

		if !strings.Contains(email, "@") || len(email) > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"invalidEmail": true}})
			return
		}

		categoryID, err := uuid.Parse(categoryIDRaw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noCredentialsProvided": true}})
			return
		}
		itemID, err := uuid.Parse(itemIDRaw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noCredentialsProvided": true}})
			return
		}

		var item models.ServiceItem
		if err := db.Preload("Category").First(&item, "id = ? AND category_id = ?", itemID, categoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "errors": gin.H{"noCategoryFound": true}})
			return
		}

		// Snapshot the service so the request outlives catalogue edits
		request := models.ServiceRequest{
			Email:            email,
			PhoneNumber:      phoneNumber,
			ServiceTitleEE:   item.TitleEE,
			ServiceTitleRU:   item.TitleRU,
			ServicePrice:     item.Price,
			PriceType:        item.PriceType,
			AdditionalInfoEE: item.AdditionalInfoEE,
			AdditionalInfoRU: item.AdditionalInfoRU,
			CategoryTitleEE:  item.Category.TitleEE,
			CategoryTitleRU:  item.Category.TitleRU,
		}

		if err := db.Create(&request).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}

		go func() {
			search.IndexRequest(request)
		}()

		c.JSON(http.StatusCreated, gin.H{"ok": true})
	}
}

// ListServiceRequests lists requests, pending by default (admin only)
// GET /api/v1/admin/requests?completed=true|false
func ListServiceRequests(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		completed := c.DefaultQuery("completed", "false") == "true"

		var requests []models.ServiceRequest
		if err := db.Where("completed = ?", completed).Order("created_at DESC").Find(&requests).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "data": requests})
	}
}

// CountPendingRequests returns the number of uncompleted requests, shown as
// a badge in the admin navigation (admin only)
// GET /api/v1/admin/requests/pending-count
func CountPendingRequests(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var count int64
		if err := db.Model(&models.ServiceRequest{}).Where("completed = ?", false).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "count": count})
	}
}

// CompleteServiceRequest marks a request handled (admin only)
// PUT /api/v1/admin/requests/:id/complete
func CompleteServiceRequest(db *gorm.DB, search *services.SearchService, activity *services.ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noItemProvided": true}})
			return
		}

		var request models.ServiceRequest
		if err := db.First(&request, "id = ?", requestID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "errors": gin.H{"noRequestFound": true}})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			}
			return
		}

		if err := db.Model(&request).Update("completed", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}
		request.Completed = true

		go func() {
			search.IndexRequest(request)
		}()

		if userID, ok := adminID(c); ok {
			go func() {
				activity.CreateActivity(userID, models.ActivityRequestCompleted, nil, nil, map[string]interface{}{
					"request_id": requestID.String(),
				})
			}()
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "data": request})
	}
}

// DeleteServiceRequest removes a request (admin only)
// DELETE /api/v1/admin/requests/:id
func DeleteServiceRequest(db *gorm.DB, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noItemProvided": true}})
			return
		}

		result := db.Delete(&models.ServiceRequest{}, "id = ?", requestID)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "errors": gin.H{"noRequestFound": true}})
			return
		}

		go func() {
			search.DeleteRequest(requestID.String())
		}()

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
