package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DaniilChichenkov/abik/internal/services"
)

// GetRecentActivities returns the latest admin audit trail entries (admin only)
// GET /api/v1/admin/activities/recent
func GetRecentActivities(activity *services.ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if limit <= 0 || limit > 100 {
			limit = 20
		}

		activities, err := activity.GetRecentActivities(limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "data": activities})
	}
}
