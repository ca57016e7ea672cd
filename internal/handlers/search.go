package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DaniilChichenkov/abik/internal/services"
)

// Search queries the service catalogue and the request list (admin only)
// GET /api/v1/admin/search?q=
func Search(search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noQueryProvided": true}})
			return
		}

		items, requests, err := search.Search(query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":       true,
			"items":    items.Hits,
			"requests": requests.Hits,
		})
	}
}
