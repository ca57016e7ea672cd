package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/DaniilChichenkov/abik/internal/assets"
	"github.com/DaniilChichenkov/abik/internal/models"
	"github.com/DaniilChichenkov/abik/internal/services"
)

// CategoryRequest is the body for creating or renaming a category. Both
// titles are required; uniqueness is checked per language within the kind.
type CategoryRequest struct {
	TitleEE string `json:"title_ee"`
	TitleRU string `json:"title_ru"`
}

// validateTitles collects the per-field error keys for an empty title pair.
func (r CategoryRequest) validateTitles() gin.H {
	errs := gin.H{}
	if r.TitleEE == "" {
		errs["noCategoryNameEE"] = true
	}
	if r.TitleRU == "" {
		errs["noCategoryNameRU"] = true
	}
	return errs
}

// duplicateTitleErrors reports which language field collides with a sibling
// category. excludeID skips the category being renamed.
func duplicateTitleErrors(db *gorm.DB, kind models.CategoryKind, req CategoryRequest, excludeID *uuid.UUID) (gin.H, error) {
	var siblings []models.Category
	query := db.Where("kind = ? AND (title_ee = ? OR title_ru = ?)", kind, req.TitleEE, req.TitleRU)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Find(&siblings).Error; err != nil {
		return nil, err
	}

	errs := gin.H{}
	for _, sibling := range siblings {
		if sibling.TitleEE == req.TitleEE {
			errs["duplicatedFieldEE"] = true
		}
		if sibling.TitleRU == req.TitleRU {
			errs["duplicatedFieldRU"] = true
		}
	}
	return errs, nil
}

// ListCategories lists the categories of one kind in insertion order
// GET /api/v1/gallery, GET /api/v1/services
func ListCategories(db *gorm.DB, kind models.CategoryKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Where("kind = ?", kind).Order("created_at ASC")
		if kind == models.KindService {
			query = query.Preload("Items", func(db *gorm.DB) *gorm.DB {
				return db.Order("service_items.created_at ASC")
			})
		}

		var categories []models.Category
		if err := query.Find(&categories).Error; err != nil {
			// Read path degrades to an empty list so the page shell stays up
			logrus.Errorf("Failed to list %s categories: %v", kind, err)
			c.JSON(http.StatusOK, gin.H{"ok": true, "data": []models.Category{}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "data": categories})
	}
}

// CreateCategory creates a category and its asset directory (admin only)
// POST /api/v1/admin/gallery, POST /api/v1/admin/services
func CreateCategory(db *gorm.DB, mgr *assets.Manager, activity *services.ActivityService, kind models.CategoryKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"invalidBody": true}})
			return
		}

		if errs := req.validateTitles(); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": errs})
			return
		}

		dupErrs, err := duplicateTitleErrors(db, kind, req, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}
		if len(dupErrs) > 0 {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "errors": dupErrs})
			return
		}

		category := models.Category{
			Kind:    kind,
			TitleEE: req.TitleEE,
			TitleRU: req.TitleRU,
		}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}

		// Directory creation is best effort relative to the record; a failure
		// here is repaired by the startup reconciliation pass
		if err := mgr.EnsureCategoryDir(kind, category.ID.String()); err != nil {
			logrus.Errorf("Category %s created but directory creation failed: %v", category.ID, err)
		}

		if userID, ok := adminID(c); ok {
			go func() {
				activity.CreateActivity(userID, models.ActivityCategoryCreated, &category.ID, nil, map[string]interface{}{
					"kind":     kind,
					"title_ee": category.TitleEE,
				})
			}()
		}

		c.JSON(http.StatusCreated, gin.H{"ok": true, "data": category})
	}
}

// RenameCategory replaces both titles of a category (admin only)
// PUT /api/v1/admin/gallery/:id, PUT /api/v1/admin/services/:id
func RenameCategory(db *gorm.DB, activity *services.ActivityService, kind models.CategoryKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noCategoryId": true}})
			return
		}

		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"invalidBody": true}})
			return
		}

		if errs := req.validateTitles(); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": errs})
			return
		}

		var category models.Category
		if err := db.First(&category, "id = ? AND kind = ?", categoryID, kind).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "errors": gin.H{"noCategoryFound": true}})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			}
			return
		}

		dupErrs, err := duplicateTitleErrors(db, kind, req, &categoryID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}
		if len(dupErrs) > 0 {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "errors": dupErrs})
			return
		}

		updates := map[string]interface{}{
			"title_ee": req.TitleEE,
			"title_ru": req.TitleRU,
		}
		if err := db.Model(&category).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}

		if userID, ok := adminID(c); ok {
			go func() {
				activity.CreateActivity(userID, models.ActivityCategoryRenamed, &category.ID, nil, nil)
			}()
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "data": category})
	}
}

// DeleteCategory removes a category, its child items and its asset
// directory (admin only)
// DELETE /api/v1/admin/gallery/:id, DELETE /api/v1/admin/services/:id
func DeleteCategory(db *gorm.DB, mgr *assets.Manager, search *services.SearchService, activity *services.ActivityService, kind models.CategoryKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noItemProvided": true}})
			return
		}

		var category models.Category
		if err := db.Preload("Items").First(&category, "id = ? AND kind = ?", categoryID, kind).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "errors": gin.H{"noCategoryFound": true}})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			}
			return
		}

		if err := db.Select("Items").Delete(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}

		// Record first, directory second; a failed removal leaves an orphan
		// directory the reconciliation pass will flag
		if err := mgr.RemoveCategoryDir(kind, categoryID.String()); err != nil {
			logrus.Errorf("Category %s deleted but directory removal failed: %v", categoryID, err)
		}

		// Drop the deleted items from the search index
		go func(items []models.ServiceItem) {
			for _, item := range items {
				search.DeleteItem(item.ID.String())
			}
		}(category.Items)

		if userID, ok := adminID(c); ok {
			go func() {
				activity.CreateActivity(userID, models.ActivityCategoryDeleted, &categoryID, nil, map[string]interface{}{
					"kind":     kind,
					"title_ee": category.TitleEE,
				})
			}()
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// adminID pulls the authenticated admin's id out of the request context.
func adminID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
