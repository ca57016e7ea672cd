package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/DaniilChichenkov/abik/internal/assets"
	"github.com/DaniilChichenkov/abik/internal/models"
	"github.com/DaniilChichenkov/abik/internal/services"
)

const MaxUploadSize = 50 * 1024 * 1024 // 50 MB per batch

// GetGalleryCategory returns one gallery category with the live listing of
// its image directory
// GET /api/v1/gallery/:id
func GetGalleryCategory(db *gorm.DB, mgr *assets.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noCategoryProvided": true}})
			return
		}

		var category models.Category
		if err := db.First(&category, "id = ? AND kind = ?", categoryID, models.KindGallery).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "errors": gin.H{"noCategoryFound": true}})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			}
			return
		}

		images, err := mgr.ListImages(models.KindGallery, categoryID.String())
		if err != nil {
			// Keep the category readable even when the directory is gone
			logrus.Errorf("Failed to list images for gallery %s: %v", categoryID, err)
			images = []string{}
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "data": category, "images": images})
	}
}

// UploadGalleryImages uploads a batch of images into a gallery category,
// partitioning the result into uploaded and conflicted names (admin only)
// POST /api/v1/admin/gallery/:id/images
func UploadGalleryImages(db *gorm.DB, mgr *assets.Manager, activity *services.ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noCategoryProvided": true}})
			return
		}

		if err := c.Request.ParseMultipartForm(MaxUploadSize); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"errorWithFiles": true}})
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"errorWithFiles": true}})
			return
		}

		headers := form.File["images"]
		if len(headers) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noFilesSelected": true}})
			return
		}

		for _, header := range headers {
			if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"errorWithFiles": true}})
				return
			}
		}

		// Category must exist before anything touches disk
		var category models.Category
		if err := db.First(&category, "id = ? AND kind = ?", categoryID, models.KindGallery).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "errors": gin.H{"noGalleryExists": true}})
			return
		}

		files := make([]assets.File, 0, len(headers))
		for _, header := range headers {
			data, err := readUpload(header)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"errorWithFiles": true}})
				return
			}
			files = append(files, assets.File{Name: header.Filename, Data: data})
		}

		result, err := mgr.UploadBatch(models.KindGallery, categoryID.String(), files)
		if err != nil {
			if errors.Is(err, assets.ErrNoDirectory) {
				c.JSON(http.StatusConflict, gin.H{"ok": false, "errors": gin.H{"noGalleryDirectory": true}})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			}
			return
		}

		if userID, ok := adminID(c); ok {
			go func() {
				activity.CreateActivity(userID, models.ActivityImagesUploaded, &categoryID, nil, map[string]interface{}{
					"uploaded":   len(result.Uploaded),
					"conflicted": len(result.Conflicted),
				})
			}()
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":                   true,
			"uploadedSuccessfully": result.Uploaded,
			"conflicted":           result.Conflicted,
		})
	}
}

// DeleteGalleryImage removes a single image from a gallery category (admin only)
// DELETE /api/v1/admin/gallery/:id/images/:image
func DeleteGalleryImage(db *gorm.DB, mgr *assets.Manager, activity *services.ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noSelectedGalleryCategory": true}})
			return
		}

		image := c.Param("image")
		if image == "" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noImage": true}})
			return
		}

		var category models.Category
		if err := db.First(&category, "id = ? AND kind = ?", categoryID, models.KindGallery).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "errors": gin.H{"noGalleryExists": true}})
			return
		}

		if err := mgr.DeleteImage(models.KindGallery, categoryID.String(), image); err != nil {
			switch {
			case errors.Is(err, assets.ErrNoDirectory):
				c.JSON(http.StatusConflict, gin.H{"ok": false, "errors": gin.H{"noGalleryDirectory": true}})
			case errors.Is(err, assets.ErrNoFile):
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "errors": gin.H{"noFileExists": true}})
			case errors.Is(err, assets.ErrNotAFile):
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"notAFile": true}})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"errorDuringDelete": true}})
			}
			return
		}

		if userID, ok := adminID(c); ok {
			go func() {
				activity.CreateActivity(userID, models.ActivityImageDeleted, &categoryID, nil, map[string]interface{}{
					"image": image,
				})
			}()
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
