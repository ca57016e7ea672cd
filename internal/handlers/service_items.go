package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/DaniilChichenkov/abik/internal/assets"
	"github.com/DaniilChichenkov/abik/internal/models"
	"github.com/DaniilChichenkov/abik/internal/services"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// itemFields carries the validated non-icon fields of an item create/update
// form.
type itemFields struct {
	TitleEE          string
	TitleRU          string
	Price            models.Price
	PriceType        models.PriceType
	AdditionalInfoEE string
	AdditionalInfoRU string
	ButtonColor      string
}

// parseItemFields reads and validates the multipart form fields shared by
// item creation and update.
func parseItemFields(c *gin.Context) (itemFields, gin.H) {
	fields := itemFields{
		TitleEE:          c.PostForm("titleEE"),
		TitleRU:          c.PostForm("titleRU"),
		AdditionalInfoEE: c.PostForm("additionalInfoEE"),
		AdditionalInfoRU: c.PostForm("additionalInfoRU"),
		ButtonColor:      c.PostForm("buttonColor"),
	}

	errs := gin.H{}
	if fields.TitleEE == "" {
		errs["noTitleEE"] = true
	}
	if fields.TitleRU == "" {
		errs["noTitleRU"] = true
	}

	price, err := models.ParsePrice(c.PostForm("price"))
	if err != nil {
		errs["invalidPrice"] = true
	}
	fields.Price = price

	// Required even when the price is volume-based
	fields.PriceType = models.PriceType(c.PostForm("priceType"))
	if !fields.PriceType.Valid() {
		errs["invalidPriceType"] = true
	}

	if fields.ButtonColor != "" && !hexColorPattern.MatchString(fields.ButtonColor) {
		errs["invalidButtonColor"] = true
	}

	if len(errs) > 0 {
		return itemFields{}, errs
	}
	return fields, nil
}

// CreateServiceItem appends a priced item to a service category, with an
// optional sniff-validated icon (admin only)
// POST /api/v1/admin/services/:id/items
func CreateServiceItem(db *gorm.DB, mgr *assets.Manager, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noCategoryProvided": true}})
			return
		}

		var category models.Category
		if err := db.First(&category, "id = ? AND kind = ?", categoryID, models.KindService).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "errors": gin.H{"noCategoryFound": true}})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			}
			return
		}

		fields, fieldErrs := parseItemFields(c)
		if fieldErrs != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": fieldErrs})
			return
		}

		icon, err := optionalIconFile(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"invalidFileFormat": true}})
			return
		}

		item := models.ServiceItem{
			CategoryID:       categoryID,
			AssetKey:         uuid.New(),
			TitleEE:          fields.TitleEE,
			TitleRU:          fields.TitleRU,
			Price:            fields.Price,
			PriceType:        fields.PriceType,
			AdditionalInfoEE: fields.AdditionalInfoEE,
			AdditionalInfoRU: fields.AdditionalInfoRU,
			ButtonColor:      fields.ButtonColor,
		}

		if icon != nil {
			iconPath, err := mgr.ApplyIconChange(categoryID.String(), item.AssetKey.String(), "", assets.IconChange{
				Op:   assets.IconReplace,
				File: *icon,
			})
			if err != nil {
				respondIconError(c, err)
				return
			}
			item.PathToIcon = iconPath
		}

		if err := db.Create(&item).Error; err != nil {
			// Roll the icon file back so no orphan is left behind
			if item.PathToIcon != "" {
				mgr.RemoveIcon(item.PathToIcon)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}

		go func() {
			search.IndexItem(item)
		}()

		c.JSON(http.StatusCreated, gin.H{"ok": true, "data": item})
	}
}

// UpdateServiceItem replaces an item's fields wholesale and applies the icon
// intention flag: unset keeps the icon, change replaces it after content
// validation, delete removes it (admin only)
// PUT /api/v1/admin/services/:id/items/:itemId
func UpdateServiceItem(db *gorm.DB, mgr *assets.Manager, search *services.SearchService, activity *services.ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noCategoryProvided": true}})
			return
		}

		itemID, err := uuid.Parse(c.Param("itemId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noItemProvided": true}})
			return
		}

		var item models.ServiceItem
		if err := db.First(&item, "id = ? AND category_id = ?", itemID, categoryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "errors": gin.H{"noServiceItemFound": true}})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			}
			return
		}

		fields, fieldErrs := parseItemFields(c)
		if fieldErrs != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": fieldErrs})
			return
		}

		icon, err := optionalIconFile(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"invalidFileFormat": true}})
			return
		}

		change, err := assets.ParseIconChange(c.PostForm("iconIntention"), icon)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"invalidFileFormat": true}})
			return
		}

		updates := map[string]interface{}{
			"title_ee":           fields.TitleEE,
			"title_ru":           fields.TitleRU,
			"price":              fields.Price,
			"price_type":         fields.PriceType,
			"additional_info_ee": fields.AdditionalInfoEE,
			"additional_info_ru": fields.AdditionalInfoRU,
			"button_color":       fields.ButtonColor,
		}
		if err := db.Model(&item).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}

		newIconPath, err := mgr.ApplyIconChange(categoryID.String(), item.AssetKey.String(), item.PathToIcon, change)
		if err != nil {
			respondIconError(c, err)
			return
		}

		if newIconPath != item.PathToIcon {
			if err := db.Model(&item).Update("path_to_icon", newIconPath).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
				return
			}
			item.PathToIcon = newIconPath
		}

		if change.Op != assets.IconKeep {
			if userID, ok := adminID(c); ok {
				go func() {
					activity.CreateActivity(userID, models.ActivityIconChanged, &categoryID, &itemID, nil)
				}()
			}
		}

		go func() {
			search.IndexItem(item)
		}()

		c.JSON(http.StatusOK, gin.H{"ok": true, "data": item})
	}
}

// DeleteServiceItem removes an item and cleans up its icon file (admin only)
// DELETE /api/v1/admin/services/:id/items/:itemId
func DeleteServiceItem(db *gorm.DB, mgr *assets.Manager, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noParentItemProvided": true}})
			return
		}

		itemID, err := uuid.Parse(c.Param("itemId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"noItemProvided": true}})
			return
		}

		var item models.ServiceItem
		if err := db.First(&item, "id = ? AND category_id = ?", itemID, categoryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "errors": gin.H{"noServiceItemFound": true}})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			}
			return
		}

		if err := db.Delete(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
			return
		}

		// Icon cleanup runs after the record is gone; removal is idempotent
		if item.PathToIcon != "" {
			if err := mgr.RemoveIcon(item.PathToIcon); err != nil {
				logrus.Errorf("Item %s deleted but icon cleanup failed: %v", itemID, err)
			}
		}

		go func() {
			search.DeleteItem(itemID.String())
		}()

		c.JSON(http.StatusOK, gin.H{"ok": true, "data": item})
	}
}

// optionalIconFile reads the optional "icon" form file. A missing file is
// not an error; an unreadable one is.
func optionalIconFile(c *gin.Context) (*assets.File, error) {
	header, err := c.FormFile("icon")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}

	data, err := readUpload(header)
	if err != nil {
		return nil, err
	}
	return &assets.File{Name: header.Filename, Data: data}, nil
}

func respondIconError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, assets.ErrSuspiciousMime):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"suspiciousFileMime": true}})
	case errors.Is(err, assets.ErrInvalidIconChange):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": gin.H{"invalidFileFormat": true}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": gin.H{"serverSideError": true}})
	}
}
