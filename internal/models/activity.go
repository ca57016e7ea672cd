package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityCategoryCreated  ActivityType = "category_created"
	ActivityCategoryRenamed  ActivityType = "category_renamed"
	ActivityCategoryDeleted  ActivityType = "category_deleted"
	ActivityImagesUploaded   ActivityType = "images_uploaded"
	ActivityImageDeleted     ActivityType = "image_deleted"
	ActivityIconChanged      ActivityType = "icon_changed"
	ActivityRequestCompleted ActivityType = "request_completed"
)

// Activity is one entry of the admin action audit trail.
type Activity struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	ActivityType ActivityType `gorm:"type:varchar(50);not null;index" json:"activity_type"`
	CategoryID   *uuid.UUID   `gorm:"type:uuid;index" json:"category_id,omitempty"`
	ItemID       *uuid.UUID   `gorm:"type:uuid;index" json:"item_id,omitempty"`
	Metadata     string       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time    `gorm:"index" json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Activity) TableName() string {
	return "activities"
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	return nil
}
