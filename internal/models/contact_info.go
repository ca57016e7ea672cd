package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactInfo holds the single row of business contact details shown in the
// site footer.
type ContactInfo struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Tel     string    `gorm:"size:50;not null" json:"tel"`
	Email   string    `gorm:"size:200;not null" json:"email"`
	Address string    `gorm:"size:300;not null" json:"address"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (ContactInfo) TableName() string {
	return "contact_info"
}

func (ci *ContactInfo) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}
