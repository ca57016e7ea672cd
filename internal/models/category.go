package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryKind string

const (
	KindService CategoryKind = "service"
	KindGallery CategoryKind = "gallery"
)

// Category is a bilingual grouping of site content. Gallery categories own a
// directory of images, service categories own a list of priced items plus a
// directory of item icons. Titles are unique per language within one kind.
type Category struct {
	ID      uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Kind    CategoryKind `gorm:"size:20;not null;index;uniqueIndex:idx_kind_title_ee;uniqueIndex:idx_kind_title_ru" json:"kind"`
	TitleEE string       `gorm:"size:200;not null;uniqueIndex:idx_kind_title_ee" json:"title_ee"`
	TitleRU string       `gorm:"size:200;not null;uniqueIndex:idx_kind_title_ru" json:"title_ru"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Items []ServiceItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

func (cat *Category) BeforeCreate(tx *gorm.DB) error {
	if cat.ID == uuid.Nil {
		cat.ID = uuid.New()
	}
	return nil
}
