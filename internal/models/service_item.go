package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PriceType string

const (
	PricePerHour    PriceType = "perHour"
	PricePerService PriceType = "perService"
)

func (pt PriceType) Valid() bool {
	return pt == PricePerHour || pt == PricePerService
}

// ServiceItem is a priced entry inside a service category.
//
// It carries two identities: the database id, and AssetKey, generated once at
// creation and used as the filename stem of the item's icon. The icon file
// stays addressable through AssetKey even if the row is ever re-created with
// a new id.
type ServiceItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	AssetKey   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"asset_key"`

	TitleEE string    `gorm:"size:200;not null" json:"title_ee"`
	TitleRU string    `gorm:"size:200;not null" json:"title_ru"`
	Price   Price     `gorm:"type:varchar(32);not null" json:"price"`
	// Required even for volume-based prices, matching the form contract.
	PriceType PriceType `gorm:"size:20;not null" json:"price_type"`

	AdditionalInfoEE string `gorm:"type:text" json:"additional_info_ee"`
	AdditionalInfoRU string `gorm:"type:text" json:"additional_info_ru"`
	ButtonColor      string `gorm:"size:10" json:"button_color"`

	// Public path of the icon, e.g. /services/<categoryID>/<assetKey>.png.
	// Empty when the item has no icon.
	PathToIcon string `gorm:"size:300" json:"path_to_icon"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (ServiceItem) TableName() string {
	return "service_items"
}

func (si *ServiceItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	if si.AssetKey == uuid.Nil {
		si.AssetKey = uuid.New()
	}
	return nil
}
