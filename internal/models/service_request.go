package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceRequest is a customer's order form submission. It snapshots the
// selected service and its category at submission time so the request stays
// readable after the service is renamed or deleted.
type ServiceRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email       string    `gorm:"size:200;not null" json:"email"`
	PhoneNumber string    `gorm:"size:50" json:"phone_number"`

	ServiceTitleEE string    `gorm:"size:200;not null" json:"service_title_ee"`
	ServiceTitleRU string    `gorm:"size:200;not null" json:"service_title_ru"`
	ServicePrice   Price     `gorm:"type:varchar(32);not null" json:"service_price"`
	PriceType      PriceType `gorm:"size:20;not null" json:"price_type"`

	AdditionalInfoEE string `gorm:"type:text" json:"additional_info_ee"`
	AdditionalInfoRU string `gorm:"type:text" json:"additional_info_ru"`

	CategoryTitleEE string `gorm:"size:200;not null" json:"category_title_ee"`
	CategoryTitleRU string `gorm:"size:200;not null" json:"category_title_ru"`

	Completed bool      `gorm:"not null;default:false;index" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

func (ServiceRequest) TableName() string {
	return "service_requests"
}

func (sr *ServiceRequest) BeforeCreate(tx *gorm.DB) error {
	if sr.ID == uuid.Nil {
		sr.ID = uuid.New()
	}
	return nil
}
