package models

import (
	"time"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"

	"gorm.io/gorm"
)

// Service is a bookable service category; Commission is the platform's cut in
// whole percent applied when a booking's escrow is released.
type Service struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Name              string         `gorm:"size:128;not null" json:"name"`
	CommissionPercent int            `gorm:"not null;default:0" json:"commission_percent"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Service) TableName() string { return "services" }

// ModelService is a model's offering of a service with their own price.
type ModelService struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ModelID    uint           `gorm:"not null;index" json:"model_id"`
	ServiceID  uint           `gorm:"not null;index" json:"service_id"`
	PriceCents int64          `gorm:"not null" json:"price_cents"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Model   Model   `gorm:"foreignKey:ModelID" json:"-"`
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (ModelService) TableName() string { return "model_services" }

// ServiceBooking is an escrowed booking of a model service by a customer. The
// customer's money sits in a negative booking_hold transaction until an admin
// refunds or completes it.
type ServiceBooking struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Reference      string `gorm:"uniqueIndex;size:64;not null" json:"reference"`
	CustomerID     uint   `gorm:"not null;index" json:"customer_id"`
	ModelID        uint   `gorm:"not null;index" json:"model_id"`
	ModelServiceID uint   `gorm:"not null;index" json:"model_service_id"`

	Status        domain.BookingStatus        `gorm:"size:20;not null;index" json:"status"`
	PaymentStatus domain.BookingPaymentStatus `gorm:"size:20;not null;index" json:"payment_status"`
	PriceCents    int64                       `gorm:"not null" json:"price_cents"`

	HoldTransactionID    *uint `gorm:"index" json:"hold_transaction_id"`
	ReleaseTransactionID *uint `gorm:"index" json:"release_transaction_id"`

	ScheduledAt *time.Time     `json:"scheduled_at"`
	CompletedAt *time.Time     `json:"completed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Customer     Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Model        Model        `gorm:"foreignKey:ModelID" json:"model,omitempty"`
	ModelService ModelService `gorm:"foreignKey:ModelServiceID" json:"model_service,omitempty"`
}

func (ServiceBooking) TableName() string { return "service_bookings" }
