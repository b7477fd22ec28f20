package models

import (
	"time"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"

	"gorm.io/gorm"
)

// SubscriptionPlan is a purchasable plan (price in cents, duration in days).
type SubscriptionPlan struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:64;not null" json:"name"`
	PriceCents   int64          `gorm:"not null" json:"price_cents"`
	DurationDays int            `gorm:"not null" json:"duration_days"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SubscriptionPlan) TableName() string { return "subscription_plans" }

// Subscription links a customer to a plan, paid through a transaction.
type Subscription struct {
	ID            uint                      `gorm:"primaryKey" json:"id"`
	CustomerID    uint                      `gorm:"not null;index" json:"customer_id"`
	PlanID        uint                      `gorm:"not null;index" json:"plan_id"`
	TransactionID *uint                     `gorm:"index" json:"transaction_id"`
	Status        domain.SubscriptionStatus `gorm:"size:20;not null;index" json:"status"`
	StartDate     *time.Time                `json:"start_date"`
	EndDate       *time.Time                `json:"end_date"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
	DeletedAt     gorm.DeletedAt            `gorm:"index" json:"-"`

	Customer    Customer         `gorm:"foreignKey:CustomerID" json:"-"`
	Plan        SubscriptionPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	Transaction *Transaction     `gorm:"foreignKey:TransactionID" json:"-"`
}

func (Subscription) TableName() string { return "subscriptions" }

// SubscriptionHistory mirrors every status change so the client backend can
// show a timeline without replaying the subscription row.
type SubscriptionHistory struct {
	ID             uint                      `gorm:"primaryKey" json:"id"`
	SubscriptionID uint                      `gorm:"not null;index" json:"subscription_id"`
	Status         domain.SubscriptionStatus `gorm:"size:20;not null;index" json:"status"`
	Note           string                    `gorm:"size:255" json:"note"`
	CreatedAt      time.Time                 `json:"created_at"`

	Subscription Subscription `gorm:"foreignKey:SubscriptionID" json:"-"`
}

func (SubscriptionHistory) TableName() string { return "subscription_histories" }
