package models

import (
	"time"

	"gorm.io/gorm"
)

// Referral tracks who referred a model onto the platform. Commission is paid
// to the referrer for the first qualifying completed bookings (default 2).
type Referral struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	ReferrerModelID uint           `gorm:"not null;index" json:"referrer_model_id"`
	ReferredModelID uint           `gorm:"uniqueIndex;not null" json:"referred_model_id"`
	CompletedCount  int            `gorm:"not null;default:0" json:"completed_count"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Referrer Model `gorm:"foreignKey:ReferrerModelID" json:"referrer,omitempty"`
	Referred Model `gorm:"foreignKey:ReferredModelID" json:"referred,omitempty"`
}

func (Referral) TableName() string { return "referrals" }
