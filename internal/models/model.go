package models

import (
	"time"

	"gorm.io/gorm"
)

// Model is a service provider profile on the platform.
type Model struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	DisplayName  string         `gorm:"size:128;not null" json:"display_name"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone        string         `gorm:"size:20" json:"phone"`
	AvatarURL    string         `gorm:"size:512" json:"avatar_url"`
	ThumbnailURL string         `gorm:"size:512" json:"thumbnail_url"`
	CityOrArea   string         `gorm:"size:128" json:"city_or_area"`
	IsVerified   bool           `gorm:"default:false" json:"is_verified"`
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Model) TableName() string {
	return "models"
}

// Customer is a paying end user of the platform.
type Customer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone     string         `gorm:"size:20" json:"phone"`
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}
