package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is an in-app notification for a model or customer, mirrored to
// FCM when a token is registered with the client backend.
type Notification struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     *uint          `gorm:"index" json:"user_id"` // admin recipient
	ModelID    *uint          `gorm:"index" json:"model_id"`
	CustomerID *uint          `gorm:"index" json:"customer_id"`
	Type       string         `gorm:"size:50;not null;index" json:"type"`
	Title      string         `gorm:"size:255" json:"title"`
	Body       string         `gorm:"type:text" json:"body"`
	Data       string         `gorm:"type:text" json:"data"` // JSON payload
	ReadAt     *time.Time     `json:"read_at"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
