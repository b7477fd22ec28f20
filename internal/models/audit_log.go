package models

import (
	"time"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
)

// AuditLog records one row per workflow invocation, success or failure.
// Append-only: no update or delete path exists anywhere in the codebase.
type AuditLog struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	UserID      *uint              `gorm:"index" json:"user_id"`
	Action      string             `gorm:"size:100;not null;index" json:"action"`
	Description string             `gorm:"size:512" json:"description"`
	Status      domain.AuditStatus `gorm:"size:20;not null;index" json:"status"`
	ModelID     *uint              `gorm:"index" json:"model_id"`
	CustomerID  *uint              `gorm:"index" json:"customer_id"`
	OnSuccess   string             `gorm:"type:text" json:"on_success"` // JSON snapshot
	OnError     string             `gorm:"type:text" json:"on_error"`   // JSON snapshot
	CreatedAt   time.Time          `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
