package models

import (
	"time"

	"github.com/xaosao/xaosao-admin-sub001/internal/domain"

	"gorm.io/gorm"
)

// User is a back-office admin account. Platform models and customers live in
// their own tables; this table never holds end users.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // ADMIN | SUPER_ADMIN
	FCMToken     string         `gorm:"size:512" json:"-"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == domain.RoleAdmin || u.Role == domain.RoleSuperAdmin
}
