package repository

import (
	"github.com/xaosao/xaosao-admin-sub001/internal/domain"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

// ListAdminFCMTokens returns the non-empty push tokens of all admin accounts.
func (r *UserRepository) ListAdminFCMTokens() ([]string, error) {
	var tokens []string
	err := r.db.Model(&models.User{}).
		Where("role IN ? AND fcm_token <> ''", []string{domain.RoleAdmin, domain.RoleSuperAdmin}).
		Pluck("fcm_token", &tokens).Error
	return tokens, err
}
