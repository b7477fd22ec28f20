package repository

import (
	"github.com/xaosao/xaosao-admin-sub001/internal/models"

	"gorm.io/gorm"
)

type ModelRepository struct {
	db *gorm.DB
}

func NewModelRepository(db *gorm.DB) *ModelRepository {
	return &ModelRepository{db: db}
}

func (r *ModelRepository) GetByID(id uint) (*models.Model, error) {
	var m models.Model
	if err := r.db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ModelRepository) Update(m *models.Model) error {
	return r.db.Save(m).Error
}

func (r *ModelRepository) List(search string, page, limit int) ([]models.Model, int64, error) {
	q := r.db.Model(&models.Model{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("display_name LIKE ? OR email LIKE ? OR city_or_area LIKE ?", like, like, like)
	}
	var total int64
	q.Count(&total)
	var list []models.Model
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) List(search string, page, limit int) ([]models.Customer, int64, error) {
	q := r.db.Model(&models.Customer{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("username LIKE ? OR email LIKE ?", like, like)
	}
	var total int64
	q.Count(&total)
	var list []models.Customer
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}
