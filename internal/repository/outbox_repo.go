package repository

import (
	"time"

	"github.com/xaosao/xaosao-admin-sub001/internal/models"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Create(e *models.OutboxEvent) error {
	return r.db.Create(e).Error
}

// ListPending returns the oldest pending events up to limit.
func (r *OutboxRepository) ListPending(limit int) ([]models.OutboxEvent, error) {
	var list []models.OutboxEvent
	err := r.db.Where("status = ?", models.OutboxPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *OutboxRepository) MarkSent(id uint) error {
	now := time.Now()
	return r.db.Model(&models.OutboxEvent{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":  models.OutboxSent,
		"sent_at": &now,
	}).Error
}

// MarkAttemptFailed bumps the attempt counter; the event goes terminal failed
// once attempts reach maxAttempts, otherwise it stays pending for the next tick.
func (r *OutboxRepository) MarkAttemptFailed(e *models.OutboxEvent, errMsg string, maxAttempts int) error {
	e.Attempts++
	e.LastError = errMsg
	if e.Attempts >= maxAttempts {
		e.Status = models.OutboxFailed
	}
	return r.db.Model(e).Updates(map[string]interface{}{
		"attempts":   e.Attempts,
		"last_error": e.LastError,
		"status":     e.Status,
	}).Error
}

func (r *OutboxRepository) List(status string, page, limit int) ([]models.OutboxEvent, int64, error) {
	q := r.db.Model(&models.OutboxEvent{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	q.Count(&total)
	var list []models.OutboxEvent
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}
