package models

import (
	"time"
)

// Outbox event statuses.
const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
	OutboxFailed  = "failed"
)

// Outbox topics.
const (
	OutboxTopicNotification      = "notification"
	OutboxTopicSubscriptionEvent = "subscription_event"
)

// OutboxEvent is a persisted side effect enqueued inside a workflow's database
// transaction and delivered by the dispatcher afterwards. Keeping side effects
// here makes delivery failures visible and retryable instead of silently lost.
type OutboxEvent struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Topic     string     `gorm:"size:50;not null;index" json:"topic"`
	Payload   string     `gorm:"type:text;not null" json:"payload"` // JSON
	Status    string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Attempts  int        `gorm:"not null;default:0" json:"attempts"`
	LastError string     `gorm:"size:512" json:"last_error"`
	SentAt    *time.Time `json:"sent_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (OutboxEvent) TableName() string { return "outbox_events" }
