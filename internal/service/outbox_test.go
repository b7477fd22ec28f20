package service

import (
	"context"
	"testing"
	"time"

	"github.com/xaosao/xaosao-admin-sub001/config"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"
	"github.com/xaosao/xaosao-admin-sub001/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testOutboxConfig() config.OutboxConfig {
	return config.OutboxConfig{
		PollInterval: time.Second,
		BatchSize:    10,
		MaxAttempts:  2,
	}
}

func newTestDispatcher(db *gorm.DB) *OutboxDispatcher {
	notifier := NewNotificationService(repository.NewNotificationRepository(db), nil, nil)
	events := NewSubscriptionEventClient(config.ClientAppConfig{})
	return NewOutboxDispatcher(repository.NewOutboxRepository(db), notifier, events, testOutboxConfig())
}

func TestOutboxDispatcher_DeliversNotification(t *testing.T) {
	db := setupTestDB(t)
	d := newTestDispatcher(db)

	cid := uint(7)
	require.NoError(t, enqueueNotification(db, NotificationEvent{
		Kind:          NotifyTransactionApproved,
		TransactionID: 42,
		CustomerID:    &cid,
		AmountCents:   1500,
	}))

	n, err := d.DispatchOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var notif models.Notification
	require.NoError(t, db.First(&notif).Error)
	assert.Equal(t, NotifyTransactionApproved, notif.Type)
	require.NotNil(t, notif.CustomerID)
	assert.Equal(t, cid, *notif.CustomerID)

	var ev models.OutboxEvent
	require.NoError(t, db.First(&ev).Error)
	assert.Equal(t, models.OutboxSent, ev.Status)
	assert.NotNil(t, ev.SentAt)
}

func TestOutboxDispatcher_SubscriptionEventSkippedWhenUnconfigured(t *testing.T) {
	db := setupTestDB(t)
	d := newTestDispatcher(db)

	require.NoError(t, enqueueSubscriptionEvent(db, SubscriptionEvent{
		CustomerID:     9,
		SubscriptionID: 3,
		Status:         "active",
	}))

	// No client backend configured: the trigger is a no-op, the event still
	// counts as delivered.
	n, err := d.DispatchOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var ev models.OutboxEvent
	require.NoError(t, db.First(&ev).Error)
	assert.Equal(t, models.OutboxSent, ev.Status)
}

func TestOutboxDispatcher_FailsTerminallyAfterMaxAttempts(t *testing.T) {
	db := setupTestDB(t)
	d := newTestDispatcher(db)

	bad := &models.OutboxEvent{Topic: "no_such_topic", Payload: "{}"}
	require.NoError(t, repository.NewOutboxRepository(db).Create(bad))

	for i := 0; i < 2; i++ {
		n, err := d.DispatchOnce(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	}

	var ev models.OutboxEvent
	require.NoError(t, db.First(&ev, bad.ID).Error)
	assert.Equal(t, models.OutboxFailed, ev.Status)
	assert.Equal(t, 2, ev.Attempts)
	assert.Contains(t, ev.LastError, "no_such_topic")

	// Terminal events are never picked up again.
	n, err := d.DispatchOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	var after models.OutboxEvent
	require.NoError(t, db.First(&after, bad.ID).Error)
	assert.Equal(t, 2, after.Attempts)
}
