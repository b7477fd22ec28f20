package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/xaosao/xaosao-admin-sub001/config"
	"github.com/xaosao/xaosao-admin-sub001/internal/models"
	"github.com/xaosao/xaosao-admin-sub001/internal/repository"
)

// OutboxDispatcher drains pending outbox events on a fixed interval. Each
// event is delivered at least once; a delivery failure bumps the attempt
// counter and the event is retried next tick until it goes terminal failed.
type OutboxDispatcher struct {
	repo     *repository.OutboxRepository
	notifier *NotificationService
	events   *SubscriptionEventClient
	cfg      config.OutboxConfig
}

func NewOutboxDispatcher(repo *repository.OutboxRepository, notifier *NotificationService, events *SubscriptionEventClient, cfg config.OutboxConfig) *OutboxDispatcher {
	return &OutboxDispatcher{repo: repo, notifier: notifier, events: events, cfg: cfg}
}

// Run polls until ctx is cancelled.
func (d *OutboxDispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := d.DispatchOnce(ctx); err != nil {
				log.Printf("[Outbox] dispatch error: %v", err)
			} else if n > 0 {
				log.Printf("[Outbox] delivered %d event(s)", n)
			}
		}
	}
}

// DispatchOnce delivers one batch of pending events and returns how many were
// delivered successfully.
func (d *OutboxDispatcher) DispatchOnce(ctx context.Context) (int, error) {
	pending, err := d.repo.ListPending(d.cfg.BatchSize)
	if err != nil {
		return 0, err
	}
	delivered := 0
	for i := range pending {
		ev := &pending[i]
		if err := d.deliver(ctx, ev); err != nil {
			if merr := d.repo.MarkAttemptFailed(ev, err.Error(), d.cfg.MaxAttempts); merr != nil {
				log.Printf("[Outbox] failed to record attempt for event %d: %v", ev.ID, merr)
			}
			continue
		}
		if err := d.repo.MarkSent(ev.ID); err != nil {
			log.Printf("[Outbox] failed to mark event %d sent: %v", ev.ID, err)
			continue
		}
		delivered++
	}
	return delivered, nil
}

func (d *OutboxDispatcher) deliver(ctx context.Context, ev *models.OutboxEvent) error {
	switch ev.Topic {
	case models.OutboxTopicNotification:
		var ne NotificationEvent
		if err := json.Unmarshal([]byte(ev.Payload), &ne); err != nil {
			return err
		}
		return d.notifier.Deliver(ctx, ne)
	case models.OutboxTopicSubscriptionEvent:
		var se SubscriptionEvent
		if err := json.Unmarshal([]byte(ev.Payload), &se); err != nil {
			return err
		}
		return d.events.Trigger(ctx, se)
	}
	return fmt.Errorf("unknown outbox topic %q", ev.Topic)
}
