package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/xaosao/xaosao-admin-sub001/config"
)

// SubscriptionEvent tells the client backend that a subscription changed state
// so it can push the update to the customer's open session.
type SubscriptionEvent struct {
	CustomerID     uint   `json:"customerId"`
	SubscriptionID uint   `json:"subscriptionId"`
	Status         string `json:"status"`
}

// SubscriptionEventClient posts subscription events to the client backend.
// When the backend URL or secret is unset the call is silently skipped.
type SubscriptionEventClient struct {
	baseURL string
	secret  string
	client  *http.Client
}

func NewSubscriptionEventClient(cfg config.ClientAppConfig) *SubscriptionEventClient {
	return &SubscriptionEventClient{
		baseURL: cfg.BackendURL,
		secret:  cfg.SSEAPISecret,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Trigger posts the event. Returns nil without calling out when unconfigured.
func (c *SubscriptionEventClient) Trigger(ctx context.Context, ev SubscriptionEvent) error {
	if c.baseURL == "" || c.secret == "" {
		return nil
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/trigger-subscription-event", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Secret", c.secret)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("subscription event rejected: %d", resp.StatusCode)
	}
	return nil
}
