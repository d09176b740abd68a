// Package notify delivers loan notices to an external webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/SscSPs/library_management_app/internal/core/ports/infra"
)

// ErrRateLimited is returned when the notice was dropped by the outbound limiter.
var ErrRateLimited = errors.New("notification rate limit exceeded")

// Webhook POSTs notices as JSON to a fixed URL.
type Webhook struct {
	url         string
	client      *http.Client
	rateLimiter *rate.Limiter
}

var _ infra.Notifier = (*Webhook)(nil)

// NewWebhook creates a notifier posting to url with the given per-request timeout.
// perMinute caps outbound requests; bursts of up to perMinute are allowed.
func NewWebhook(url string, timeout time.Duration, perMinute int) *Webhook {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &Webhook{
		url:         url,
		client:      &http.Client{Timeout: timeout},
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
	}
}

func (w *Webhook) NotifyDueDate(ctx context.Context, notice infra.DueDateNotice) error {
	if !w.rateLimiter.Allow() {
		return ErrRateLimited
	}
	if notice.Type == "" {
		notice.Type = infra.NoticeTypeLoanDueDate
	}

	body, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to marshal notice: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// Nop discards every notice.
type Nop struct{}

var _ infra.Notifier = Nop{}

func (Nop) NotifyDueDate(context.Context, infra.DueDateNotice) error { return nil }
