package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookNotifier posts notifications as JSON to a push gateway endpoint.
// Deduplication of repeated notifications for the same reminder happens at
// the gateway, keyed on the notification ID.
type WebhookNotifier struct {
	client  HTTPClient    // HTTP client for making requests
	url     string        // Push gateway endpoint
	limiter *rate.Limiter // Limiter to keep bursts off the gateway
	log     *slog.Logger  // Logger for logging operations
}

// NewWebhookNotifier creates a notifier posting to the given gateway URL.
func NewWebhookNotifier(url string, log *slog.Logger) *WebhookNotifier {
	const timeout = 10
	const perSecond = 5

	return &WebhookNotifier{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		url:     url,
		limiter: rate.NewLimiter(rate.Limit(perSecond), perSecond),
		log:     log,
	}
}

// NewWebhookNotifierWithClient allows injecting a custom HTTP client and limiter.
func NewWebhookNotifierWithClient(
	client HTTPClient,
	url string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *WebhookNotifier {
	return &WebhookNotifier{client: client, url: url, limiter: limiter, log: log}
}

// Notify posts the notification to the gateway. A non-2xx status is an error;
// the caller decides whether to care, there is no retry here.
func (wn *WebhookNotifier) Notify(ctx context.Context, note Notification) error {
	if err := wn.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait interrupted: %w", err)
	}

	wn.log.DebugContext(ctx, "Dispatching notification", "id", note.ID, "title", note.Title)

	payload, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wn.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := wn.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute notification request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("notification gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
