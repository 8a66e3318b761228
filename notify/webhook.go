package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	rfhttp "github.com/randalmurphal/reviewflow/http"
)

// WebhookNotifier posts events as JSON to an HTTP webhook. Transient
// delivery failures are retried by the underlying client.
type WebhookNotifier struct {
	client *rfhttp.Client
}

// NewWebhookNotifier creates a webhook notifier for url. Extra headers
// (e.g. an auth token) are applied to every request.
func NewWebhookNotifier(url string, headers map[string]string) *WebhookNotifier {
	return &WebhookNotifier{
		client: rfhttp.NewClient(rfhttp.ClientConfig{
			Client:      &http.Client{Timeout: 10 * time.Second},
			BaseURL:     url,
			ServiceName: "webhook",
			BeforeRequest: func(req *http.Request) {
				for k, v := range headers {
					req.Header.Set(k, v)
				}
			},
		}),
	}
}

// Notify implements Notifier.
func (n *WebhookNotifier) Notify(ctx context.Context, event Event) error {
	if err := n.client.Post(ctx, "", event, nil); err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	return nil
}
