// internal/notify/webhook.go
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ovse-portal/internal/common/httpx"
	"ovse-portal/internal/common/logger"
)

// Webhook POSTs issuance and revocation events to the OVSE-side endpoint.
type Webhook struct {
	url    string
	client *httpx.Client
	logger logger.Logger
}

func NewWebhook(url string, timeout time.Duration, log logger.Logger) *Webhook {
	return &Webhook{
		url:    url,
		client: httpx.NewClient(timeout),
		logger: log.WithFields(map[string]interface{}{"notifier": "webhook", "url": url}),
	}
}

func (w *Webhook) NotifyIssuance(ctx context.Context, notice IssuanceNotice) error {
	return w.post(ctx, "issuance", notice)
}

func (w *Webhook) NotifyRevocation(ctx context.Context, notice RevocationNotice) error {
	return w.post(ctx, "revocation", notice)
}

func (w *Webhook) post(ctx context.Context, event string, payload interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  payload,
	})
	if err != nil {
		return fmt.Errorf("marshal %s notice: %w", event, err)
	}

	req, err := http.NewRequest(http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", event, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.DoWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("post %s notice: %w", event, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("post %s notice: unexpected status %d", event, resp.StatusCode)
	}

	w.logger.Debug("notice delivered", map[string]interface{}{"event": event})
	return nil
}
