// server/internal/notify/whatsapp.go
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gesla-logistics-api-server/config"
)

// WhatsAppChannel posts fiscal alerts to an external bot gateway. The
// message carries a deep link back into the back office.
type WhatsAppChannel struct {
	WebhookURL string
	APIToken   string
	HTTPClient *http.Client
}

func NewWhatsAppChannel(cfg config.WhatsAppConfig) *WhatsAppChannel {
	if cfg.WebhookURL == "" {
		return nil
	}
	return &WhatsAppChannel{
		WebhookURL: cfg.WebhookURL,
		APIToken:   cfg.APIToken,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *WhatsAppChannel) SendAlert(ctx context.Context, message, link string) error {
	payload := map[string]interface{}{
		"message": message,
		"link":    link,
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.WebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+w.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}
	return nil
}
