package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/qrdine/qrdine-api/models"
)

// WebhookNotifier POSTs newly created orders to an external URL (printer
// bridge, Slack relay, and so on). Delivery is best-effort: failures are
// logged and never surfaced to the customer.
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		client: resty.New().SetTimeout(10 * time.Second),
		url:    url,
	}
}

func (n *WebhookNotifier) OrderCreated(ctx context.Context, order models.Order) {
	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(order).
		Post(n.url)
	if err != nil {
		log.Println("order webhook failed:", err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("order webhook returned status %d", resp.StatusCode())
	}
}
