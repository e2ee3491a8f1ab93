package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultNotifyTimeout = 15 * time.Second

// PaymentNotice is the JSON document posted to the notification endpoint
// after a callback settles.
type PaymentNotice struct {
	OrderID      string    `json:"orderId"`
	Status       string    `json:"status"`
	ResponseCode string    `json:"responseCode,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// RestyNotifier posts settlement notices to an HTTPS endpoint. Delivery
// is best effort; the settler logs failures and moves on.
type RestyNotifier struct {
	url    string
	secret string
	client *resty.Client
}

// NewRestyNotifier builds a notifier for the given endpoint.
func NewRestyNotifier(url, secret string, client *resty.Client) (*RestyNotifier, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("notify URL is required")
	}

	if client == nil {
		client = resty.New().SetTimeout(defaultNotifyTimeout)
	}

	return &RestyNotifier{
		url:    url,
		secret: secret,
		client: client,
	}, nil
}

// Send transmits the notice as JSON to the configured endpoint.
func (n *RestyNotifier) Send(ctx context.Context, notice PaymentNotice) error {
	req := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(notice)
	if n.secret != "" {
		req.SetHeader("X-Callback-Secret", n.secret)
	}

	resp, err := req.Post(n.url)
	if err != nil {
		return fmt.Errorf("send payment notice: %w", err)
	}
	if resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("notice endpoint returned %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return nil
}
