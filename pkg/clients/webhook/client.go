package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/adnanfarms/chickledger/internal/domain/models"
)

// Client exposes the outbound report notification used by the scheduler.
type Client interface {
	SendDailySummary(ctx context.Context, summary models.DailySummary, text string) error
}

// APIClient is a resty-backed implementation of Client posting to a fixed URL.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client for the configured endpoint.
func NewClient(url string) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient: restyClient,
		url:        url,
	}
}

// dailySummaryPayload is the wire shape sent to the webhook: the structured
// summary plus a preformatted message for channels that just relay text.
type dailySummaryPayload struct {
	Summary models.DailySummary `json:"summary"`
	Message string              `json:"message"`
}

// SendDailySummary posts the daily summary to the endpoint. Any non-2xx
// response is an error.
func (c *APIClient) SendDailySummary(ctx context.Context, summary models.DailySummary, text string) error {
	payload := dailySummaryPayload{Summary: summary, Message: text}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send daily summary: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("daily summary webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
