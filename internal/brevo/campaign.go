package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/blogpulse/notifier/pkg/metrics"
)

// Brevo wants local-time offsets with millisecond precision.
const scheduledAtLayout = "2006-01-02T15:04:05.000-07:00"

// CampaignRequest is one campaign creation call. The provider owns the whole
// lifecycle after submission; there is no idempotency key, so resubmitting
// the same request schedules a duplicate campaign.
type CampaignRequest struct {
	Name        string
	Subject     string
	Sender      Sender
	HTMLContent string
	ListIDs     []int64
	ScheduledAt time.Time
}

type campaignBody struct {
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	Sender      Sender `json:"sender"`
	Type        string `json:"type"`
	HTMLContent string `json:"htmlContent"`
	Recipients  struct {
		ListIDs []int64 `json:"listIds"`
	} `json:"recipients"`
	ScheduledAt string `json:"scheduledAt"`
}

// CreateCampaign submits one scheduled campaign and returns the id the
// provider assigned. A non-2xx answer is fatal for the operation: the caller
// must not retry blindly.
func (c *Client) CreateCampaign(ctx context.Context, req CampaignRequest) (int64, error) {
	body := campaignBody{
		Name:        req.Name,
		Subject:     req.Subject,
		Sender:      req.Sender,
		Type:        "classic",
		HTMLContent: req.HTMLContent,
		ScheduledAt: req.ScheduledAt.Format(scheduledAtLayout),
	}
	body.Recipients.ListIDs = req.ListIDs

	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/emailCampaigns", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	c.setHeaders(httpReq)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	metrics.UpstreamRequestDuration.WithLabelValues("brevo", "create_campaign").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("brevo", "create_campaign").Inc()
		return 0, fmt.Errorf("brevo create campaign: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamErrorsTotal.WithLabelValues("brevo", "create_campaign").Inc()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("brevo create campaign: decode: %w", err)
	}
	return out.ID, nil
}
