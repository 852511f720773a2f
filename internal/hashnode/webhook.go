package hashnode

import (
	"encoding/json"
	"errors"
)

// SignatureHeader is the header Hashnode signs webhook deliveries with.
const SignatureHeader = "x-hashnode-signature"

const (
	EventPostPublished = "post_published"
	EventPostUpdated   = "post_updated"
	EventPostDeleted   = "post_deleted"
)

// WebhookPayload is the inbound delivery body. It lives for one request only.
type WebhookPayload struct {
	Metadata struct {
		UUID string `json:"uuid"`
	} `json:"metadata"`
	Data struct {
		Publication struct {
			ID string `json:"id"`
		} `json:"publication"`
		Post struct {
			ID string `json:"id"`
		} `json:"post"`
		EventType string `json:"eventType"`
	} `json:"data"`
}

var errIncompletePayload = errors.New("webhook payload missing eventType or post id")

// ParseWebhookPayload decodes a delivery body and rejects payloads missing
// the fields every event type carries.
func ParseWebhookPayload(body []byte) (WebhookPayload, error) {
	var p WebhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return WebhookPayload{}, err
	}
	if p.Data.EventType == "" || p.Data.Post.ID == "" {
		return WebhookPayload{}, errIncompletePayload
	}
	return p, nil
}
