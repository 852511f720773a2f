package notify

import "time"

// ScheduledResp is the 200 answer for a processed published-post event.
type ScheduledResp struct {
	Success     bool      `json:"success"`
	CampaignID  int64     `json:"campaignId"`
	ScheduledAt time.Time `json:"scheduledAt"`
}

// IgnoredResp acknowledges an event type the notifier deliberately skips.
// Acknowledging with 200 keeps the webhook source from retrying.
type IgnoredResp struct {
	Message   string `json:"message"`
	EventType string `json:"eventType"`
}
