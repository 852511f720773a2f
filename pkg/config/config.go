package config

import (
	"os"
	"strconv"
	"time"
)

// NotifierConfig is everything the webhook-api needs. It is constructed once
// in main and passed down explicitly; components never read the environment
// themselves.
type NotifierConfig struct {
	Port string

	// Hashnode (content source)
	GraphQLEndpoint string
	WebhookSecret   string // empty means signature checking is skipped (open mode)

	// Brevo (campaign provider)
	BrevoBaseURL string
	BrevoAPIKey  string
	TemplateID   int64
	ListID       int64

	// Campaign assembly
	ArticleBaseURL     string
	DefaultSenderName  string
	DefaultSenderEmail string
	ScheduleDelay      time.Duration
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt64(k string, def int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// Load reads the webhook-api configuration from the environment. Required
// secrets are deliberately not fatal here: a missing Brevo key or list id
// turns into an explicit 500 at request time, so a misconfigured deployment
// still answers health checks and logs why it cannot schedule campaigns.
func Load() NotifierConfig {
	return NotifierConfig{
		Port:            getenv("PORT", "8080"),
		GraphQLEndpoint: getenv("HASHNODE_GQL_ENDPOINT", "https://gql.hashnode.com"),
		WebhookSecret:   os.Getenv("HASHNODE_WEBHOOK_SECRET"),

		BrevoBaseURL: getenv("BREVO_BASE_URL", "https://api.brevo.com"),
		BrevoAPIKey:  os.Getenv("BREVO_API_KEY"),
		TemplateID:   getenvInt64("BREVO_TEMPLATE_ID", 0),
		ListID:       getenvInt64("BREVO_LIST_ID", 0),

		ArticleBaseURL:     getenv("ARTICLE_BASE_URL", "https://blog.example.com"),
		DefaultSenderName:  getenv("SENDER_NAME", "The Blog"),
		DefaultSenderEmail: getenv("SENDER_EMAIL", "newsletter@example.com"),
		ScheduleDelay:      getenvDuration("CAMPAIGN_SCHEDULE_DELAY", 4*time.Minute),
	}
}

// CampaignReady reports whether campaign scheduling is configured at all.
func (c NotifierConfig) CampaignReady() bool {
	return c.BrevoAPIKey != "" && c.TemplateID > 0 && c.ListID > 0
}
