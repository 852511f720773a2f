package brevo

import (
	"fmt"
	"net/http"
	"time"
)

// Sender identifies who a campaign is sent as.
type Sender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// APIError is any non-2xx answer from Brevo. The raw body is kept so the
// webhook response can surface the provider's diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("brevo: unexpected status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL       string
	apiKey        string
	defaultSender Sender
	http          *http.Client
}

func NewClient(baseURL, apiKey string, defaultSender Sender) *Client {
	return &Client{
		baseURL:       baseURL,
		apiKey:        apiKey,
		defaultSender: defaultSender,
		http:          &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
}
