package brevo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/blogpulse/notifier/pkg/metrics"
)

// Template is a transactional email template as stored with the provider.
type Template struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
	Sender      Sender `json:"sender"`
}

// Rendered is a template after placeholder substitution. Immutable once built.
type Rendered struct {
	Subject     string
	HTMLContent string
	Sender      Sender
}

// GetTemplate fetches a template record. Only a non-2xx answer is an error.
func (c *Client) GetTemplate(ctx context.Context, id int64) (Template, error) {
	url := fmt.Sprintf("%s/v3/smtp/templates/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Template{}, err
	}
	c.setHeaders(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues("brevo", "get_template").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("brevo", "get_template").Inc()
		return Template{}, fmt.Errorf("brevo get template: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamErrorsTotal.WithLabelValues("brevo", "get_template").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Template{}, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tpl Template
	if err := json.NewDecoder(resp.Body).Decode(&tpl); err != nil {
		return Template{}, fmt.Errorf("brevo get template: decode: %w", err)
	}
	return tpl, nil
}

// Placeholders look like {{ params.title }}, whitespace-tolerant inside the
// braces. Same syntax Brevo uses in its own template editor.
var placeholderRe = regexp.MustCompile(`\{\{\s*params\.([A-Za-z0-9_]+)\s*\}\}`)

// SubstituteParams replaces every known placeholder with its value. Unknown
// placeholders stay verbatim in the output; extra params are ignored.
// Substitution cannot fail.
func SubstituteParams(s string, params map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		key := placeholderRe.FindStringSubmatch(m)[1]
		if v, ok := params[key]; ok {
			return v
		}
		return m
	})
}

// RenderTemplate fetches a template and substitutes params into both its
// subject and HTML body. When the provider record carries no sender identity
// the client's default sender is used instead.
func (c *Client) RenderTemplate(ctx context.Context, templateID int64, params map[string]string) (Rendered, error) {
	tpl, err := c.GetTemplate(ctx, templateID)
	if err != nil {
		return Rendered{}, err
	}

	r := Rendered{
		Subject:     SubstituteParams(tpl.Subject, params),
		HTMLContent: SubstituteParams(tpl.HTMLContent, params),
		Sender:      tpl.Sender,
	}
	if r.Sender.Email == "" {
		r.Sender = c.defaultSender
	}
	return r, nil
}
