package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/blogpulse/notifier/internal/brevo"
	"github.com/blogpulse/notifier/internal/hashnode"
	"github.com/blogpulse/notifier/internal/notify"
	"github.com/blogpulse/notifier/pkg/config"
	"github.com/blogpulse/notifier/pkg/logx"
	"github.com/blogpulse/notifier/pkg/metrics"
	"github.com/gin-gonic/gin"
)

type postFetcher interface {
	FetchPostByID(ctx context.Context, id string) (hashnode.Post, error)
}

type mailer interface {
	RenderTemplate(ctx context.Context, templateID int64, params map[string]string) (brevo.Rendered, error)
	CreateCampaign(ctx context.Context, req brevo.CampaignRequest) (int64, error)
}

type Handlers struct {
	Cfg   config.NotifierConfig
	Posts postFetcher
	Mail  mailer

	now func() time.Time
}

func NewHandlers(cfg config.NotifierConfig, posts *hashnode.Client, mail *brevo.Client) *Handlers {
	return &Handlers{Cfg: cfg, Posts: posts, Mail: mail, now: time.Now}
}

func (h *Handlers) Healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// HandleHashnodeWebhook runs the notification pipeline for one delivery:
// verify -> parse -> filter -> fetch post -> render template -> schedule
// campaign. Every branch answers exactly once and nothing is retried here;
// the webhook source owns redelivery for non-2xx answers.
func (h *Handlers) HandleHashnodeWebhook(c *gin.Context) {
	receivedAt := h.now()

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return
	}

	// Open mode when no secret is configured. Deliberate operational
	// relaxation, logged on every delivery so it cannot go unnoticed.
	if h.Cfg.WebhookSecret == "" {
		logx.L().Warnw("signature_check_skipped", "reason", "no webhook secret configured")
	} else if !hashnode.VerifySignature(raw, c.GetHeader(hashnode.SignatureHeader), h.Cfg.WebhookSecret) {
		metrics.WebhookEventsTotal.WithLabelValues("unknown", "unauthorized").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payload, err := hashnode.ParseWebhookPayload(raw)
	if err != nil {
		logx.L().Warnw("webhook_payload_invalid", "error", err)
		metrics.WebhookEventsTotal.WithLabelValues("unknown", "malformed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook payload"})
		return
	}

	event := payload.Data.EventType
	fields := []any{
		"delivery_uuid", payload.Metadata.UUID,
		"event_type", event,
		"post_id", payload.Data.Post.ID,
	}

	if event != hashnode.EventPostPublished {
		logx.L().Infow("webhook_event_ignored", fields...)
		metrics.WebhookEventsTotal.WithLabelValues(event, "ignored").Inc()
		c.JSON(http.StatusOK, notify.IgnoredResp{Message: "ignored", EventType: event})
		return
	}

	if !h.Cfg.CampaignReady() {
		logx.L().Errorw("notifier_unconfigured", append(fields,
			"brevo_key_set", h.Cfg.BrevoAPIKey != "",
			"template_id", h.Cfg.TemplateID,
			"list_id", h.Cfg.ListID,
		)...)
		metrics.WebhookEventsTotal.WithLabelValues(event, "unconfigured").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "newsletter notifier is not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	post, err := h.Posts.FetchPostByID(ctx, payload.Data.Post.ID)
	if err != nil {
		if errors.Is(err, hashnode.ErrPostNotFound) {
			logx.L().Warnw("post_not_found", append(fields, "error", err)...)
		} else {
			logx.L().Errorw("post_fetch_error", append(fields, "error", err)...)
		}
		metrics.WebhookEventsTotal.WithLabelValues(event, "post_not_found").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "post not found"})
		return
	}

	params := map[string]string{
		"title":         post.Title,
		"brief":         post.Brief,
		"articleUrl":    articleURL(h.Cfg.ArticleBaseURL, post.Slug),
		"coverImageUrl": post.CoverImageURL,
	}

	rendered, err := h.Mail.RenderTemplate(ctx, h.Cfg.TemplateID, params)
	if err != nil {
		logx.L().Errorw("template_render_error", append(fields, "template_id", h.Cfg.TemplateID, "error", err)...)
		metrics.WebhookEventsTotal.WithLabelValues(event, "template_error").Inc()
		respondUpstreamError(c, "failed to fetch email template", err)
		return
	}

	// Delay gives a concurrently running site build time to publish the
	// article page before subscribers click through.
	scheduledAt := receivedAt.Add(h.Cfg.ScheduleDelay)

	campaignID, err := h.Mail.CreateCampaign(ctx, brevo.CampaignRequest{
		Name:        "New post: " + post.Title,
		Subject:     rendered.Subject,
		Sender:      rendered.Sender,
		HTMLContent: rendered.HTMLContent,
		ListIDs:     []int64{h.Cfg.ListID},
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		logx.L().Errorw("campaign_create_error", append(fields, "error", err)...)
		metrics.WebhookEventsTotal.WithLabelValues(event, "campaign_error").Inc()
		respondUpstreamError(c, "failed to schedule campaign", err)
		return
	}

	logx.L().Infow("campaign_scheduled", append(fields,
		"campaign_id", campaignID,
		"scheduled_at", scheduledAt,
	)...)
	metrics.WebhookEventsTotal.WithLabelValues(event, "scheduled").Inc()
	metrics.CampaignsScheduledTotal.Inc()

	c.JSON(http.StatusOK, notify.ScheduledResp{
		Success:     true,
		CampaignID:  campaignID,
		ScheduledAt: scheduledAt.UTC(),
	})
}

// respondUpstreamError answers 500 and, when the provider returned a body,
// attaches it for diagnostics.
func respondUpstreamError(c *gin.Context, msg string, err error) {
	var apiErr *brevo.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "details": apiErr.Body})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func articleURL(base, slug string) string {
	return strings.TrimRight(base, "/") + "/" + slug
}
