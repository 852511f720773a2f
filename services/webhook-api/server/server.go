package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogpulse/notifier/docs"
	"github.com/blogpulse/notifier/pkg/metrics"
)

func NewHTTPServer(addr string, h *Handlers) *http.Server {
	r := gin.New()
	r.Use(gin.Recovery(), Observability())

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.POST("/webhooks/hashnode", h.HandleHashnodeWebhook)

	r.GET("/docs", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", docs.WebhookSwaggerHTML)
	})
	r.GET("/docs/webhook-api/openapi.yaml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", docs.WebhookOpenAPI)
	})

	return &http.Server{
		Addr:    addr,
		Handler: r,
	}
}
