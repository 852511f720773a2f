package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/blogpulse/notifier/internal/brevo"
	"github.com/blogpulse/notifier/internal/hashnode"
	"github.com/blogpulse/notifier/pkg/config"
	"github.com/blogpulse/notifier/pkg/logx"
	"github.com/blogpulse/notifier/services/webhook-api/server"
)

func main() {
	logx.Init()
	defer logx.Sync()

	// Best effort: prod runs from real env vars.
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.WebhookSecret == "" {
		logx.L().Warnw("webhook_secret_not_set", "mode", "open")
	}
	if !cfg.CampaignReady() {
		logx.L().Warnw("campaign_config_incomplete",
			"brevo_key_set", cfg.BrevoAPIKey != "",
			"template_id", cfg.TemplateID,
			"list_id", cfg.ListID,
		)
	}

	posts := hashnode.NewClient(cfg.GraphQLEndpoint)
	mail := brevo.NewClient(cfg.BrevoBaseURL, cfg.BrevoAPIKey, brevo.Sender{
		Name:  cfg.DefaultSenderName,
		Email: cfg.DefaultSenderEmail,
	})

	h := server.NewHandlers(cfg, posts, mail)
	srv := server.NewHTTPServer(":"+cfg.Port, h)

	go func() {
		logx.L().Infow("api_listen_start", "addr", ":"+cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.L().Fatalw("http_server_error", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	logx.L().Infow("signal_received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logx.L().Errorw("server_shutdown_error", "error", err)
	} else {
		logx.L().Infow("server_shutdown_success")
	}

	logx.L().Infow("webhook-api stopped gracefully")
}
