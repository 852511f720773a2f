package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "HASHNODE_GQL_ENDPOINT", "HASHNODE_WEBHOOK_SECRET",
		"BREVO_BASE_URL", "BREVO_API_KEY", "BREVO_TEMPLATE_ID", "BREVO_LIST_ID",
		"ARTICLE_BASE_URL", "CAMPAIGN_SCHEDULE_DELAY",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "https://gql.hashnode.com", cfg.GraphQLEndpoint)
	require.Equal(t, "https://api.brevo.com", cfg.BrevoBaseURL)
	require.Equal(t, 4*time.Minute, cfg.ScheduleDelay)
	require.False(t, cfg.CampaignReady())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BREVO_API_KEY", "key-123")
	t.Setenv("BREVO_TEMPLATE_ID", "7")
	t.Setenv("BREVO_LIST_ID", "5")
	t.Setenv("CAMPAIGN_SCHEDULE_DELAY", "90s")

	cfg := Load()
	require.Equal(t, int64(7), cfg.TemplateID)
	require.Equal(t, int64(5), cfg.ListID)
	require.Equal(t, 90*time.Second, cfg.ScheduleDelay)
	require.True(t, cfg.CampaignReady())
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("BREVO_TEMPLATE_ID", "seven")
	t.Setenv("CAMPAIGN_SCHEDULE_DELAY", "soon")

	cfg := Load()
	require.Zero(t, cfg.TemplateID)
	require.Equal(t, 4*time.Minute, cfg.ScheduleDelay)
}
