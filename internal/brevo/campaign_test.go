package brevo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreateCampaign_OK(t *testing.T) {
	var got campaignBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v3/emailCampaigns", r.URL.Path)
		require.Equal(t, "key-123", r.Header.Get("api-key"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"id":4217}`))
	}))
	defer srv.Close()

	scheduledAt := time.Date(2026, 8, 28, 10, 4, 0, 0, time.UTC)
	c := NewClient(srv.URL, "key-123", Sender{})
	id, err := c.CreateCampaign(context.Background(), CampaignRequest{
		Name:        "New post: T",
		Subject:     "New: T",
		Sender:      Sender{Name: "Ann", Email: "ann@example.com"},
		HTMLContent: "<p>B</p>",
		ListIDs:     []int64{5},
		ScheduledAt: scheduledAt,
	})
	require.NoError(t, err)
	require.Equal(t, int64(4217), id)

	require.Equal(t, "classic", got.Type)
	require.Equal(t, []int64{5}, got.Recipients.ListIDs)
	require.Equal(t, "New post: T", got.Name)
	require.Equal(t, Sender{Name: "Ann", Email: "ann@example.com"}, got.Sender)

	parsed, err := time.Parse(scheduledAtLayout, got.ScheduledAt)
	require.NoError(t, err)
	require.True(t, parsed.Equal(scheduledAt))
}

func TestCreateCampaign_UpstreamRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"code":"maintenance"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key-123", Sender{})
	id, err := c.CreateCampaign(context.Background(), CampaignRequest{
		Name: "x", ListIDs: []int64{5}, ScheduledAt: time.Now(),
	})
	require.Zero(t, id)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	require.Contains(t, apiErr.Body, "maintenance")
}
