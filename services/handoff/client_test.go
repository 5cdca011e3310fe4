package handoff

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaphod-black/BookingSearchMCP/models"
)

func testBooking() *models.ValidatedBooking {
	return &models.ValidatedBooking{
		AvailabilitySlot: models.AvailabilitySlot{
			AvailabilityID:  "mock-aaa",
			ActivityName:    "Whale Watching Adventure",
			DisplayDateTime: "2026-09-14T09:00:00-07:00",
			Duration:        "3 hours",
			PricePerPerson:  45,
			MeetingLocation: "Harbor Dock A",
		},
		CustomerInfo: models.CustomerInfo{Name: "Jordan Reyes", Phone: "+1-555-0142", Email: "jordan@example.com"},
		SessionID:    "voice-123-abcd",
		ValidatedAt:  time.Date(2026, time.September, 14, 8, 30, 0, 0, time.UTC),
		Platform:     "mock",
		PartySize:    4,
		TotalAmount:  180,
	}
}

func TestSendSuccess(t *testing.T) {
	var got models.HandoffPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "voice-booking", r.Header.Get("X-Source"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(models.HandoffAck{
			ConfirmationNumber: "CONF-123",
			EmailSent:          true,
			MonitoringStarted:  true,
			ExpiresAt:          "2026-09-14T10:00:00Z",
		})
	}))
	defer srv.Close()

	client := NewWebhookClient(srv.URL, "/webhook/trigger-booking", time.Second)
	outcome := client.Send(context.Background(), testBooking(), "email")

	require.True(t, outcome.Success)
	assert.True(t, outcome.AutomationTriggered)
	assert.True(t, outcome.PaymentLinkSent)
	assert.True(t, outcome.MonitoringStarted)
	assert.Equal(t, "CONF-123", outcome.ConfirmationNumber)
	assert.Contains(t, outcome.SpokenResponse, "Jordan Reyes")
	assert.Contains(t, outcome.SpokenResponse, "payment link")

	// Wire contract.
	assert.Equal(t, "Jordan Reyes", got.CustomerName)
	assert.Equal(t, "+1-555-0142", got.CustomerPhone)
	assert.Equal(t, "Whale Watching Adventure", got.ActivityName)
	assert.Equal(t, 4, got.PartySize)
	assert.Equal(t, 180.0, got.TotalAmount)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, "voice-123-abcd", got.VoiceSessionID)
	assert.Equal(t, "mock", got.BookingPlatform)
	assert.Equal(t, "email", got.AdditionalInfo.ContactPreference)
	assert.Equal(t, "2026-09-14T08:30:00Z", got.AdditionalInfo.ValidatedAt)
}

func TestSendNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewWebhookClient(srv.URL, "/webhook/trigger-booking", time.Second)
	outcome := client.Send(context.Background(), testBooking(), "email")

	require.False(t, outcome.Success)
	assert.Contains(t, outcome.Error, "502")
	assert.NotEmpty(t, outcome.FallbackAction)
	// The booking itself succeeded; only the payment link dispatch failed.
	assert.Contains(t, outcome.SpokenResponse, "I've reserved your Whale Watching Adventure")
	assert.Contains(t, outcome.SpokenResponse, "+1-555-0142")
	assert.NotContains(t, outcome.SpokenResponse, "failed")
}

func TestSendTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewWebhookClient(srv.URL, "/webhook/trigger-booking", 50*time.Millisecond)
	outcome := client.Send(context.Background(), testBooking(), "email")

	require.False(t, outcome.Success)
	assert.Contains(t, outcome.Error, "timeout")
	assert.NotEmpty(t, outcome.SpokenResponse)
}

func TestSendConnectionRefused(t *testing.T) {
	// A server that is already closed refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewWebhookClient(srv.URL, "/webhook/trigger-booking", time.Second)
	outcome := client.Send(context.Background(), testBooking(), "email")

	require.False(t, outcome.Success)
	assert.NotEmpty(t, outcome.Error)
	assert.NotEmpty(t, outcome.SpokenResponse)
}

func TestHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/elevenlabs/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewWebhookClient(srv.URL, "/api/v1/elevenlabs/webhook/trigger-booking", time.Second)
	status := client.HealthCheck(context.Background())
	assert.True(t, status.Healthy)
	assert.GreaterOrEqual(t, status.LatencyMs, 0.0)
}

func TestHealthCheckUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewWebhookClient(srv.URL, "/api/v1/elevenlabs/webhook/trigger-booking", time.Second)
	status := client.HealthCheck(context.Background())
	assert.False(t, status.Healthy)
	assert.NotEmpty(t, status.Error)
}
