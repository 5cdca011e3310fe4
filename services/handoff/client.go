package handoff

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zaphod-black/BookingSearchMCP/models"
	"github.com/zaphod-black/BookingSearchMCP/utils"
)

// Client hands a validated booking to the payment/automation collaborator
// and translates the result into a voice-ready message.
type Client interface {
	Send(ctx context.Context, booking *models.ValidatedBooking, contactPreference string) *models.HandoffOutcome
	HealthCheck(ctx context.Context) models.HealthStatus
}

// WebhookClient implements Client over a single bounded-timeout POST.
type WebhookClient struct {
	webhookURL string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewWebhookClient builds a client for the collaborator's trigger endpoint.
func NewWebhookClient(baseURL, endpoint string, timeout time.Duration) *WebhookClient {
	return &WebhookClient{
		webhookURL: strings.TrimRight(baseURL, "/") + endpoint,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     utils.GetLogger(),
	}
}

// Send issues the handoff request. It never returns an error: every failure
// mode is folded into the outcome so the pipeline can speak it. The apology
// on failure still confirms the reservation itself — only the payment-link
// dispatch failed.
func (c *WebhookClient) Send(ctx context.Context, booking *models.ValidatedBooking, contactPreference string) *models.HandoffOutcome {
	start := time.Now()

	payload := models.HandoffPayload{
		CustomerName:     booking.CustomerInfo.Name,
		CustomerEmail:    booking.CustomerInfo.Email,
		CustomerPhone:    booking.CustomerInfo.Phone,
		ActivityName:     booking.ActivityName,
		ActivityDateTime: booking.DisplayDateTime,
		PartySize:        booking.PartySize,
		TotalAmount:      booking.TotalAmount,
		Currency:         "USD",
		VoiceSessionID:   booking.SessionID,
		BookingPlatform:  booking.Platform,
		MeetingLocation:  booking.MeetingLocation,
		AdditionalInfo: models.HandoffExtras{
			Duration:          booking.Duration,
			PricePerPerson:    booking.PricePerPerson,
			ContactPreference: contactPreference,
			ValidatedAt:       booking.ValidatedAt.Format(time.RFC3339),
		},
	}

	c.logger.Info("triggering payment handoff",
		zap.String("webhookUrl", c.webhookURL),
		zap.String("sessionId", booking.SessionID),
	)

	ack, err := c.post(ctx, payload)
	if err != nil {
		c.logger.Error("payment handoff failed",
			zap.Error(err),
			zap.String("sessionId", booking.SessionID),
			zap.Float64("responseTimeMs", float64(time.Since(start))/float64(time.Millisecond)),
		)
		return &models.HandoffOutcome{
			Success:        false,
			SpokenResponse: c.failureResponse(booking),
			Error:          err.Error(),
			FallbackAction: "Manual customer service follow-up required",
		}
	}

	c.logger.Info("payment handoff triggered",
		zap.String("sessionId", booking.SessionID),
		zap.String("confirmationNumber", ack.ConfirmationNumber),
		zap.Float64("responseTimeMs", float64(time.Since(start))/float64(time.Millisecond)),
	)

	return &models.HandoffOutcome{
		Success:             true,
		SpokenResponse:      c.successResponse(booking),
		AutomationTriggered: true,
		PaymentLinkSent:     ack.EmailSent,
		ConfirmationNumber:  ack.ConfirmationNumber,
		MonitoringStarted:   ack.MonitoringStarted,
		ExpiresAt:           ack.ExpiresAt,
	}
}

func (c *WebhookClient) post(ctx context.Context, payload models.HandoffPayload) (*models.HandoffAck, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal handoff payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build handoff request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "BookingSearchMCP/1.0.0")
	req.Header.Set("X-Source", "voice-booking")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, fmt.Errorf("handoff webhook timeout after %dms", c.timeout.Milliseconds())
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("handoff webhook failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var ack models.HandoffAck
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&ack); err != nil {
		return nil, fmt.Errorf("decode handoff response: %w", err)
	}
	return &ack, nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (c *WebhookClient) successResponse(booking *models.ValidatedBooking) string {
	return fmt.Sprintf(
		"Thank you %s! I've successfully reserved your %s and sent a secure payment link to your email. "+
			"You'll receive your booking confirmation once payment is complete.",
		booking.CustomerInfo.Name, booking.ActivityName)
}

func (c *WebhookClient) failureResponse(booking *models.ValidatedBooking) string {
	return fmt.Sprintf(
		"I've reserved your %s, %s, but there was an issue sending the payment link. "+
			"Our customer service team will contact you shortly at %s to complete your booking.",
		booking.ActivityName, booking.CustomerInfo.Name, booking.CustomerInfo.Phone)
}

// HealthCheck probes the collaborator's sibling health endpoint.
func (c *WebhookClient) HealthCheck(ctx context.Context) models.HealthStatus {
	start := time.Now()

	healthURL := strings.Replace(c.webhookURL, "/webhook/trigger-booking", "/health", 1)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return models.HealthStatus{Healthy: false, Error: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	latency := float64(time.Since(start)) / float64(time.Millisecond)
	if err != nil {
		return models.HealthStatus{Healthy: false, LatencyMs: latency, Error: err.Error()}
	}
	defer resp.Body.Close()

	status := models.HealthStatus{Healthy: resp.StatusCode >= 200 && resp.StatusCode <= 299, LatencyMs: latency}
	if !status.Healthy {
		status.Error = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return status
}
