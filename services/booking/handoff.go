package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/zaphod-black/BookingSearchMCP/models"
)

// PrepareHandoff runs the final pipeline stage: deliver the validated
// booking to the payment/automation collaborator. On success the session is
// done and its booking entry is released; on failure the entry stays live so
// the caller can retry the handoff.
func (p *DefaultPipeline) PrepareHandoff(ctx context.Context, sessionID, contactPreference string) *models.HandoffResponse {
	start := time.Now()
	success := false
	defer func() { p.observe("prepare_payment_handoff", start, success) }()

	switch contactPreference {
	case "":
		contactPreference = "email"
	case "email", "sms", "both":
	default:
		return &models.HandoffResponse{
			SpokenText: "I'm sorry, I can send the payment link by email, text message, or both. Which would you prefer?",
			Error:      true,
		}
	}

	validatedBooking, ok := p.validated.Get(sessionID)
	if !ok {
		return &models.HandoffResponse{
			SpokenText: "I don't have a confirmed booking for this call anymore. Let's search for availability and confirm your selection again.",
			Error:      true,
		}
	}

	outcome := p.handoff.Send(ctx, validatedBooking, contactPreference)
	if !outcome.Success {
		p.logger.Error("payment handoff failed, booking retained for retry",
			zap.String("sessionId", sessionID),
			zap.String("detail", outcome.Error),
		)
		return &models.HandoffResponse{
			SpokenText: outcome.SpokenResponse,
			Error:      true,
			Meta: &models.HandoffMetadata{
				SessionID:        sessionID,
				HandoffCompleted: false,
			},
		}
	}

	// The session is handed off; the booking now belongs to the payment
	// collaborator.
	p.validated.Delete(sessionID)

	spoken := outcome.SpokenResponse
	if spoken == "" {
		spoken = "Booking handoff completed successfully. Payment link has been sent."
	}

	success = true
	return &models.HandoffResponse{
		SpokenText: spoken,
		Meta: &models.HandoffMetadata{
			SessionID:          sessionID,
			HandoffCompleted:   true,
			PaymentLinkSent:    outcome.PaymentLinkSent,
			ConfirmationNumber: outcome.ConfirmationNumber,
			AutomationStarted:  outcome.AutomationTriggered,
			ExpiresAt:          outcome.ExpiresAt,
		},
	}
}
