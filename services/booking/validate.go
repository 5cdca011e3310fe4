package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zaphod-black/BookingSearchMCP/models"
	"github.com/zaphod-black/BookingSearchMCP/services/availability"
)

// ValidateSelection runs the second pipeline stage: locate the selected
// option inside this session's stored search result, re-check it against the
// backend, and hold the confirmed booking for handoff. State is only mutated
// after revalidation succeeds.
func (p *DefaultPipeline) ValidateSelection(ctx context.Context, sessionID, selectedOptionID string, customer models.CustomerInfo) *models.ValidationResponse {
	start := time.Now()
	success := false
	defer func() { p.observe("validate_booking_selection", start, success) }()

	if sessionID == "" || selectedOptionID == "" {
		return &models.ValidationResponse{
			SpokenText: "I'm sorry, I'm missing which option you'd like. Could you pick one of the times I mentioned?",
			Error:      true,
		}
	}
	if err := customer.Validate(); err != nil {
		p.logger.Warn("rejected booking validation", zap.Error(err), zap.String("sessionId", sessionID))
		return &models.ValidationResponse{
			SpokenText: "I'll need your name and phone number to hold the booking. Could you share those?",
			Error:      true,
		}
	}

	searchContext, ok := p.searchContexts.Get(sessionID)
	if !ok {
		return &models.ValidationResponse{
			SpokenText: "Your search session has expired. Please search for availability again.",
			Error:      true,
		}
	}

	slot, ok := searchContext.FindSlot(selectedOptionID)
	if !ok {
		return &models.ValidationResponse{
			SpokenText: "I couldn't find that option. Please choose from the available times I mentioned.",
			Error:      true,
		}
	}

	synth, err := p.resolveSynthesizer(searchContext.Context.Platform)
	if err != nil {
		p.logger.Error("stored search context names unknown platform",
			zap.String("platform", searchContext.Context.Platform), zap.String("sessionId", sessionID))
		return &models.ValidationResponse{
			SpokenText: "I apologize, but I couldn't validate your booking selection. Please try again.",
			Error:      true,
		}
	}

	stillAvailable, err := synth.Revalidate(ctx, selectedOptionID)
	if err != nil {
		p.logger.Error("revalidation failed", zap.Error(err),
			zap.String("sessionId", sessionID), zap.String("optionId", selectedOptionID))
		return &models.ValidationResponse{
			SpokenText: "I apologize, but I couldn't validate your booking selection. Please try again.",
			Error:      true,
		}
	}
	if !stillAvailable {
		return &models.ValidationResponse{
			SpokenText: "I'm sorry, that time slot was just booked by someone else. Let me search for another option for you.",
			Error:      true,
		}
	}

	partySize := searchContext.Context.Criteria.PartySize
	validatedBooking := models.NewValidatedBooking(slot, customer, sessionID, searchContext.Context.Platform, partySize)

	// Independent TTL clock from the search context entry.
	p.validated.Put(sessionID, validatedBooking)

	p.logger.Info("booking validated",
		zap.String("sessionId", sessionID),
		zap.String("activity", slot.ActivityName),
		zap.Float64("totalAmount", validatedBooking.TotalAmount),
	)

	people := "people"
	if partySize == 1 {
		people = "person"
	}
	spoken := fmt.Sprintf(
		"Perfect! I've reserved %s for %s on %s. The total for %d %s is %s. I'll send you a payment link after this call.",
		slot.ActivityName, customer.Name, slot.SpokenDateTime,
		partySize, people, availability.SpokenPrice(validatedBooking.TotalAmount))

	success = true
	return &models.ValidationResponse{
		SpokenText: spoken,
		Meta: &models.ValidationMetadata{
			SessionID:        sessionID,
			BookingValidated: true,
			TotalAmount:      validatedBooking.TotalAmount,
			ReadyForPayment:  true,
			ValidatedBooking: validatedBooking,
		},
	}
}
