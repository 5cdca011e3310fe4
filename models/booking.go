package models

import "time"

// ValidatedBooking is a customer-confirmed selection held until the payment
// handoff. It is created from a slot present in the session's most recent
// search result, never synthesized directly.
type ValidatedBooking struct {
	AvailabilitySlot

	CustomerInfo CustomerInfo `json:"customerInfo"`
	SessionID    string       `json:"sessionId"`
	ValidatedAt  time.Time    `json:"validatedAt"`
	Platform     string       `json:"platform"`
	PartySize    int          `json:"partySize"`
	TotalAmount  float64      `json:"totalAmount"`
}

// NewValidatedBooking attaches customer and party details to a previously
// returned slot. TotalAmount is always the exact product of the slot price
// and the party size.
func NewValidatedBooking(slot AvailabilitySlot, customer CustomerInfo, sessionID, platform string, partySize int) *ValidatedBooking {
	return &ValidatedBooking{
		AvailabilitySlot: slot,
		CustomerInfo:     customer,
		SessionID:        sessionID,
		ValidatedAt:      time.Now(),
		Platform:         platform,
		PartySize:        partySize,
		TotalAmount:      slot.PricePerPerson * float64(partySize),
	}
}
