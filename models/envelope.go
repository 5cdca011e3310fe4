package models

// The three pipeline operations answer with a uniform envelope: a short
// spoken text plus operation-specific metadata. Each operation gets its own
// tagged metadata struct so the contract stays checkable.

// SearchMetadata accompanies a search envelope.
type SearchMetadata struct {
	SessionID        string             `json:"sessionId"`
	ResponseTimeMs   float64            `json:"responseTime"`
	TotalOptions     int                `json:"totalOptions"`
	AvailableOptions []AvailabilitySlot `json:"availableOptions"`
}

// SearchResponse is the envelope returned by SearchAvailability.
type SearchResponse struct {
	SpokenText string          `json:"spokenText"`
	Error      bool            `json:"error,omitempty"`
	Meta       *SearchMetadata `json:"meta,omitempty"`
}

// ValidationMetadata accompanies a validation envelope.
type ValidationMetadata struct {
	SessionID        string            `json:"sessionId"`
	BookingValidated bool              `json:"bookingValidated"`
	TotalAmount      float64           `json:"totalAmount"`
	ReadyForPayment  bool              `json:"readyForPayment"`
	ValidatedBooking *ValidatedBooking `json:"validatedBooking,omitempty"`
}

// ValidationResponse is the envelope returned by ValidateSelection.
type ValidationResponse struct {
	SpokenText string              `json:"spokenText"`
	Error      bool                `json:"error,omitempty"`
	Meta       *ValidationMetadata `json:"meta,omitempty"`
}

// HandoffMetadata accompanies a handoff envelope.
type HandoffMetadata struct {
	SessionID          string `json:"sessionId"`
	HandoffCompleted   bool   `json:"handoffCompleted"`
	PaymentLinkSent    bool   `json:"paymentLinkSent"`
	ConfirmationNumber string `json:"confirmationNumber,omitempty"`
	AutomationStarted  bool   `json:"automationStarted"`
	ExpiresAt          string `json:"expiresAt,omitempty"`
}

// HandoffResponse is the envelope returned by PrepareHandoff.
type HandoffResponse struct {
	SpokenText string           `json:"spokenText"`
	Error      bool             `json:"error,omitempty"`
	Meta       *HandoffMetadata `json:"meta,omitempty"`
}
