package models

// HandoffExtras carries the secondary booking details the payment
// collaborator needs but does not key on.
type HandoffExtras struct {
	Duration          string  `json:"duration"`
	PricePerPerson    float64 `json:"pricePerPerson"`
	ContactPreference string  `json:"contactPreference"`
	ValidatedAt       string  `json:"validatedAt"`
}

// HandoffPayload is the JSON body POSTed to the payment/automation
// collaborator. Field names are part of the wire contract.
type HandoffPayload struct {
	CustomerName     string        `json:"customerName"`
	CustomerEmail    string        `json:"customerEmail,omitempty"`
	CustomerPhone    string        `json:"customerPhone"`
	ActivityName     string        `json:"activityName"`
	ActivityDateTime string        `json:"activityDateTime"`
	PartySize        int           `json:"partySize"`
	TotalAmount      float64       `json:"totalAmount"`
	Currency         string        `json:"currency"`
	VoiceSessionID   string        `json:"voiceSessionId"`
	BookingPlatform  string        `json:"bookingPlatform"`
	MeetingLocation  string        `json:"meetingLocation,omitempty"`
	AdditionalInfo   HandoffExtras `json:"additionalInfo"`
}

// HandoffAck is the body the payment collaborator answers with.
type HandoffAck struct {
	ConfirmationNumber string `json:"confirmationNumber,omitempty"`
	EmailSent          bool   `json:"emailSent,omitempty"`
	MonitoringStarted  bool   `json:"monitoringStarted,omitempty"`
	ExpiresAt          string `json:"expiresAt,omitempty"`
}

// HandoffOutcome is the voice-ready result of a payment handoff attempt.
type HandoffOutcome struct {
	Success             bool   `json:"success"`
	SpokenResponse      string `json:"spokenResponse,omitempty"`
	AutomationTriggered bool   `json:"automationTriggered"`
	PaymentLinkSent     bool   `json:"paymentLinkSent"`
	ConfirmationNumber  string `json:"confirmationNumber,omitempty"`
	MonitoringStarted   bool   `json:"monitoringStarted"`
	ExpiresAt           string `json:"expiresAt,omitempty"`
	Error               string `json:"error,omitempty"`
	FallbackAction      string `json:"fallbackAction,omitempty"`
}

// HealthStatus reports reachability of the payment collaborator.
type HealthStatus struct {
	Healthy   bool    `json:"healthy"`
	LatencyMs float64 `json:"latencyMs"`
	Error     string  `json:"error,omitempty"`
}
