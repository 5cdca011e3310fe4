package models

// ConversationContext ties a search result back to the voice session that
// produced it.
type ConversationContext struct {
	SessionID string            `json:"sessionId"`
	Criteria  AvailabilityQuery `json:"searchCriteria"`
	Platform  string            `json:"platform"`
}

// SearchResult is the outcome of one availability synthesis. It is owned by
// the search-context store once a session stores it; cached copies are
// shared read-only.
type SearchResult struct {
	Success        bool                `json:"success"`
	SpokenSummary  string              `json:"spokenSummary"`
	AvailableSlots []AvailabilitySlot  `json:"availableSlots"`
	TotalOptions   int                 `json:"totalOptions"`
	ResponseTimeMs float64             `json:"responseTime"`
	Context        ConversationContext `json:"conversationContext"`
	Error          string              `json:"error,omitempty"`
}

// Clone returns a deep-enough copy for post-retrieval filtering: cached
// results are shared across sessions, so the slot slice must never be
// mutated in place.
func (r *SearchResult) Clone() *SearchResult {
	cp := *r
	cp.AvailableSlots = make([]AvailabilitySlot, len(r.AvailableSlots))
	copy(cp.AvailableSlots, r.AvailableSlots)
	return &cp
}

// FindSlot locates a slot by its availability id.
func (r *SearchResult) FindSlot(availabilityID string) (AvailabilitySlot, bool) {
	for _, slot := range r.AvailableSlots {
		if slot.AvailabilityID == availabilityID {
			return slot, true
		}
	}
	return AvailabilitySlot{}, false
}
