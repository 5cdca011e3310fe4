package models

import "time"

// AvailabilitySlot is a single bookable time offering with price and capacity.
type AvailabilitySlot struct {
	AvailabilityID  string  `json:"availabilityId"`
	ActivityName    string  `json:"activityName"`
	SpokenDateTime  string  `json:"spokenDateTime"`
	DisplayDateTime string  `json:"displayDateTime"`
	Duration        string  `json:"duration"`
	PricePerPerson  float64 `json:"pricePerPerson"`
	SpotsAvailable  int     `json:"spotsAvailable"`
	SpokenPrice     string  `json:"spokenPrice"`
	MeetingLocation string  `json:"meetingLocation"`
	TotalCapacity   int     `json:"totalCapacity,omitempty"`
	Description     string  `json:"description,omitempty"`
}

// StartTime parses the slot's RFC3339 start instant. A zero time is
// returned for malformed values so sorting stays total.
func (s AvailabilitySlot) StartTime() time.Time {
	t, err := time.Parse(time.RFC3339, s.DisplayDateTime)
	if err != nil {
		return time.Time{}
	}
	return t
}
