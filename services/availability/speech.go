package availability

import (
	"fmt"
	"math"
	"time"

	"github.com/zaphod-black/BookingSearchMCP/models"
)

// SpokenPrice renders a dollar amount the way a voice agent should say it:
// whole dollars, with cents only when the amount is fractional.
func SpokenPrice(price float64) string {
	dollars := int(math.Floor(price))
	cents := int(math.Round((price - float64(dollars)) * 100))

	if cents == 0 {
		if dollars == 1 {
			return "1 dollar"
		}
		return fmt.Sprintf("%d dollars", dollars)
	}
	return fmt.Sprintf("%d dollars and %d cents", dollars, cents)
}

// SpokenDateTime renders an instant for speech: weekday, month, day and a
// 12-hour clock.
func SpokenDateTime(t time.Time) string {
	return t.Format("Monday, January 2 at 3:04 PM")
}

// VoiceSummary builds the one-sentence summary for a slot set. Length stays
// voice-appropriate because the slot count is capped upstream, not because
// text is truncated here.
func VoiceSummary(slots []models.AvailabilitySlot, query models.AvailabilityQuery) string {
	subject := query.ActivityType
	if len(slots) == 0 {
		if subject == "" {
			subject = "that activity"
		}
		return fmt.Sprintf("I'm sorry, I don't see any availability for %s during those dates.", subject)
	}

	first := slots[0]
	if subject == "" {
		subject = first.ActivityName
	}
	if len(slots) == 1 {
		return fmt.Sprintf("I found one available time for %s. It's %s for %s per person.",
			subject, first.SpokenDateTime, first.SpokenPrice)
	}
	return fmt.Sprintf("Perfect! I found %d available times for %s. The earliest is %s for %s per person.",
		len(slots), subject, first.SpokenDateTime, first.SpokenPrice)
}
