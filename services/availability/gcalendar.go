package availability

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zaphod-black/BookingSearchMCP/models"
	"github.com/zaphod-black/BookingSearchMCP/services/calendar"
	"github.com/zaphod-black/BookingSearchMCP/utils"
)

const (
	// gcalResultCap bounds calendar-backed results for voice delivery;
	// tighter than the mock because each slot costs a sentence.
	gcalResultCap = 5
	// gcalDailyCap keeps options spread across days instead of stacking
	// one morning.
	gcalDailyCap = 2
	// gcalSynthesisCap bounds slot generation work per search.
	gcalSynthesisCap = 10

	gcalBasePrice    = 50.0
	gcalSlotDuration = time.Hour
)

// CalendarSynthesizer derives bookable slots from the free hours of a real
// calendar: business hours minus busy intervals, weekends and past times.
type CalendarSynthesizer struct {
	cal           calendar.Client
	businessStart int
	businessEnd   int

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewCalendarSynthesizer creates a calendar-backed synthesizer over the
// given collaborator and business-hours window.
func NewCalendarSynthesizer(cal calendar.Client, businessStart, businessEnd int) *CalendarSynthesizer {
	return NewSeededCalendarSynthesizer(cal, businessStart, businessEnd, time.Now().UnixNano(), time.Now)
}

// NewSeededCalendarSynthesizer pins the random source and clock for tests.
func NewSeededCalendarSynthesizer(cal calendar.Client, businessStart, businessEnd int, seed int64, now func() time.Time) *CalendarSynthesizer {
	return &CalendarSynthesizer{
		cal:           cal,
		businessStart: businessStart,
		businessEnd:   businessEnd,
		rng:           rand.New(rand.NewSource(seed)),
		now:           now,
	}
}

func (s *CalendarSynthesizer) Name() string { return "gcalendar" }

// Search lists busy intervals over the range and synthesizes slots in the
// remaining business hours. A collaborator failure degrades to "no busy
// data" rather than aborting the search.
func (s *CalendarSynthesizer) Search(ctx context.Context, query models.AvailabilityQuery) (*models.SearchResult, error) {
	start := s.now()

	rangeStart, rangeEnd, err := query.DateRange()
	if err != nil {
		return failedResult(query, s.Name(), start, err), nil
	}

	busy, err := s.cal.ListBusyIntervals(ctx, rangeStart, rangeEnd.Add(24*time.Hour-time.Second))
	if err != nil {
		utils.GetLogger().Error("failed to list busy intervals, treating calendar as open",
			zap.Error(err), zap.String("start", query.StartDate), zap.String("end", query.EndDate))
		busy = nil
	}

	slots := s.generateSlots(rangeStart, rangeEnd, busy, query)

	// Price bounds are applied after synthesis so cached results can be
	// re-filtered per query.
	if query.HasPriceFilter() {
		filtered := slots[:0]
		for _, slot := range slots {
			if query.MatchesPrice(slot.PricePerPerson) {
				filtered = append(filtered, slot)
			}
		}
		slots = filtered
	}
	if len(slots) > gcalResultCap {
		slots = slots[:gcalResultCap]
	}

	logTiming(s.Name(), "search", start)

	return &models.SearchResult{
		Success:        true,
		SpokenSummary:  VoiceSummary(slots, query),
		AvailableSlots: slots,
		TotalOptions:   len(slots),
		ResponseTimeMs: elapsedMs(start),
		Context: models.ConversationContext{
			SessionID: query.SessionID,
			Criteria:  query,
			Platform:  s.Name(),
		},
	}, nil
}

// Revalidate re-queries the calendar for the exact hour window encoded in
// the slot id and reports availability as "no conflicting event found".
func (s *CalendarSynthesizer) Revalidate(ctx context.Context, availabilityID string) (bool, error) {
	parts := strings.Split(availabilityID, "_")
	if len(parts) < 2 {
		return false, fmt.Errorf("malformed availability id %q", availabilityID)
	}
	slotStart, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return false, fmt.Errorf("malformed availability id %q: %w", availabilityID, err)
	}

	free, err := s.cal.IsSlotFree(ctx, slotStart, slotStart.Add(gcalSlotDuration))
	if err != nil {
		return false, fmt.Errorf("revalidate slot %s: %w", availabilityID, err)
	}
	return free, nil
}

func (s *CalendarSynthesizer) generateSlots(rangeStart, rangeEnd time.Time, busy []calendar.BusyInterval, query models.AvailabilityQuery) []models.AvailabilitySlot {
	s.mu.Lock()
	defer s.mu.Unlock()

	busyHours := busyHourSet(busy)
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	slots := []models.AvailabilitySlot{}
	for day := rangeStart; !day.After(rangeEnd) && len(slots) < gcalSynthesisCap; day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if day.Before(today) {
			continue
		}

		daily := 0
		for hour := s.businessStart; hour < s.businessEnd && daily < gcalDailyCap && len(slots) < gcalSynthesisCap; hour++ {
			at := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
			if !at.After(now) {
				continue
			}
			if busyHours[hourKey(at)] {
				continue
			}
			if slot, ok := s.synthesizeSlot(at, query); ok {
				slots = append(slots, slot)
				daily++
			}
		}
	}
	return slots
}

// synthesizeSlot prices and sizes one free hour. Capacity runs 10-30 spots
// with up to 70% already booked; a slot the party does not fit into is
// discarded.
func (s *CalendarSynthesizer) synthesizeSlot(at time.Time, query models.AvailabilityQuery) (models.AvailabilitySlot, bool) {
	activityName := query.ActivityType
	if activityName == "" {
		activityName = "Activity Booking"
	}

	price := math.Round(gcalBasePrice * (0.9 + s.rng.Float64()*0.2))
	totalCapacity := s.rng.Intn(21) + 10
	booked := s.rng.Intn(int(float64(totalCapacity)*0.7) + 1)
	spots := totalCapacity - booked
	if spots < query.PartySize {
		return models.AvailabilitySlot{}, false
	}

	return models.AvailabilitySlot{
		AvailabilityID:  fmt.Sprintf("gcal_%s_%s", at.Format(time.RFC3339), uuid.New().String()[:8]),
		ActivityName:    activityName,
		SpokenDateTime:  SpokenDateTime(at),
		DisplayDateTime: at.Format(time.RFC3339),
		Duration:        "1 hour",
		PricePerPerson:  price,
		SpotsAvailable:  spots,
		SpokenPrice:     SpokenPrice(price),
		MeetingLocation: "Main Office",
		TotalCapacity:   totalCapacity,
		Description:     fmt.Sprintf("Book your %s experience", activityName),
	}, true
}

// busyHourSet marks every clock hour any busy interval overlaps.
func busyHourSet(busy []calendar.BusyInterval) map[string]bool {
	set := make(map[string]bool)
	for _, iv := range busy {
		if !iv.End.After(iv.Start) {
			continue
		}
		for h := iv.Start.Truncate(time.Hour); h.Before(iv.End); h = h.Add(time.Hour) {
			set[hourKey(h)] = true
		}
	}
	return set
}

func hourKey(t time.Time) string {
	return t.Format("2006-01-02-15")
}
