package availability

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zaphod-black/BookingSearchMCP/models"
)

// mockResultCap bounds mock search results for voice delivery.
const mockResultCap = 10

// mockSlotHours are the candidate start hours the mock backend draws from
// (morning and afternoon departures).
var mockSlotHours = []int{9, 10, 11, 14, 15, 16}

type mockActivity struct {
	name      string
	basePrice float64
	duration  string
	location  string
}

var mockActivities = []mockActivity{
	{name: "Whale Watching Adventure", basePrice: 45, duration: "3 hours", location: "Harbor Dock A"},
	{name: "Sunset Kayaking Tour", basePrice: 35, duration: "2 hours", location: "Beach Launch Point B"},
	{name: "Deep Sea Fishing Expedition", basePrice: 85, duration: "6 hours", location: "Marina Pier C"},
	{name: "Snorkeling Experience", basePrice: 55, duration: "4 hours", location: "Coral Bay Dock"},
	{name: "Dolphin Encounter Tour", basePrice: 65, duration: "3.5 hours", location: "Marine Center Dock"},
}

// MockSynthesizer generates randomized availability without any external
// collaborator. The random source and clock are injectable so tests can pin
// its output.
type MockSynthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewMockSynthesizer creates a mock backend with a time-seeded source.
func NewMockSynthesizer() *MockSynthesizer {
	return NewSeededMockSynthesizer(time.Now().UnixNano(), time.Now)
}

// NewSeededMockSynthesizer creates a mock backend with a fixed seed and
// clock, for deterministic tests.
func NewSeededMockSynthesizer(seed int64, now func() time.Time) *MockSynthesizer {
	return &MockSynthesizer{
		rng: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

func (m *MockSynthesizer) Name() string { return "mock" }

// Search generates 2-4 randomized slots per matching activity per day in
// range, drops slots the party does not fit into, applies price bounds,
// sorts chronologically and caps the set for voice.
func (m *MockSynthesizer) Search(ctx context.Context, query models.AvailabilityQuery) (*models.SearchResult, error) {
	start := m.now()

	rangeStart, rangeEnd, err := query.DateRange()
	if err != nil {
		return failedResult(query, m.Name(), start, err), nil
	}

	slots := m.generateSlots(rangeStart, rangeEnd, query)
	logTiming(m.Name(), "search", start)

	return &models.SearchResult{
		Success:        true,
		SpokenSummary:  VoiceSummary(slots, query),
		AvailableSlots: slots,
		TotalOptions:   len(slots),
		ResponseTimeMs: elapsedMs(start),
		Context: models.ConversationContext{
			SessionID: query.SessionID,
			Criteria:  query,
			Platform:  m.Name(),
		},
	}, nil
}

// Revalidate models transient availability races: a fixed 95% of selections
// are still free by the time the customer commits.
func (m *MockSynthesizer) Revalidate(ctx context.Context, availabilityID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rng.Float64() > 0.05, nil
}

func (m *MockSynthesizer) generateSlots(rangeStart, rangeEnd time.Time, query models.AvailabilityQuery) []models.AvailabilitySlot {
	m.mu.Lock()
	defer m.mu.Unlock()

	activities := matchActivities(query.ActivityType)
	if len(activities) == 0 {
		return []models.AvailabilitySlot{}
	}

	now := m.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	slots := []models.AvailabilitySlot{}
	for day := rangeStart; !day.After(rangeEnd); day = day.AddDate(0, 0, 1) {
		if day.Before(today) {
			continue
		}

		for _, act := range activities {
			timesPerDay := m.rng.Intn(3) + 2
			for _, startAt := range m.pickDayTimes(day, timesPerDay, now) {
				spots := m.rng.Intn(16) + 5
				if spots < query.PartySize {
					continue
				}

				variation := 0.8 + m.rng.Float64()*0.4
				price := math.Round(act.basePrice * variation)
				if !query.MatchesPrice(price) {
					continue
				}

				slots = append(slots, models.AvailabilitySlot{
					AvailabilityID:  "mock-" + uuid.New().String(),
					ActivityName:    act.name,
					SpokenDateTime:  SpokenDateTime(startAt),
					DisplayDateTime: startAt.Format(time.RFC3339),
					Duration:        act.duration,
					PricePerPerson:  price,
					SpotsAvailable:  spots,
					SpokenPrice:     SpokenPrice(price),
					MeetingLocation: act.location,
					TotalCapacity:   spots + m.rng.Intn(10),
					Description:     fmt.Sprintf("Experience the best %s with our expert guides!", strings.ToLower(act.name)),
				})
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime().Before(slots[j].StartTime())
	})
	if len(slots) > mockResultCap {
		slots = slots[:mockResultCap]
	}
	return slots
}

// pickDayTimes draws count distinct start hours for one day, dropping any
// that are already in the past.
func (m *MockSynthesizer) pickDayTimes(day time.Time, count int, now time.Time) []time.Time {
	hours := make([]int, len(mockSlotHours))
	copy(hours, mockSlotHours)
	m.rng.Shuffle(len(hours), func(i, j int) { hours[i], hours[j] = hours[j], hours[i] })
	if count > len(hours) {
		count = len(hours)
	}
	hours = hours[:count]
	sort.Ints(hours)

	times := make([]time.Time, 0, count)
	for _, h := range hours {
		at := time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, day.Location())
		if at.After(now) {
			times = append(times, at)
		}
	}
	return times
}

// matchActivities filters the catalog by a case-insensitive substring of the
// activity name; an empty filter matches everything.
func matchActivities(activityType string) []mockActivity {
	if activityType == "" {
		out := make([]mockActivity, len(mockActivities))
		copy(out, mockActivities)
		return out
	}
	needle := strings.ToLower(activityType)
	var out []mockActivity
	for _, act := range mockActivities {
		if strings.Contains(strings.ToLower(act.name), needle) {
			out = append(out, act)
		}
	}
	return out
}
