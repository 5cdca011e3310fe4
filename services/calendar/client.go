package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/zaphod-black/BookingSearchMCP/config"
	"github.com/zaphod-black/BookingSearchMCP/utils"
)

// BusyInterval is one occupied window on the booking calendar.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Client is the calendar collaborator consumed by the calendar-backed
// synthesizer. Errors degrade to "no data" at the synthesizer boundary.
type Client interface {
	ListBusyIntervals(ctx context.Context, start, end time.Time) ([]BusyInterval, error)
	IsSlotFree(ctx context.Context, start, end time.Time) (bool, error)
}

// GoogleClient reads busy intervals from a Google Calendar with read-only
// service-account credentials.
type GoogleClient struct {
	svc        *gcal.Service
	calendarID string
}

// NewGoogleClient builds the service-account credential blob from config and
// opens the Calendar API.
func NewGoogleClient(ctx context.Context) (*GoogleClient, error) {
	creds, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"client_email": config.AppConfig.GoogleServiceAccountEmail,
		// Private keys arrive through env vars with escaped newlines.
		"private_key": strings.ReplaceAll(config.AppConfig.GooglePrivateKey, `\n`, "\n"),
		"token_uri":   "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal service account credentials: %w", err)
	}

	svc, err := gcal.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(gcal.CalendarReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("initialize calendar api: %w", err)
	}

	utils.GetLogger().Info("Google Calendar API initialized")
	return &GoogleClient{svc: svc, calendarID: config.AppConfig.GoogleCalendarID}, nil
}

// ListBusyIntervals returns the occupied windows between start and end.
func (c *GoogleClient) ListBusyIntervals(ctx context.Context, start, end time.Time) ([]BusyInterval, error) {
	events, err := c.svc.Events.List(c.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}

	intervals := make([]BusyInterval, 0, len(events.Items))
	for _, ev := range events.Items {
		// All-day events carry only a date; those block nothing hourly.
		if ev.Start == nil || ev.Start.DateTime == "" || ev.End == nil || ev.End.DateTime == "" {
			continue
		}
		evStart, err := time.Parse(time.RFC3339, ev.Start.DateTime)
		if err != nil {
			continue
		}
		evEnd, err := time.Parse(time.RFC3339, ev.End.DateTime)
		if err != nil {
			continue
		}
		intervals = append(intervals, BusyInterval{Start: evStart, End: evEnd})
	}
	return intervals, nil
}

// IsSlotFree reports whether no event overlaps the given window.
func (c *GoogleClient) IsSlotFree(ctx context.Context, start, end time.Time) (bool, error) {
	events, err := c.svc.Events.List(c.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return false, fmt.Errorf("check slot window: %w", err)
	}
	return len(events.Items) == 0, nil
}
