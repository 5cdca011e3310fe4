package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zaphod-black/BookingSearchMCP/config"
	"github.com/zaphod-black/BookingSearchMCP/models"
	"github.com/zaphod-black/BookingSearchMCP/services/availability"
	"github.com/zaphod-black/BookingSearchMCP/services/handoff"
	"github.com/zaphod-black/BookingSearchMCP/utils"
)

// Pipeline exposes the three stages of the session-scoped booking workflow.
// Every operation is total: it always returns an envelope, never an error —
// all failures are folded into voice-safe spoken text.
type Pipeline interface {
	SearchAvailability(ctx context.Context, query models.AvailabilityQuery) *models.SearchResponse
	ValidateSelection(ctx context.Context, sessionID, selectedOptionID string, customer models.CustomerInfo) *models.ValidationResponse
	PrepareHandoff(ctx context.Context, sessionID, contactPreference string) *models.HandoffResponse
}

// DefaultPipeline implements Pipeline. It owns the voice cache, the two
// session stores and the synthesizer registry, and drives the state
// progression Search -> Validate -> Handoff for each session.
type DefaultPipeline struct {
	synthesizers    map[string]availability.Synthesizer
	defaultPlatform string

	cache          *utils.TTLCache[*models.SearchResult]
	searchContexts *utils.TTLStore[*models.SearchResult]
	validated      *utils.TTLStore[*models.ValidatedBooking]

	handoff handoff.Client
	monitor *utils.VoiceMonitor
	logger  *zap.Logger
}

// Options carries the tunables the pipeline reads once at construction.
type Options struct {
	CacheTTL            time.Duration
	CacheSweepInterval  time.Duration
	SearchContextTTL    time.Duration
	ValidatedBookingTTL time.Duration
	DefaultPlatform     string
}

// OptionsFromConfig derives pipeline options from the loaded app config.
func OptionsFromConfig() Options {
	return Options{
		CacheTTL:            time.Duration(config.AppConfig.CacheTTLSeconds) * time.Second,
		CacheSweepInterval:  time.Duration(config.AppConfig.CacheSweepSeconds) * time.Second,
		SearchContextTTL:    time.Duration(config.AppConfig.SearchContextTTLMinutes) * time.Minute,
		ValidatedBookingTTL: time.Duration(config.AppConfig.ValidatedBookingTTLMinutes) * time.Minute,
		DefaultPlatform:     config.AppConfig.DefaultPlatform,
	}
}

// NewPipeline wires the pipeline over its synthesizer backends, handoff
// client and monitor.
func NewPipeline(synths []availability.Synthesizer, handoffClient handoff.Client, monitor *utils.VoiceMonitor, opts Options) *DefaultPipeline {
	logger := utils.GetLogger()

	registry := make(map[string]availability.Synthesizer, len(synths))
	for _, s := range synths {
		registry[s.Name()] = s
	}

	return &DefaultPipeline{
		synthesizers:    registry,
		defaultPlatform: opts.DefaultPlatform,
		cache:           utils.NewTTLCache[*models.SearchResult](opts.CacheTTL, opts.CacheSweepInterval, logger),
		searchContexts:  utils.NewTTLStore[*models.SearchResult](opts.SearchContextTTL),
		validated:       utils.NewTTLStore[*models.ValidatedBooking](opts.ValidatedBookingTTL),
		handoff:         handoffClient,
		monitor:         monitor,
		logger:          logger,
	}
}

// CacheStats exposes cache effectiveness for the health endpoint.
func (p *DefaultPipeline) CacheStats() utils.CacheStats {
	return p.cache.Stats()
}

// Close releases the cache sweep goroutine and all pending session timers.
func (p *DefaultPipeline) Close() {
	p.cache.Stop()
	p.searchContexts.Close()
	p.validated.Close()
}

// resolveSynthesizer maps a requested platform to a backend; empty or "auto"
// selects the configured default.
func (p *DefaultPipeline) resolveSynthesizer(platform string) (availability.Synthesizer, error) {
	if platform == "" || platform == "auto" {
		platform = p.defaultPlatform
	}
	synth, ok := p.synthesizers[platform]
	if !ok {
		return nil, fmt.Errorf("unknown booking platform: %s", platform)
	}
	return synth, nil
}

// newSessionID mints an opaque id for a voice session that arrived without one.
func newSessionID() string {
	return fmt.Sprintf("voice-%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}

// cacheKey derives the deterministic cache key for a search. Session id and
// price bounds are deliberately excluded: price filtering is applied to
// cached results after retrieval, so filtered and unfiltered queries for the
// same window share one entry.
func cacheKey(q models.AvailabilityQuery) string {
	activity := q.ActivityType
	if activity == "" {
		activity = "any"
	}
	return fmt.Sprintf("search:%s:%s:%s:%d:%s", q.Platform, q.StartDate, q.EndDate, q.PartySize, activity)
}

func (p *DefaultPipeline) observe(tool string, start time.Time, success bool) {
	if p.monitor != nil {
		p.monitor.Observe(tool, time.Since(start), success)
	}
}
