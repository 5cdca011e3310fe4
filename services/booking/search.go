package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/zaphod-black/BookingSearchMCP/models"
	"github.com/zaphod-black/BookingSearchMCP/services/availability"
)

const searchApology = "I apologize, but I encountered an error while searching for availability. Please try again."

// SearchAvailability runs the first pipeline stage: resolve a backend,
// consult the cache, synthesize on miss, apply per-query price bounds to a
// copy of the shared result, and store the outcome as this session's search
// context.
func (p *DefaultPipeline) SearchAvailability(ctx context.Context, query models.AvailabilityQuery) *models.SearchResponse {
	start := time.Now()
	success := false
	defer func() { p.observe("search_availability", start, success) }()

	if err := query.Validate(); err != nil {
		p.logger.Warn("rejected availability query", zap.Error(err))
		return &models.SearchResponse{
			SpokenText: "I'm sorry, I couldn't understand that search. Could you give me the dates and how many people are coming?",
			Error:      true,
		}
	}

	synth, err := p.resolveSynthesizer(query.Platform)
	if err != nil {
		p.logger.Warn("rejected availability query", zap.Error(err))
		return &models.SearchResponse{SpokenText: searchApology, Error: true}
	}

	if query.SessionID == "" {
		query.SessionID = newSessionID()
	}
	query.Platform = synth.Name()

	key := cacheKey(query)
	result, hit := p.cache.Get(key)
	if !hit {
		result, err = synth.Search(ctx, query)
		if err != nil {
			p.logger.Error("availability synthesis failed", zap.Error(err), zap.String("platform", synth.Name()))
			return &models.SearchResponse{SpokenText: searchApology, Error: true}
		}
		// Failed syntheses are not cached; the next attempt should hit
		// the backend again.
		if result.Success {
			p.cache.Set(key, result)
		}
	}

	if !result.Success {
		p.logger.Error("availability synthesis failed",
			zap.String("platform", synth.Name()),
			zap.String("detail", result.Error),
		)
		return &models.SearchResponse{SpokenText: result.SpokenSummary, Error: true}
	}

	// Cached entries are shared read-only across sessions; filter a copy.
	working := result.Clone()
	working.Context.SessionID = query.SessionID
	working.Context.Criteria = query

	if query.HasPriceFilter() {
		filtered := make([]models.AvailabilitySlot, 0, len(working.AvailableSlots))
		for _, slot := range working.AvailableSlots {
			if query.MatchesPrice(slot.PricePerPerson) {
				filtered = append(filtered, slot)
			}
		}
		working.AvailableSlots = filtered
		working.TotalOptions = len(filtered)
		working.SpokenSummary = availability.VoiceSummary(filtered, query)
	}

	// Re-entrant transition: a new search overwrites any prior state for
	// this session and restarts its expiry clock.
	p.searchContexts.Put(query.SessionID, working)

	success = true
	return &models.SearchResponse{
		SpokenText: working.SpokenSummary,
		Meta: &models.SearchMetadata{
			SessionID:        query.SessionID,
			ResponseTimeMs:   working.ResponseTimeMs,
			TotalOptions:     working.TotalOptions,
			AvailableOptions: working.AvailableSlots,
		},
	}
}
