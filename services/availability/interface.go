package availability

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/zaphod-black/BookingSearchMCP/config"
	"github.com/zaphod-black/BookingSearchMCP/models"
	"github.com/zaphod-black/BookingSearchMCP/utils"
)

// Synthesizer produces candidate availability slots for a date range and
// re-checks a single slot before a booking is validated. Backends form a
// small closed set (mock, calendar); new booking platforms are added as new
// implementations of this interface.
type Synthesizer interface {
	Name() string
	Search(ctx context.Context, query models.AvailabilityQuery) (*models.SearchResult, error)
	Revalidate(ctx context.Context, availabilityID string) (bool, error)
}

// failedResult builds the voice-safe search failure every backend returns
// instead of propagating a synthesis error. The error detail is preserved
// for logging only.
func failedResult(query models.AvailabilityQuery, platform string, start time.Time, err error) *models.SearchResult {
	return &models.SearchResult{
		Success:        false,
		SpokenSummary:  "I apologize, but I encountered an error while checking availability. Please try again.",
		AvailableSlots: []models.AvailabilitySlot{},
		TotalOptions:   0,
		ResponseTimeMs: elapsedMs(start),
		Context: models.ConversationContext{
			SessionID: query.SessionID,
			Criteria:  query,
			Platform:  platform,
		},
		Error: err.Error(),
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

// logTiming records a completed backend operation and warns when it exceeds
// the configured voice slowness threshold.
func logTiming(platform, operation string, start time.Time) {
	ms := elapsedMs(start)
	log := utils.GetLogger()
	log.Info("synthesizer operation completed",
		zap.String("platform", platform),
		zap.String("operation", operation),
		zap.Float64("durationMs", ms),
	)
	if ms > float64(config.AppConfig.SlowOpThresholdMs) {
		log.Warn("slow synthesizer operation",
			zap.String("platform", platform),
			zap.String("operation", operation),
			zap.Float64("durationMs", ms),
		)
	}
}
