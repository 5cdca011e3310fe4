package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/zaphod-black/BookingSearchMCP/models"
)

// commonSearches are the activity/party combinations worth priming at
// startup so the first calls of the day answer from cache.
var commonSearches = []struct {
	activityType string
	partySize    int
}{
	{"whale watching", 2},
	{"kayaking", 4},
	{"fishing", 6},
	{"boat tour", 2},
	{"snorkeling", 4},
}

// WarmCache pre-runs common searches against the mock backend over the next
// week and primes the cache with their results. Warm-up failures are logged
// and skipped; startup never depends on them.
func (p *DefaultPipeline) WarmCache(ctx context.Context) {
	synth, ok := p.synthesizers["mock"]
	if !ok {
		p.logger.Warn("cache warm-up skipped: mock backend not registered")
		return
	}

	p.logger.Info("pre-warming cache with common searches")

	today := time.Now()
	nextWeek := today.AddDate(0, 0, 7)

	for _, cs := range commonSearches {
		query := models.AvailabilityQuery{
			StartDate:    today.Format(models.DateLayout),
			EndDate:      nextWeek.Format(models.DateLayout),
			PartySize:    cs.partySize,
			ActivityType: cs.activityType,
			Platform:     synth.Name(),
		}

		result, err := synth.Search(ctx, query)
		if err != nil || !result.Success {
			p.logger.Error("failed to pre-warm cache entry",
				zap.String("activityType", cs.activityType), zap.Error(err))
			continue
		}
		p.cache.Set(cacheKey(query), result)
	}

	p.logger.Info("cache pre-warming complete", zap.Int("entries", p.cache.Size()))
}
