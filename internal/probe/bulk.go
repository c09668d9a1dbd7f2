package probe

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"connectivity-api/internal/models"
)

// BulkPing runs one ping per host concurrently and aggregates the
// outcomes in input order. The bulk-size cap is enforced before any
// subprocess is spawned; after that, each host fails or succeeds on its
// own and a failure never aborts its siblings.
func (p *Prober) BulkPing(ctx context.Context, hosts []string, count int) (models.BulkPingResult, error) {
	if err := p.policy.ValidateBulkSize(hosts); err != nil {
		return models.BulkPingResult{}, err
	}

	entries := make([]models.BulkPingEntry, len(hosts))

	var wg sync.WaitGroup
	for i, host := range hosts {
		wg.Add(1)
		go func(i int, host string) {
			defer wg.Done()

			result, err := p.Ping(ctx, host, count)
			if err != nil {
				p.log.Warn("bulk ping entry failed",
					zap.String("host", host),
					zap.Error(err))
				entries[i] = models.BulkPingEntry{Host: host, Error: err.Error()}
				return
			}
			entries[i] = models.BulkPingEntry{Host: host, Result: &result}
		}(i, host)
	}
	wg.Wait()

	return models.BulkPingResult{
		Results:   entries,
		Timestamp: time.Now(),
	}, nil
}
