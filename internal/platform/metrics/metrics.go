package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	forbidden       uint64
	totalDurationMs uint64
	refreshes       uint64

	mu       sync.Mutex
	degraded map[string]uint64
}

func New() *Collector {
	return &Collector{degraded: map[string]uint64{}}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 403 {
		atomic.AddUint64(&c.forbidden, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordRefresh counts one notification refresh and the categories whose fetch degraded.
func (c *Collector) RecordRefresh(degraded []string) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.refreshes, 1)
	if len(degraded) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, category := range degraded {
		c.degraded[category]++
	}
}

// Snapshot returns zeroed counters for a nil collector.
func (c *Collector) Snapshot() map[string]any {
	if c == nil {
		return New().Snapshot()
	}
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	forbidden := atomic.LoadUint64(&c.forbidden)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}

	c.mu.Lock()
	degraded := make(map[string]uint64, len(c.degraded))
	for k, v := range c.degraded {
		degraded[k] = v
	}
	c.mu.Unlock()

	return map[string]any{
		"requestsTotal":      total,
		"errorsTotal":        errs,
		"forbiddenTotal":     forbidden,
		"avgDurationMs":      avg,
		"totalDurationMs":    totalMs,
		"refreshesTotal":     atomic.LoadUint64(&c.refreshes),
		"refreshDegradation": degraded,
	}
}
