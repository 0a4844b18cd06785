package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests        uint64
	errorRequests        uint64
	rateLimited          uint64
	totalDurationMs      uint64
	pointsAwarded        uint64
	pointTransactions    uint64
	achievementsUnlocked uint64
	leaderboardRuns      uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordAwards(points, transactions int) {
	if c == nil {
		return
	}
	if points > 0 {
		atomic.AddUint64(&c.pointsAwarded, uint64(points))
	}
	if transactions > 0 {
		atomic.AddUint64(&c.pointTransactions, uint64(transactions))
	}
}

func (c *Collector) RecordUnlocks(count int) {
	if c == nil || count <= 0 {
		return
	}
	atomic.AddUint64(&c.achievementsUnlocked, uint64(count))
}

func (c *Collector) RecordLeaderboardRun() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.leaderboardRuns, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":        total,
		"errorsTotal":          atomic.LoadUint64(&c.errorRequests),
		"rateLimitedTotal":     atomic.LoadUint64(&c.rateLimited),
		"avgDurationMs":        avg,
		"pointsAwarded":        atomic.LoadUint64(&c.pointsAwarded),
		"pointTransactions":    atomic.LoadUint64(&c.pointTransactions),
		"achievementsUnlocked": atomic.LoadUint64(&c.achievementsUnlocked),
		"leaderboardRuns":      atomic.LoadUint64(&c.leaderboardRuns),
	}
}
