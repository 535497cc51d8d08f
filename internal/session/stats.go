package session

import (
	"slices"
	"sync"
	"time"
)

// Operations timed by the manager.
const (
	OpRender = "render"
	OpClick  = "click"
)

// StatsSnapshot aggregates the samples of one operation still inside the
// window. Percentiles use the nearest-rank method, so they are always
// observed values.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinUs int64   `json:"min_us"`
	MaxUs int64   `json:"max_us"`
	AvgUs float64 `json:"avg_us"`
	P50Us int64   `json:"p50_us"`
	P95Us int64   `json:"p95_us"`
	P99Us int64   `json:"p99_us"`
}

// LatencyStats keeps, per operation, the most recent durations in a fixed
// ring. Samples older than the window are ignored when aggregating.
type LatencyStats struct {
	mu     sync.Mutex
	window time.Duration
	size   int
	rings  map[string]*ring
	now    func() time.Time
}

type ring struct {
	at   []time.Time
	us   []int64
	next int
}

// NewLatencyStats tracks the given operations. A non-positive window means
// one hour, a non-positive size means 1024 samples per operation.
func NewLatencyStats(window time.Duration, size int, ops ...string) *LatencyStats {
	if window <= 0 {
		window = time.Hour
	}
	if size <= 0 {
		size = 1024
	}
	s := &LatencyStats{
		window: window,
		size:   size,
		rings:  make(map[string]*ring, len(ops)),
		now:    time.Now,
	}
	for _, op := range ops {
		s.rings[op] = &ring{}
	}
	return s
}

// Record adds one duration for op, overwriting the oldest sample once the
// ring is full.
func (s *LatencyStats) Record(op string, d time.Duration) {
	us := max(d.Microseconds(), 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rings[op]
	if !ok {
		r = &ring{}
		s.rings[op] = r
	}
	now := s.now()
	if len(r.us) < s.size {
		r.at = append(r.at, now)
		r.us = append(r.us, us)
		return
	}
	r.at[r.next] = now
	r.us[r.next] = us
	r.next = (r.next + 1) % s.size
}

// Snapshot returns one aggregate per known operation.
func (s *LatencyStats) Snapshot() map[string]StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.window)
	out := make(map[string]StatsSnapshot, len(s.rings))
	for op, r := range s.rings {
		var live []int64
		for i, at := range r.at {
			if !at.Before(cutoff) {
				live = append(live, r.us[i])
			}
		}
		out[op] = summarize(live)
	}
	return out
}

func summarize(us []int64) StatsSnapshot {
	if len(us) == 0 {
		return StatsSnapshot{}
	}
	slices.Sort(us)
	var sum int64
	for _, v := range us {
		sum += v
	}
	return StatsSnapshot{
		Count: len(us),
		MinUs: us[0],
		MaxUs: us[len(us)-1],
		AvgUs: float64(sum) / float64(len(us)),
		P50Us: nearestRank(us, 50),
		P95Us: nearestRank(us, 95),
		P99Us: nearestRank(us, 99),
	}
}

// nearestRank returns the smallest sample with at least pct percent of the
// samples at or below it.
func nearestRank(sorted []int64, pct int) int64 {
	rank := (pct*len(sorted) + 99) / 100
	return sorted[max(rank, 1)-1]
}
