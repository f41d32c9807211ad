package limiter

import (
	"sync"
	"time"
)

const (
	minuteWindow = 60
	hourWindow   = 3600
	pruneEvery   = 512
)

// Limits holds the per-window ceilings for one client class.
type Limits struct {
	PerMinute int
	PerHour   int
}

// Result reports the outcome of a limiter check. RetryAfter is the time until
// the nearest window boundary that frees capacity, meaningful only when denied.
type Result struct {
	Allowed    bool
	RetryAfter time.Duration
}

type window struct {
	minuteID    int64
	minuteCount int
	hourID      int64
	hourCount   int
}

// Limiter counts requests per client key over fixed rolling minute and hour
// windows. A request is denied when either window is at its ceiling. Safe for
// concurrent use; check and increment happen under a single lock so no
// increments are lost between parallel requests for the same key.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limits  Limits
	checks  int
	now     func() time.Time
}

// New creates a limiter with the given ceilings.
func New(limits Limits) *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		limits:  limits,
		now:     time.Now,
	}
}

// Check records one request for key, or denies it when a window is full.
func (l *Limiter) Check(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now().Unix()
	minuteID := now / minuteWindow
	hourID := now / hourWindow

	w, ok := l.windows[key]
	if !ok {
		w = &window{minuteID: minuteID, hourID: hourID}
		l.windows[key] = w
	}
	if w.minuteID != minuteID {
		w.minuteID, w.minuteCount = minuteID, 0
	}
	if w.hourID != hourID {
		w.hourID, w.hourCount = hourID, 0
	}

	// The hour boundary is the one that frees capacity when the hour ceiling
	// is hit; a fresh minute alone would not admit the request.
	if w.hourCount >= l.limits.PerHour {
		return Result{RetryAfter: time.Duration((hourID+1)*hourWindow-now) * time.Second}
	}
	if w.minuteCount >= l.limits.PerMinute {
		return Result{RetryAfter: time.Duration((minuteID+1)*minuteWindow-now) * time.Second}
	}

	w.minuteCount++
	w.hourCount++

	l.checks++
	if l.checks%pruneEvery == 0 {
		l.prune(hourID)
	}
	return Result{Allowed: true}
}

// prune drops windows idle for more than an hour. Caller holds mu.
func (l *Limiter) prune(hourID int64) {
	for k, w := range l.windows {
		if w.hourID < hourID {
			delete(l.windows, k)
		}
	}
}
