// Package dismiss schedules the auto-dismiss of a toast and guards its
// close sequence so it runs at most once.
package dismiss

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmylchreest/toastui/internal/model"
)

// Default auto-dismiss delays.
const (
	DefaultShort = 5 * time.Second
	DefaultLong  = 24 * time.Second
)

// Timer is a pending scheduled call. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// Scheduler runs f on its own goroutine after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// System returns a Scheduler backed by time.AfterFunc.
func System() Scheduler {
	return systemScheduler{}
}

// Durations maps durabilities to delays.
type Durations struct {
	Short time.Duration
	Long  time.Duration
}

// DefaultDurations returns the 5s/24s delays.
func DefaultDurations() Durations {
	return Durations{Short: DefaultShort, Long: DefaultLong}
}

// For returns the delay for d. The second result is false for DurabilityNever.
func (ds Durations) For(d model.Durability) (time.Duration, bool) {
	switch d {
	case model.DurabilityShort:
		return ds.Short, true
	case model.DurabilityLong:
		return ds.Long, true
	default:
		return 0, false
	}
}

// Reason records what started the close sequence.
type Reason int

const (
	ReasonExpired Reason = iota
	ReasonOK
	ReasonCancel
	ReasonDismissed
)

func (r Reason) String() string {
	switch r {
	case ReasonExpired:
		return "expired"
	case ReasonOK:
		return "ok"
	case ReasonCancel:
		return "cancel"
	case ReasonDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// Guard owns the auto-dismiss timer of one toast and lets exactly one
// close request through. The first accepted request stops the timer.
type Guard struct {
	mu     sync.Mutex
	timer  Timer
	delay  time.Duration
	fired  atomic.Bool
	reason Reason
}

// Schedule arms the auto-dismiss timer. onExpire runs on the scheduler's
// goroutine and must hand off to the UI thread itself. Nothing is scheduled
// for DurabilityNever or once the guard has fired; the return value reports
// whether a timer was armed.
func (g *Guard) Schedule(s Scheduler, ds Durations, d model.Durability, onExpire func()) bool {
	delay, ok := ds.For(d)
	if !ok || g.fired.Load() {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
	}
	g.delay = delay
	g.timer = s.AfterFunc(delay, onExpire)
	return true
}

// Delay returns the armed delay, or zero when no timer was scheduled.
func (g *Guard) Delay() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.delay
}

// Pending reports whether an auto-dismiss timer is armed and the guard has not fired.
func (g *Guard) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timer != nil && !g.fired.Load()
}

// Fire accepts the first close request and rejects every later one.
// The pending timer, if any, is stopped.
func (g *Guard) Fire(reason Reason) bool {
	if !g.fired.CompareAndSwap(false, true) {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.reason = reason
	if g.timer != nil {
		g.timer.Stop()
	}
	return true
}

// Fired reports whether a close request has been accepted.
func (g *Guard) Fired() bool {
	return g.fired.Load()
}

// Reason returns the reason of the accepted close request.
func (g *Guard) Reason() Reason {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reason
}
