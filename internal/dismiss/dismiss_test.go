package dismiss

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/model"
)

type fakeTimer struct {
	delay   time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{delay: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func TestDurations_For(t *testing.T) {
	ds := DefaultDurations()

	d, ok := ds.For(model.DurabilityShort)
	assert.True(t, ok)
	assert.Equal(t, 5*time.Second, d)

	d, ok = ds.For(model.DurabilityLong)
	assert.True(t, ok)
	assert.Equal(t, 24*time.Second, d)

	_, ok = ds.For(model.DurabilityNever)
	assert.False(t, ok)
}

func TestGuard_ScheduleByDurability(t *testing.T) {
	tests := []struct {
		durability model.Durability
		scheduled  bool
		delay      time.Duration
	}{
		{model.DurabilityShort, true, 5 * time.Second},
		{model.DurabilityLong, true, 24 * time.Second},
		{model.DurabilityNever, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.durability.String(), func(t *testing.T) {
			s := &fakeScheduler{}
			var g Guard

			armed := g.Schedule(s, DefaultDurations(), tt.durability, func() {})
			assert.Equal(t, tt.scheduled, armed)
			assert.Equal(t, tt.scheduled, g.Pending())
			assert.Equal(t, tt.delay, g.Delay())
			if tt.scheduled {
				require.Len(t, s.timers, 1)
				assert.Equal(t, tt.delay, s.timers[0].delay)
			} else {
				assert.Empty(t, s.timers)
			}
		})
	}
}

func TestGuard_FireOnceStopsTimer(t *testing.T) {
	s := &fakeScheduler{}
	var g Guard
	g.Schedule(s, DefaultDurations(), model.DurabilityShort, func() {})

	assert.True(t, g.Fire(ReasonOK))
	assert.True(t, s.timers[0].stopped)
	assert.False(t, g.Pending())

	// Late timer expiry is rejected.
	assert.False(t, g.Fire(ReasonExpired))
	assert.Equal(t, ReasonOK, g.Reason())
	assert.True(t, g.Fired())
}

func TestGuard_NoScheduleAfterFire(t *testing.T) {
	s := &fakeScheduler{}
	var g Guard
	g.Fire(ReasonDismissed)

	assert.False(t, g.Schedule(s, DefaultDurations(), model.DurabilityLong, func() {}))
	assert.Empty(t, s.timers)
}

func TestGuard_ConcurrentFire(t *testing.T) {
	var g Guard
	var accepted atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.Fire(ReasonExpired) {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
}

func TestSystemScheduler(t *testing.T) {
	done := make(chan struct{})
	timer := System().AfterFunc(time.Millisecond, func() { close(done) })
	require.NotNil(t, timer)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("system scheduler did not fire")
	}
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "expired", ReasonExpired.String())
	assert.Equal(t, "ok", ReasonOK.String())
	assert.Equal(t, "cancel", ReasonCancel.String())
	assert.Equal(t, "dismissed", ReasonDismissed.String())
	assert.Equal(t, "unknown", Reason(9).String())
}
