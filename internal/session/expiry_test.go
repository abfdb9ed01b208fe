package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExpiryScheduler_FiresOnceForRepeatedSchedules(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
	scheduler := NewExpiryScheduler(clock)
	fired := 0
	for i := 1; i <= 5; i++ {
		scheduler.Schedule(clock.Now().Add(time.Duration(i)*time.Minute), func() { fired++ })
	}
	require.Equal(t, 1, clock.armed())
	require.True(t, scheduler.Pending())

	clock.Advance(4 * time.Minute)
	require.Equal(t, 0, fired)
	clock.Advance(time.Minute)
	require.Equal(t, 1, fired)
	require.False(t, scheduler.Pending())

	clock.Advance(time.Hour)
	require.Equal(t, 1, fired)
}

func TestExpiryScheduler_PastInstantFiresOnNextTick(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
	scheduler := NewExpiryScheduler(clock)
	fired := false
	scheduler.Schedule(clock.Now().Add(-time.Hour), func() { fired = true })
	clock.Advance(0)
	require.True(t, fired)
}

func TestExpiryScheduler_Cancel(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
	scheduler := NewExpiryScheduler(clock)
	scheduler.Cancel()

	fired := false
	scheduler.Schedule(clock.Now().Add(time.Second), func() { fired = true })
	scheduler.Cancel()
	scheduler.Cancel()
	clock.Advance(time.Minute)
	require.False(t, fired)
	require.False(t, scheduler.Pending())
}

func TestExpiryScheduler_SupersededCallbackIsNoop(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
	scheduler := NewExpiryScheduler(clock)
	first, second := 0, 0
	scheduler.Schedule(clock.Now().Add(time.Second), func() { first++ })
	stale := clock.timers[0]

	scheduler.Schedule(clock.Now().Add(time.Hour), func() { second++ })
	// a timer that already fired when it was superseded still runs its func
	stale.f()
	require.Equal(t, 0, first)
	require.True(t, scheduler.Pending())

	clock.Advance(time.Hour)
	require.Equal(t, 1, second)
}
