package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStudentLimiter(t *testing.T) {
	limiter := newStudentLimiter(2, 10*time.Second)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	assert.True(t, limiter.Allow(11, now))
	assert.True(t, limiter.Allow(11, now))
	assert.False(t, limiter.Allow(11, now))
	assert.True(t, limiter.Allow(12, now), "limits are per student")

	assert.True(t, limiter.Allow(11, now.Add(10*time.Second)))
	assert.False(t, limiter.Allow(11, now.Add(10*time.Second)))
}

func TestStudentLimiter_Defaults(t *testing.T) {
	limiter := newStudentLimiter(0, 0)
	now := time.Now()
	for i := 0; i < DefaultChallengeRateBurst; i++ {
		assert.True(t, limiter.Allow(11, now))
	}
	assert.False(t, limiter.Allow(11, now))
}

func TestStudentLimiter_EvictsIdleStudents(t *testing.T) {
	limiter := newStudentLimiter(2, 10*time.Second)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	for studentId := int64(1); studentId <= 50; studentId++ {
		assert.True(t, limiter.Allow(studentId, now))
	}
	assert.True(t, limiter.Allow(11, now.Add(5*time.Second)))
	assert.Equal(t, 50, limiter.size())

	later := now.Add(20 * time.Second)
	assert.True(t, limiter.Allow(12, later))
	assert.Equal(t, 2, limiter.size(), "only students seen within a full refill are kept")

	assert.True(t, limiter.Allow(12, later))
	assert.False(t, limiter.Allow(12, later), "an evicted student starts again from a full burst")
}
