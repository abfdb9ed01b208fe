package tracker

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultChallengeRateBurst    = 5
	DefaultChallengeRateInterval = 10 * time.Second
)

// studentLimiter throttles challenge requests per student, which also
// bounds how fast a class password can be guessed. A student idle long
// enough to refill the whole burst is dropped, a fresh limiter behaves
// the same
type studentLimiter struct {
	burst     int
	every     rate.Limit
	idleAfter time.Duration

	mutex     sync.Mutex
	limiters  map[int64]*studentBucket
	lastSweep time.Time
}

type studentBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newStudentLimiter(burst int, interval time.Duration) *studentLimiter {
	if burst <= 0 {
		burst = DefaultChallengeRateBurst
	}
	if interval <= 0 {
		interval = DefaultChallengeRateInterval
	}
	return &studentLimiter{
		burst:     burst,
		every:     rate.Every(interval),
		idleAfter: time.Duration(burst) * interval,
		limiters:  map[int64]*studentBucket{},
	}
}

func (s *studentLimiter) Allow(studentId int64, now time.Time) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if now.Sub(s.lastSweep) >= s.idleAfter {
		s.sweepLocked(now)
	}
	bucket, ok := s.limiters[studentId]
	if !ok {
		bucket = &studentBucket{limiter: rate.NewLimiter(s.every, s.burst)}
		s.limiters[studentId] = bucket
	}
	bucket.lastSeen = now
	return bucket.limiter.AllowN(now, 1)
}

func (s *studentLimiter) sweepLocked(now time.Time) {
	for studentId, bucket := range s.limiters {
		if now.Sub(bucket.lastSeen) >= s.idleAfter {
			delete(s.limiters, studentId)
		}
	}
	s.lastSweep = now
}

func (s *studentLimiter) size() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.limiters)
}
