package services

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterPruneThreshold = 1024

// LoginLimiter throttles login attempts per email address.
type LoginLimiter struct {
	mu       sync.Mutex
	perMin   int
	limiters map[string]*rate.Limiter
}

// NewLoginLimiter allows perMinute attempts per email with an equal burst.
// perMinute <= 0 disables throttling.
func NewLoginLimiter(perMinute int) *LoginLimiter {
	return &LoginLimiter{perMin: perMinute, limiters: make(map[string]*rate.Limiter)}
}

func (l *LoginLimiter) Allow(email string) bool {
	if l == nil || l.perMin <= 0 {
		return true
	}
	key := strings.ToLower(strings.TrimSpace(email))

	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= limiterPruneThreshold {
			l.prune()
		}
		lim = rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMin)), l.perMin)
		l.limiters[key] = lim
	}
	return lim.Allow()
}

// prune drops limiters that have refilled completely. Caller holds mu.
func (l *LoginLimiter) prune() {
	for k, lim := range l.limiters {
		if lim.Tokens() >= float64(l.perMin) {
			delete(l.limiters, k)
		}
	}
}
