package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// windowCounter counts requests from one IP within a sliding window.
type windowCounter struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// limiterState is a per-limiter IP table. Both the login limiter and the
// general API limiter are instances of the same mechanism.
type limiterState struct {
	mu      sync.Mutex
	entries map[string]*windowCounter
}

func newLimiterState() *limiterState {
	return &limiterState{entries: make(map[string]*windowCounter)}
}

func (s *limiterState) entry(ip string) *windowCounter {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[ip]
	if !ok {
		e = &windowCounter{}
		s.entries[ip] = e
	}
	return e
}

// allow increments the IP counter and reports whether the request fits the
// window. Returns the window end for Retry-After headers.
func (s *limiterState) allow(ip string, limit int, window time.Duration) (bool, time.Time) {
	e := s.entry(ip)
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	if now.After(e.windowEnd) {
		e.count = 0
		e.windowEnd = now.Add(window)
	}
	e.count++
	return e.count <= limit, e.windowEnd
}

func (s *limiterState) purge(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	purged := 0
	for ip, e := range s.entries {
		e.mu.Lock()
		if now.After(e.windowEnd) {
			delete(s.entries, ip)
			purged++
		}
		e.mu.Unlock()
	}
	return purged
}

var (
	loginLimiter = newLimiterState()
	apiLimiter   = newLimiterState()
)

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, _ := loginLimiter.allow(c.ClientIP(), 20, time.Minute)
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Too many login attempts. Try again in 1 minute."))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general per-IP limiter applied to the whole API surface.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := apiLimiter.allow(c.ClientIP(), limit, window)
		if !ok {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Too many requests. Try again in a moment."))
			return
		}
		c.Next()
	}
}

// Expired IPs are purged periodically so the tables do not grow forever.
const purgeInterval = 5 * time.Minute

func init() {
	go func() {
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			purgedLogin := loginLimiter.purge(now)
			purgedAPI := apiLimiter.purge(now)
			if purgedLogin > 0 || purgedAPI > 0 {
				log.Debug().
					Int("login_entries_purged", purgedLogin).
					Int("api_entries_purged", purgedAPI).
					Msg("rate limiter tables purged")
			}
		}
	}()
}
