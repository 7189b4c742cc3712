package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig bounds how fast a single client may hit the API. Zero or
// negative values fall back to the defaults.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig returns default rate limiting settings.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
	}
}

func (cfg RateLimitConfig) withDefaults() RateLimitConfig {
	def := DefaultRateLimitConfig()
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = def.RequestsPerSecond
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = def.BurstSize
	}
	return cfg
}

const (
	sweepInterval = time.Minute
	bucketIdleTTL = 10 * time.Minute
)

// bucket tracks the token balance of one client.
type bucket struct {
	tokens float64
	last   time.Time
}

// clientLimiter hands out tokens per client IP. Idle buckets are swept so
// the map does not grow with every address that ever hit the API.
type clientLimiter struct {
	mu        sync.Mutex
	clients   map[string]*bucket
	cfg       RateLimitConfig
	lastSweep time.Time
}

func newClientLimiter(cfg RateLimitConfig) *clientLimiter {
	return &clientLimiter{
		clients:   make(map[string]*bucket),
		cfg:       cfg.withDefaults(),
		lastSweep: time.Now(),
	}
}

// take spends one token for key, refilling by elapsed time first. When the
// client is out of tokens it reports how long until the next one.
func (l *clientLimiter) take(key string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > sweepInterval {
		l.sweep(now)
	}

	b, ok := l.clients[key]
	if !ok {
		b = &bucket{tokens: float64(l.cfg.BurstSize), last: now}
		l.clients[key] = b
	} else {
		b.tokens += now.Sub(b.last).Seconds() * l.cfg.RequestsPerSecond
		if burst := float64(l.cfg.BurstSize); b.tokens > burst {
			b.tokens = burst
		}
		b.last = now
	}

	if b.tokens < 1 {
		wait := time.Duration((1 - b.tokens) / l.cfg.RequestsPerSecond * float64(time.Second))
		return false, wait
	}
	b.tokens--
	return true, 0
}

func (l *clientLimiter) sweep(now time.Time) {
	for key, b := range l.clients {
		if now.Sub(b.last) > bucketIdleTTL {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

// RateLimit returns rate limiting middleware keyed by client IP.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	limiter := newClientLimiter(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, wait := limiter.take(c.RealIP(), time.Now())

			c.Response().Header().Set("X-RateLimit-Limit",
				strconv.FormatFloat(limiter.cfg.RequestsPerSecond, 'f', -1, 64))
			if !ok {
				retryAfter := int(wait.Seconds()) + 1
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
