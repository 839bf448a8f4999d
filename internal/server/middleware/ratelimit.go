package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fulmenhq/gofulmen/errors"
	"golang.org/x/time/rate"
)

const clientIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client address.
type RateLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

// NewRateLimiter returns a limiter allowing perSecond requests per client
// with the given burst. perSecond <= 0 disables limiting.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = int(math.Max(1, math.Ceil(perSecond)))
	}
	return &RateLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

// Enabled reports whether requests are limited at all.
func (rl *RateLimiter) Enabled() bool {
	return rl != nil && rl.limit > 0
}

// Allow consumes a token for key.
func (rl *RateLimiter) Allow(key string) bool {
	if !rl.Enabled() {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	client, ok := rl.clients[key]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = client
	}
	client.lastSeen = now
	return client.limiter.AllowN(now, 1)
}

// sweep drops idle clients at most once per TTL. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < clientIdleTTL {
		return
	}
	for key, client := range rl.clients {
		if now.Sub(client.lastSeen) >= clientIdleTTL {
			delete(rl.clients, key)
		}
	}
	rl.lastSweep = now
}

// Middleware rejects requests over the limit with 429 RATE_LIMITED.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if !rl.Enabled() {
		return next
	}
	retryAfter := strconv.Itoa(int(math.Max(1, math.Ceil(1/float64(rl.limit)))))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.Allow(clientKey(r)) {
			next.ServeHTTP(w, r)
			return
		}

		envelope := errors.NewErrorEnvelope("RATE_LIMITED", "Too many requests; slow down").
			WithCorrelationID(GetRequestID(r.Context()))
		envelope, _ = envelope.WithContext(map[string]interface{}{
			"limit_per_second": float64(rl.limit),
			"burst":            rl.burst,
		})
		w.Header().Set("Retry-After", retryAfter)
		writeErrorResponse(w, envelope, http.StatusTooManyRequests)
	})
}

// clientKey identifies the caller; RealIP has already rewritten RemoteAddr.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
