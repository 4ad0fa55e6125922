package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"moviesbackend/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// slidingWindow counts requests per client IP inside a fixed-size window.
// State is per middleware instance; a background sweep evicts idle IPs so
// the map does not grow with every address that ever hit the API. The
// sweep goroutine exits when the constructor's context is canceled.
type slidingWindow struct {
	mu      sync.Mutex
	seen    map[string]*windowEntry
	limit   int
	window  time.Duration
	stopped chan struct{} // closed once purgeLoop has exited
}

type windowEntry struct {
	count     int
	windowEnd time.Time
}

func newSlidingWindow(ctx context.Context, limit int, window time.Duration) *slidingWindow {
	sw := &slidingWindow{
		seen:    make(map[string]*windowEntry),
		limit:   limit,
		window:  window,
		stopped: make(chan struct{}),
	}
	go sw.purgeLoop(ctx)
	return sw
}

// allow records a hit for ip and reports whether it stays within the limit,
// along with the moment the current window resets.
func (sw *slidingWindow) allow(ip string) (bool, time.Time) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := time.Now()
	e, ok := sw.seen[ip]
	if !ok || now.After(e.windowEnd) {
		e = &windowEntry{windowEnd: now.Add(sw.window)}
		sw.seen[ip] = e
	}
	e.count++
	return e.count <= sw.limit, e.windowEnd
}

const purgeInterval = 5 * time.Minute

func (sw *slidingWindow) purgeLoop(ctx context.Context) {
	defer close(sw.stopped)

	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sw.purge(time.Now())
		}
	}
}

// purge drops every entry whose window has already closed.
func (sw *slidingWindow) purge(now time.Time) {
	sw.mu.Lock()
	purged := 0
	for ip, e := range sw.seen {
		if now.After(e.windowEnd) {
			delete(sw.seen, ip)
			purged++
		}
	}
	remaining := len(sw.seen)
	sw.mu.Unlock()

	if purged > 0 {
		log.Debug().
			Int("entries_purged", purged).
			Int("entries_remaining", remaining).
			Msg("rate limiter window purged")
	}
}

// RateLimiter returns a general-purpose per-IP rate limiter. Rejected
// requests carry a Retry-After header with the seconds left in the window.
// The background sweep runs until ctx is canceled.
func RateLimiter(ctx context.Context, limit int, window time.Duration) gin.HandlerFunc {
	sw := newSlidingWindow(ctx, limit, window)
	return func(c *gin.Context) {
		ok, reset := sw.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(time.Until(reset).Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("too many requests, retry shortly"))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP, a much
// tighter window than the API-wide limiter, to slow credential stuffing.
func LoginRateLimiter(ctx context.Context) gin.HandlerFunc {
	sw := newSlidingWindow(ctx, 20, time.Minute)
	return func(c *gin.Context) {
		if ok, _ := sw.allow(c.ClientIP()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("too many login attempts, retry in 1 minute"))
			return
		}
		c.Next()
	}
}
