package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/clubfeed/config"
	"github.com/use-agent/clubfeed/models"
	"golang.org/x/time/rate"
)

const (
	idleTTL       = time.Hour
	sweepInterval = 5 * time.Minute
)

// bucket is one client's token bucket and when it last asked for a token.
type bucket struct {
	*rate.Limiter
	seen time.Time
}

// buckets holds one token bucket per client IP.
type buckets struct {
	mu    sync.Mutex
	limit rate.Limit
	burst int
	byIP  map[string]*bucket
}

func newBuckets(cfg config.RateLimitConfig) *buckets {
	return &buckets{
		limit: rate.Limit(cfg.RequestsPerSecond),
		burst: cfg.Burst,
		byIP:  make(map[string]*bucket),
	}
}

// allow takes a token from ip's bucket, creating the bucket on first use.
func (b *buckets) allow(ip string, now time.Time) bool {
	b.mu.Lock()
	bk := b.byIP[ip]
	if bk == nil {
		bk = &bucket{Limiter: rate.NewLimiter(b.limit, b.burst)}
		b.byIP[ip] = bk
	}
	bk.seen = now
	b.mu.Unlock()

	return bk.AllowN(now, 1)
}

// sweep drops buckets idle since before cutoff and returns how many remain.
func (b *buckets) sweep(cutoff time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ip, bk := range b.byIP {
		if bk.seen.Before(cutoff) {
			delete(b.byIP, ip)
		}
	}
	return len(b.byIP)
}

// RateLimit limits each client IP to cfg.RequestsPerSecond with bursts of
// cfg.Burst. A non-positive rate turns it off.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	b := newBuckets(cfg)
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for now := range ticker.C {
			b.sweep(now.Add(-idleTTL))
		}
	}()

	return func(c *gin.Context) {
		if b.allow(c.ClientIP(), time.Now()) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
			Error: &models.ErrorDetail{
				Code:    models.ErrCodeRateLimited,
				Message: "too many requests for the club list, retry shortly",
			},
		})
	}
}
