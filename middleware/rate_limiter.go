package middleware

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"project/utils"
)

// Limiter is what routes attach in front of abuse-prone endpoints.
type Limiter interface {
	Middleware(next http.Handler) http.Handler
}

// clientIP returns the remote IP. X-Forwarded-For / X-Real-IP are honored only
// when the direct peer is one of the trusted proxy IPs or CIDRs.
func clientIP(r *http.Request, trusted []string) string {
	remoteHost, _, _ := net.SplitHostPort(r.RemoteAddr)
	remoteIP := net.ParseIP(remoteHost)
	for _, cidr := range trusted {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}
		if strings.Contains(cidr, "/") {
			if _, ipnet, err := net.ParseCIDR(cidr); err == nil && remoteIP != nil && ipnet.Contains(remoteIP) {
				return forwardedIP(r, remoteHost)
			}
		} else if cidr == remoteHost {
			return forwardedIP(r, remoteHost)
		}
	}
	return remoteHost
}

func forwardedIP(r *http.Request, fallback string) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if xr := r.Header.Get("X-Real-IP"); xr != "" {
		return xr
	}
	return fallback
}

// IPRateLimiter is a per-IP fixed-window counter held in process memory.
type IPRateLimiter struct {
	max     int
	window  time.Duration
	trusted []string

	mu    sync.Mutex
	state map[string][]time.Time
}

func NewIPRateLimiter(max int, window time.Duration) *IPRateLimiter {
	l := &IPRateLimiter{
		max:    max,
		window: window,
		state:  make(map[string][]time.Time),
	}
	go l.cleanupLoop()
	return l
}

// WithTrustedProxies enables X-Forwarded-For parsing for the given IPs/CIDRs.
func (l *IPRateLimiter) WithTrustedProxies(trusted []string) *IPRateLimiter {
	l.trusted = trusted
	return l
}

func (l *IPRateLimiter) allow(ip string) bool {
	now := time.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.state[ip][:0]
	for _, t := range l.state[ip] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= l.max {
		l.state[ip] = kept
		return false
	}
	l.state[ip] = append(kept, now)
	return true
}

func (l *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for ip, times := range l.state {
			if len(times) == 0 || !times[len(times)-1].After(cutoff) {
				delete(l.state, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r, l.trusted)) {
			utils.WriteError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedisRateLimiter counts per-IP requests in Redis so the limit holds across
// instances. Redis failures fail open; losing rate limiting beats losing the
// endpoint.
type RedisRateLimiter struct {
	rdb     *redis.Client
	prefix  string
	max     int64
	window  time.Duration
	trusted []string
}

func NewRedisRateLimiter(rdb *redis.Client, prefix string, max int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{rdb: rdb, prefix: prefix, max: int64(max), window: window}
}

func (l *RedisRateLimiter) allow(ctx context.Context, ip string) bool {
	key := fmt.Sprintf("ratelimit:%s:%s", l.prefix, ip)
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[warn] rate limiter redis error: %v", err)
		return true
	}
	return incr.Val() <= l.max
}

func (l *RedisRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(r.Context(), clientIP(r, l.trusted)) {
			utils.WriteError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
