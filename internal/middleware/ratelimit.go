// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Limiter decides whether a client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryLimiter is a per-process token bucket limiter keyed by client.
// Idle buckets are evicted after ten minutes.
type MemoryLimiter struct {
	buckets *cache.Cache
	every   rate.Limit
	burst   int
}

// NewMemoryLimiter allows perMinute requests per client per minute, with
// bursts up to the same amount.
func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &MemoryLimiter{
		buckets: cache.New(10*time.Minute, 5*time.Minute),
		every:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
	}
}

// Allow takes one token from key's bucket.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	var lim *rate.Limiter
	if v, ok := l.buckets.Get(key); ok {
		lim = v.(*rate.Limiter)
	} else {
		lim = rate.NewLimiter(l.every, l.burst)
		if err := l.buckets.Add(key, lim, cache.DefaultExpiration); err != nil {
			// Another request created it first.
			if v, ok := l.buckets.Get(key); ok {
				lim = v.(*rate.Limiter)
			}
		}
	}
	// Refresh expiry so active clients keep their bucket.
	l.buckets.Set(key, lim, cache.DefaultExpiration)
	return lim.Allow(), nil
}

// RateLimit rejects clients over the limit with a JSON 429. If the limiter
// itself fails the request is let through.
func RateLimit(l Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			ok, err := l.Allow(r.Context(), ip)
			if err != nil {
				slog.Warn("rate limiter unavailable", "error", err, "request_id", RequestID(r.Context()))
				ok = true
			}
			if !ok {
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the address used as the rate-limit key. Forwarded
// headers are only honoured when the peer is a loopback or private address,
// i.e. a proxy in front of the server; the rightmost X-Forwarded-For hop is
// the one that proxy appended.
func clientIP(r *http.Request) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	}
	if !trustedProxy(peer) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		if hop := strings.TrimSpace(hops[len(hops)-1]); hop != "" {
			return hop
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return peer
}

func trustedProxy(addr string) bool {
	ip := net.ParseIP(addr)
	return ip != nil && (ip.IsLoopback() || ip.IsPrivate())
}
