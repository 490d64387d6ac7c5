// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "github.com/nutrihelp/nutrihelp-api/pkg/errors"

	"golang.org/x/time/rate"
)

// clientLimiters hands out one token bucket per client key. Buckets that
// have not been used for idle are dropped during lookups.
type clientLimiters struct {
	limit rate.Limit
	burst int
	idle  time.Duration

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiters(limit rate.Limit, burst int, idle time.Duration) *clientLimiters {
	return &clientLimiters{
		limit:     limit,
		burst:     burst,
		idle:      idle,
		clients:   make(map[string]*clientLimiter),
		lastSweep: time.Now(),
	}
}

func (c *clientLimiters) get(key string, now time.Time) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.idle > 0 && now.Sub(c.lastSweep) >= c.idle {
		c.sweep(now)
	}

	cl, ok := c.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.clients[key] = cl
		rateLimitClients.Set(float64(len(c.clients)))
	}
	cl.lastSeen = now
	return cl.limiter
}

func (c *clientLimiters) sweep(now time.Time) {
	for key, cl := range c.clients {
		if now.Sub(cl.lastSeen) >= c.idle {
			delete(c.clients, key)
		}
	}
	c.lastSweep = now
	rateLimitClients.Set(float64(len(c.clients)))
}

func (c *clientLimiters) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}

// untilTokens returns how long lim needs to accumulate n tokens.
func untilTokens(lim *rate.Limiter, n float64, now time.Time) time.Duration {
	missing := n - lim.TokensAt(now)
	if missing <= 0 {
		return 0
	}
	if lim.Limit() <= 0 {
		return -1
	}
	return time.Duration(missing / float64(lim.Limit()) * float64(time.Second))
}

func ceilSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}

// rateLimitMiddleware enforces the per-client request budget and reports it
// with the RateLimit-* headers.
func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.RateLimit == rate.Inf {
			next.ServeHTTP(w, r)
			return
		}

		now := time.Now()
		lim := s.rateLimiter.get(s.clientKey(r), now)
		allowed := lim.AllowN(now, 1)

		h := w.Header()
		h.Set("RateLimit-Limit", strconv.Itoa(s.config.RateLimitBurst))
		h.Set("RateLimit-Remaining", strconv.Itoa(max(0, int(lim.TokensAt(now)))))
		if reset := untilTokens(lim, float64(s.config.RateLimitBurst), now); reset >= 0 {
			h.Set("RateLimit-Reset", strconv.Itoa(ceilSeconds(reset)))
		}

		if !allowed {
			rateLimitRejects.Inc()
			retry := untilTokens(lim, 1, now)
			if retry < 0 {
				retry = s.config.RateLimitIdle
			}
			h.Set("Retry-After", strconv.Itoa(max(1, ceilSeconds(retry))))
			WriteError(w, r, http.StatusTooManyRequests, apperrors.ErrCodeRateLimitExceeded,
				"Too many requests, please try again later.", true, map[string]any{
					"limit": s.config.RateLimitBurst,
				})
			return
		}

		next.ServeHTTP(w, r)
	}
}

// clientKey identifies the caller. Behind a trusted proxy the address
// appended by that proxy (the last X-Forwarded-For entry) is used.
func (s *Server) clientKey(r *http.Request) string {
	if s.config.TrustProxy {
		if values := r.Header.Values("X-Forwarded-For"); len(values) > 0 {
			hops := strings.Split(values[len(values)-1], ",")
			if hop := strings.TrimSpace(hops[len(hops)-1]); hop != "" {
				return hop
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
