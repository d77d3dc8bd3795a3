package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"dawrni-api/config"
	"dawrni-api/pkg/response"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware keeps one token bucket per client IP.
type RateLimitMiddleware struct {
	mu         sync.Mutex
	visitors   map[string]*visitor
	rps        rate.Limit
	burst      int
	trustProxy bool
	lastSweep  time.Time
	now        func() time.Time
}

func NewRateLimitMiddleware(cfg config.RateLimitConfig) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		visitors:   make(map[string]*visitor),
		rps:        rate.Limit(cfg.RPS),
		burst:      cfg.Burst,
		trustProxy: cfg.TrustProxy,
		now:        time.Now,
	}
}

func (m *RateLimitMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.allow(clientIP(r, m.trustProxy)) {
			w.Header().Set("Retry-After", "1")
			response.TooManyRequests(w, "Too many requests, please slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) allow(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evictIdle(now)

	v, ok := m.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.rps, m.burst)}
		m.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// evictIdle drops buckets unused for limiterIdleTTL, sweeping at most once per TTL. Caller holds mu.
func (m *RateLimitMiddleware) evictIdle(now time.Time) {
	if now.Sub(m.lastSweep) < limiterIdleTTL {
		return
	}
	m.lastSweep = now
	for ip, v := range m.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(m.visitors, ip)
		}
	}
}

// clientIP keys on the transport peer. X-Forwarded-For is read only behind a
// trusted proxy, and then only its last hop, which the proxy itself appended.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			hops := strings.Split(forwarded, ",")
			if ip := strings.TrimSpace(hops[len(hops)-1]); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
