package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Navaneeth2707/Remindiary/pkg/clientip"
)

const (
	headerXContentTypeOptions     = "X-Content-Type-Options"
	headerXFrameOptions           = "X-Frame-Options"
	headerXXSSProtection          = "X-XSS-Protection"
	headerContentSecurityPolicy   = "Content-Security-Policy"
	headerStrictTransportSecurity = "Strict-Transport-Security"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerXContentTypeOptions, "nosniff")
		w.Header().Set(headerXFrameOptions, "DENY")
		w.Header().Set(headerXXSSProtection, "1; mode=block")
		w.Header().Set(headerContentSecurityPolicy, "default-src 'self'")
		w.Header().Set(headerStrictTransportSecurity, "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// --- Model-call route rate limiting (1 req/3s, burst 3) ---
//
// POST /api/entries and POST /api/diary/generate each cost at least one
// backend round-trip, so they get a stricter per-IP limit than the global
// Redis one.

var (
	modelEntries    = make(map[string]*limiterEntry)
	modelEntriesMu  sync.Mutex
	modelCleanupRun bool
)

const (
	modelRateLimitEvery  = 3 * time.Second
	modelRateLimitBurst  = 3
	modelCleanupInterval = 5 * time.Minute
	modelLimiterTTL      = 30 * time.Minute
)

var modelPaths = map[string]bool{
	"/api/entries":        true,
	"/api/diary/generate": true,
}

func getModelLimiter(ip string) *rate.Limiter {
	modelEntriesMu.Lock()
	defer modelEntriesMu.Unlock()
	startModelCleanupOnce()
	e, ok := modelEntries[ip]
	if !ok {
		e = &limiterEntry{
			limiter: rate.NewLimiter(rate.Every(modelRateLimitEvery), modelRateLimitBurst),
			lastUse: time.Now(),
		}
		modelEntries[ip] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

func startModelCleanupOnce() {
	if modelCleanupRun {
		return
	}
	modelCleanupRun = true
	go func() {
		ticker := time.NewTicker(modelCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			modelEntriesMu.Lock()
			now := time.Now()
			for ip, e := range modelEntries {
				if now.Sub(e.lastUse) > modelLimiterTTL {
					delete(modelEntries, ip)
				}
			}
			modelEntriesMu.Unlock()
		}
	}()
}

// ModelRateLimit applies a stricter limit to the POST routes that trigger
// backend round-trips. Use after RateLimitMiddleware.
func ModelRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !modelPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}
		ip := clientip.RealClientIP(r)
		if !getModelLimiter(ip).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"message":"Too many requests. Please slow down."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ProductionSecurity returns middlewares for production: SecurityHeaders → ModelRateLimit.
func ProductionSecurity() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		SecurityHeaders,
		ModelRateLimit,
	}
}
