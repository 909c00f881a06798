// internal/api/middleware.go
package api

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "cloud-api-console/internal/common/errors"
	"cloud-api-console/internal/common/logger"
	"cloud-api-console/internal/common/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderSessionID = "X-Session-ID"

	ctxRequestID = "requestId"
	ctxSessionID = "sessionId"
)

// limiterIdleTTL is how long an unused client bucket is kept.
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Middleware holds the per-client limiters and the error writer.
type Middleware struct {
	errors       *apperrors.ErrorHandler
	logger       logger.Logger
	rateLimiters map[string]*clientLimiter
	lastSweep    time.Time
	mu           sync.Mutex
}

func NewMiddleware(errHandler *apperrors.ErrorHandler, log logger.Logger) *Middleware {
	return &Middleware{
		errors:       errHandler,
		logger:       log,
		rateLimiters: make(map[string]*clientLimiter),
		lastSweep:    time.Now(),
	}
}

// RequestID tags every request with an id, reusing the caller's when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

// Session resolves the caller's session id, minting one when absent.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderSessionID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxSessionID, id)
		c.Writer.Header().Set(HeaderSessionID, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}

// SecurityHeaders adds security headers to prevent common attacks
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Next()
	}
}

// CORS allows the configured origins; "*" or an empty list allows any.
func CORS(allowed []string) gin.HandlerFunc {
	allowAll := len(allowed) == 0
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			allowAll = true
		}
		set[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || set[origin]) {
			h := c.Writer.Header()
			if allowAll {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Headers", "Content-Type, "+HeaderSessionID+", "+HeaderRequestID)
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Expose-Headers", HeaderSessionID+", "+HeaderRequestID)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestSizeLimiter rejects declared oversize bodies up front and caps reads
// for the rest.
func (m *Middleware) RequestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			m.errors.HandleRequestError(c, apperrors.NewPayloadTooLargeError(maxBytes))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// RateLimitPerClient applies one token bucket per client IP. Session ids are
// caller-chosen and never key the bucket.
func (m *Middleware) RateLimitPerClient(r rate.Limit, b int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		now := time.Now()

		m.mu.Lock()
		if now.Sub(m.lastSweep) >= limiterIdleTTL {
			m.sweepLocked(now)
		}
		entry, exists := m.rateLimiters[key]
		if !exists {
			entry = &clientLimiter{limiter: rate.NewLimiter(r, b)}
			m.rateLimiters[key] = entry
		}
		entry.lastSeen = now
		m.mu.Unlock()

		if !entry.limiter.AllowN(now, 1) {
			m.errors.HandleRequestError(c, apperrors.NewRateLimitedError(key))
			return
		}
		c.Next()
	}
}

// sweepLocked drops buckets idle for longer than limiterIdleTTL. Callers hold mu.
func (m *Middleware) sweepLocked(now time.Time) {
	for key, entry := range m.rateLimiters {
		if now.Sub(entry.lastSeen) >= limiterIdleTTL {
			delete(m.rateLimiters, key)
		}
	}
	m.lastSweep = now
}

// AccessLog writes one structured line per request.
func (m *Middleware) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  time.Since(start).String(),
			"requestId": c.GetString(ctxRequestID),
			"sessionId": sessionID(c),
			"clientIp":  c.ClientIP(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			m.logger.Warn("request served", fields)
			return
		}
		m.logger.Info("request served", fields)
	}
}

// Metrics counts requests by matched route so ids in paths do not explode labels.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
