// internal/api/router.go

// Package api exposes the task dispatcher, the API test lab catalog and request
// state over HTTP.
package api

import (
	"context"
	"net/http"

	apperrors "cloud-api-console/internal/common/errors"
	"cloud-api-console/internal/common/logger"
	"cloud-api-console/internal/common/requeststate"
	"cloud-api-console/pkg/registry"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Dispatcher runs one task by type.
type Dispatcher interface {
	Dispatch(ctx context.Context, taskType string, variables []byte) (interface{}, error)
	Check(taskType string) error
	TaskTypes() []string
}

// ReadyCheck reports whether a dependency can serve traffic.
type ReadyCheck func(ctx context.Context) error

type Options struct {
	MaxBodyBytes   int64
	AllowedOrigins []string
	RateLimit      bool
	RatePerSecond  float64
	RateBurst      int
	// TrustedProxies may set X-Forwarded-For; nil trusts none and uses the peer address.
	TrustedProxies []string
	// MetricsHandler serves /metrics; promhttp.Handler() when nil.
	MetricsHandler http.Handler
	// DisableMetrics drops the /metrics route and HTTP request counting.
	DisableMetrics bool
	ReadyChecks    map[string]ReadyCheck
}

type Server struct {
	dispatcher Dispatcher
	tracker    *requeststate.Tracker
	catalog    *registry.Catalog
	errors     *apperrors.ErrorHandler
	logger     logger.Logger
	opts       Options
}

func NewServer(d Dispatcher, tracker *requeststate.Tracker, catalog *registry.Catalog, log logger.Logger, opts Options) *Server {
	log = log.WithFields(map[string]interface{}{"component": "api"})
	return &Server{
		dispatcher: d,
		tracker:    tracker,
		catalog:    catalog,
		errors:     apperrors.NewErrorHandler(log),
		logger:     log,
		opts:       opts,
	}
}

// Router builds the gin engine with the full middleware chain.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(s.opts.TrustedProxies); err != nil {
		s.logger.Warn("invalid trusted proxies, trusting none", map[string]interface{}{"error": err.Error()})
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())

	mw := NewMiddleware(s.errors, s.logger)
	r.Use(RequestID())
	if !s.opts.DisableMetrics {
		r.Use(Metrics())
	}
	r.Use(mw.AccessLog(), SecurityHeaders(), CORS(s.opts.AllowedOrigins))

	r.GET("/health", s.health)
	r.GET("/ready", s.ready)
	if !s.opts.DisableMetrics {
		metricsHandler := s.opts.MetricsHandler
		if metricsHandler == nil {
			metricsHandler = promhttp.Handler()
		}
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	apiGroup := r.Group("/api")
	apiGroup.Use(Session(), mw.RequestSizeLimiter(s.opts.MaxBodyBytes))
	if s.opts.RateLimit {
		apiGroup.Use(mw.RateLimitPerClient(rate.Limit(s.opts.RatePerSecond), s.opts.RateBurst))
	}
	{
		apiGroup.GET("/catalog", s.listCatalog)
		apiGroup.GET("/tasks", s.listTasks)
		apiGroup.POST("/tasks/:taskType", s.runTask)
		apiGroup.POST("/lab/cards/:cardId/run", s.runCard)
		apiGroup.GET("/status/:target", s.status)
	}
	return r
}
