package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-api/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit     rate.Limit
	RateBurst     int
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
}

type Router struct {
	engine   *gin.Engine
	handlers []Handler
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func NewRouter(config Config, handlers ...Handler) *Router {
	gin.SetMode(gin.ReleaseMode)
	// Unknown keys in request bodies are validation failures, not noise.
	gin.EnableJsonDecoderDisallowUnknownFields()
	engine := gin.New()

	r := &Router{
		engine:   engine,
		handlers: handlers,
		metrics:  initRouterMetrics(config.MetricsPrefix),
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	for _, h := range r.handlers {
		h.RegisterRoutes(api)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
