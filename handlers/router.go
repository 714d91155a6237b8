package handlers

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mitsides06/TubeMap/logging"
	"github.com/mitsides06/TubeMap/metrics"
	"github.com/mitsides06/TubeMap/services"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	startedKey      = "request_started"
)

type RouterConfig struct {
	AllowOrigins []string
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer // served on /metrics when set
	Logger       *slog.Logger
}

// NewRouter wires the API, health and metrics endpoints on a gin engine.
func NewRouter(routeService *services.RouteService, cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.L()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestContext())
	r.Use(accessLog(logger))
	if cfg.Metrics != nil {
		r.Use(countRequests(cfg.Metrics))
	}
	r.Use(cors.New(corsConfig(cfg.AllowOrigins)))

	NewRouteHandler(routeService, logger).RegisterRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"*"}
	config.ExposeHeaders = []string{RequestIDHeader}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	return config
}

// RequestID returns the id assigned to the request by the router.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func requestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(startedKey, time.Now())

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func accessLog(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		logger.Info("http.request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"latency", time.Since(started),
			"request_id", RequestID(c))
	}
}

func countRequests(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
