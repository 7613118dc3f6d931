// Package api exposes the tracking, reporting and analysis operations over
// JSON HTTP for browser-extension and dashboard clients.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/enact-eco/enact/internal/advisor"
	"github.com/enact-eco/enact/internal/carbon"
	"github.com/enact-eco/enact/internal/metrics"
	"github.com/enact-eco/enact/internal/storage"
	"github.com/enact-eco/enact/internal/sysmetrics"
)

// Thresholds are the emission budgets the tracking endpoint alerts on.
type Thresholds struct {
	DailyGrams  float64
	WeeklyGrams float64
}

// Server holds the handler dependencies.
type Server struct {
	estimator  carbon.ActivityEstimator
	store      *storage.EmissionLog
	probe      sysmetrics.Probe
	advisor    *advisor.Client
	thresholds Thresholds
	log        zerolog.Logger
}

// New creates the API server. Zero-valued thresholds fall back to the
// package defaults.
func New(estimator carbon.ActivityEstimator, store *storage.EmissionLog, probe sysmetrics.Probe, adv *advisor.Client, thresholds Thresholds, logger zerolog.Logger) *Server {
	if thresholds.DailyGrams <= 0 {
		thresholds.DailyGrams = carbon.DailyThresholdGrams
	}
	if thresholds.WeeklyGrams <= 0 {
		thresholds.WeeklyGrams = carbon.WeeklyThresholdGrams
	}
	return &Server{
		estimator:  estimator,
		store:      store,
		probe:      probe,
		advisor:    adv,
		thresholds: thresholds,
		log:        logger.With().Str("component", "api").Logger(),
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger(), corsMiddleware())

	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/track-emission", s.trackEmission)
		apiGroup.GET("/emissions/summary", s.emissionsSummary)
		apiGroup.GET("/emissions/:date", s.emissionsByDate)
		apiGroup.GET("/eco-score", s.ecoScore)
		apiGroup.POST("/analyze-code", s.analyzeCode)
		apiGroup.POST("/upload-code", s.uploadCode)
		apiGroup.GET("/system-metrics", s.systemMetrics)
	}

	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "enact",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// requestLogger logs each request with its latency and status.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := s.log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = s.log.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// corsMiddleware allows any origin. The API serves browser extensions, so
// cross-origin requests are the normal case, not the exception.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// abortError maps domain errors to HTTP statuses: bad input is the
// client's fault, a failed estimation on valid-looking input is ours.
func (s *Server) abortError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, carbon.ErrInvalidActivityType),
		errors.Is(err, carbon.ErrInvalidDuration),
		errors.Is(err, carbon.ErrInvalidMetadata),
		errors.Is(err, carbon.ErrInvalidPeriod),
		errors.Is(err, storage.ErrBadDate):
		status = http.StatusBadRequest
		metrics.EstimationFailures.Inc()
	case errors.Is(err, carbon.ErrEstimation):
		metrics.EstimationFailures.Inc()
		s.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("estimation failed")
	default:
		s.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}

	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
