package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	MONITORING_SVC          = "monitoring_svc"
	SERVICE_NAME            = "pokedle_backend"
	DEFAULT_PROMETHEUS_PORT = 2112
)

// HTTP Metrics
var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Game Metrics
var (
	gamesStartedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pokedle_games_started_total",
			Help: "Total game sessions created",
		},
	)

	gamesWonTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pokedle_games_won_total",
			Help: "Total games ended on an exact match",
		},
	)

	gamesLostTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pokedle_games_lost_total",
			Help: "Total games ended by exhausting the guess allowance",
		},
	)

	gamesAbandonedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pokedle_games_abandoned_total",
			Help: "Total active games discarded by a forced restart",
		},
	)

	guessesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pokedle_guesses_total",
			Help: "Total guesses evaluated",
		},
	)
)

func RecordGameStarted()   { gamesStartedTotal.Inc() }
func RecordGameWon()       { gamesWonTotal.Inc() }
func RecordGameLost()      { gamesLostTotal.Inc() }
func RecordGameAbandoned() { gamesAbandonedTotal.Inc() }
func RecordGuess()         { guessesTotal.Inc() }

// MonitoringService exposes prometheus metrics on a dedicated port and
// provides the request-metrics middleware for the API app.
type MonitoringService struct {
	appContext.DefaultService

	port int
	app  *fiber.App
}

func (svc MonitoringService) Id() string {
	return MONITORING_SVC
}

func (svc *MonitoringService) Configure(ctx *appContext.Context) error {
	svc.port = DEFAULT_PROMETHEUS_PORT
	if port := os.Getenv("PROMETHEUS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			svc.port = p
		}
	}

	registry := prometheus.DefaultRegisterer
	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDurationSeconds,
		gamesStartedTotal,
		gamesWonTotal,
		gamesLostTotal,
		gamesAbandonedTotal,
		guessesTotal,
	)
	registry.MustRegister(collectors.NewBuildInfoCollector())

	return svc.DefaultService.Configure(ctx)
}

func (svc *MonitoringService) Start() error {
	svc.app = fiber.New(fiber.Config{DisableStartupMessage: true})
	svc.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	go func() {
		if err := svc.app.Listen(fmt.Sprintf(":%d", svc.port)); err != nil {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	log.Info().Int("port", svc.port).Str("service", SERVICE_NAME).Msg("prometheus metrics listening")
	return nil
}

func (svc *MonitoringService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

// RequestMetrics records count and latency per endpoint.
func (svc *MonitoringService) RequestMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := strconv.Itoa(c.Response().StatusCode())
		endpoint := c.Route().Path
		method := c.Method()

		httpRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
		httpRequestDurationSeconds.WithLabelValues(endpoint, method, status).
			Observe(time.Since(start).Seconds())

		return err
	}
}
