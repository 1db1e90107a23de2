package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	ScreeningSessionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "screening_sessions_created_total",
			Help: "Total number of screening sessions started",
		},
	)

	AnswersSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "screening_answers_submitted_total",
			Help: "Total number of screening answers appended to the ledger",
		},
	)

	CrisisIndications = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "screening_crisis_indications_total",
			Help: "Total number of sessions that transitioned to crisis-indicated",
		},
	)

	RuleEvaluationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "screening_rule_evaluation_seconds",
			Help:    "Duration of sandboxed rule evaluations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25},
		},
		[]string{"kind"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ScreeningSessionsCreated)
	prometheus.MustRegister(AnswersSubmitted)
	prometheus.MustRegister(CrisisIndications)
	prometheus.MustRegister(RuleEvaluationDuration)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
