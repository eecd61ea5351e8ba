package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "silvergen"

var (
	swipesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "swipes_total",
		Help:      "Swipe decisions committed, by action",
	}, []string{"action"})

	swipePersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "swipe_persist_failures_total",
		Help:      "Swipe decisions that could not be stored",
	})

	transcriptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transcriptions_total",
		Help:      "Speech-to-text uploads, by outcome",
	}, []string{"outcome"})

	extractions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "extractions_total",
		Help:      "Field extractions, by the path that produced them",
	}, []string{"source"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// SwipeCommitted counts one committed decision
func SwipeCommitted(action string) {
	swipesTotal.WithLabelValues(action).Inc()
}

// SwipePersistFailed counts one decision the store rejected
func SwipePersistFailed() {
	swipePersistFailures.Inc()
}

// Transcribed counts one transcription attempt; outcome is "ok" or "error"
func Transcribed(outcome string) {
	transcriptions.WithLabelValues(outcome).Inc()
}

// Extracted counts one extraction by source ("llm" or "heuristic")
func Extracted(source string) {
	extractions.WithLabelValues(source).Inc()
}

// Middleware records request latency per matched route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
