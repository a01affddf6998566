package monitoring

import (
	"strconv"
	"sync"
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

	// ConversionCounter 按类型与结果统计转换次数
	ConversionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_template_conversions_total",
			Help: "Total number of conversions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// SubPartCounter 统计小题处理结果（graded / skipped）
	SubPartCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_template_subparts_total",
			Help: "Total number of sub-parts processed by result",
		},
		[]string{"result"},
	)

	ExtractionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exam_template_extraction_duration_seconds",
			Help:    "Duration of model extraction calls",
			Buckets: []float64{1, 5, 15, 30, 60, 120},
		},
		[]string{"engine"},
	)

	registerOnce sync.Once
)

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(ConversionCounter)
		prometheus.MustRegister(SubPartCounter)
		prometheus.MustRegister(ExtractionDuration)
	})
}

func ObserveConversion(kind, outcome string) {
	ConversionCounter.WithLabelValues(kind, outcome).Inc()
}

func ObserveSubParts(graded, skipped int) {
	SubPartCounter.WithLabelValues("graded").Add(float64(graded))
	SubPartCounter.WithLabelValues("skipped").Add(float64(skipped))
}

func ObserveExtraction(engine string, start time.Time) {
	ExtractionDuration.WithLabelValues(engine).Observe(time.Since(start).Seconds())
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
