package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "comment_analytics"

// Metrics bundles the service collectors and the registry they live on.
type Metrics struct {
	Registry *prometheus.Registry
	HTTP     *HTTPMetrics
	Dataset  *DatasetMetrics
}

// New creates a registry with Go and process collectors plus the service
// metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Metrics{
		Registry: reg,
		HTTP:     NewHTTPMetrics(reg),
		Dataset:  NewDatasetMetrics(reg),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}

// HTTPMetrics holds Prometheus metrics for HTTP request tracking.
type HTTPMetrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status_code"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status_code"}),
	}
	reg.MustRegister(m.RequestDuration, m.RequestsTotal)
	return m
}

// Middleware records request count and duration. /metrics is skipped.
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "/metrics" {
			c.Next()
			return
		}
		if route == "" {
			route = "unmatched"
		}

		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		m.RequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		m.RequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
	}
}

// DatasetMetrics tracks the dataset cache. It implements dataset.Recorder.
type DatasetMetrics struct {
	Hits         prometheus.Counter
	Misses       prometheus.Counter
	Loads        prometheus.Counter
	LoadErrors   prometheus.Counter
	LoadDuration prometheus.Histogram
	Rows         prometheus.Gauge
}

func NewDatasetMetrics(reg prometheus.Registerer) *DatasetMetrics {
	m := &DatasetMetrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dataset_cache",
			Name:      "hits_total",
			Help:      "Total number of dataset cache hits.",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dataset_cache",
			Name:      "misses_total",
			Help:      "Total number of dataset cache misses.",
		}),
		Loads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "loads_total",
			Help:      "Total number of successful dataset loads.",
		}),
		LoadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "load_errors_total",
			Help:      "Total number of failed dataset loads.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "load_duration_seconds",
			Help:      "Time taken to read and normalize the dataset.",
			Buckets:   prometheus.DefBuckets,
		}),
		Rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "rows",
			Help:      "Number of comments in the currently loaded dataset.",
		}),
	}
	reg.MustRegister(m.Hits, m.Misses, m.Loads, m.LoadErrors, m.LoadDuration, m.Rows)
	return m
}

func (m *DatasetMetrics) CacheHit() { m.Hits.Inc() }
func (m *DatasetMetrics) CacheMiss() { m.Misses.Inc() }
func (m *DatasetMetrics) LoadFailed() { m.LoadErrors.Inc() }

func (m *DatasetMetrics) LoadSucceeded(rows int, took time.Duration) {
	m.Loads.Inc()
	m.LoadDuration.Observe(took.Seconds())
	m.Rows.Set(float64(rows))
}
