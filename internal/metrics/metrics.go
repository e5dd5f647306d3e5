package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ReasonValidation = "validation"
	ReasonLimit      = "limit"
	ReasonDuplicate  = "duplicate"
	ReasonInternal   = "internal"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	airplanesCreated prometheus.Counter
	createRejections *prometheus.CounterVec
	listCacheLookups *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airplanes_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airplanes_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		airplanesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "airplanes_created_total",
			Help: "Number of airplanes created",
		}),
		createRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airplane_create_rejections_total",
				Help: "Rejected airplane creations by reason",
			},
			[]string{"reason"},
		),
		listCacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airplanes_list_cache_lookups_total",
				Help: "List cache lookups by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.airplanesCreated,
		m.createRejections,
		m.listCacheLookups,
	)
	return m
}

func (m *Metrics) AirplaneCreated() {
	m.airplanesCreated.Inc()
}

func (m *Metrics) CreateRejected(reason string) {
	m.createRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) ListCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.listCacheLookups.WithLabelValues(result).Inc()
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
