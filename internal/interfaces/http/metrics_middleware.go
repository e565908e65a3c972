package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Métricas HTTP del servicio: total de requests y latencia, etiquetadas por
// método, ruta registrada (no la URL cruda) y status.
var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total de peticiones HTTP atendidas",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}

// MetricsMiddleware registra contador y latencia por petición.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		// c.Route().Path es la plantilla registrada ("/api/clients/:id"),
		// así las series no explotan con un label por UUID.
		path := c.Route().Path
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		requestsTotal.WithLabelValues(labels...).Inc()
		requestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())

		return err
	}
}

// MetricsHandler expone /metrics en formato Prometheus.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
