package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerMetrics carries the process-wide prometheus collectors. Domain
// counters live next to the http ones so the checkout and reservation
// paths can record outcomes without importing promhttp.
type ServerMetrics struct {
	Requests             *prometheus.CounterVec
	OrdersCreated        prometheus.Counter
	ReservationConflicts prometheus.Counter
	RestockAlerts        prometheus.Counter
}

func NewServerMetrics(service string) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopcore",
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "status"})

	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shopcore",
		Subsystem: service,
		Name:      "orders_created_total",
		Help:      "Total number of finalized orders.",
	})

	reservationConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shopcore",
		Subsystem: service,
		Name:      "reservation_conflicts_total",
		Help:      "Total number of reservations rejected for insufficient stock.",
	})

	restockAlerts := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shopcore",
		Subsystem: service,
		Name:      "restock_alerts_total",
		Help:      "Total number of low-stock alerts raised after checkout.",
	})

	prometheus.MustRegister(
		requests,
		ordersCreated,
		reservationConflicts,
		restockAlerts,
	)

	return &ServerMetrics{
		Requests:             requests,
		OrdersCreated:        ordersCreated,
		ReservationConflicts: reservationConflicts,
		RestockAlerts:        restockAlerts,
	}
}

// Middleware counts every request by method and response status.
func (m *ServerMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		m.Requests.WithLabelValues(
			r.Method,
			http.StatusText(rec.status),
		).Inc()
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
