// Package metrics exposes request and marketplace counters in the Prometheus format.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"unisell/internal/domain/service"
)

const namespace = "unisell"

type Metrics struct {
	gatherer prometheus.Gatherer

	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	bidEvents *prometheus.CounterVec
}

// New registers every collector on reg. Tests pass a fresh prometheus.NewRegistry.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		bidEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bid_events_total",
			Help:      "Bids placed and accepted.",
		}, []string{"type"}),
	}
}

// Middleware records one sample per request, labelled by the matched route path.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			m.requests.WithLabelValues(route, method, status).Inc()
			m.durations.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// CountingNotifier counts bid events before handing them to the next notifier.
type CountingNotifier struct {
	next    service.BidNotifier
	metrics *Metrics
}

func (m *Metrics) WrapNotifier(next service.BidNotifier) *CountingNotifier {
	if next == nil {
		next = service.NopBidNotifier{}
	}
	return &CountingNotifier{next: next, metrics: m}
}

func (n *CountingNotifier) NotifyUser(ctx context.Context, userID string, event service.BidEvent) {
	n.metrics.bidEvents.WithLabelValues(event.Type).Inc()
	n.next.NotifyUser(ctx, userID, event)
}
