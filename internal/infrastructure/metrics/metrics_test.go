package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unisell/internal/domain/service"
)

type countingSink struct{ calls int }

func (s *countingSink) NotifyUser(context.Context, string, service.BidEvent) { s.calls++ }

func TestMiddlewareCountsRequestsByRoute(t *testing.T) {
	m := New(prometheus.NewRegistry())
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/v1/items/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/items/abc", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/v1/items/:id", "GET", "204")))
}

func TestWrapNotifierCountsAndForwards(t *testing.T) {
	m := New(prometheus.NewRegistry())
	sink := &countingSink{}
	n := m.WrapNotifier(sink)

	n.NotifyUser(context.Background(), "u1", service.BidEvent{Type: service.BidEventPlaced})
	n.NotifyUser(context.Background(), "u1", service.BidEvent{Type: service.BidEventAccepted})
	n.NotifyUser(context.Background(), "u2", service.BidEvent{Type: service.BidEventPlaced})

	assert.Equal(t, 3, sink.calls)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bidEvents.WithLabelValues(service.BidEventPlaced)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bidEvents.WithLabelValues(service.BidEventAccepted)))
}

func TestHandlerServesExposition(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.WrapNotifier(nil).NotifyUser(context.Background(), "u1", service.BidEvent{Type: service.BidEventPlaced})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "unisell_bid_events_total"))
}
