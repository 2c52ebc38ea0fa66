// Package metrics provides Prometheus instrumentation for the trading service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TradesTotal counts executed trades by side.
	TradesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stocktrade_trades_total",
		Help: "Total number of trades executed",
	}, []string{"side"})

	// TradeLatency tracks time spent inside the trade engine, rejected trades included.
	TradeLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stocktrade_trade_latency_seconds",
		Help:    "Trade execution latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"side"})

	// TradeRejections counts trades refused by the engine, by error kind.
	TradeRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stocktrade_trade_rejections_total",
		Help: "Trades rejected by the trade engine",
	}, []string{"side", "reason"})

	// SimulatorTicks counts completed simulator ticks.
	SimulatorTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stocktrade_simulator_ticks_total",
		Help: "Total price simulator ticks",
	})

	// SimulatorFailures counts instruments that failed to update during a tick.
	SimulatorFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stocktrade_simulator_instrument_failures_total",
		Help: "Instrument price updates that failed",
	})

	// SimulatorTickDuration tracks how long one tick takes end to end.
	SimulatorTickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stocktrade_simulator_tick_duration_seconds",
		Help:    "Price simulator tick duration in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})

	// WebSocketClients tracks connected price stream clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stocktrade_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})

	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stocktrade_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stocktrade_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request metrics labelled with the matched route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
