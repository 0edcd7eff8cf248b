package web

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lari-stats/domain/failures"
)

type metrics struct {
	registry     *prometheus.Registry
	viewRequests *prometheus.CounterVec
	viewDuration *prometheus.HistogramVec
	gridCells    prometheus.Gauge
	unknownMonth prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		viewRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lari_view_requests_total",
			Help: "Dashboard views computed, by tab.",
		}, []string{"tab"}),
		viewDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lari_view_duration_seconds",
			Help:    "Time spent computing a dashboard view, by tab.",
			Buckets: prometheus.DefBuckets,
		}, []string{"tab"}),
		gridCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lari_grid_cells",
			Help: "Cells in the densified district x month x failure type grid.",
		}),
		unknownMonth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lari_unknown_month_records",
			Help: "Records whose month code could not be mapped to a calendar month.",
		}),
	}
	m.registry.MustRegister(m.viewRequests, m.viewDuration, m.gridCells, m.unknownMonth)
	return m
}

func (m *metrics) observeGrid(g *failures.Grid) {
	m.gridCells.Set(float64(g.Len()))
	m.unknownMonth.Set(float64(g.UnknownMonthRecords()))
}

func (m *metrics) handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
