package web

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"lari-stats/connectors/chart"
	"lari-stats/domain/dashboard"
)

// Page holds the presentation settings of the HTML dashboard.
type Page struct {
	Title        string
	Logo         string // data URI, empty for none
	DefaultMonth string
}

type server struct {
	dash    *dashboard.Dashboard
	page    Page
	metrics *metrics
}

// NewServer builds the Echo instance serving the dashboard for dash.
//
// Endpoints:
//
//	GET /                                      -> HTML dashboard
//	GET /api/months                            -> canonical month labels
//	GET /api/failure_types                     -> observed failure types
//	GET /api/summary                           -> grid dimensions and dropped record counts
//	GET /api/views/:tab?value=                 -> View JSON (tab: mes, falla, tendencia)
//	GET /api/views/:tab/charts/:chart?value=   -> PNG (most, least, most_breakdown, least_breakdown)
//	GET /metrics                               -> Prometheus exposition
func NewServer(dash *dashboard.Dashboard, page Page) *echo.Echo {
	s := &server{dash: dash, page: page, metrics: newMetrics()}
	s.metrics.observeGrid(dash.Grid())

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				slog.Warn("web.request.error", "method", v.Method, "uri", v.URI, "status", v.Status, "error", v.Error)
				return nil
			}
			slog.Info("web.request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	// API errors stay JSON; everything else uses Echo's default handler
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var he *echo.HTTPError
		if errors.As(err, &he) && strings.HasPrefix(c.Request().URL.Path, "/api") && !c.Response().Committed {
			_ = c.JSON(he.Code, map[string]any{
				"error":   http.StatusText(he.Code),
				"path":    c.Request().URL.Path,
				"message": he.Message,
			})
			return
		}
		e.DefaultHTTPErrorHandler(err, c)
	}

	e.GET("/", s.index)
	e.GET("/api/months", func(c echo.Context) error {
		return c.JSON(http.StatusOK, s.dash.Months())
	})
	e.GET("/api/failure_types", func(c echo.Context) error {
		return c.JSON(http.StatusOK, s.dash.FailureTypes())
	})
	e.GET("/api/summary", s.summary)
	e.GET("/api/views/:tab", s.view)
	e.GET("/api/views/:tab/charts/:chart", s.chart)
	e.GET("/metrics", s.metrics.handler())
	return e
}

func (s *server) summary(c echo.Context) error {
	g := s.dash.Grid()
	return c.JSON(http.StatusOK, map[string]any{
		"districts":             g.Districts(),
		"failure_types":         g.FailureTypes(),
		"cells":                 g.Len(),
		"unknown_month_records": g.UnknownMonthRecords(),
		"skipped_records":       g.SkippedRecords(),
	})
}

// render parses the request selection and computes its view.
func (s *server) render(c echo.Context) (dashboard.View, error) {
	sel, err := dashboard.ParseSelection(c.Param("tab"), s.selectorValue(c))
	if err != nil {
		return dashboard.View{}, err
	}
	tab := string(sel.Tab())
	start := time.Now()
	v := s.dash.Render(sel)
	s.metrics.viewDuration.WithLabelValues(tab).Observe(time.Since(start).Seconds())
	s.metrics.viewRequests.WithLabelValues(tab).Inc()
	return v, nil
}

// selectorValue falls back to the tab's initial selector value when ?value= is absent.
func (s *server) selectorValue(c echo.Context) string {
	if v, ok := c.QueryParams()["value"]; ok && len(v) > 0 {
		return v[0]
	}
	switch dashboard.Tab(strings.ToLower(c.Param("tab"))) {
	case dashboard.TabMonth:
		return s.page.DefaultMonth
	case dashboard.TabFailureType:
		if types := s.dash.FailureTypes(); len(types) > 0 {
			return types[0]
		}
	}
	return ""
}

func (s *server) view(c echo.Context) error {
	v, err := s.render(c)
	if err != nil {
		return badTab(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (s *server) chart(c echo.Context) error {
	v, err := s.render(c)
	if err != nil {
		return badTab(c, err)
	}
	name := strings.TrimSuffix(c.Param("chart"), ".png")

	var buf bytes.Buffer
	switch name {
	case "most":
		err = chart.RenderRanking(&buf, v.Most)
	case "least":
		if v.Least == nil {
			err = chart.ErrNoData
			break
		}
		err = chart.RenderRanking(&buf, *v.Least)
	case "most_breakdown":
		if v.MostBreakdown == nil {
			err = chart.ErrNoData
			break
		}
		err = chart.RenderBreakdown(&buf, *v.MostBreakdown)
	case "least_breakdown":
		if v.LeastBreakdown == nil {
			err = chart.ErrNoData
			break
		}
		err = chart.RenderBreakdown(&buf, *v.LeastBreakdown)
	default:
		return c.JSON(http.StatusNotFound, map[string]any{
			"error":   "unknown chart",
			"chart":   name,
			"message": "chart must be one of most, least, most_breakdown, least_breakdown",
		})
	}
	if err != nil {
		if errors.Is(err, chart.ErrNoData) {
			msg := v.Message
			if msg == "" {
				msg = "figure has no data"
			}
			return c.JSON(http.StatusNotFound, map[string]any{
				"error":   err.Error(),
				"chart":   name,
				"message": msg,
			})
		}
		slog.Error("web.chart.render.error", "tab", v.Tab, "chart", name, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error":   err.Error(),
			"message": "failed to render chart",
		})
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func badTab(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"error":   err.Error(),
		"message": "tab must be one of mes, falla, tendencia",
	})
}
