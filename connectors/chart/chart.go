// Package chart renders dashboard figures as PNG images.
package chart

import (
	"errors"
	"io"
	"strings"

	lo "github.com/samber/lo"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"lari-stats/domain/dashboard"
)

// ErrNoData is returned for figures with nothing to draw.
var ErrNoData = errors.New("no data to draw")

const (
	width  = 1024
	height = 512
)

// RenderRanking draws the failure-count series of r as a bar per district.
func RenderRanking(w io.Writer, r dashboard.Ranking) error {
	if r.Empty() || len(r.Series) == 0 {
		return ErrNoData
	}
	s := r.Series[0]
	top := lo.Max(s.Values)
	if top <= 0 {
		return ErrNoData
	}
	fill := color(s.Color)
	bars := make([]gochart.Value, 0, len(r.Categories))
	for i, district := range r.Categories {
		bars = append(bars, gochart.Value{
			Label: district,
			Value: s.Values[i],
			Style: gochart.Style{FillColor: fill, StrokeColor: fill},
		})
	}
	ch := gochart.BarChart{
		Title:      r.Title,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      width,
		Height:     height,
		BarWidth:   60,
		YAxis:      gochart.YAxis{Range: &gochart.ContinuousRange{Min: 0, Max: top}},
		Bars:       bars,
	}
	return ch.Render(gochart.PNG, w)
}

// RenderBreakdown draws b as one stacked bar per district. Districts without failures
// have no segments and are left out of the image.
func RenderBreakdown(w io.Writer, b dashboard.Breakdown) error {
	if b.Empty() {
		return ErrNoData
	}
	var bars []gochart.StackedBar
	for i, district := range b.Categories {
		var values []gochart.Value
		for _, s := range b.Series {
			if s.Values[i] <= 0 {
				continue
			}
			fill := color(s.Color)
			values = append(values, gochart.Value{
				Label: s.Name,
				Value: s.Values[i],
				Style: gochart.Style{FillColor: fill, StrokeColor: fill},
			})
		}
		if len(values) == 0 {
			continue
		}
		bars = append(bars, gochart.StackedBar{Name: district, Values: values})
	}
	if len(bars) == 0 {
		return ErrNoData
	}
	ch := gochart.StackedBarChart{
		Title:      b.Title,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      width,
		Height:     height,
		BarSpacing: 40,
		Bars:       bars,
	}
	return ch.Render(gochart.PNG, w)
}

func color(hex string) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if hex == "" {
		return gochart.ColorBlue
	}
	return drawing.ColorFromHex(hex)
}
