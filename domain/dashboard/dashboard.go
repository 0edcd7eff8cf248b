// Package dashboard turns a densified failure grid into the figures of the three
// dashboard tabs. Every view is a pure function of the selection and the grid.
package dashboard

import (
	"fmt"

	"lari-stats/domain/failures"
)

// No-data messages, one per tab.
const (
	NoDataMonth       = "No hay datos para este mes"
	NoDataFailureType = "No hay datos para este tipo de falla"
	NoDataTrend       = "No hay datos"
)

// Palette holds the corporate colours used by the figures.
type Palette struct {
	Azul    string `json:"azul"`
	Naranja string `json:"naranja"`
	Verde   string `json:"verde"`
}

// Options tunes view construction.
type Options struct {
	TopN    int
	Palette Palette
}

func DefaultOptions() Options {
	return Options{
		TopN:    5,
		Palette: Palette{Azul: "#2B3990", Naranja: "#FBB03B", Verde: "#78BE20"},
	}
}

// View is everything one tab shows for one selection. Figures that the tab does not
// have are nil; figures without data are empty placeholders.
type View struct {
	Tab            Tab        `json:"tab"`
	Selection      string     `json:"selection,omitempty"`
	Heatmap        Heatmap    `json:"heatmap"`
	Most           Ranking    `json:"most"`
	MostBreakdown  *Breakdown `json:"most_breakdown,omitempty"`
	Least          *Ranking   `json:"least,omitempty"`
	LeastBreakdown *Breakdown `json:"least_breakdown,omitempty"`
	Totals         Totals     `json:"totals"`
	Message        string     `json:"message,omitempty"`
}

// HasData reports whether the view was computed from a non-empty selection.
func (v View) HasData() bool { return v.Message == "" }

// Dashboard is the read-only context every view is computed from.
type Dashboard struct {
	grid *failures.Grid
	opts Options
}

// New wraps a grid. A non-positive TopN falls back to 5.
func New(grid *failures.Grid, opts Options) *Dashboard {
	if opts.TopN <= 0 {
		opts.TopN = DefaultOptions().TopN
	}
	if opts.Palette == (Palette{}) {
		opts.Palette = DefaultOptions().Palette
	}
	return &Dashboard{grid: grid, opts: opts}
}

func (d *Dashboard) Grid() *failures.Grid { return d.grid }

func (d *Dashboard) Options() Options { return d.opts }

// Months lists the by-month selector options.
func (d *Dashboard) Months() []string { return failures.Months() }

// FailureTypes lists the by-failure-type selector options.
func (d *Dashboard) FailureTypes() []string { return d.grid.FailureTypes() }

// Render computes the view for sel.
func (d *Dashboard) Render(sel Selection) View {
	switch s := sel.(type) {
	case ByMonth:
		return d.byMonth(s)
	case ByFailureType:
		return d.byFailureType(s)
	case Trend:
		return d.trend()
	}
	panic(fmt.Sprintf("dashboard: unhandled selection %T", sel))
}

func (d *Dashboard) byMonth(s ByMonth) View {
	n := d.opts.TopN
	titles := sixTitles{
		heatmap:        "Mapa de Calor de Fallas - " + s.Month,
		most:           fmt.Sprintf("Top %d Distritos con Más Fallas - %s", n, s.Month),
		mostBreakdown:  fmt.Sprintf("Tipos de Fallas (Top %d con Más Fallas) - %s", n, s.Month),
		least:          fmt.Sprintf("Top %d Distritos con Menos Fallas - %s", n, s.Month),
		leastBreakdown: fmt.Sprintf("Tipos de Fallas (Top %d con Menos Fallas) - %s", n, s.Month),
	}
	var cells []failures.Cell
	if failures.IsMonth(s.Month) {
		cells = d.grid.Select(func(c failures.Cell) bool { return c.Month == s.Month })
	}
	return d.sixFigures(TabMonth, s.Month, titles, cells, NoDataMonth)
}

func (d *Dashboard) trend() View {
	n := d.opts.TopN
	titles := sixTitles{
		heatmap:        "Mapa de Calor Total de Fallas (Distrito vs. Tipo de Falla)",
		most:           fmt.Sprintf("Top %d Distritos con Más Fallas (Total)", n),
		mostBreakdown:  fmt.Sprintf("Tipos de Fallas en Top %d con Más Fallas (Total)", n),
		least:          fmt.Sprintf("Top %d Distritos con Menos Fallas (Total)", n),
		leastBreakdown: fmt.Sprintf("Tipos de Fallas en Top %d con Menos Fallas (Total)", n),
	}
	return d.sixFigures(TabTrend, "", titles, d.grid.Cells(), NoDataTrend)
}

type sixTitles struct {
	heatmap, most, mostBreakdown, least, leastBreakdown string
}

// sixFigures builds the heatmap, both rankings with their breakdowns and the totals
// shared by the by-month and trend tabs.
func (d *Dashboard) sixFigures(tab Tab, selection string, t sixTitles, cells []failures.Cell, noData string) View {
	v := View{Tab: tab, Selection: selection}
	totals := totalsOf(cells)
	if totals.Failures == 0 {
		mb, l, lb := emptyBreakdown(t.mostBreakdown), emptyRanking(t.least), emptyBreakdown(t.leastBreakdown)
		v.Heatmap = emptyHeatmap(t.heatmap)
		v.Most = emptyRanking(t.most)
		v.MostBreakdown, v.Least, v.LeastBreakdown = &mb, &l, &lb
		v.Message = noData
		return v
	}

	districts, failureTypes := d.grid.Districts(), d.grid.FailureTypes()
	v.Heatmap = pivotHeatmap(t.heatmap, cells, failureTypes, districts,
		func(c failures.Cell) string { return c.FailureType },
		func(c failures.Cell) string { return c.District },
		true)

	byDistrict := districtTotals(cells)
	most := topN(byDistrict, d.opts.TopN, true)
	least := topN(byDistrict, d.opts.TopN, false)

	v.Most = newRanking(t.most, most, d.opts.Palette)
	mb := newBreakdown(t.mostBreakdown, cells, most, failureTypes)
	l := newRanking(t.least, least, d.opts.Palette)
	lb := newBreakdown(t.leastBreakdown, cells, least, failureTypes)
	v.MostBreakdown, v.Least, v.LeastBreakdown = &mb, &l, &lb
	v.Totals = totals
	return v
}

func (d *Dashboard) byFailureType(s ByFailureType) View {
	v := View{Tab: TabFailureType, Selection: s.FailureType}
	heatmapTitle := "Mapa de Calor de Fallas - " + s.FailureType
	rankingTitle := fmt.Sprintf("Top %d Distritos - Falla: %s", d.opts.TopN, s.FailureType)

	var cells []failures.Cell
	if s.FailureType != "" {
		cells = d.grid.Select(func(c failures.Cell) bool { return c.FailureType == s.FailureType })
	}
	totals := totalsOf(cells)
	if totals.Failures == 0 {
		v.Heatmap = emptyHeatmap(heatmapTitle)
		v.Most = emptyRanking(rankingTitle)
		v.Message = NoDataFailureType
		return v
	}

	districts := d.grid.Districts()
	h := pivotHeatmap(heatmapTitle, cells, failures.Months(), districts,
		func(c failures.Cell) string { return c.Month },
		func(c failures.Cell) string { return c.District },
		false)

	// TOTAL goes first with no values so it stays uncoloured; its sums are annotations.
	colSums := make([]int, len(h.Columns))
	for _, row := range h.Values {
		for k, val := range row {
			if val != nil {
				colSums[k] += *val
			}
		}
	}
	h.Rows = append([]string{TotalRow}, h.Rows...)
	h.Values = append([][]*int{make([]*int, len(h.Columns))}, h.Values...)
	for k, sum := range colSums {
		h.Annotations = append(h.Annotations, Annotation{Row: 0, Column: k, Text: FormatInt(int64(sum))})
	}
	v.Heatmap = h

	v.Most = newRanking(rankingTitle, topN(districtTotals(cells), d.opts.TopN, true), d.opts.Palette)
	v.Totals = totals
	return v
}
