package dashboard

import (
	"sort"

	lo "github.com/samber/lo"

	"lari-stats/domain/failures"
)

// Series names of the grouped ranking bars.
const (
	MetricFailures  = "Cantidad_Fallas"
	MetricCustomers = "Clientes_Afectados"
)

// TotalRow is the synthetic first row of the failure-type heatmap.
const TotalRow = "TOTAL"

// Heatmap is a matrix of failure counts. A nil value means "no data" and is not colour-shaded.
type Heatmap struct {
	Title       string       `json:"title"`
	Rows        []string     `json:"rows"`
	Columns     []string     `json:"columns"`
	Values      [][]*int     `json:"values"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Annotation is text drawn on a heatmap cell regardless of its value.
type Annotation struct {
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Text   string `json:"text"`
}

// RankingEntry is one district with its totals over the selected cells.
type RankingEntry struct {
	District          string  `json:"district"`
	FailureCount      int     `json:"failure_count"`
	AffectedCustomers float64 `json:"affected_customers"`
}

// Series is one coloured bar series over a figure's categories.
type Series struct {
	Name   string    `json:"name"`
	Color  string    `json:"color,omitempty"`
	Values []float64 `json:"values"`
}

// Ranking is a top-N list, also laid out as two grouped bar series per district.
type Ranking struct {
	Title      string         `json:"title"`
	Entries    []RankingEntry `json:"entries"`
	Categories []string       `json:"categories"`
	Series     []Series       `json:"series"`
}

// Breakdown stacks failure counts by failure type for a set of districts.
type Breakdown struct {
	Title      string   `json:"title"`
	Categories []string `json:"categories"`
	Series     []Series `json:"series"`
}

// Totals sums the selected cells.
type Totals struct {
	Failures          int     `json:"failures"`
	AffectedCustomers float64 `json:"affected_customers"`
	Text              string  `json:"text"`
}

// breakdownColors cycles over failure types in stacked charts.
var breakdownColors = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

func emptyHeatmap(title string) Heatmap {
	return Heatmap{Title: title, Rows: []string{}, Columns: []string{}, Values: [][]*int{}}
}

func emptyRanking(title string) Ranking {
	return Ranking{Title: title, Entries: []RankingEntry{}, Categories: []string{}, Series: []Series{}}
}

func emptyBreakdown(title string) Breakdown {
	return Breakdown{Title: title, Categories: []string{}, Series: []Series{}}
}

// Empty reports whether the ranking has nothing to draw.
func (r Ranking) Empty() bool { return len(r.Entries) == 0 }

// Empty reports whether the breakdown has nothing to draw.
func (b Breakdown) Empty() bool { return len(b.Series) == 0 || len(b.Categories) == 0 }

func nonZero(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

// pivotHeatmap sums failure counts of cells into rows × columns. Zero sums become nil.
// With dropEmpty, rows and columns holding only nil values are removed.
func pivotHeatmap(title string, cells []failures.Cell, rows, cols []string, rowOf, colOf func(failures.Cell) string, dropEmpty bool) Heatmap {
	rowIdx := lo.SliceToMap(lo.Range(len(rows)), func(i int) (string, int) { return rows[i], i })
	colIdx := lo.SliceToMap(lo.Range(len(cols)), func(i int) (string, int) { return cols[i], i })

	sums := make([][]int, len(rows))
	for i := range sums {
		sums[i] = make([]int, len(cols))
	}
	for _, c := range cells {
		r, okR := rowIdx[rowOf(c)]
		k, okC := colIdx[colOf(c)]
		if okR && okC {
			sums[r][k] += c.FailureCount
		}
	}

	keepRows := lo.Range(len(rows))
	keepCols := lo.Range(len(cols))
	if dropEmpty {
		keepRows = lo.Filter(keepRows, func(r int, _ int) bool {
			return lo.SomeBy(sums[r], func(v int) bool { return v != 0 })
		})
		keepCols = lo.Filter(keepCols, func(k int, _ int) bool {
			return lo.SomeBy(sums, func(row []int) bool { return row[k] != 0 })
		})
	}

	h := Heatmap{
		Title:   title,
		Rows:    lo.Map(keepRows, func(r int, _ int) string { return rows[r] }),
		Columns: lo.Map(keepCols, func(k int, _ int) string { return cols[k] }),
	}
	h.Values = lo.Map(keepRows, func(r int, _ int) []*int {
		return lo.Map(keepCols, func(k int, _ int) *int { return nonZero(sums[r][k]) })
	})
	return h
}

// districtTotals sums cells per district, in order of first appearance.
func districtTotals(cells []failures.Cell) []RankingEntry {
	var order []string
	byDistrict := map[string]*RankingEntry{}
	for _, c := range cells {
		e, ok := byDistrict[c.District]
		if !ok {
			e = &RankingEntry{District: c.District}
			byDistrict[c.District] = e
			order = append(order, c.District)
		}
		e.FailureCount += c.FailureCount
		e.AffectedCustomers += c.AffectedCustomers
	}
	return lo.Map(order, func(d string, _ int) RankingEntry { return *byDistrict[d] })
}

// topN stable-sorts a copy of entries by failure count and keeps the first n.
// Ties keep their input order.
func topN(entries []RankingEntry, n int, descending bool) []RankingEntry {
	out := append([]RankingEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return out[i].FailureCount > out[j].FailureCount
		}
		return out[i].FailureCount < out[j].FailureCount
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func newRanking(title string, entries []RankingEntry, p Palette) Ranking {
	if len(entries) == 0 {
		return emptyRanking(title)
	}
	return Ranking{
		Title:      title,
		Entries:    entries,
		Categories: lo.Map(entries, func(e RankingEntry, _ int) string { return e.District }),
		Series: []Series{
			{
				Name:   MetricFailures,
				Color:  p.Naranja,
				Values: lo.Map(entries, func(e RankingEntry, _ int) float64 { return float64(e.FailureCount) }),
			},
			{
				Name:   MetricCustomers,
				Color:  p.Verde,
				Values: lo.Map(entries, func(e RankingEntry, _ int) float64 { return e.AffectedCustomers }),
			},
		},
	}
}

// newBreakdown stacks the failure counts of the ranked districts by failure type.
// Failure types with no failures among those districts are left out.
func newBreakdown(title string, cells []failures.Cell, ranked []RankingEntry, failureTypes []string) Breakdown {
	districts := lo.Map(ranked, func(e RankingEntry, _ int) string { return e.District })
	if len(districts) == 0 {
		return emptyBreakdown(title)
	}
	pos := lo.SliceToMap(lo.Range(len(districts)), func(i int) (string, int) { return districts[i], i })

	byType := map[string][]float64{}
	for _, c := range cells {
		i, ok := pos[c.District]
		if !ok {
			continue
		}
		vals, ok := byType[c.FailureType]
		if !ok {
			vals = make([]float64, len(districts))
			byType[c.FailureType] = vals
		}
		vals[i] += float64(c.FailureCount)
	}

	b := Breakdown{Title: title, Categories: districts, Series: []Series{}}
	for i, ft := range failureTypes {
		vals, ok := byType[ft]
		if !ok || !lo.SomeBy(vals, func(v float64) bool { return v != 0 }) {
			continue
		}
		b.Series = append(b.Series, Series{
			Name:   ft,
			Color:  breakdownColors[i%len(breakdownColors)],
			Values: vals,
		})
	}
	return b
}

func totalsOf(cells []failures.Cell) Totals {
	t := Totals{
		Failures:          lo.SumBy(cells, func(c failures.Cell) int { return c.FailureCount }),
		AffectedCustomers: lo.SumBy(cells, func(c failures.Cell) float64 { return c.AffectedCustomers }),
	}
	t.Text = FormatTotals(t.Failures, t.AffectedCustomers)
	return t
}
