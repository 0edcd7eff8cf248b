package dashboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lari-stats/domain/dashboard"
	"lari-stats/domain/failures"
)

func rec(district string, month float64, failureType string, customers float64, times int) []failures.RawRecord {
	out := make([]failures.RawRecord, 0, times)
	for i := 0; i < times; i++ {
		m := month
		out = append(out, failures.RawRecord{District: district, MonthCode: &m, FailureType: failureType, AffectedCustomers: customers})
	}
	return out
}

// fixture: seven districts, two failure types, data in Enero and Febrero only.
func fixture(t *testing.T) *dashboard.Dashboard {
	t.Helper()
	var raw []failures.RawRecord
	raw = append(raw, rec("A", 1, "X", 750, 2)...)
	raw = append(raw, rec("B", 1, "Y", 1, 1)...)
	raw = append(raw, rec("C", 1, "X", 10, 4)...)
	raw = append(raw, rec("D", 2, "Y", 0, 0)...)
	raw = append(raw, rec("E", 1, "X", 1, 1)...)
	raw = append(raw, rec("E", 1, "Y", 1, 1)...)
	raw = append(raw, rec("F", 1, "Y", 2, 2)...)
	raw = append(raw, rec("G", 1, "X", 3, 1)...)
	raw = append(raw, rec("B", 2, "X", 5, 3)...)
	raw = append(raw, failures.RawRecord{District: "D", FailureType: "Y", AffectedCustomers: 9}) // unknown month
	g := failures.Densify(failures.Normalize(raw))
	require.Equal(t, 7*12*2, g.Len())
	return dashboard.New(g, dashboard.DefaultOptions())
}

func districts(entries []dashboard.RankingEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.District
	}
	return out
}

func ip(v int) *int { return &v }

func TestRender_ByMonth(t *testing.T) {
	d := fixture(t)
	v := d.Render(dashboard.ByMonth{Month: "Enero"})

	require.True(t, v.HasData())
	assert.Equal(t, dashboard.TabMonth, v.Tab)
	assert.Equal(t, "Enero", v.Selection)

	t.Run("heatmap drops empty rows and columns", func(t *testing.T) {
		h := v.Heatmap
		assert.Equal(t, "Mapa de Calor de Fallas - Enero", h.Title)
		assert.Equal(t, []string{"X", "Y"}, h.Rows)
		assert.Equal(t, []string{"A", "B", "C", "E", "F", "G"}, h.Columns)
		assert.Equal(t, []*int{ip(2), nil, ip(4), ip(1), nil, ip(1)}, h.Values[0])
		assert.Equal(t, []*int{nil, ip(1), nil, ip(1), ip(2), nil}, h.Values[1])
		assert.Empty(t, h.Annotations)
	})

	t.Run("most ranking is stable on ties", func(t *testing.T) {
		assert.Equal(t, []string{"C", "A", "E", "F", "B"}, districts(v.Most.Entries))
		assert.Equal(t, []string{"C", "A", "E", "F", "B"}, v.Most.Categories)
		require.Len(t, v.Most.Series, 2)
		assert.Equal(t, dashboard.MetricFailures, v.Most.Series[0].Name)
		assert.Equal(t, []float64{4, 2, 2, 2, 1}, v.Most.Series[0].Values)
		assert.Equal(t, dashboard.MetricCustomers, v.Most.Series[1].Name)
		assert.Equal(t, []float64{40, 1500, 2, 4, 1}, v.Most.Series[1].Values)
		assert.Equal(t, "#FBB03B", v.Most.Series[0].Color)
		assert.Equal(t, "#78BE20", v.Most.Series[1].Color)
	})

	t.Run("least ranking is computed independently", func(t *testing.T) {
		require.NotNil(t, v.Least)
		assert.Equal(t, []string{"D", "B", "G", "A", "E"}, districts(v.Least.Entries))
		assert.Equal(t, 0, v.Least.Entries[0].FailureCount)
	})

	t.Run("breakdowns stack by failure type", func(t *testing.T) {
		require.NotNil(t, v.MostBreakdown)
		assert.Equal(t, []string{"C", "A", "E", "F", "B"}, v.MostBreakdown.Categories)
		require.Len(t, v.MostBreakdown.Series, 2)
		assert.Equal(t, "X", v.MostBreakdown.Series[0].Name)
		assert.Equal(t, []float64{4, 2, 1, 0, 0}, v.MostBreakdown.Series[0].Values)
		assert.Equal(t, "Y", v.MostBreakdown.Series[1].Name)
		assert.Equal(t, []float64{0, 0, 1, 2, 1}, v.MostBreakdown.Series[1].Values)

		require.NotNil(t, v.LeastBreakdown)
		assert.Equal(t, []string{"D", "B", "G", "A", "E"}, v.LeastBreakdown.Categories)
	})

	t.Run("totals", func(t *testing.T) {
		assert.Equal(t, 12, v.Totals.Failures)
		assert.Equal(t, 1550.0, v.Totals.AffectedCustomers)
		assert.Equal(t, "Total de Fallas: 12 | Total de Clientes Afectados: 1,550", v.Totals.Text)
	})
}

func TestRender_ByMonthWithoutData(t *testing.T) {
	d := fixture(t)
	for _, month := range []string{"Marzo", "", "Desconocido", "march"} {
		v := d.Render(dashboard.ByMonth{Month: month})
		assert.False(t, v.HasData(), month)
		assert.Equal(t, dashboard.NoDataMonth, v.Message)
		assert.Empty(t, v.Heatmap.Rows)
		assert.Empty(t, v.Heatmap.Values)
		assert.True(t, v.Most.Empty())
		require.NotNil(t, v.Least)
		assert.True(t, v.Least.Empty())
		require.NotNil(t, v.MostBreakdown)
		assert.True(t, v.MostBreakdown.Empty())
		require.NotNil(t, v.LeastBreakdown)
		assert.True(t, v.LeastBreakdown.Empty())
		assert.Equal(t, 0, v.Totals.Failures)
	}
}

func TestRender_ByFailureType(t *testing.T) {
	d := fixture(t)
	v := d.Render(dashboard.ByFailureType{FailureType: "X"})
	require.True(t, v.HasData())

	h := v.Heatmap
	require.Len(t, h.Rows, 13)
	assert.Equal(t, dashboard.TotalRow, h.Rows[0])
	assert.Equal(t, failures.Months(), h.Rows[1:])
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G"}, h.Columns)

	for _, val := range h.Values[0] {
		assert.Nil(t, val, "TOTAL row is never shaded")
	}
	assert.Equal(t, []*int{ip(2), nil, ip(4), nil, ip(1), nil, ip(1)}, h.Values[1])
	assert.Equal(t, []*int{nil, ip(3), nil, nil, nil, nil, nil}, h.Values[2])
	for _, row := range h.Values[3:] {
		assert.Equal(t, make([]*int, 7), row)
	}

	texts := make([]string, 0, len(h.Annotations))
	for _, a := range h.Annotations {
		assert.Equal(t, 0, a.Row)
		texts = append(texts, a.Text)
	}
	assert.Equal(t, []string{"2", "3", "4", "0", "1", "0", "1"}, texts)

	assert.Equal(t, []string{"C", "B", "A", "E", "G"}, districts(v.Most.Entries))
	assert.Equal(t, "Top 5 Distritos - Falla: X", v.Most.Title)
	assert.Nil(t, v.Least)
	assert.Nil(t, v.MostBreakdown)
	assert.Nil(t, v.LeastBreakdown)
	assert.Equal(t, 11, v.Totals.Failures)
}

func TestRender_ByFailureTypeWithoutData(t *testing.T) {
	d := fixture(t)
	for _, ft := range []string{"", "Z"} {
		v := d.Render(dashboard.ByFailureType{FailureType: ft})
		assert.Equal(t, dashboard.NoDataFailureType, v.Message)
		assert.Empty(t, v.Heatmap.Rows)
		assert.True(t, v.Most.Empty())
		assert.Nil(t, v.Least)
	}
}

func TestRender_Trend(t *testing.T) {
	d := fixture(t)
	v := d.Render(dashboard.Trend{})
	require.True(t, v.HasData())

	// sums over every month
	assert.Equal(t, []string{"X", "Y"}, v.Heatmap.Rows)
	assert.Equal(t, []string{"A", "B", "C", "E", "F", "G"}, v.Heatmap.Columns)
	assert.Equal(t, []*int{ip(2), ip(3), ip(4), ip(1), nil, ip(1)}, v.Heatmap.Values[0])

	assert.Equal(t, []string{"B", "C", "A", "E", "F"}, districts(v.Most.Entries))
	assert.Equal(t, []string{"D", "G", "A", "E", "F"}, districts(v.Least.Entries))
	assert.Equal(t, 15, v.Totals.Failures)
	assert.Equal(t, "Top 5 Distritos con Más Fallas (Total)", v.Most.Title)
}

func TestRender_TrendOnEmptyGrid(t *testing.T) {
	d := dashboard.New(failures.Densify(nil), dashboard.Options{})
	v := d.Render(dashboard.Trend{})
	assert.Equal(t, dashboard.NoDataTrend, v.Message)
	assert.Equal(t, 5, d.Options().TopN)
}

func TestRender_RankingSizeBound(t *testing.T) {
	d := fixture(t)
	for _, sel := range []dashboard.Selection{
		dashboard.ByMonth{Month: "Enero"},
		dashboard.ByMonth{Month: "Febrero"},
		dashboard.ByFailureType{FailureType: "Y"},
		dashboard.Trend{},
	} {
		v := d.Render(sel)
		assert.LessOrEqual(t, len(v.Most.Entries), 5)
		for i := 1; i < len(v.Most.Entries); i++ {
			assert.GreaterOrEqual(t, v.Most.Entries[i-1].FailureCount, v.Most.Entries[i].FailureCount)
		}
		if v.Least != nil {
			assert.LessOrEqual(t, len(v.Least.Entries), 5)
			for i := 1; i < len(v.Least.Entries); i++ {
				assert.LessOrEqual(t, v.Least.Entries[i-1].FailureCount, v.Least.Entries[i].FailureCount)
			}
		}
	}
}

func TestRender_Idempotent(t *testing.T) {
	d := fixture(t)
	for _, sel := range []dashboard.Selection{
		dashboard.ByMonth{Month: "Enero"},
		dashboard.ByFailureType{FailureType: "X"},
		dashboard.Trend{},
	} {
		assert.Equal(t, d.Render(sel), d.Render(sel))
	}
}

func TestRender_TopNOption(t *testing.T) {
	d := fixture(t)
	d3 := dashboard.New(d.Grid(), dashboard.Options{TopN: 3})
	v := d3.Render(dashboard.ByMonth{Month: "Enero"})
	assert.Equal(t, []string{"C", "A", "E"}, districts(v.Most.Entries))
	assert.Equal(t, "Top 3 Distritos con Más Fallas - Enero", v.Most.Title)
}
