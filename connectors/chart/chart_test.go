package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lari-stats/domain/dashboard"
	"lari-stats/domain/failures"
)

func sampleView(t *testing.T) dashboard.View {
	t.Helper()
	grid := failures.Densify([]failures.Record{
		{District: "A", Month: "Enero", FailureType: "X", AffectedCustomers: 4},
		{District: "A", Month: "Enero", FailureType: "Y", AffectedCustomers: 1},
		{District: "B", Month: "Enero", FailureType: "X", AffectedCustomers: 9},
		{District: "C", Month: "Febrero", FailureType: "Y", AffectedCustomers: 2},
	})
	v := dashboard.New(grid, dashboard.DefaultOptions()).Render(dashboard.ByMonth{Month: "Enero"})
	require.True(t, v.HasData())
	return v
}

func TestRenderRanking(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderRanking(&buf, sampleView(t).Most))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, width, img.Bounds().Dx())
	assert.Equal(t, height, img.Bounds().Dy())
}

func TestRenderBreakdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBreakdown(&buf, *sampleView(t).MostBreakdown))
	_, err := png.Decode(&buf)
	assert.NoError(t, err)
}

func TestRender_NoData(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderRanking(&buf, dashboard.Ranking{Title: "vacío"}), ErrNoData)
	assert.ErrorIs(t, RenderBreakdown(&buf, dashboard.Breakdown{Title: "vacío"}), ErrNoData)

	zero := dashboard.Ranking{
		Entries:    []dashboard.RankingEntry{{District: "A"}},
		Categories: []string{"A"},
		Series:     []dashboard.Series{{Name: dashboard.MetricFailures, Values: []float64{0}}},
	}
	assert.ErrorIs(t, RenderRanking(&buf, zero), ErrNoData)

	flat := dashboard.Breakdown{
		Categories: []string{"A"},
		Series:     []dashboard.Series{{Name: "X", Values: []float64{0}}},
	}
	assert.ErrorIs(t, RenderBreakdown(&buf, flat), ErrNoData)
	assert.Zero(t, buf.Len())
}
