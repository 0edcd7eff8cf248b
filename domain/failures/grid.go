package failures

import (
	"sort"
	"strings"

	lo "github.com/samber/lo"
)

type cellKey struct {
	district    string
	month       string
	failureType string
}

// Grid is the densified (district × month × failure type) table.
// It is built once by Densify and never mutated afterwards. Accessors return copies.
type Grid struct {
	districts    []string
	failureTypes []string
	cells        []Cell
	index        map[cellKey]int

	unknownMonth int
	skipped      int
}

// Densify groups records by (district, month, failure type) and reindexes the groups
// against every observed district, the twelve calendar months and every observed
// failure type. Combinations without records get a zero cell.
//
// Districts and failure types are collected from all grouped records, including those
// labelled UnknownMonth, but UnknownMonth groups themselves are not part of the grid.
// Records with a blank district or failure type are dropped.
func Densify(records []Record) *Grid {
	kept := lo.Filter(records, func(r Record, _ int) bool {
		return strings.TrimSpace(r.District) != "" && strings.TrimSpace(r.FailureType) != ""
	})

	g := &Grid{skipped: len(records) - len(kept)}

	groups := make(map[cellKey]*Cell, len(kept))
	for _, r := range kept {
		if r.Month == UnknownMonth || !IsMonth(r.Month) {
			g.unknownMonth++
		}
		k := cellKey{district: r.District, month: r.Month, failureType: r.FailureType}
		c, ok := groups[k]
		if !ok {
			c = &Cell{District: r.District, Month: r.Month, FailureType: r.FailureType}
			groups[k] = c
		}
		c.FailureCount++
		c.AffectedCustomers += r.AffectedCustomers
	}

	g.districts = lo.Uniq(lo.Map(kept, func(r Record, _ int) string { return r.District }))
	g.failureTypes = lo.Uniq(lo.Map(kept, func(r Record, _ int) string { return r.FailureType }))
	sort.Strings(g.districts)
	sort.Strings(g.failureTypes)

	g.cells = make([]Cell, 0, len(g.districts)*len(months)*len(g.failureTypes))
	g.index = make(map[cellKey]int, cap(g.cells))
	for _, d := range g.districts {
		for _, m := range months {
			for _, f := range g.failureTypes {
				k := cellKey{district: d, month: m, failureType: f}
				cell := Cell{District: d, Month: m, FailureType: f}
				if agg, ok := groups[k]; ok {
					cell = *agg
				}
				g.index[k] = len(g.cells)
				g.cells = append(g.cells, cell)
			}
		}
	}
	return g
}

// Districts returns the observed districts in sorted order.
func (g *Grid) Districts() []string { return append([]string(nil), g.districts...) }

// FailureTypes returns the observed failure types in sorted order.
func (g *Grid) FailureTypes() []string { return append([]string(nil), g.failureTypes...) }

// Len is the number of cells: districts × 12 × failure types.
func (g *Grid) Len() int { return len(g.cells) }

// Cells returns a copy of every cell, district-major then calendar month then failure type.
func (g *Grid) Cells() []Cell { return append([]Cell(nil), g.cells...) }

// Cell looks up a single cell.
func (g *Grid) Cell(district, month, failureType string) (Cell, bool) {
	i, ok := g.index[cellKey{district: district, month: month, failureType: failureType}]
	if !ok {
		return Cell{}, false
	}
	return g.cells[i], true
}

// Select returns, in grid order, a fresh slice of the cells matching keep.
func (g *Grid) Select(keep func(Cell) bool) []Cell {
	return lo.Filter(g.cells, func(c Cell, _ int) bool { return keep(c) })
}

// TotalFailures sums failure counts over the whole grid.
func (g *Grid) TotalFailures() int {
	return lo.SumBy(g.cells, func(c Cell) int { return c.FailureCount })
}

// UnknownMonthRecords counts records that were grouped under UnknownMonth and
// therefore have no cell in the grid.
func (g *Grid) UnknownMonthRecords() int { return g.unknownMonth }

// SkippedRecords counts records dropped for a blank district or failure type.
func (g *Grid) SkippedRecords() int { return g.skipped }
