package csv

import (
	"lari-stats/domain/dashboard"
)

// Ranking directions.
const (
	DirectionMost  = "most"
	DirectionLeast = "least"
)

// RankingRow is one line of district_ranking.csv.
type RankingRow struct {
	Direction         string  `csv:"direction"`
	Rank              int     `csv:"rank"`
	District          string  `csv:"district"`
	FailureCount      int     `csv:"failure_count"`
	AffectedCustomers float64 `csv:"affected_customers"`
}

// RankingRows flattens a view's most and least rankings. Nil rankings are skipped.
func RankingRows(v dashboard.View) []RankingRow {
	var rows []RankingRow
	add := func(direction string, r *dashboard.Ranking) {
		if r == nil {
			return
		}
		for i, e := range r.Entries {
			rows = append(rows, RankingRow{
				Direction:         direction,
				Rank:              i + 1,
				District:          e.District,
				FailureCount:      e.FailureCount,
				AffectedCustomers: e.AffectedCustomers,
			})
		}
	}
	add(DirectionMost, &v.Most)
	add(DirectionLeast, v.Least)
	return rows
}

// WriteRanking writes the rankings of v.
// Headers: direction, rank, district, failure_count, affected_customers
func WriteRanking(path string, v dashboard.View) error {
	rows := RankingRows(v)
	if rows == nil {
		rows = []RankingRow{}
	}
	return writeFile(path, &rows)
}
