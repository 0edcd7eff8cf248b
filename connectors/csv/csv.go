package csv

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"lari-stats/domain/failures"
)

// File names written by WriteAll.
const (
	RecordsFile = "failure_record.csv"
	GridFile    = "failure_grid.csv"
	RankingFile = "district_ranking.csv"
)

// WriteRecords writes normalized records to path.
// Headers: district, month, failure_type, affected_customers
func WriteRecords(path string, records []failures.Record) error {
	return writeFile(path, &records)
}

// ReadRecords reads a file previously written by WriteRecords.
func ReadRecords(path string) ([]failures.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []failures.Record
	if err := gocsv.UnmarshalFile(f, &out); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return out, nil
}

// WriteGrid writes every cell of the dense grid, in grid order.
// Headers: district, month, failure_type, failure_count, affected_customers
func WriteGrid(path string, grid *failures.Grid) error {
	cells := grid.Cells()
	return writeFile(path, &cells)
}

func writeFile(path string, rows any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gocsv.MarshalFile(rows, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
