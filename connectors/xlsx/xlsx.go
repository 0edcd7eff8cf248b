// Package xlsx reads failure records from the LARI workbook.
package xlsx

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	lo "github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"lari-stats/domain/failures"
)

// DefaultSheet is the sheet holding the failure records.
const DefaultSheet = "1"

// Column headers of the records sheet.
const (
	ColDistrict    = "Distrito"
	ColMonth       = "Mes"
	ColFailureType = "Tipo de Fallas"
	ColCustomers   = "Clientes Afectados"
)

var (
	ErrFileNotFound  = errors.New("workbook not found")
	ErrSheetNotFound = errors.New("sheet not found")
	ErrMissingColumn = errors.New("missing column")
)

// Load opens the workbook at path and returns one RawRecord per non-blank row of sheet.
// An empty sheet name means DefaultSheet.
func Load(path, sheet string) ([]failures.RawRecord, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	if !lo.Contains(f.GetSheetList(), sheet) {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheet, path)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	records, err := parseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	slog.Debug("xlsx.load.done", "path", path, "sheet", sheet, "rows", len(rows), "records", len(records))
	return records, nil
}

func parseRows(rows [][]string) ([]failures.RawRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty sheet", ErrMissingColumn)
	}
	idx := indexMap(rows[0])
	for _, col := range []string{ColDistrict, ColMonth, ColFailureType, ColCustomers} {
		if _, ok := idx[strings.ToLower(col)]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	get := func(row []string, col string) string {
		i := idx[strings.ToLower(col)]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]failures.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if lo.EveryBy(row, func(v string) bool { return strings.TrimSpace(v) == "" }) {
			continue
		}
		out = append(out, failures.RawRecord{
			District:          get(row, ColDistrict),
			MonthCode:         failures.ParseMonthCode(get(row, ColMonth)),
			FailureType:       get(row, ColFailureType),
			AffectedCustomers: parseCustomers(get(row, ColCustomers)),
		})
	}
	return out, nil
}

func indexMap(headers []string) map[string]int {
	m := map[string]int{}
	for i, h := range headers {
		key := strings.TrimSpace(strings.ToLower(h))
		if _, dup := m[key]; !dup {
			m[key] = i
		}
	}
	return m
}

// parseCustomers treats blank and non-numeric cells as zero, the way a column sum skips them.
func parseCustomers(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
