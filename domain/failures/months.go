package failures

import (
	"math"
	"strconv"
	"strings"
)

// UnknownMonth labels records whose month code is blank, non-numeric or outside 1..12.
const UnknownMonth = "Desconocido"

var months = [12]string{
	"Enero", "Febrero", "Marzo", "Abril",
	"Mayo", "Junio", "Julio", "Agosto",
	"Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Months returns the canonical month labels in calendar order.
func Months() []string {
	out := make([]string, len(months))
	copy(out, months[:])
	return out
}

// MonthIndex returns the calendar position (0 for Enero) of a label, or -1.
func MonthIndex(label string) int {
	for i, m := range months {
		if m == label {
			return i
		}
	}
	return -1
}

// IsMonth reports whether label is one of the twelve calendar labels.
func IsMonth(label string) bool { return MonthIndex(label) >= 0 }

// ParseMonthCode reads a raw spreadsheet value. Blank and non-numeric values yield nil.
func ParseMonthCode(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// NormalizeMonth maps a month code to its label. Only integral codes 1..12 map to a calendar month.
func NormalizeMonth(code *float64) string {
	if code == nil {
		return UnknownMonth
	}
	v := *code
	if v != math.Trunc(v) || v < 1 || v > 12 {
		return UnknownMonth
	}
	return months[int(v)-1]
}
