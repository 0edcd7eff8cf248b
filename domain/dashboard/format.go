package dashboard

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatInt renders n with comma thousands separators ("1,234,567").
func FormatInt(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// FormatTotals builds the totals line shown under the charts. Both values are truncated to integers.
func FormatTotals(failures int, customers float64) string {
	return "Total de Fallas: " + FormatInt(int64(failures)) +
		" | Total de Clientes Afectados: " + FormatInt(int64(math.Trunc(customers)))
}
