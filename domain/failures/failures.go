package failures

// RawRecord is one row of the input sheet (Distrito, Mes, Tipo de Fallas, Clientes Afectados).
type RawRecord struct {
	District          string
	MonthCode         *float64 // nil when blank or non-numeric
	FailureType       string
	AffectedCustomers float64
}

// Record is a RawRecord with its month code replaced by a canonical label.
type Record struct {
	District          string  `csv:"district"`
	Month             string  `csv:"month"`
	FailureType       string  `csv:"failure_type"`
	AffectedCustomers float64 `csv:"affected_customers"`
}

// Cell is the aggregate of all records sharing (district, month, failure type).
type Cell struct {
	District          string  `json:"district" csv:"district"`
	Month             string  `json:"month" csv:"month"`
	FailureType       string  `json:"failure_type" csv:"failure_type"`
	FailureCount      int     `json:"failure_count" csv:"failure_count"`
	AffectedCustomers float64 `json:"affected_customers" csv:"affected_customers"`
}

// Normalize applies NormalizeMonth to every raw record.
func Normalize(raw []RawRecord) []Record {
	out := make([]Record, 0, len(raw))
	for _, r := range raw {
		out = append(out, Record{
			District:          r.District,
			Month:             NormalizeMonth(r.MonthCode),
			FailureType:       r.FailureType,
			AffectedCustomers: r.AffectedCustomers,
		})
	}
	return out
}
