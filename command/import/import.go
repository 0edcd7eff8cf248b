package cmdimport

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	lo "github.com/samber/lo"

	"lari-stats/connectors/config"
	ccsv "lari-stats/connectors/csv"
	"lari-stats/connectors/xlsx"
	"lari-stats/domain/failures"
)

// Run executes the import subcommand: spreadsheet -> normalized records CSV.
//
// Usage:
//
//	lari-stats import [-file ./data/LARI2024.xlsx] [-sheet 1] [-out ./data/failure_record.csv]
func Run(args []string) error {
	cfg, err := config.Resolve()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	file := fs.String("file", cfg.Data.File, "path to the LARI workbook")
	sheet := fs.String("sheet", cfg.Data.Sheet, "sheet holding the failure records")
	out := fs.String("out", filepath.Join("data", ccsv.RecordsFile), "output CSV path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	slog.Info("import.start", "file", *file, "sheet", *sheet, "out", *out)
	raw, err := xlsx.Load(*file, *sheet)
	if err != nil {
		slog.Error("import.load.error", "file", *file, "sheet", *sheet, "error", err)
		return err
	}
	records := failures.Normalize(raw)
	unknown := lo.CountBy(records, func(r failures.Record) bool { return r.Month == failures.UnknownMonth })
	if err := ccsv.WriteRecords(*out, records); err != nil {
		slog.Error("import.csv.write.error", "out", *out, "error", err)
		return fmt.Errorf("import: %w", err)
	}
	slog.Info("import.done", "records", len(records), "unknown_month", unknown, "out", *out)
	return nil
}
