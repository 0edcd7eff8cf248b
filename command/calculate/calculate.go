package calculate

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"lari-stats/connectors/config"
	ccsv "lari-stats/connectors/csv"
	"lari-stats/domain/dashboard"
	"lari-stats/domain/failures"
)

// Run executes the calculate command: records CSV -> dense grid and district rankings.
//
// Usage:
//
//	lari-stats calculate [-in ./data/failure_record.csv] [-out ./data]
func Run(args []string) error {
	return run(args, os.Stdout)
}

func run(args []string, stdout io.Writer) error {
	cfg, err := config.Resolve()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("calculate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	in := fs.String("in", filepath.Join("data", ccsv.RecordsFile), "records CSV written by import")
	out := fs.String("out", "data", "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("calculate: unexpected arguments %v", fs.Args())
	}

	records, err := ccsv.ReadRecords(*in)
	if err != nil {
		return err
	}
	grid := failures.Densify(records)
	slog.Info("calculate.grid",
		"records", len(records),
		"cells", grid.Len(),
		"districts", len(grid.Districts()),
		"failure_types", len(grid.FailureTypes()),
		"unknown_month", grid.UnknownMonthRecords(),
		"skipped", grid.SkippedRecords())

	if err := ccsv.WriteGrid(filepath.Join(*out, ccsv.GridFile), grid); err != nil {
		return err
	}
	view := dashboard.New(grid, cfg.Dashboard.Options()).Render(dashboard.Trend{})
	if err := ccsv.WriteRanking(filepath.Join(*out, ccsv.RankingFile), view); err != nil {
		return err
	}

	if view.HasData() {
		fmt.Fprintln(stdout, view.Totals.Text)
	} else {
		fmt.Fprintln(stdout, view.Message)
	}
	slog.Info("calculate.done", "out", *out, "failures", view.Totals.Failures)
	return nil
}
