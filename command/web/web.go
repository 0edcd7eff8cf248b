package web

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lari-stats/connectors/config"
	"lari-stats/connectors/logo"
	"lari-stats/connectors/xlsx"
	"lari-stats/domain/dashboard"
	"lari-stats/domain/failures"
)

// Run loads the workbook once and serves the dashboard until interrupted.
//
// Usage:
//
//	lari-stats web [-addr 0.0.0.0:8050] [-file ./data/LARI2024.xlsx] [-sheet 1] [-logo ./data/logo2.png]
//
// A missing workbook or sheet is fatal; a missing logo is not.
func Run(args []string) error {
	cfg, err := config.Resolve()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	addr := fs.String("addr", cfg.Server.Addr(), "http listen address (host:port)")
	file := fs.String("file", cfg.Data.File, "path to the LARI workbook")
	sheet := fs.String("sheet", cfg.Data.Sheet, "sheet holding the failure records")
	logoPath := fs.String("logo", cfg.Data.Logo, "logo image shown in the header")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dash, err := loadDashboard(*file, *sheet, cfg.Dashboard.Options())
	if err != nil {
		return err
	}

	uri, err := logo.DataURI(*logoPath)
	if err != nil {
		slog.Warn("web.logo.error", "path", *logoPath, "error", err)
	} else if uri == "" {
		slog.Info("web.logo.missing", "path", *logoPath)
	}

	e := NewServer(dash, Page{
		Title:        cfg.Dashboard.Title,
		Logo:         uri,
		DefaultMonth: cfg.Dashboard.DefaultMonth,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		slog.Info("web.start", "addr", *addr)
		errc <- e.Start(*addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	slog.Info("web.shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func loadDashboard(file, sheet string, opts dashboard.Options) (*dashboard.Dashboard, error) {
	raw, err := xlsx.Load(file, sheet)
	if err != nil {
		slog.Error("web.load.error", "file", file, "sheet", sheet, "error", err)
		return nil, err
	}
	grid := failures.Densify(failures.Normalize(raw))
	slog.Info("web.grid.ready",
		"records", len(raw),
		"cells", grid.Len(),
		"districts", len(grid.Districts()),
		"failure_types", len(grid.FailureTypes()),
		"unknown_month", grid.UnknownMonthRecords(),
		"skipped", grid.SkippedRecords())
	return dashboard.New(grid, opts), nil
}
