package main

import (
	"fmt"
	"log/slog"
	"os"

	cmdcalculate "lari-stats/command/calculate"
	cmdimport "lari-stats/command/import"
	cmdweb "lari-stats/command/web"
)

// LARI failure analytics.
// Usage:
//
//	lari-stats import [-file ./data/LARI2024.xlsx] [-sheet 1] [-out ./data/failure_record.csv]
//	lari-stats calculate [-in ./data/failure_record.csv] [-out ./data]
//	lari-stats web [-addr 0.0.0.0:8050] [-file ...] [-sheet ...] [-logo ...]
//
// Settings come from config.yml (CONFIG_PATH), then LARI_* environment variables (.env is loaded), then flags.
func main() {
	args := os.Args
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(h))

	if len(args) > 1 {
		sub := args[1]
		rest := append([]string{}, args[2:]...)
		var run func([]string) error
		switch sub {
		case "import":
			run = cmdimport.Run
		case "calculate":
			run = cmdcalculate.Run
		case "web":
			run = cmdweb.Run
		}
		if run != nil {
			if err := run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
	}
	fmt.Fprintln(os.Stderr, "usage: lari-stats import [-file <xlsx>] [-sheet <name>] [-out <csv>] | calculate [-in <csv>] [-out <dir>] | web [-addr 0.0.0.0:8050] [-file <xlsx>] [-sheet <name>] [-logo <png>]\nENV: CONFIG_PATH points to a YAML config file (default ./config.yml); LARI_HOST, LARI_PORT, LARI_FILE, LARI_SHEET, LARI_LOGO override it")
	os.Exit(2)
}
