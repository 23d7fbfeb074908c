package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"DonationsTracker/internal/app"
	"DonationsTracker/internal/config"
	"DonationsTracker/internal/logging"
)

func main() {
	query := flag.String("query", "", "donor name to search for")
	out := flag.String("out", "donations.xlsx", "path of the workbook to write")
	flag.Parse()

	if *query == "" {
		fmt.Fprintln(os.Stderr, "usage: donationstracker -query <donor name> [-out report.xlsx]")
		os.Exit(2)
	}

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)

	if err := application.ExportReport(ctx, *query, *out); err != nil {
		logger.Error("search failed", "error", err)
		os.Exit(1)
	}
}
