package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"DonationsTracker/internal/config"
	"DonationsTracker/internal/domain"
	"DonationsTracker/internal/infrastructure/httpfetch"
	"DonationsTracker/internal/infrastructure/sources"
	"DonationsTracker/internal/infrastructure/workbook"
	"DonationsTracker/internal/logging"
	"DonationsTracker/internal/ports"
	"DonationsTracker/internal/report"
	"DonationsTracker/internal/source"
	"DonationsTracker/internal/usecase"
)

// Application wires configs to the search pipeline and report assembly.
type Application struct {
	cfg       config.Config
	search    *usecase.Search
	assembler *report.Assembler
	writer    ports.WorkbookWriter
	logger    *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	fetcher := httpfetch.New(cfg.HTTP.Timeout())

	registry := source.NewRegistry()
	registry.Register(sources.NewUKAdapter(fetcher, cfg.Sources.UK, cfg.Search.YearsBack))
	registry.Register(sources.NewGermanyAdapter(fetcher, cfg.Sources.Germany, cfg.Search.YearsBack))
	registry.Register(sources.NewAustriaAdapter(fetcher, cfg.Sources.Austria))
	registry.Register(sources.NewItalyAdapter(fetcher, cfg.Sources.Italy))
	registry.Register(sources.NewNetherlandsAdapter(fetcher, cfg.Sources.Netherlands))
	registry.Register(sources.NewEUAdapter(fetcher, cfg.Sources.EU))

	search := usecase.NewSearch(usecase.SearchDeps{
		Registry:       registry,
		AdapterTimeout: cfg.Search.AdapterTimeout(),
		Logger:         baseLogger.With("component", "search"),
	})

	return &Application{
		cfg:       cfg,
		search:    search,
		assembler: report.New(sourceDocs(cfg.Sources)),
		writer:    workbook.New(),
		logger:    baseLogger.With("component", "app"),
	}
}

// RunSearch executes one query and returns the aggregated report. This is
// the synchronous entry point the presentation layer calls.
func (a *Application) RunSearch(ctx context.Context, query string) (domain.AggregatedReport, error) {
	return a.search.Run(ctx, query)
}

// ExportReport runs a search and writes the workbook to the given path.
func (a *Application) ExportReport(ctx context.Context, query, path string) error {
	rep, err := a.RunSearch(ctx, query)
	if err != nil {
		return err
	}

	for _, summary := range rep.Summaries {
		if summary.Failed {
			a.logger.Warn("jurisdiction unavailable", "jurisdiction", summary.Jurisdiction, "note", summary.FailureNote)
		} else {
			a.logger.Info("jurisdiction searched",
				"jurisdiction", summary.Jurisdiction,
				"records", summary.RecordCount,
				"total", summary.Total.StringFixed(2),
				"currency", summary.Currency)
		}
	}

	payload, err := a.assembler.Assemble(rep, a.writer)
	if err != nil {
		return fmt.Errorf("assemble report: %w", err)
	}

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	a.logger.Info("report written", "path", path, "query", query)
	return nil
}

func sourceDocs(cfg config.SourcesConfig) []report.SourceDoc {
	docs := make([]report.SourceDoc, 0, 6)
	add := func(j domain.Jurisdiction, info config.SourceInfo) {
		docs = append(docs, report.SourceDoc{
			Jurisdiction: j,
			Name:         info.Name,
			URL:          info.URL,
			Coverage:     info.Coverage,
			Threshold:    info.Threshold,
		})
	}
	add(domain.JurisdictionUK, cfg.UK.Info)
	add(domain.JurisdictionGermany, cfg.Germany.Info)
	add(domain.JurisdictionAustria, cfg.Austria.Info)
	add(domain.JurisdictionItaly, cfg.Italy.Info)
	add(domain.JurisdictionNetherlands, cfg.Netherlands.Info)
	add(domain.JurisdictionEU, cfg.EU.Info)
	return docs
}
