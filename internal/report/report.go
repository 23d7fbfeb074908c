package report

import (
	"fmt"
	"strconv"

	"DonationsTracker/internal/domain"
	"DonationsTracker/internal/ports"
)

// SourceDoc documents one upstream source on the Data Sources sheet. The
// entries are static configuration, not derived from the query.
type SourceDoc struct {
	Jurisdiction domain.Jurisdiction
	Name         string
	URL          string
	Coverage     string
	Threshold    string
}

// Assembler turns an aggregated report into workbook sheets: a summary, one
// raw-data sheet per jurisdiction, and a documentation sheet. Sheet order is
// stable across runs; failed jurisdictions keep their sheet with a note.
type Assembler struct {
	sources []SourceDoc
}

// New builds an assembler over the configured source descriptors.
func New(sources []SourceDoc) *Assembler {
	return &Assembler{sources: sources}
}

// Assemble renders the report and hands the sheets to the workbook sink.
func (a *Assembler) Assemble(rep domain.AggregatedReport, writer ports.WorkbookWriter) ([]byte, error) {
	payload, err := writer.Write(a.Sheets(rep))
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return payload, nil
}

// Sheets builds all sheets in their stable order.
func (a *Assembler) Sheets(rep domain.AggregatedReport) []domain.Sheet {
	sheets := []domain.Sheet{a.summarySheet(rep)}
	for _, summary := range rep.Summaries {
		sheets = append(sheets, rawSheet(summary))
	}
	sheets = append(sheets, a.sourcesSheet())
	return sheets
}

func (a *Assembler) summarySheet(rep domain.AggregatedReport) domain.Sheet {
	rows := [][]string{
		{fmt.Sprintf("Political Donations Report: %s", rep.Query)},
		{},
		{"Jurisdiction", "Status", "Records", "Skipped Rows", "Total", "Currency", "Date Range", "Top Party"},
	}

	for _, summary := range rep.Summaries {
		rows = append(rows, []string{
			summary.Jurisdiction.DisplayName(),
			status(summary),
			strconv.Itoa(summary.RecordCount),
			strconv.Itoa(summary.SkippedRows),
			summary.Total.StringFixed(2),
			string(summary.Currency),
			dateRange(summary),
			topName(summary.TopParties),
		})
	}

	rows = append(rows, []string{}, []string{"Grand Totals (per currency, never combined)"})
	for _, total := range rep.GrandTotals {
		rows = append(rows, []string{
			string(total.Currency),
			strconv.Itoa(total.Records),
			total.Total.StringFixed(2),
		})
	}

	return domain.Sheet{Name: "Summary", Rows: rows}
}

func rawSheet(summary domain.JurisdictionSummary) domain.Sheet {
	sheet := domain.Sheet{Name: summary.Jurisdiction.DisplayName()}

	if summary.Failed {
		sheet.Rows = [][]string{{summary.FailureNote}}
		return sheet
	}

	sheet.Rows = [][]string{{
		"Donor", "Donor Type", "Party", "Amount", "Currency",
		"Date", "Date Precision", "Disclosure Threshold", "Source URL",
	}}

	if len(summary.Records) == 0 {
		sheet.Rows = append(sheet.Rows, []string{"no matching records"})
		return sheet
	}

	for _, record := range summary.Records {
		sheet.Rows = append(sheet.Rows, []string{
			record.DonorName,
			string(record.DonorType),
			record.Party,
			record.Amount.StringFixed(2),
			string(record.Currency),
			record.FormatDate(),
			string(record.DatePrecision),
			record.ThresholdNote,
			record.SourceURL,
		})
	}
	return sheet
}

func (a *Assembler) sourcesSheet() domain.Sheet {
	rows := [][]string{
		{"Data Sources & Methodology"},
		{},
	}

	for _, doc := range a.sources {
		rows = append(rows,
			[]string{doc.Name},
			[]string{"  URL: " + doc.URL},
			[]string{"  Coverage: " + doc.Coverage},
			[]string{"  Threshold: " + doc.Threshold},
			[]string{},
		)
	}

	rows = append(rows,
		[]string{"Disclaimer:"},
		[]string{"This report aggregates publicly available data from official sources."},
		[]string{"Different jurisdictions have different disclosure thresholds and requirements."},
		[]string{"Results may not represent all donations made by the searched entity."},
		[]string{},
		[]string{"EU-level parties are distinct from national parties - they are pan-European"},
		[]string{"federations that coordinate policies across the European Parliament."},
	)

	return domain.Sheet{Name: "Data Sources", Rows: rows}
}

func status(summary domain.JurisdictionSummary) string {
	switch {
	case summary.Failed:
		return "failed"
	case summary.RecordCount == 0:
		return "empty"
	default:
		return "ok"
	}
}

func dateRange(summary domain.JurisdictionSummary) string {
	if summary.EarliestDate.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%s to %s",
		summary.EarliestDate.Format("2006-01-02"),
		summary.LatestDate.Format("2006-01-02"))
}

func topName(ranked []domain.NamedTotal) string {
	if len(ranked) == 0 {
		return "-"
	}
	return ranked[0].Name
}
