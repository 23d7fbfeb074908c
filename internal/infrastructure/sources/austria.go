package sources

import (
	"bytes"
	"context"
	"encoding/csv"

	"DonationsTracker/internal/config"
	"DonationsTracker/internal/domain"
	"DonationsTracker/internal/ports"
	"DonationsTracker/internal/source"
)

// AustriaAdapter downloads the Rechnungshof donation-report dataset, a
// semicolon-delimited CSV with German column headers. No server-side search
// exists; all rows pass through to the matcher.
type AustriaAdapter struct {
	fetcher ports.Fetcher
	url     string
}

var _ source.Adapter = (*AustriaAdapter)(nil)

// NewAustriaAdapter wires the fetcher with the configured dataset URL.
func NewAustriaAdapter(fetcher ports.Fetcher, cfg config.DatasetSourceConfig) *AustriaAdapter {
	return &AustriaAdapter{fetcher: fetcher, url: cfg.URL}
}

// Jurisdiction identifies the adapter inside the registry.
func (a *AustriaAdapter) Jurisdiction() domain.Jurisdiction {
	return domain.JurisdictionAustria
}

// Fetch downloads and parses the full dataset.
func (a *AustriaAdapter) Fetch(ctx context.Context, _ string) ([]source.RawRow, error) {
	body, err := a.fetcher.Fetch(ctx, a.url)
	if err != nil {
		return nil, err
	}
	return parseAustriaCSV(body, a.url)
}

func parseAustriaCSV(body []byte, datasetURL string) ([]source.RawRow, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &source.FormatError{URL: datasetURL, Reason: "payload is not valid CSV: " + err.Error()}
	}
	if len(records) == 0 {
		return nil, &source.FormatError{URL: datasetURL, Reason: "dataset is empty"}
	}

	header := records[0]
	donorCol := findColumn(header, "spender", "spenderin", "spender/in", "name des spenders")
	partyCol := findColumn(header, "partei", "politische partei")
	amountCol := findColumn(header, "betrag", "betrag in euro", "spendenbetrag")
	dateCol := findColumn(header, "datum", "eingangsdatum", "datum des einlangens")
	typeCol := findColumn(header, "spenderart", "art des spenders")
	if donorCol < 0 || amountCol < 0 {
		return nil, &source.FormatError{URL: datasetURL, Reason: "expected Spender/Betrag columns"}
	}

	rows := make([]source.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if cellAt(record, donorCol) == "" && cellAt(record, amountCol) == "" {
			continue
		}
		rows = append(rows, source.RawRow{
			DonorName: cellAt(record, donorCol),
			DonorType: cellAt(record, typeCol),
			Party:     cellAt(record, partyCol),
			Amount:    cellAt(record, amountCol),
			Date:      cellAt(record, dateCol),
			SourceURL: datasetURL,
		})
	}

	return rows, nil
}
