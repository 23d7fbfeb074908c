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

// ItalyAdapter retrieves the multi-year donation dataset re-published by a
// third-party aggregator as plain comma-delimited CSV. Unfiltered
// pass-through, like the other dataset adapters.
type ItalyAdapter struct {
	fetcher ports.Fetcher
	url     string
}

var _ source.Adapter = (*ItalyAdapter)(nil)

// NewItalyAdapter wires the fetcher with the configured dataset URL.
func NewItalyAdapter(fetcher ports.Fetcher, cfg config.DatasetSourceConfig) *ItalyAdapter {
	return &ItalyAdapter{fetcher: fetcher, url: cfg.URL}
}

// Jurisdiction identifies the adapter inside the registry.
func (a *ItalyAdapter) Jurisdiction() domain.Jurisdiction {
	return domain.JurisdictionItaly
}

// Fetch downloads and parses the full dataset.
func (a *ItalyAdapter) Fetch(ctx context.Context, _ string) ([]source.RawRow, error) {
	body, err := a.fetcher.Fetch(ctx, a.url)
	if err != nil {
		return nil, err
	}
	return parseItalyCSV(body, a.url)
}

func parseItalyCSV(body []byte, datasetURL string) ([]source.RawRow, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &source.FormatError{URL: datasetURL, Reason: "payload is not valid CSV: " + err.Error()}
	}
	if len(records) == 0 {
		return nil, &source.FormatError{URL: datasetURL, Reason: "dataset is empty"}
	}

	header := records[0]
	donorCol := findColumn(header, "donor", "soggetto erogante", "erogante")
	partyCol := findColumn(header, "party", "partito", "beneficiario")
	amountCol := findColumn(header, "amount", "importo", "importo in euro")
	dateCol := findColumn(header, "date", "data", "data erogazione", "anno")
	typeCol := findColumn(header, "donor_type", "tipo erogante", "natura giuridica")
	if donorCol < 0 || amountCol < 0 {
		return nil, &source.FormatError{URL: datasetURL, Reason: "expected donor/amount columns"}
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
