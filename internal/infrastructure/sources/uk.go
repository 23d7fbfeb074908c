package sources

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"time"

	"DonationsTracker/internal/config"
	"DonationsTracker/internal/domain"
	"DonationsTracker/internal/ports"
	"DonationsTracker/internal/source"
)

// UKAdapter queries the Electoral Commission's CSV export API. The server
// filters by donor name, so every returned row already relates to the query;
// the matcher still re-validates downstream.
type UKAdapter struct {
	fetcher   ports.Fetcher
	baseURL   string
	yearsBack int
	now       func() time.Time
}

var _ source.Adapter = (*UKAdapter)(nil)

// NewUKAdapter wires the fetcher with the configured endpoint.
func NewUKAdapter(fetcher ports.Fetcher, cfg config.UKSourceConfig, yearsBack int) *UKAdapter {
	if yearsBack <= 0 {
		yearsBack = 5
	}
	return &UKAdapter{
		fetcher:   fetcher,
		baseURL:   cfg.BaseURL,
		yearsBack: yearsBack,
		now:       time.Now,
	}
}

// Jurisdiction identifies the adapter inside the registry.
func (a *UKAdapter) Jurisdiction() domain.Jurisdiction {
	return domain.JurisdictionUK
}

// Fetch issues one filtered CSV export request and parses the payload.
func (a *UKAdapter) Fetch(ctx context.Context, query string) ([]source.RawRow, error) {
	endpoint, err := a.buildURL(query)
	if err != nil {
		return nil, err
	}

	body, err := a.fetcher.Fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	return parseUKCSV(body, endpoint)
}

func (a *UKAdapter) buildURL(query string) (string, error) {
	parsed, err := url.Parse(a.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid uk endpoint %s: %w", a.baseURL, err)
	}

	end := a.now()
	start := end.AddDate(0, 0, -a.yearsBack*365)

	params := parsed.Query()
	params.Set("start", "0")
	params.Set("rows", "500")
	params.Set("query", query)
	params.Set("sort", "AcceptedDate")
	params.Set("order", "desc")
	params.Set("et", "pp")
	params.Set("date", "Accepted")
	params.Set("from", start.Format("2006-01-02"))
	params.Set("to", end.Format("2006-01-02"))
	params.Set("prePoll", "false")
	params.Set("postPoll", "true")
	parsed.RawQuery = params.Encode()
	return parsed.String(), nil
}

func parseUKCSV(body []byte, endpoint string) ([]source.RawRow, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &source.FormatError{URL: endpoint, Reason: "payload is not valid CSV: " + err.Error()}
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	donorCol := findColumn(header, "donorname")
	valueCol := findColumn(header, "value")
	dateCol := findColumn(header, "accepteddate", "receiveddate")
	partyCol := findColumn(header, "regulatedentityname")
	typeCol := findColumn(header, "donorstatus")
	if donorCol < 0 || valueCol < 0 || dateCol < 0 {
		return nil, &source.FormatError{URL: endpoint, Reason: "expected DonorName/Value/AcceptedDate columns"}
	}

	rows := make([]source.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if cellAt(record, donorCol) == "" && cellAt(record, valueCol) == "" {
			continue
		}
		rows = append(rows, source.RawRow{
			DonorName: cellAt(record, donorCol),
			DonorType: cellAt(record, typeCol),
			Party:     cellAt(record, partyCol),
			Amount:    cellAt(record, valueCol),
			Date:      cellAt(record, dateCol),
			SourceURL: endpoint,
		})
	}

	return rows, nil
}
