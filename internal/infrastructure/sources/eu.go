package sources

import (
	"bytes"
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"DonationsTracker/internal/config"
	"DonationsTracker/internal/domain"
	"DonationsTracker/internal/ports"
	"DonationsTracker/internal/source"
)

// EUAdapter downloads the APPF donations workbooks. EU-level parties are
// supranational, so rows are grouped by party-header lines inside the sheet
// rather than by a party column: a header row names the party, the donor rows
// beneath it belong to that party until the next header.
type EUAdapter struct {
	fetcher  ports.Fetcher
	yearURLs map[int]string
}

var _ source.Adapter = (*EUAdapter)(nil)

var partyHeaderWords = []string{"Party", "Movement", "Alliance", "Democrats", "Conservatives"}

// NewEUAdapter wires the fetcher with the configured per-year workbooks.
func NewEUAdapter(fetcher ports.Fetcher, cfg config.EUSourceConfig) *EUAdapter {
	return &EUAdapter{fetcher: fetcher, yearURLs: cfg.YearURLs}
}

// Jurisdiction identifies the adapter inside the registry.
func (a *EUAdapter) Jurisdiction() domain.Jurisdiction {
	return domain.JurisdictionEU
}

// Fetch downloads every configured workbook and extracts its donor rows.
func (a *EUAdapter) Fetch(ctx context.Context, _ string) ([]source.RawRow, error) {
	years := make([]int, 0, len(a.yearURLs))
	for year := range a.yearURLs {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	var rows []source.RawRow
	for _, year := range years {
		workbookURL := a.yearURLs[year]
		body, err := a.fetcher.Fetch(ctx, workbookURL)
		if err != nil {
			return nil, err
		}

		yearRows, err := parseAPPFWorkbook(body, year, workbookURL)
		if err != nil {
			return nil, err
		}
		rows = append(rows, yearRows...)
	}

	return rows, nil
}

func parseAPPFWorkbook(body []byte, year int, workbookURL string) ([]source.RawRow, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return nil, &source.FormatError{URL: workbookURL, Reason: "payload is not an xlsx workbook: " + err.Error()}
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, &source.FormatError{URL: workbookURL, Reason: "workbook has no sheets"}
	}

	cells, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, &source.FormatError{URL: workbookURL, Reason: "cannot read sheet rows: " + err.Error()}
	}

	return rowsFromAPPFCells(cells, year, workbookURL), nil
}

// rowsFromAPPFCells walks the sheet keeping the current party context. Donor
// rows carry donor, country, and amount; the workbook discloses only the
// year, so the date is the bare year.
func rowsFromAPPFCells(cells [][]string, year int, workbookURL string) []source.RawRow {
	var rows []source.RawRow
	currentParty := ""

	for _, row := range cells {
		donor := cellAt(row, 0)
		country := cellAt(row, 1)
		amount := cellAt(row, 2)

		if party, ok := partyHeader(donor, country, amount); ok {
			currentParty = party
			continue
		}
		if strings.EqualFold(donor, "donor") {
			continue
		}
		if currentParty == "" || donor == "" || country == "" || amount == "" {
			continue
		}

		rows = append(rows, source.RawRow{
			DonorName: donor,
			Party:     currentParty,
			Amount:    amount,
			Date:      strconv.Itoa(year),
			SourceURL: workbookURL,
		})
	}

	return rows
}

func partyHeader(first, second, third string) (string, bool) {
	if first == "" {
		return "", false
	}
	if strings.HasPrefix(first, "Ø") {
		return cleanPartyName(first), true
	}
	if second != "" || third != "" || len(first) <= 10 {
		return "", false
	}
	for _, word := range partyHeaderWords {
		if strings.Contains(first, word) {
			return cleanPartyName(first), true
		}
	}
	return "", false
}

func cleanPartyName(raw string) string {
	cleaned := strings.TrimPrefix(raw, "Ø")
	cleaned = strings.ReplaceAll(cleaned, "\u00a0", " ")
	return strings.TrimSpace(cleaned)
}
