package sources

import (
	"bytes"
	"context"
	"strings"

	"github.com/knieriem/odf/ods"

	"DonationsTracker/internal/config"
	"DonationsTracker/internal/domain"
	"DonationsTracker/internal/ports"
	"DonationsTracker/internal/source"
)

// NetherlandsAdapter downloads the Wfpp gift register, an OpenDocument
// spreadsheet, and extracts rows from the gift sheets. Unfiltered
// pass-through.
type NetherlandsAdapter struct {
	fetcher ports.Fetcher
	url     string
}

var _ source.Adapter = (*NetherlandsAdapter)(nil)

// NewNetherlandsAdapter wires the fetcher with the configured workbook URL.
func NewNetherlandsAdapter(fetcher ports.Fetcher, cfg config.DatasetSourceConfig) *NetherlandsAdapter {
	return &NetherlandsAdapter{fetcher: fetcher, url: cfg.URL}
}

// Jurisdiction identifies the adapter inside the registry.
func (a *NetherlandsAdapter) Jurisdiction() domain.Jurisdiction {
	return domain.JurisdictionNetherlands
}

// Fetch downloads the workbook and parses the relevant sheets.
func (a *NetherlandsAdapter) Fetch(ctx context.Context, _ string) ([]source.RawRow, error) {
	body, err := a.fetcher.Fetch(ctx, a.url)
	if err != nil {
		return nil, err
	}

	file, err := ods.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, &source.FormatError{URL: a.url, Reason: "payload is not an ODS workbook: " + err.Error()}
	}

	var doc ods.Doc
	if err := file.ParseContent(&doc); err != nil {
		return nil, &source.FormatError{URL: a.url, Reason: "cannot read ODS content: " + err.Error()}
	}

	var rows []source.RawRow
	matched := false
	for _, table := range doc.Table {
		if !giftSheet(table.Name) {
			continue
		}
		matched = true
		rows = append(rows, rowsFromSheet(table.Strings(), a.url)...)
	}
	if !matched && len(doc.Table) > 0 {
		rows = rowsFromSheet(doc.Table[0].Strings(), a.url)
	}

	return rows, nil
}

func giftSheet(name string) bool {
	lowered := strings.ToLower(name)
	return strings.Contains(lowered, "gift") || strings.Contains(lowered, "donat")
}

// rowsFromSheet maps an ODS cell grid to raw rows. The header row is located
// by the Partij column because the register puts title lines above it.
func rowsFromSheet(cells [][]string, workbookURL string) []source.RawRow {
	headerIdx := -1
	var donorCol, partyCol, amountCol, dateCol, typeCol int
	for i, row := range cells {
		donorCol = findColumn(row, "donateur", "gever", "naam gever", "naam")
		partyCol = findColumn(row, "partij", "politieke partij")
		amountCol = findColumn(row, "bedrag", "bedrag (eur)", "waarde")
		dateCol = findColumn(row, "datum", "datum gift", "jaar")
		typeCol = findColumn(row, "soort gever", "type gever")
		if partyCol >= 0 && donorCol >= 0 && amountCol >= 0 {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	var rows []source.RawRow
	for _, row := range cells[headerIdx+1:] {
		if cellAt(row, donorCol) == "" && cellAt(row, amountCol) == "" {
			continue
		}
		rows = append(rows, source.RawRow{
			DonorName: cellAt(row, donorCol),
			DonorType: cellAt(row, typeCol),
			Party:     cellAt(row, partyCol),
			Amount:    cellAt(row, amountCol),
			Date:      cellAt(row, dateCol),
			SourceURL: workbookURL,
		})
	}
	return rows
}
