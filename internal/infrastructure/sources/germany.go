package sources

import (
	"bytes"
	"context"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"DonationsTracker/internal/config"
	"DonationsTracker/internal/domain"
	"DonationsTracker/internal/ports"
	"DonationsTracker/internal/source"
)

// GermanyAdapter scrapes the Bundestag's per-year disclosure pages. The site
// has no server-side search, so every row is returned and filtered
// downstream. The N page fetches form one logical retrieval: a failed year
// fails the jurisdiction.
type GermanyAdapter struct {
	fetcher   ports.Fetcher
	yearURLs  map[int]string
	yearsBack int
	now       func() time.Time
}

var _ source.Adapter = (*GermanyAdapter)(nil)

var amountExpr = regexp.MustCompile(`[\d.,]+`)

// NewGermanyAdapter wires the fetcher with the configured year pages. Only
// pages inside the years-back window are fetched.
func NewGermanyAdapter(fetcher ports.Fetcher, cfg config.GermanySourceConfig, yearsBack int) *GermanyAdapter {
	if yearsBack <= 0 {
		yearsBack = 5
	}
	return &GermanyAdapter{
		fetcher:   fetcher,
		yearURLs:  cfg.YearURLs,
		yearsBack: yearsBack,
		now:       time.Now,
	}
}

// Jurisdiction identifies the adapter inside the registry.
func (a *GermanyAdapter) Jurisdiction() domain.Jurisdiction {
	return domain.JurisdictionGermany
}

// Fetch downloads every configured year page and extracts its donation table.
func (a *GermanyAdapter) Fetch(ctx context.Context, _ string) ([]source.RawRow, error) {
	cutoff := a.now().Year() - a.yearsBack + 1
	years := make([]int, 0, len(a.yearURLs))
	for year := range a.yearURLs {
		if year < cutoff {
			continue
		}
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	var rows []source.RawRow
	for _, year := range years {
		pageURL := a.yearURLs[year]
		body, err := a.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		pageRows, err := parseBundestagPage(body, pageURL)
		if err != nil {
			return nil, err
		}
		rows = append(rows, pageRows...)
	}

	return rows, nil
}

// parseBundestagPage reads the first table on a disclosure page. Single-cell
// rows are month headers ("März 2024") that carry the date context for data
// rows missing their own receipt date.
func parseBundestagPage(body []byte, pageURL string) ([]source.RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &source.FormatError{URL: pageURL, Reason: "payload is not parseable HTML"}
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, &source.FormatError{URL: pageURL, Reason: "no donation table found"}
	}

	var rows []source.RawRow
	currentMonth := ""

	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}

		cells := tr.Find("td, th")
		if cells.Length() == 1 {
			currentMonth = strings.TrimSpace(cells.First().Text())
			return
		}
		if cells.Length() < 4 {
			return
		}

		party := strings.TrimSpace(cells.Eq(0).Text())
		amountText := strings.TrimSpace(cells.Eq(1).Text())
		donorRaw := strings.TrimSpace(cells.Eq(2).Text())
		dateReceived := strings.TrimSpace(cells.Eq(3).Text())

		amount := amountExpr.FindString(amountText)
		if dateReceived == "" {
			dateReceived = currentMonth
		}

		rows = append(rows, source.RawRow{
			DonorName: trimDonorAddress(donorRaw),
			Party:     party,
			Amount:    amount,
			Date:      dateReceived,
			SourceURL: pageURL,
		})
	})

	return rows, nil
}

// trimDonorAddress cuts the concatenated street address off a Bundestag donor
// cell. The cell glues name and address together without separators, so the
// name ends where a letter runs straight into a capitalized word
// ("Co. KGViessmannstraße 1" ends before "Viessmannstraße") or into a bare
// digit (house number or postal code).
func trimDonorAddress(raw string) string {
	runes := []rune(raw)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		joined := unicode.IsLetter(prev) || prev == '.'
		if !joined {
			continue
		}
		if unicode.IsLetter(prev) && unicode.IsDigit(cur) {
			return strings.TrimSpace(string(runes[:i]))
		}
		if unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			return strings.TrimSpace(string(runes[:i]))
		}
	}
	return strings.TrimSpace(raw)
}
