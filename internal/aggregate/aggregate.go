package aggregate

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"DonationsTracker/internal/domain"
)

// topN caps the donor and party rankings carried into each summary.
const topN = 5

// Build merges per-jurisdiction results into one report. Jurisdictions whose
// fetch failed stay present with zero records and an explicit note; grand
// totals are kept per currency because GBP and EUR are not convertible here.
// Output order is the stable jurisdiction order, independent of input order.
func Build(query string, results []domain.JurisdictionResult) domain.AggregatedReport {
	byJurisdiction := make(map[domain.Jurisdiction]domain.JurisdictionResult, len(results))
	for _, result := range results {
		byJurisdiction[result.Jurisdiction] = result
	}

	report := domain.AggregatedReport{Query: query}
	totals := map[domain.Currency]*domain.CurrencyTotal{
		domain.CurrencyGBP: {Currency: domain.CurrencyGBP, Total: decimal.Zero},
		domain.CurrencyEUR: {Currency: domain.CurrencyEUR, Total: decimal.Zero},
	}

	for _, j := range domain.AllJurisdictions() {
		result := byJurisdiction[j]
		result.Jurisdiction = j
		summary := summarize(result)
		report.Summaries = append(report.Summaries, summary)

		total := totals[summary.Currency]
		total.Total = total.Total.Add(summary.Total)
		total.Records += summary.RecordCount
	}

	report.GrandTotals = []domain.CurrencyTotal{
		*totals[domain.CurrencyGBP],
		*totals[domain.CurrencyEUR],
	}
	return report
}

func summarize(result domain.JurisdictionResult) domain.JurisdictionSummary {
	summary := domain.JurisdictionSummary{
		Jurisdiction: result.Jurisdiction,
		Currency:     domain.CurrencyFor(result.Jurisdiction),
		SkippedRows:  result.SkippedRows,
		Total:        decimal.Zero,
	}

	if result.Failed() {
		summary.Failed = true
		summary.FailureNote = fmt.Sprintf("data unavailable for %s: %v",
			result.Jurisdiction.DisplayName(), result.FetchErr)
		return summary
	}

	summary.Records = result.Records
	summary.RecordCount = len(result.Records)

	for _, record := range result.Records {
		summary.Total = summary.Total.Add(record.Amount)
		if summary.EarliestDate.IsZero() || record.Date.Before(summary.EarliestDate) {
			summary.EarliestDate = record.Date
		}
		if record.Date.After(summary.LatestDate) {
			summary.LatestDate = record.Date
		}
	}

	summary.TopDonors = rank(result.Records, func(r domain.DonationRecord) string { return r.DonorName })
	summary.TopParties = rank(result.Records, func(r domain.DonationRecord) string { return r.Party })
	return summary
}

// rank groups records by key and orders by total descending, name ascending
// on ties, so identical inputs always rank identically.
func rank(records []domain.DonationRecord, key func(domain.DonationRecord) string) []domain.NamedTotal {
	grouped := map[string]*domain.NamedTotal{}
	for _, record := range records {
		name := key(record)
		if name == "" {
			continue
		}
		entry, ok := grouped[name]
		if !ok {
			entry = &domain.NamedTotal{Name: name, Total: decimal.Zero}
			grouped[name] = entry
		}
		entry.Total = entry.Total.Add(record.Amount)
		entry.Count++
	}

	ranked := make([]domain.NamedTotal, 0, len(grouped))
	for _, entry := range grouped {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, k int) bool {
		if !ranked[i].Total.Equal(ranked[k].Total) {
			return ranked[i].Total.GreaterThan(ranked[k].Total)
		}
		return ranked[i].Name < ranked[k].Name
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
