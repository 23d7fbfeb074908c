package aggregate

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"DonationsTracker/internal/domain"
)

func record(j domain.Jurisdiction, donor, party, amount string, date time.Time) domain.DonationRecord {
	value, _ := decimal.NewFromString(amount)
	return domain.DonationRecord{
		Jurisdiction:  j,
		DonorName:     donor,
		Party:         party,
		Amount:        value,
		Currency:      domain.CurrencyFor(j),
		Date:          date,
		DatePrecision: domain.PrecisionDay,
	}
}

func TestBuildKeepsFailedJurisdictions(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)
	results := []domain.JurisdictionResult{
		{
			Jurisdiction: domain.JurisdictionUK,
			Records: []domain.DonationRecord{
				record(domain.JurisdictionUK, "JCB Ltd", "Conservative Party", "100000", day),
			},
		},
		{
			Jurisdiction: domain.JurisdictionGermany,
			FetchErr:     errors.New("connection refused"),
		},
		{
			Jurisdiction: domain.JurisdictionAustria,
			Records: []domain.DonationRecord{
				record(domain.JurisdictionAustria, "Hans Stiftung", "ÖVP", "2500.50", day),
			},
		},
	}

	report := Build("jcb", results)

	if len(report.Summaries) != 6 {
		t.Fatalf("expected 6 summaries, got %d", len(report.Summaries))
	}

	byJurisdiction := map[domain.Jurisdiction]domain.JurisdictionSummary{}
	for _, summary := range report.Summaries {
		byJurisdiction[summary.Jurisdiction] = summary
	}

	germany := byJurisdiction[domain.JurisdictionGermany]
	if !germany.Failed {
		t.Fatal("Germany should be marked failed")
	}
	if germany.RecordCount != 0 {
		t.Fatalf("failed jurisdiction should have zero records, got %d", germany.RecordCount)
	}
	if germany.FailureNote == "" {
		t.Fatal("failed jurisdiction should carry a note")
	}

	uk := byJurisdiction[domain.JurisdictionUK]
	if uk.Failed || uk.RecordCount != 1 || uk.Total.String() != "100000" {
		t.Fatalf("unexpected UK summary: %+v", uk)
	}

	austria := byJurisdiction[domain.JurisdictionAustria]
	if austria.Total.String() != "2500.5" {
		t.Fatalf("unexpected Austria total: %s", austria.Total.String())
	}

	// Jurisdictions missing from the input still appear, empty.
	if italy := byJurisdiction[domain.JurisdictionItaly]; italy.Failed || italy.RecordCount != 0 {
		t.Fatalf("unexpected Italy summary: %+v", italy)
	}
}

func TestBuildGrandTotalsPerCurrency(t *testing.T) {
	t.Parallel()

	day := time.Date(2023, time.January, 10, 0, 0, 0, 0, time.UTC)
	results := []domain.JurisdictionResult{
		{
			Jurisdiction: domain.JurisdictionUK,
			Records: []domain.DonationRecord{
				record(domain.JurisdictionUK, "A", "X", "10.50", day),
				record(domain.JurisdictionUK, "B", "X", "4.50", day),
			},
		},
		{
			Jurisdiction: domain.JurisdictionEU,
			Records: []domain.DonationRecord{
				record(domain.JurisdictionEU, "C", "Y", "20", day),
			},
		},
	}

	report := Build("query", results)

	if len(report.GrandTotals) != 2 {
		t.Fatalf("expected 2 currency totals, got %d", len(report.GrandTotals))
	}
	gbp, eur := report.GrandTotals[0], report.GrandTotals[1]
	if gbp.Currency != domain.CurrencyGBP || gbp.Total.String() != "15" || gbp.Records != 2 {
		t.Fatalf("unexpected GBP total: %+v", gbp)
	}
	if eur.Currency != domain.CurrencyEUR || eur.Total.String() != "20" || eur.Records != 1 {
		t.Fatalf("unexpected EUR total: %+v", eur)
	}
}

func TestBuildStableOrderAndRanking(t *testing.T) {
	t.Parallel()

	day := time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.DonationRecord{
		record(domain.JurisdictionGermany, "Viessmann GmbH", "CDU", "100", day),
		record(domain.JurisdictionGermany, "Viessmann GmbH", "CSU", "50", day),
		record(domain.JurisdictionGermany, "Alfa AG", "CDU", "150", day),
		record(domain.JurisdictionGermany, "Beta AG", "SPD", "150", day),
	}
	results := []domain.JurisdictionResult{{Jurisdiction: domain.JurisdictionGermany, Records: records}}

	first := Build("ag", results)
	second := Build("ag", results)

	wantOrder := domain.AllJurisdictions()
	for i, summary := range first.Summaries {
		if summary.Jurisdiction != wantOrder[i] {
			t.Fatalf("summary %d is %s, want %s", i, summary.Jurisdiction, wantOrder[i])
		}
	}

	germany := first.Summaries[1]
	if len(germany.TopDonors) != 3 {
		t.Fatalf("expected 3 ranked donors, got %d", len(germany.TopDonors))
	}
	// Equal totals tie-break alphabetically.
	if germany.TopDonors[0].Name != "Alfa AG" || germany.TopDonors[1].Name != "Beta AG" {
		t.Fatalf("unexpected donor ranking: %+v", germany.TopDonors)
	}
	if germany.TopDonors[2].Name != "Viessmann GmbH" || germany.TopDonors[2].Count != 2 {
		t.Fatalf("unexpected grouped donor: %+v", germany.TopDonors[2])
	}
	if germany.TopParties[0].Name != "CDU" || germany.TopParties[0].Total.String() != "250" {
		t.Fatalf("unexpected party ranking: %+v", germany.TopParties)
	}

	// Same input, same output.
	for i := range first.Summaries {
		if first.Summaries[i].Total.String() != second.Summaries[i].Total.String() {
			t.Fatal("aggregation is not deterministic")
		}
		for k := range first.Summaries[i].TopDonors {
			a, b := first.Summaries[i].TopDonors[k], second.Summaries[i].TopDonors[k]
			if a.Name != b.Name || a.Count != b.Count || !a.Total.Equal(b.Total) {
				t.Fatal("ranking is not deterministic")
			}
		}
	}
}
