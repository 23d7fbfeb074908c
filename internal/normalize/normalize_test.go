package normalize

import (
	"errors"
	"testing"
	"time"

	"DonationsTracker/internal/domain"
	"DonationsTracker/internal/source"
)

func TestParseAmountContinental(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"50.000,01 Euro", "50000.01"},
		{"€ 12.000", "12000"},
		{"0,00", "0"},
		{"35000", "35000"},
	}

	for _, tc := range cases {
		amount, err := ParseAmount(domain.JurisdictionGermany, tc.raw)
		if err != nil {
			t.Fatalf("ParseAmount(%q) returned error: %v", tc.raw, err)
		}
		if amount.String() != tc.want {
			t.Fatalf("ParseAmount(%q) = %s, want %s", tc.raw, amount.String(), tc.want)
		}
	}
}

func TestParseAmountUK(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"1,234.56", "1234.56"},
		{"£500,000.00", "500000"},
		{"11180", "11180"},
	}

	for _, tc := range cases {
		amount, err := ParseAmount(domain.JurisdictionUK, tc.raw)
		if err != nil {
			t.Fatalf("ParseAmount(%q) returned error: %v", tc.raw, err)
		}
		if amount.String() != tc.want {
			t.Fatalf("ParseAmount(%q) = %s, want %s", tc.raw, amount.String(), tc.want)
		}
	}
}

func TestParseAmountRejects(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "n/a", "-5.000,00", "€"} {
		_, err := ParseAmount(domain.JurisdictionAustria, raw)
		if err == nil {
			t.Fatalf("ParseAmount(%q) should fail", raw)
		}
		var parseErr *source.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("ParseAmount(%q) error is %T, want *source.ParseError", raw, err)
		}
	}
}

func TestParseDatePrecision(t *testing.T) {
	t.Parallel()

	cases := []struct {
		jurisdiction  domain.Jurisdiction
		raw           string
		want          time.Time
		wantPrecision domain.DatePrecision
	}{
		{domain.JurisdictionUK, "15/03/2024", date(2024, 3, 15), domain.PrecisionDay},
		{domain.JurisdictionGermany, "04.03.2024", date(2024, 3, 4), domain.PrecisionDay},
		{domain.JurisdictionNetherlands, "04-03-2024", date(2024, 3, 4), domain.PrecisionDay},
		{domain.JurisdictionGermany, "März 2024", date(2024, 3, 1), domain.PrecisionMonth},
		{domain.JurisdictionGermany, "Dezember 2023", date(2023, 12, 1), domain.PrecisionMonth},
		{domain.JurisdictionEU, "2024", date(2024, 1, 1), domain.PrecisionYear},
	}

	for _, tc := range cases {
		got, precision, err := ParseDate(tc.jurisdiction, tc.raw)
		if err != nil {
			t.Fatalf("ParseDate(%s, %q) returned error: %v", tc.jurisdiction, tc.raw, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseDate(%s, %q) = %v, want %v", tc.jurisdiction, tc.raw, got, tc.want)
		}
		if precision != tc.wantPrecision {
			t.Fatalf("ParseDate(%s, %q) precision = %s, want %s", tc.jurisdiction, tc.raw, precision, tc.wantPrecision)
		}
	}
}

func TestParseDateRejects(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "soon", "13/45/2024", "123"} {
		if _, _, err := ParseDate(domain.JurisdictionItaly, raw); err == nil {
			t.Fatalf("ParseDate(%q) should fail", raw)
		}
	}
}

func TestThresholdNoteGermanyBoundary(t *testing.T) {
	t.Parallel()

	before := ThresholdNote(domain.JurisdictionGermany, date(2024, 2, 29))
	after := ThresholdNote(domain.JurisdictionGermany, date(2024, 3, 1))

	if before != "€50,000 immediate disclosure" {
		t.Fatalf("unexpected pre-change note: %s", before)
	}
	if after != "€35,000 immediate disclosure (since March 2024)" {
		t.Fatalf("unexpected post-change note: %s", after)
	}
}

func TestRecordsSkipsUnparseableRows(t *testing.T) {
	t.Parallel()

	rows := []source.RawRow{
		{DonorName: "Hans Stiftung", Amount: "10.000,00", Date: "01.02.2023", SourceURL: "https://example.org"},
		{DonorName: "Broken Amount", Amount: "??", Date: "01.02.2023"},
		{DonorName: "Broken Date", Amount: "1,00", Date: "sometime"},
	}

	records, skipped := Records(domain.JurisdictionAustria, rows)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if skipped != 2 {
		t.Fatalf("expected 2 skipped rows, got %d", skipped)
	}
	if records[0].Amount.String() != "10000" {
		t.Fatalf("unexpected amount: %s", records[0].Amount.String())
	}
}

func TestRecordCurrencyInvariant(t *testing.T) {
	t.Parallel()

	row := source.RawRow{DonorName: "Donor", Amount: "1", Date: "2023"}

	for _, j := range domain.AllJurisdictions() {
		raw := row
		if j == domain.JurisdictionUK {
			raw.Amount = "1"
			raw.Date = "2023-01-01"
		}
		record, err := Record(j, raw)
		if err != nil {
			t.Fatalf("Record(%s) returned error: %v", j, err)
		}
		if record.Currency != domain.CurrencyFor(j) {
			t.Fatalf("jurisdiction %s got currency %s", j, record.Currency)
		}
		if record.Amount.IsNegative() {
			t.Fatalf("jurisdiction %s produced negative amount", j)
		}
	}
}

func TestRecordDefaultsDonorType(t *testing.T) {
	t.Parallel()

	record, err := Record(domain.JurisdictionItaly, source.RawRow{
		DonorName: "Anon Srl", Amount: "5,00", Date: "2022",
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if record.DonorType != domain.DonorUnknown {
		t.Fatalf("expected unknown donor type, got %s", record.DonorType)
	}

	record, err = Record(domain.JurisdictionUK, source.RawRow{
		DonorName: "Unite", DonorType: "Trade Union", Amount: "9.99", Date: "2022-05-01",
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if record.DonorType != domain.DonorUnion {
		t.Fatalf("expected union donor type, got %s", record.DonorType)
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
