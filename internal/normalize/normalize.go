package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"DonationsTracker/internal/domain"
	"DonationsTracker/internal/source"
)

// Records maps raw adapter rows into unified donation records. Pure: no I/O,
// no clock. Rows whose amount or date cannot be parsed are dropped and
// counted, never merged with a zero default.
func Records(j domain.Jurisdiction, rows []source.RawRow) ([]domain.DonationRecord, int) {
	records := make([]domain.DonationRecord, 0, len(rows))
	skipped := 0

	for _, row := range rows {
		record, err := Record(j, row)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, record)
	}

	return records, skipped
}

// Record maps a single raw row; a *source.ParseError means the row must be
// skipped by the caller.
func Record(j domain.Jurisdiction, row source.RawRow) (domain.DonationRecord, error) {
	amount, err := ParseAmount(j, row.Amount)
	if err != nil {
		return domain.DonationRecord{}, err
	}

	date, precision, err := ParseDate(j, row.Date)
	if err != nil {
		return domain.DonationRecord{}, err
	}

	return domain.DonationRecord{
		Jurisdiction:  j,
		DonorName:     strings.TrimSpace(row.DonorName),
		DonorType:     donorTypeFrom(row.DonorType),
		Party:         strings.TrimSpace(row.Party),
		Amount:        amount,
		Currency:      domain.CurrencyFor(j),
		Date:          date,
		DatePrecision: precision,
		ThresholdNote: ThresholdNote(j, date),
		SourceURL:     row.SourceURL,
	}, nil
}

// ParseAmount parses an amount string under the jurisdiction's number locale:
// point-decimal with comma thousands for the UK, comma-decimal with point
// thousands everywhere else. Currency symbols and unit words are tolerated.
func ParseAmount(j domain.Jurisdiction, raw string) (decimal.Decimal, error) {
	cleaned := stripCurrency(raw)
	if cleaned == "" {
		return decimal.Decimal{}, &source.ParseError{Field: "amount", Value: raw}
	}

	if j == domain.JurisdictionUK {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	} else {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, &source.ParseError{Field: "amount", Value: raw}
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, &source.ParseError{Field: "amount", Value: raw}
	}

	return amount, nil
}

func stripCurrency(raw string) string {
	cleaned := strings.TrimSpace(raw)
	for _, word := range []string{"Euro", "euro", "EUR", "GBP"} {
		cleaned = strings.ReplaceAll(cleaned, word, "")
	}
	cleaned = strings.Map(func(r rune) rune {
		switch r {
		case '£', '€', ' ', '\u00a0':
			return -1
		}
		return r
	}, cleaned)
	return strings.TrimSpace(cleaned)
}

var dayLayouts = map[domain.Jurisdiction][]string{
	domain.JurisdictionUK: {"02/01/2006", "2006-01-02"},
}

// Continental sources publish a mix of dotted, dashed, and slashed
// day-first dates; ISO shows up in re-published datasets.
var continentalLayouts = []string{
	"02.01.2006", "2.1.2006",
	"02-01-2006", "2-1-2006",
	"02/01/2006", "2/1/2006",
	"2006-01-02",
}

var monthNames = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
	"januar": time.January, "februar": time.February, "märz": time.March,
	"maerz": time.March, "mai": time.May, "juni": time.June, "juli": time.July,
	"oktober": time.October, "dezember": time.December,
}

// ParseDate parses a date string and tags how precise it was. Month-only
// values (e.g. a Bundestag month header like "März 2024") resolve to the
// first of the month; bare years to January 1st.
func ParseDate(j domain.Jurisdiction, raw string) (time.Time, domain.DatePrecision, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return time.Time{}, "", &source.ParseError{Field: "date", Value: raw}
	}

	layouts := dayLayouts[j]
	if layouts == nil {
		layouts = continentalLayouts
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed, domain.PrecisionDay, nil
		}
	}

	fields := strings.Fields(text)
	if len(fields) == 2 {
		if month, ok := monthNames[strings.ToLower(fields[0])]; ok {
			if year, err := strconv.Atoi(fields[1]); err == nil && plausibleYear(year) {
				return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), domain.PrecisionMonth, nil
			}
		}
	}

	if year, err := strconv.Atoi(text); err == nil && plausibleYear(year) {
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), domain.PrecisionYear, nil
	}

	return time.Time{}, "", &source.ParseError{Field: "date", Value: raw}
}

func plausibleYear(year int) bool {
	return year >= 1990 && year <= 2100
}

type thresholdPeriod struct {
	from time.Time
	note string
}

// Thresholds change over time within a jurisdiction, so the note is a pure
// function of the record's date, never of the page it was scraped from.
var thresholdPeriods = map[domain.Jurisdiction][]thresholdPeriod{
	domain.JurisdictionUK: {
		{note: "£11,180 central party / £2,230 accounting units"},
	},
	domain.JurisdictionGermany: {
		{note: "€50,000 immediate disclosure"},
		{
			from: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			note: "€35,000 immediate disclosure (since March 2024)",
		},
	},
	domain.JurisdictionAustria: {
		{note: "€2,500 immediate disclosure, €500 itemized annually"},
	},
	domain.JurisdictionItaly: {
		{note: "€500 transparency obligation"},
	},
	domain.JurisdictionNetherlands: {
		{note: "€4,500 Wfpp disclosure"},
	},
	domain.JurisdictionEU: {
		{note: "€12,000 APPF disclosure"},
	},
}

// ThresholdNote describes the disclosure threshold in force at the record's
// date.
func ThresholdNote(j domain.Jurisdiction, date time.Time) string {
	periods := thresholdPeriods[j]
	note := ""
	for _, period := range periods {
		if period.from.After(date) {
			break
		}
		note = period.note
	}
	return note
}

var donorTypeWords = []struct {
	word string
	kind domain.DonorType
}{
	{"trade union", domain.DonorUnion},
	{"union", domain.DonorUnion},
	{"gewerkschaft", domain.DonorUnion},
	{"individual", domain.DonorIndividual},
	{"privatperson", domain.DonorIndividual},
	{"natürliche person", domain.DonorIndividual},
	{"particulier", domain.DonorIndividual},
	{"persona fisica", domain.DonorIndividual},
	{"company", domain.DonorCompany},
	{"unternehmen", domain.DonorCompany},
	{"juristische person", domain.DonorCompany},
	{"bedrijf", domain.DonorCompany},
	{"limited liability partnership", domain.DonorCompany},
	{"persona giuridica", domain.DonorCompany},
}

func donorTypeFrom(raw string) domain.DonorType {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return domain.DonorUnknown
	}
	for _, entry := range donorTypeWords {
		if strings.Contains(text, entry.word) {
			return entry.kind
		}
	}
	return domain.DonorOther
}
