package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Jurisdiction identifies one national (or supranational) disclosure regime.
type Jurisdiction string

const (
	JurisdictionUK          Jurisdiction = "uk"
	JurisdictionGermany     Jurisdiction = "germany"
	JurisdictionAustria     Jurisdiction = "austria"
	JurisdictionItaly       Jurisdiction = "italy"
	JurisdictionNetherlands Jurisdiction = "netherlands"
	JurisdictionEU          Jurisdiction = "eu"
)

// AllJurisdictions returns every jurisdiction in its stable report order.
func AllJurisdictions() []Jurisdiction {
	return []Jurisdiction{
		JurisdictionUK,
		JurisdictionGermany,
		JurisdictionAustria,
		JurisdictionItaly,
		JurisdictionNetherlands,
		JurisdictionEU,
	}
}

// DisplayName returns the human-readable jurisdiction label used on sheets.
func (j Jurisdiction) DisplayName() string {
	switch j {
	case JurisdictionUK:
		return "UK"
	case JurisdictionGermany:
		return "Germany"
	case JurisdictionAustria:
		return "Austria"
	case JurisdictionItaly:
		return "Italy"
	case JurisdictionNetherlands:
		return "Netherlands"
	case JurisdictionEU:
		return "EU"
	default:
		return string(j)
	}
}

// Currency is the native reporting currency of a jurisdiction.
type Currency string

const (
	CurrencyGBP Currency = "GBP"
	CurrencyEUR Currency = "EUR"
)

// CurrencyFor maps a jurisdiction to its native currency. The mapping is the
// only way a record's currency may be assigned.
func CurrencyFor(j Jurisdiction) Currency {
	if j == JurisdictionUK {
		return CurrencyGBP
	}
	return CurrencyEUR
}

// DonorType classifies the giving entity where the source discloses it.
type DonorType string

const (
	DonorIndividual DonorType = "individual"
	DonorCompany    DonorType = "company"
	DonorUnion      DonorType = "union"
	DonorOther      DonorType = "other"
	DonorUnknown    DonorType = "unknown"
)

// DatePrecision records how much of a record's date the source disclosed.
type DatePrecision string

const (
	PrecisionDay   DatePrecision = "day"
	PrecisionMonth DatePrecision = "month"
	PrecisionYear  DatePrecision = "year"
)

// DonationRecord is the unified schema every adapter's rows normalize into.
// Jurisdiction and SourceURL are set once at normalization time.
type DonationRecord struct {
	Jurisdiction  Jurisdiction
	DonorName     string
	DonorType     DonorType
	Party         string
	Amount        decimal.Decimal
	Currency      Currency
	Date          time.Time
	DatePrecision DatePrecision
	ThresholdNote string
	SourceURL     string
}

// FormatDate renders the record date at its disclosed precision.
func (r DonationRecord) FormatDate() string {
	switch r.DatePrecision {
	case PrecisionYear:
		return r.Date.Format("2006")
	case PrecisionMonth:
		return r.Date.Format("2006-01")
	default:
		return r.Date.Format("2006-01-02")
	}
}

// JurisdictionResult carries one jurisdiction's matched records for a single
// query. FetchErr set means the upstream data could not be retrieved this run.
type JurisdictionResult struct {
	Jurisdiction Jurisdiction
	Records      []DonationRecord
	SkippedRows  int
	FetchErr     error
}

// Failed reports whether the jurisdiction's fetch reached no usable data.
func (r JurisdictionResult) Failed() bool {
	return r.FetchErr != nil
}

// NamedTotal is a donor or party ranked by its summed donations.
type NamedTotal struct {
	Name  string
	Total decimal.Decimal
	Count int
}

// JurisdictionSummary aggregates one jurisdiction's matched records.
type JurisdictionSummary struct {
	Jurisdiction Jurisdiction
	Currency     Currency
	Failed       bool
	FailureNote  string
	RecordCount  int
	SkippedRows  int
	Total        decimal.Decimal
	EarliestDate time.Time
	LatestDate   time.Time
	TopDonors    []NamedTotal
	TopParties   []NamedTotal
	Records      []DonationRecord
}

// CurrencyTotal is a grand total in one currency; currencies are never summed
// together.
type CurrencyTotal struct {
	Currency Currency
	Total    decimal.Decimal
	Records  int
}

// AggregatedReport is the merged view over all jurisdictions for one query.
type AggregatedReport struct {
	Query       string
	Summaries   []JurisdictionSummary
	GrandTotals []CurrencyTotal
}

// Sheet is one named tabular sheet handed to the workbook sink.
type Sheet struct {
	Name string
	Rows [][]string
}
