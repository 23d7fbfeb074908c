package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"DonationsTracker/internal/config"
	"DonationsTracker/internal/infrastructure/httpfetch"
	"DonationsTracker/internal/source"
)

const bundestagHTML = `
<html><body>
<table>
  <tr><th>Partei</th><th>Betrag</th><th>Spender</th><th>Eingang</th></tr>
  <tr><td colspan="4">März 2024</td></tr>
  <tr>
    <td>CDU</td>
    <td>50.000,01 Euro</td>
    <td>Viessmann GmbH &amp; Co. KGViessmannstraße 1, 35108 Allendorf</td>
    <td>04.03.2024</td>
  </tr>
  <tr>
    <td>SPD</td>
    <td>75.000 Euro</td>
    <td>Konrad-Adenauer-StiftungKlingelhöferstr. 23, 10785 Berlin</td>
    <td></td>
  </tr>
</table>
</body></html>`

func TestGermanyAdapterFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bundestagHTML))
	}))
	defer server.Close()

	adapter := NewGermanyAdapter(httpfetch.NewWithClient(server.Client()), config.GermanySourceConfig{
		YearURLs: map[int]string{2024: server.URL + "/2024"},
	}, 0)
	adapter.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	rows, err := adapter.Fetch(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0].Party != "CDU" {
		t.Fatalf("unexpected party: %s", rows[0].Party)
	}
	if rows[0].Amount != "50.000,01" {
		t.Fatalf("unexpected amount: %q", rows[0].Amount)
	}
	if rows[0].DonorName != "Viessmann GmbH & Co. KG" {
		t.Fatalf("address should be trimmed off, got %q", rows[0].DonorName)
	}
	if rows[0].Date != "04.03.2024" {
		t.Fatalf("unexpected date: %q", rows[0].Date)
	}

	// Second row has no receipt date and falls back to the month header.
	if rows[1].Date != "März 2024" {
		t.Fatalf("expected month header fallback, got %q", rows[1].Date)
	}
	if rows[1].DonorName != "Konrad-Adenauer-Stiftung" {
		t.Fatalf("unexpected donor: %q", rows[1].DonorName)
	}
}

func TestGermanyAdapterNoTable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>umbau</p></body></html>"))
	}))
	defer server.Close()

	adapter := NewGermanyAdapter(httpfetch.NewWithClient(server.Client()), config.GermanySourceConfig{
		YearURLs: map[int]string{2024: server.URL},
	}, 0)
	adapter.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	_, err := adapter.Fetch(context.Background(), "x")
	var formatErr *source.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected *source.FormatError, got %v", err)
	}
}

func TestGermanyAdapterFailedYearFailsJurisdiction(t *testing.T) {
	t.Parallel()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bundestagHTML))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer bad.Close()

	adapter := NewGermanyAdapter(httpfetch.NewWithClient(good.Client()), config.GermanySourceConfig{
		YearURLs: map[int]string{2024: good.URL, 2023: bad.URL},
	}, 0)
	adapter.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	_, err := adapter.Fetch(context.Background(), "x")
	var netErr *source.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *source.NetworkError, got %v", err)
	}
}

func TestGermanyAdapterHonorsYearsBackWindow(t *testing.T) {
	t.Parallel()

	var fetched []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetched = append(fetched, r.URL.Path)
		_, _ = w.Write([]byte(bundestagHTML))
	}))
	defer server.Close()

	adapter := NewGermanyAdapter(httpfetch.NewWithClient(server.Client()), config.GermanySourceConfig{
		YearURLs: map[int]string{
			2025: server.URL + "/2025",
			2024: server.URL + "/2024",
			2021: server.URL + "/2021",
		},
	}, 3)
	adapter.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	if _, err := adapter.Fetch(context.Background(), "x"); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(fetched) != 2 {
		t.Fatalf("expected 2 pages inside the window, fetched %v", fetched)
	}
	if fetched[0] != "/2025" || fetched[1] != "/2024" {
		t.Fatalf("unexpected fetch order: %v", fetched)
	}
}

func TestTrimDonorAddress(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"Viessmann GmbH & Co. KGViessmannstraße 1, 35108 Allendorf", "Viessmann GmbH & Co. KG"},
		{"Hans MeierMusterstraße 5, 10115 Berlin", "Hans Meier"},
		{"Südwestmetall", "Südwestmetall"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := trimDonorAddress(tc.raw); got != tc.want {
			t.Fatalf("trimDonorAddress(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
