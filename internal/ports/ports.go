package ports

import (
	"context"

	"DonationsTracker/internal/domain"
)

// Fetcher retrieves one upstream payload. Response caching, if any, lives
// behind this interface and is invisible to the adapters.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// WorkbookWriter renders named sheets into a spreadsheet file. The core hands
// over plain rows; styling is the writer's business, not ours.
type WorkbookWriter interface {
	Write(sheets []domain.Sheet) ([]byte, error)
}
