package source

import (
	"context"
	"fmt"

	"DonationsTracker/internal/domain"
)

// RawRow is one upstream disclosure row before normalization. All fields are
// kept as published; parsing amounts and dates is the normalizer's job.
type RawRow struct {
	DonorName string
	DonorType string
	Party     string
	Amount    string
	Date      string
	SourceURL string
}

// Adapter fetches and parses one jurisdiction's published data for a query.
// Adapters backed by server-side search may already restrict rows to the
// query; the matcher re-validates every row downstream either way.
type Adapter interface {
	Jurisdiction() domain.Jurisdiction
	Fetch(ctx context.Context, query string) ([]RawRow, error)
}

// Registry keeps a mapping from jurisdictions to their adapters.
type Registry struct {
	adapters map[domain.Jurisdiction]Adapter
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: map[domain.Jurisdiction]Adapter{}}
}

// Register adds or replaces an adapter implementation.
func (r *Registry) Register(adapter Adapter) {
	if r.adapters == nil {
		r.adapters = map[domain.Jurisdiction]Adapter{}
	}
	r.adapters[adapter.Jurisdiction()] = adapter
}

// Resolve returns the adapter for a jurisdiction or an error if absent.
func (r *Registry) Resolve(j domain.Jurisdiction) (Adapter, error) {
	if adapter, ok := r.adapters[j]; ok {
		return adapter, nil
	}
	return nil, fmt.Errorf("no adapter registered for jurisdiction %s", j)
}
