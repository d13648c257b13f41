package dossier

import (
	"context"

	"github.com/sells-group/reputation-cli/internal/model"
)

// Collector gathers the initial lookup and the raw follow-up payloads for a
// search term.
type Collector interface {
	Collect(ctx context.Context, term string) (*model.CompanyLookup, model.RawBundle, error)
}

// Service composes one collector with the normalizer. This is the single
// entry point the boundary layers call: collect, then normalize, all or
// nothing.
type Service struct {
	collector Collector
}

// NewService creates a dossier service.
func NewService(c Collector) *Service {
	return &Service{collector: c}
}

// Dossier produces the normalized dossier for a search term.
func (s *Service) Dossier(ctx context.Context, term string) (*model.Dossier, error) {
	lookup, bundle, err := s.collector.Collect(ctx, term)
	if err != nil {
		return nil, err
	}
	return Normalize(lookup, bundle)
}
