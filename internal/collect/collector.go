// Package collect resolves a search term to a canonical company and gathers
// the raw upstream payloads the normalizer consumes.
package collect

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/reputation-cli/internal/model"
	"github.com/sells-group/reputation-cli/pkg/reclameaqui"
)

// ErrNotFound reports that the initial search matched no company. Terminal:
// the term is wrong, not the transport.
var ErrNotFound = eris.New("no company matched the search term")

const defaultFetchTimeout = 20 * time.Second

// Collector orchestrates one search: a blocking initial lookup, then the
// four follow-up fetches fanned out concurrently. Stateless per call; the
// reusable transport session lives inside the client.
type Collector struct {
	client       reclameaqui.Client
	fetchTimeout time.Duration
}

// New creates a collector. fetchTimeout bounds each follow-up fetch so one
// hung request cannot stall the whole dossier; zero selects the default.
func New(client reclameaqui.Client, fetchTimeout time.Duration) *Collector {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &Collector{
		client:       client,
		fetchTimeout: fetchTimeout,
	}
}

// Collect resolves the canonical company for term and gathers the raw
// follow-up payloads. The first search match is taken as canonical. Any
// follow-up may fail without failing the call: its entry is simply absent
// from the returned bundle.
func (c *Collector) Collect(ctx context.Context, term string) (*model.CompanyLookup, model.RawBundle, error) {
	term = NormalizeTerm(term)
	if term == "" {
		return nil, nil, eris.New("collect: empty search term")
	}

	resp, err := c.client.SearchCompanies(ctx, term)
	if err != nil {
		return nil, nil, eris.Wrap(err, "collect: initial search")
	}
	if len(resp.Companies) == 0 {
		return nil, nil, ErrNotFound
	}

	first := resp.Companies[0]
	lookup := &model.CompanyLookup{
		ID:          first.ID,
		CompanyName: first.CompanyName,
		FantasyName: first.FantasyName,
		Shortname:   first.Shortname,
		Status:      first.Status,
		Documents:   first.Documents,
	}

	zap.L().Info("collect: company resolved",
		zap.String("term", term),
		zap.String("company_id", lookup.ID),
		zap.String("fantasy_name", lookup.FantasyName),
	)

	fetches := []struct {
		key model.FetchKey
		fn  func(context.Context) (string, error)
	}{
		{model.FetchProfile, func(ctx context.Context) (string, error) {
			return c.client.CompanyProfile(ctx, lookup.Shortname)
		}},
		{model.FetchMainProblems, func(ctx context.Context) (string, error) {
			return c.client.MainProblems(ctx, lookup.ID)
		}},
		{model.FetchProblems6Months, func(ctx context.Context) (string, error) {
			return c.client.Problems6Months(ctx, lookup.ID)
		}},
		{model.FetchIndexEvolution, func(ctx context.Context) (string, error) {
			return c.client.IndexEvolution(ctx, lookup.ID)
		}},
	}

	// Each goroutine owns one fixed slot, so the fan-out needs no locking.
	bodies := make([]string, len(fetches))
	fetched := make([]bool, len(fetches))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range fetches {
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(gctx, c.fetchTimeout)
			defer cancel()

			body, err := f.fn(fctx)
			if err != nil {
				zap.L().Warn("collect: follow-up fetch failed",
					zap.String("fetch", string(f.key)),
					zap.String("company_id", lookup.ID),
					zap.Error(err),
				)
				return nil // recorded as absent, never aborts siblings
			}
			if body == "" {
				zap.L().Warn("collect: follow-up fetch returned empty body",
					zap.String("fetch", string(f.key)),
					zap.String("company_id", lookup.ID),
				)
				return nil
			}

			bodies[i] = body
			fetched[i] = true
			return nil
		})
	}
	_ = g.Wait() // fetch goroutines never return errors

	bundle := make(model.RawBundle, len(fetches))
	for i, f := range fetches {
		if fetched[i] {
			bundle[f.key] = bodies[i]
		}
	}

	zap.L().Debug("collect: bundle assembled",
		zap.String("company_id", lookup.ID),
		zap.Int("fetched", len(bundle)),
	)

	return lookup, bundle, nil
}
