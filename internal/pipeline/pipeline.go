package pipeline

import (
	"context"
	"time"

	"github.com/dharmasatrya/triotrip/internal/deeplink"
	"github.com/dharmasatrya/triotrip/internal/filter"
	"github.com/dharmasatrya/triotrip/internal/models"
	"github.com/dharmasatrya/triotrip/internal/providers"
	"github.com/dharmasatrya/triotrip/internal/ranking"
)

type Config struct {
	// Timeout bounds the provider call. Zero disables it.
	Timeout time.Duration
}

// Pipeline turns a validated search request into a ranked, shaped response:
// provider candidates, deep links, totals, filter/sort, then shaping.
type Pipeline struct {
	provider providers.Provider
	config   Config
}

func New(provider providers.Provider, config Config) *Pipeline {
	return &Pipeline{
		provider: provider,
		config:   config,
	}
}

func (p *Pipeline) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	candidates, err := p.provider.Candidates(ctx, req)
	if err != nil {
		return nil, providers.NewProviderError(p.provider.Name(), err)
	}

	trip := deeplink.TripFromRequest(req)
	var checkIn, checkOut string
	if req.IncludeHotel {
		checkIn, checkOut = req.StayDates()
	}

	results := make([]models.ResultCandidate, 0, len(candidates))
	for _, c := range candidates {
		deeplink.Attach(&c, trip, checkIn, checkOut)
		results = append(results, ranking.Totals(c, req))
	}

	ranked := filter.Apply(results, filter.OptionsFromRequest(req), req.Sort)
	return Shape(ranked, req), nil
}
