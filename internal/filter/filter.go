package filter

import (
	"sort"

	"github.com/dharmasatrya/triotrip/internal/models"
	"github.com/dharmasatrya/triotrip/internal/ranking"
)

// Options holds the request's filter fields. Nil pointers and false flags
// disable the matching filter.
type Options struct {
	Refundable bool
	Greener    bool
	MaxStops   *int
	MinBudget  *float64
	MaxBudget  *float64
}

func OptionsFromRequest(req models.SearchRequest) Options {
	return Options{
		Refundable: req.Refundable,
		Greener:    req.Greener,
		MaxStops:   req.MaxStops,
		MinBudget:  req.MinBudget,
		MaxBudget:  req.MaxBudget,
	}
}

// Apply filters then sorts. The input slice is not modified.
func Apply(results []models.ResultCandidate, opts Options, sortBy string) []models.ResultCandidate {
	filtered := applyFilters(results, opts)
	return applySort(filtered, sortBy)
}

func applyFilters(results []models.ResultCandidate, opts Options) []models.ResultCandidate {
	out := make([]models.ResultCandidate, 0, len(results))

	for _, r := range results {
		if matchesFilters(r, opts) {
			out = append(out, r)
		}
	}

	return out
}

func matchesFilters(r models.ResultCandidate, opts Options) bool {
	if opts.Refundable && !r.Flight.Refundable {
		return false
	}

	if opts.Greener && !r.Flight.Greener {
		return false
	}

	if opts.MaxStops != nil && r.Flight.Stops > *opts.MaxStops {
		return false
	}

	if opts.MinBudget != nil && r.TotalCost < *opts.MinBudget {
		return false
	}
	if opts.MaxBudget != nil && r.TotalCost > *opts.MaxBudget {
		return false
	}

	return true
}

func applySort(results []models.ResultCandidate, sortBy string) []models.ResultCandidate {
	if len(results) < 2 {
		return results
	}

	switch sortBy {
	case models.SortCheapest:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].DisplayTotal < results[j].DisplayTotal
		})

	case models.SortFastest:
		sort.SliceStable(results, func(i, j int) bool {
			return ranking.Duration(results[i]) < ranking.Duration(results[j])
		})

	case models.SortFlexible:
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Flight.Refundable != results[j].Flight.Refundable {
				return results[i].Flight.Refundable
			}
			return results[i].DisplayTotal < results[j].DisplayTotal
		})

	default:
		sort.SliceStable(results, func(i, j int) bool {
			return ranking.BestValue(results[i]) < ranking.BestValue(results[j])
		})
	}

	return results
}
