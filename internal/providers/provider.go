package providers

import (
	"context"

	"github.com/dharmasatrya/triotrip/internal/models"
)

// Provider supplies unpriced candidates for a validated search request.
// Ranking, pricing and filtering never look past this interface, so a real
// inventory source can replace the synthetic one.
type Provider interface {
	Name() string
	Candidates(ctx context.Context, req models.SearchRequest) ([]models.Candidate, error)
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}
