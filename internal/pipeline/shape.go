package pipeline

import "github.com/dharmasatrya/triotrip/internal/models"

// Shape builds the response envelope. Without a hotel request every result is
// projected onto its flight-only shape; with one, a defaulted night count adds
// a warning.
func Shape(results []models.ResultCandidate, req models.SearchRequest) *models.SearchResponse {
	resp := &models.SearchResponse{SortBasis: req.SortBasis}

	if !req.IncludeHotel {
		resp.FlightOnly = make([]models.FlightOnlyResult, 0, len(results))
		for _, r := range results {
			resp.FlightOnly = append(resp.FlightOnly, r.FlightOnly())
		}
		return resp
	}

	if results == nil {
		results = []models.ResultCandidate{}
	}
	resp.Results = results

	if _, explicit := req.StayNights(); !explicit {
		warning := models.HotelNightsWarning
		resp.HotelWarning = &warning
	}
	return resp
}
