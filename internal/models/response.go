package models

import "encoding/json"

const HotelNightsWarning = "No night count given; hotel prices defaulted to 1 night."

// SearchResponse carries exactly one of Results or FlightOnly. Both serialise
// under the same "results" key.
type SearchResponse struct {
	Results      []ResultCandidate  `json:"-"`
	FlightOnly   []FlightOnlyResult `json:"-"`
	HotelWarning *string            `json:"-"`
	SortBasis    string             `json:"-"`
}

type searchResponseJSON struct {
	Results      any     `json:"results"`
	HotelWarning *string `json:"hotelWarning"`
	SortBasis    string  `json:"sortBasis"`
}

func (r SearchResponse) MarshalJSON() ([]byte, error) {
	out := searchResponseJSON{
		HotelWarning: r.HotelWarning,
		SortBasis:    r.SortBasis,
	}
	switch {
	case r.FlightOnly != nil:
		out.Results = r.FlightOnly
	case r.Results != nil:
		out.Results = r.Results
	default:
		out.Results = []ResultCandidate{}
	}
	return json.Marshal(out)
}

// Len reports the number of results regardless of shape.
func (r SearchResponse) Len() int {
	if r.FlightOnly != nil {
		return len(r.FlightOnly)
	}
	return len(r.Results)
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
