package ranking

import (
	"math"

	"github.com/dharmasatrya/triotrip/internal/models"
)

// Totals prices one candidate and copies the request's UI context onto it.
// It never looks at other candidates.
func Totals(c models.Candidate, req models.SearchRequest) models.ResultCandidate {
	r := models.ResultCandidate{
		Flight:      c.Flight,
		FlightTotal: c.Flight.Price,
		Passengers: models.PassengerContext{
			Adults:       req.Adults(),
			Children:     req.Children(),
			Infants:      req.Infants(),
			ChildrenAges: req.PassengersChildrenAges,
		},
	}

	if req.IncludeHotel {
		r.Hotel = c.Hotel
		r.Hotels = c.Hotels
		if c.Hotel != nil {
			r.HotelTotal = c.Hotel.Price
		}
		r.HotelCheckIn, r.HotelCheckOut = req.StayDates()
		r.Nights, _ = req.StayNights()
	}

	r.TotalCost = math.Round(r.FlightTotal + r.HotelTotal)
	if req.SortBasis == models.BasisBundle {
		r.DisplayTotal = r.TotalCost
	} else {
		r.DisplayTotal = r.FlightTotal
	}
	return r
}
