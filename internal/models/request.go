package models

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

const (
	CabinEconomy        = "ECONOMY"
	CabinPremiumEconomy = "PREMIUM_ECONOMY"
	CabinBusiness       = "BUSINESS"
	CabinFirst          = "FIRST"
)

const (
	SortBest     = "best"
	SortCheapest = "cheapest"
	SortFastest  = "fastest"
	SortFlexible = "flexible"
)

const (
	BasisFlightOnly = "flightOnly"
	BasisBundle     = "bundle"
)

type SearchRequest struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DepartDate  string  `json:"departDate"`
	ReturnDate  *string `json:"returnDate,omitempty"`
	RoundTrip   bool    `json:"roundTrip"`

	Passengers             *int  `json:"passengers,omitempty"`
	PassengersAdults       *int  `json:"passengersAdults,omitempty"`
	PassengersChildren     *int  `json:"passengersChildren,omitempty"`
	PassengersInfants      *int  `json:"passengersInfants,omitempty"`
	PassengersChildrenAges []int `json:"passengersChildrenAges,omitempty"`

	Cabin string `json:"cabin,omitempty"`

	IncludeHotel  bool    `json:"includeHotel"`
	HotelCheckIn  *string `json:"hotelCheckIn,omitempty"`
	HotelCheckOut *string `json:"hotelCheckOut,omitempty"`
	Nights        *int    `json:"nights,omitempty"`
	MinHotelStar  *int    `json:"minHotelStar,omitempty"`

	MinBudget *float64 `json:"minBudget,omitempty"`
	MaxBudget *float64 `json:"maxBudget,omitempty"`
	Currency  string   `json:"currency,omitempty"`

	Sort       string `json:"sort,omitempty"`
	MaxStops   *int   `json:"maxStops,omitempty"`
	Refundable bool   `json:"refundable"`
	Greener    bool   `json:"greener"`
	SortBasis  string `json:"sortBasis,omitempty"`
}

// Validate checks the boundary invariants and normalises defaults in place.
// Nights is deliberately left untouched so the pipeline can tell an explicit
// night count from a defaulted one.
func (r *SearchRequest) Validate() error {
	r.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	r.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))
	r.DepartDate = strings.TrimSpace(r.DepartDate)

	if r.Origin == "" {
		return ErrMissingOrigin
	}
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if r.DepartDate == "" {
		return ErrMissingDepartDate
	}
	if _, err := time.Parse(DateLayout, r.DepartDate); err != nil {
		return ErrInvalidDepartDate
	}

	if r.ReturnDate != nil && strings.TrimSpace(*r.ReturnDate) == "" {
		r.ReturnDate = nil
	}
	if r.RoundTrip && r.ReturnDate == nil {
		return ErrMissingReturnDate
	}
	if r.ReturnDate != nil {
		if _, err := time.Parse(DateLayout, *r.ReturnDate); err != nil {
			return ErrInvalidReturnDate
		}
	}

	r.Cabin = normalizeCabin(r.Cabin)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	if r.Currency == "" {
		r.Currency = "USD"
	}

	switch r.Sort {
	case SortBest, SortCheapest, SortFastest, SortFlexible:
	default:
		r.Sort = SortBest
	}
	if r.SortBasis != BasisBundle {
		r.SortBasis = BasisFlightOnly
	}
	return nil
}

// IsRoundTrip reports whether an inbound direction should be built.
func (r *SearchRequest) IsRoundTrip() bool {
	return r.RoundTrip && r.ReturnDate != nil
}

func (r *SearchRequest) Adults() int {
	if r.PassengersAdults != nil && *r.PassengersAdults > 0 {
		return *r.PassengersAdults
	}
	if r.Passengers != nil && *r.Passengers > 0 {
		return *r.Passengers
	}
	return 1
}

func (r *SearchRequest) Children() int {
	if r.PassengersChildren != nil && *r.PassengersChildren > 0 {
		return *r.PassengersChildren
	}
	return 0
}

func (r *SearchRequest) Infants() int {
	if r.PassengersInfants != nil && *r.PassengersInfants > 0 {
		return *r.PassengersInfants
	}
	return 0
}

// StayNights returns the night count used for hotel pricing and whether it was
// given explicitly. Values below one count as absent.
func (r *SearchRequest) StayNights() (int, bool) {
	if r.Nights != nil && *r.Nights >= 1 {
		return *r.Nights, true
	}
	return 1, false
}

func (r *SearchRequest) MinStars() int {
	if r.MinHotelStar != nil && *r.MinHotelStar > 0 {
		return *r.MinHotelStar
	}
	return 0
}

// StayDates returns the hotel check-in and check-out dates. Check-in defaults
// to the departure date and check-out to check-in plus the stay length.
func (r *SearchRequest) StayDates() (string, string) {
	checkIn := r.DepartDate
	if r.HotelCheckIn != nil && *r.HotelCheckIn != "" {
		checkIn = *r.HotelCheckIn
	}
	if r.HotelCheckOut != nil && *r.HotelCheckOut != "" {
		return checkIn, *r.HotelCheckOut
	}

	nights, _ := r.StayNights()
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return checkIn, ""
	}
	return checkIn, in.AddDate(0, 0, nights).Format(DateLayout)
}

func normalizeCabin(cabin string) string {
	cabin = strings.ToUpper(strings.TrimSpace(cabin))
	cabin = strings.ReplaceAll(cabin, " ", "_")
	switch cabin {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return cabin
	default:
		return CabinEconomy
	}
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin      ValidationError = "origin is required"
	ErrMissingDestination ValidationError = "destination is required"
	ErrMissingDepartDate  ValidationError = "departDate is required"
	ErrMissingReturnDate  ValidationError = "returnDate is required for round trips"
	ErrInvalidDepartDate  ValidationError = "departDate must be formatted as YYYY-MM-DD"
	ErrInvalidReturnDate  ValidationError = "returnDate must be formatted as YYYY-MM-DD"
)
