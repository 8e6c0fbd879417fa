package models

import "time"

type Segment struct {
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	DepartAt        time.Time `json:"departAt"`
	ArriveAt        time.Time `json:"arriveAt"`
	DurationMinutes int       `json:"durationMinutes"`
}

// DeepLinks maps a booking site label to a pre-filled external URL.
type DeepLinks map[string]string

type FlightCandidate struct {
	ID         string    `json:"id"`
	Carrier    string    `json:"carrier"`
	Cabin      string    `json:"cabin"`
	Stops      int       `json:"stops"`
	Refundable bool      `json:"refundable"`
	Greener    bool      `json:"greener"`
	Price      float64   `json:"price"`
	Currency   string    `json:"currency"`
	Outbound   []Segment `json:"outbound"`
	Inbound    []Segment `json:"inbound,omitempty"`
	// DurationMinutes sums every segment in both directions. Zero means the
	// source did not report a duration.
	DurationMinutes int       `json:"durationMinutes"`
	DeepLinks       DeepLinks `json:"deeplinks,omitempty"`
}

type HotelOption struct {
	Name      string    `json:"name"`
	Stars     int       `json:"stars"`
	City      string    `json:"city"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	DeepLinks DeepLinks `json:"deeplinks,omitempty"`
}

// Candidate is what a provider hands to the pipeline before pricing.
type Candidate struct {
	Flight FlightCandidate
	Hotel  *HotelOption
	Hotels []HotelOption
}

type PassengerContext struct {
	Adults       int   `json:"adults"`
	Children     int   `json:"children"`
	Infants      int   `json:"infants"`
	ChildrenAges []int `json:"childrenAges,omitempty"`
}

type ResultCandidate struct {
	Flight        FlightCandidate  `json:"flight"`
	Hotel         *HotelOption     `json:"hotel,omitempty"`
	Hotels        []HotelOption    `json:"hotels,omitempty"`
	FlightTotal   float64          `json:"flight_total"`
	HotelTotal    float64          `json:"hotel_total"`
	TotalCost     float64          `json:"total_cost"`
	DisplayTotal  float64          `json:"display_total"`
	Passengers    PassengerContext `json:"passengers"`
	HotelCheckIn  string           `json:"hotelCheckIn,omitempty"`
	HotelCheckOut string           `json:"hotelCheckOut,omitempty"`
	Nights        int              `json:"nights,omitempty"`
}

// FlightOnlyResult is the narrowed shape returned when no hotel was requested.
// Every field also exists on ResultCandidate.
type FlightOnlyResult struct {
	Flight       FlightCandidate  `json:"flight"`
	FlightTotal  float64          `json:"flight_total"`
	HotelTotal   float64          `json:"hotel_total"`
	TotalCost    float64          `json:"total_cost"`
	DisplayTotal float64          `json:"display_total"`
	Passengers   PassengerContext `json:"passengers"`
}

// FlightOnly projects the candidate onto its flight-only shape. Hotel pricing
// is dropped, so the totals collapse to the flight price.
func (r ResultCandidate) FlightOnly() FlightOnlyResult {
	display := r.DisplayTotal
	if display == 0 {
		display = r.FlightTotal
	}
	return FlightOnlyResult{
		Flight:       r.Flight,
		FlightTotal:  r.FlightTotal,
		HotelTotal:   0,
		TotalCost:    r.FlightTotal,
		DisplayTotal: display,
		Passengers:   r.Passengers,
	}
}
