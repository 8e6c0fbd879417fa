package deeplink

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dharmasatrya/triotrip/internal/models"
)

// Trip carries the request parameters a booking site can pre-fill.
type Trip struct {
	Origin      string
	Destination string
	DepartDate  string
	ReturnDate  string
	RoundTrip   bool
	Cabin       string
	Adults      int
	Children    int
}

func TripFromRequest(req models.SearchRequest) Trip {
	t := Trip{
		Origin:      req.Origin,
		Destination: req.Destination,
		DepartDate:  req.DepartDate,
		RoundTrip:   req.IsRoundTrip(),
		Cabin:       req.Cabin,
		Adults:      req.Adults(),
		Children:    req.Children(),
	}
	if t.RoundTrip {
		t.ReturnDate = *req.ReturnDate
	}
	return t
}

type carrierSchema struct {
	match string
	build func(Trip) string
}

var carriers = []carrierSchema{
	{match: "delta", build: deltaURL},
	{match: "united", build: unitedURL},
	{match: "american", build: americanURL},
}

// CarrierURL returns the carrier's pre-filled search page. Unknown carriers
// get a guessed homepage.
func CarrierURL(carrier string, trip Trip) string {
	name := strings.ToLower(carrier)
	for _, c := range carriers {
		if strings.Contains(name, c.match) {
			return c.build(trip)
		}
	}
	return "https://www." + strings.Join(strings.Fields(name), "") + ".com"
}

func deltaURL(t Trip) string {
	q := url.Values{}
	q.Set("tripType", pick(t.RoundTrip, "ROUND_TRIP", "ONE_WAY"))
	q.Set("fromCity", t.Origin)
	q.Set("toCity", t.Destination)
	q.Set("departureDate", t.DepartDate)
	if t.RoundTrip {
		q.Set("returnDate", t.ReturnDate)
	}
	q.Set("cabinType", deltaCabin(t.Cabin))
	q.Set("paxCount", strconv.Itoa(t.Adults+t.Children))
	q.Set("adults", strconv.Itoa(t.Adults))
	q.Set("children", strconv.Itoa(t.Children))
	return "https://www.delta.com/flight-search/book-a-flight?" + q.Encode()
}

func unitedURL(t Trip) string {
	q := url.Values{}
	q.Set("f", t.Origin)
	q.Set("t", t.Destination)
	q.Set("d", t.DepartDate)
	if t.RoundTrip {
		q.Set("r", t.ReturnDate)
	}
	q.Set("tt", pick(t.RoundTrip, "2", "1"))
	q.Set("sc", unitedCabin(t.Cabin))
	q.Set("px", strconv.Itoa(t.Adults))
	if t.Children > 0 {
		q.Set("kp", strconv.Itoa(t.Children))
	}
	return "https://www.united.com/en/us/fsr/choose-flights?" + q.Encode()
}

func americanURL(t Trip) string {
	q := url.Values{}
	q.Set("type", pick(t.RoundTrip, "RoundTrip", "OneWay"))
	q.Set("from", t.Origin)
	q.Set("to", t.Destination)
	q.Set("departDate", t.DepartDate)
	if t.RoundTrip {
		q.Set("returnDate", t.ReturnDate)
	}
	q.Set("cabin", strings.ToLower(t.Cabin))
	q.Set("adult", strconv.Itoa(t.Adults))
	q.Set("child", strconv.Itoa(t.Children))
	return "https://www.aa.com/booking/search?" + q.Encode()
}

// GoogleFlightsURL is the carrier-agnostic meta-search link.
func GoogleFlightsURL(t Trip) string {
	query := "Flights from " + t.Origin + " to " + t.Destination + " on " + t.DepartDate
	if t.RoundTrip {
		query += " through " + t.ReturnDate
	}
	if t.Cabin != "" && t.Cabin != models.CabinEconomy {
		query += " " + strings.ToLower(strings.ReplaceAll(t.Cabin, "_", " "))
	}
	return "https://www.google.com/travel/flights?q=" + url.QueryEscape(query)
}

// HotelURL points at a Booking.com search pre-filled with the stay.
func HotelURL(h models.HotelOption, checkIn, checkOut string, t Trip) string {
	q := url.Values{}
	q.Set("ss", h.Name+", "+h.City)
	if checkIn != "" {
		q.Set("checkin", checkIn)
	}
	if checkOut != "" {
		q.Set("checkout", checkOut)
	}
	q.Set("group_adults", strconv.Itoa(max(t.Adults, 1)))
	q.Set("group_children", strconv.Itoa(t.Children))
	q.Set("no_rooms", "1")
	return "https://www.booking.com/searchresults.html?" + q.Encode()
}

func ForFlight(carrier string, t Trip) models.DeepLinks {
	return models.DeepLinks{
		"airline": CarrierURL(carrier, t),
		"google":  GoogleFlightsURL(t),
	}
}

func ForHotel(h models.HotelOption, checkIn, checkOut string, t Trip) models.DeepLinks {
	return models.DeepLinks{
		"booking": HotelURL(h, checkIn, checkOut, t),
	}
}

// Attach fills deep links on the candidate's flight and every hotel.
func Attach(c *models.Candidate, t Trip, checkIn, checkOut string) {
	c.Flight.DeepLinks = ForFlight(c.Flight.Carrier, t)
	for i := range c.Hotels {
		c.Hotels[i].DeepLinks = ForHotel(c.Hotels[i], checkIn, checkOut, t)
	}
	if c.Hotel != nil {
		c.Hotel.DeepLinks = ForHotel(*c.Hotel, checkIn, checkOut, t)
	}
}

func deltaCabin(cabin string) string {
	switch cabin {
	case models.CabinPremiumEconomy:
		return "DELTA_PREMIUM_SELECT"
	case models.CabinBusiness, models.CabinFirst:
		return "FIRST"
	default:
		return "MAIN"
	}
}

func unitedCabin(cabin string) string {
	switch cabin {
	case models.CabinPremiumEconomy:
		return "2"
	case models.CabinBusiness:
		return "3"
	case models.CabinFirst:
		return "4"
	default:
		return "7"
	}
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
