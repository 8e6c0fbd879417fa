package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/dharmasatrya/triotrip/internal/models"
	"github.com/dharmasatrya/triotrip/internal/timezone"
	"github.com/dharmasatrya/triotrip/internal/upstream"
)

type OfferQuery struct {
	Origin      string
	Destination string
	DepartDate  string
	ReturnDate  string
	Adults      int
	Children    int
	Infants     int
	TravelClass string
	Currency    string
	Max         int
}

// Offer is the slice of a flight offer the planner surfaces.
type Offer struct {
	ID              string           `json:"id"`
	Carrier         string           `json:"carrier"`
	Price           float64          `json:"price"`
	Currency        string           `json:"currency"`
	Stops           int              `json:"stops"`
	DurationMinutes int              `json:"durationMinutes"`
	Outbound        []models.Segment `json:"outbound"`
	Inbound         []models.Segment `json:"inbound,omitempty"`
}

func (q OfferQuery) values() url.Values {
	v := url.Values{}
	v.Set("originLocationCode", q.Origin)
	v.Set("destinationLocationCode", q.Destination)
	v.Set("departureDate", q.DepartDate)
	if q.ReturnDate != "" {
		v.Set("returnDate", q.ReturnDate)
	}
	v.Set("adults", strconv.Itoa(max(q.Adults, 1)))
	if q.Children > 0 {
		v.Set("children", strconv.Itoa(q.Children))
	}
	if q.Infants > 0 {
		v.Set("infants", strconv.Itoa(q.Infants))
	}
	if q.TravelClass != "" {
		v.Set("travelClass", q.TravelClass)
	}
	if q.Currency != "" {
		v.Set("currencyCode", q.Currency)
	}
	limit := q.Max
	if limit <= 0 {
		limit = 5
	}
	v.Set("max", strconv.Itoa(limit))
	return v
}

// SearchOffers queries the flight-offers endpoint.
func (c *Client) SearchOffers(ctx context.Context, q OfferQuery) ([]Offer, error) {
	body, err := c.get(ctx, "/v2/shopping/flight-offers", q.values())
	if err != nil {
		return nil, err
	}
	offers, err := parseOffers(body)
	if err != nil {
		return nil, upstream.New(ServiceName, upstream.Failed, err)
	}
	return offers, nil
}

type offersResponse struct {
	Data []struct {
		ID    string `json:"id"`
		Price struct {
			GrandTotal string `json:"grandTotal"`
			Currency   string `json:"currency"`
		} `json:"price"`
		Itineraries []struct {
			Duration string       `json:"duration"`
			Segments []rawSegment `json:"segments"`
		} `json:"itineraries"`
		ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
	} `json:"data"`
}

type rawSegment struct {
	Departure struct {
		IataCode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"departure"`
	Arrival struct {
		IataCode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"arrival"`
	CarrierCode string `json:"carrierCode"`
	Duration    string `json:"duration"`
}

func parseOffers(data []byte) ([]Offer, error) {
	var resp offersResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse flight offers: %w", err)
	}

	offers := make([]Offer, 0, len(resp.Data))
	for _, o := range resp.Data {
		if len(o.Itineraries) == 0 {
			continue
		}
		price, err := strconv.ParseFloat(o.Price.GrandTotal, 64)
		if err != nil || price <= 0 {
			continue
		}

		offer := Offer{
			ID:       o.ID,
			Price:    price,
			Currency: o.Price.Currency,
			Outbound: convertSegments(o.Itineraries[0].Segments),
			Stops:    max(0, len(o.Itineraries[0].Segments)-1),
		}
		if len(o.Itineraries) > 1 {
			offer.Inbound = convertSegments(o.Itineraries[1].Segments)
		}
		for _, it := range o.Itineraries {
			offer.DurationMinutes += ParseISODuration(it.Duration)
		}

		switch {
		case len(o.Itineraries[0].Segments) > 0:
			offer.Carrier = o.Itineraries[0].Segments[0].CarrierCode
		case len(o.ValidatingAirlineCodes) > 0:
			offer.Carrier = o.ValidatingAirlineCodes[0]
		}

		offers = append(offers, offer)
	}
	return offers, nil
}

const localLayout = "2006-01-02T15:04:05"

func convertSegments(raw []rawSegment) []models.Segment {
	segments := make([]models.Segment, 0, len(raw))
	for _, s := range raw {
		dep, _ := time.ParseInLocation(localLayout, s.Departure.At, timezone.LocationByAirport(s.Departure.IataCode))
		arr, _ := time.ParseInLocation(localLayout, s.Arrival.At, timezone.LocationByAirport(s.Arrival.IataCode))
		segments = append(segments, models.Segment{
			Origin:          s.Departure.IataCode,
			Destination:     s.Arrival.IataCode,
			DepartAt:        dep,
			ArriveAt:        arr,
			DurationMinutes: ParseISODuration(s.Duration),
		})
	}
	return segments
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?)?$`)

// ParseISODuration converts "PT5H30M" style durations to minutes. Unparseable
// input yields zero.
func ParseISODuration(s string) int {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	days, _ := strconv.Atoi(m[1])
	hours, _ := strconv.Atoi(m[2])
	mins, _ := strconv.Atoi(m[3])
	return days*24*60 + hours*60 + mins
}
