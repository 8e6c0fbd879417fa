package providers

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dharmasatrya/triotrip/internal/models"
)

// candidateNamespace scopes the name-based candidate IDs.
var candidateNamespace = uuid.MustParse("6f1c2d4e-8a7b-4c3d-9e2f-1a0b3c5d7e9f")

type slot struct {
	carrier    string
	stops      int
	refundable bool
	greener    bool
	offset     int
	outbound   func(Itineraries) []models.Segment
	inbound    func(Itineraries) []models.Segment
}

var slots = []slot{
	{
		carrier: "Delta Air Lines", stops: 0, refundable: true, greener: false, offset: 60,
		outbound: func(it Itineraries) []models.Segment { return it.Direct },
		inbound:  func(it Itineraries) []models.Segment { return it.InboundDirect },
	},
	{
		carrier: "Southwest Airlines", stops: 1, refundable: true, greener: true, offset: -30,
		outbound: func(it Itineraries) []models.Segment { return it.ViaHubA },
		inbound:  func(it Itineraries) []models.Segment { return it.InboundOneStop },
	},
	{
		carrier: "United Airlines", stops: 1, refundable: false, greener: true, offset: 10,
		outbound: func(it Itineraries) []models.Segment { return it.ViaHubB },
		inbound:  func(it Itineraries) []models.Segment { return it.InboundOneStop },
	},
	{
		carrier: "American Airlines", stops: 0, refundable: false, greener: false, offset: 5,
		outbound: func(it Itineraries) []models.Segment { return it.Direct },
		inbound:  func(it Itineraries) []models.Segment { return it.InboundDirect },
	},
	{
		carrier: "Alaska Airlines", stops: 2, refundable: true, greener: false, offset: 35,
		outbound: func(it Itineraries) []models.Segment { return it.TwoStop },
		inbound:  func(it Itineraries) []models.Segment { return it.InboundOneStop },
	},
	{
		carrier: "JetBlue", stops: 1, refundable: false, greener: true, offset: -10,
		outbound: func(it Itineraries) []models.Segment { return it.ViaHubA },
		inbound:  func(it Itineraries) []models.Segment { return it.InboundDirect },
	},
}

// SyntheticProvider fabricates a fixed set of six deterministic candidates.
type SyntheticProvider struct{}

func NewSyntheticProvider() *SyntheticProvider {
	return &SyntheticProvider{}
}

func (p *SyntheticProvider) Name() string {
	return "synthetic"
}

func (p *SyntheticProvider) Candidates(ctx context.Context, req models.SearchRequest) ([]models.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seed := FareSeed(req.Origin, req.Destination, req.DepartDate)
	it := BuildItineraries(req)
	nights, _ := req.StayNights()
	roundTrip := req.IsRoundTrip()

	candidates := make([]models.Candidate, len(slots))
	for i, s := range slots {
		outbound := s.outbound(it)
		var inbound []models.Segment
		if roundTrip {
			inbound = s.inbound(it)
		}

		flight := models.FlightCandidate{
			ID:              candidateID(req, i),
			Carrier:         s.carrier,
			Cabin:           req.Cabin,
			Stops:           s.stops,
			Refundable:      s.refundable,
			Greener:         s.greener,
			Price:           float64(seed + s.offset),
			Currency:        req.Currency,
			Outbound:        outbound,
			Inbound:         inbound,
			DurationMinutes: TotalMinutes(outbound, inbound),
		}

		c := models.Candidate{Flight: flight}
		if req.IncludeHotel {
			c.Hotels = buildHotels(i, seed, nights, req.Destination, req.Currency)
			c.Hotel = primaryHotel(c.Hotels, req.MinStars())
		}
		candidates[i] = c
	}

	return candidates, nil
}

func candidateID(req models.SearchRequest, index int) string {
	ret := ""
	if req.ReturnDate != nil {
		ret = *req.ReturnDate
	}
	name := fmt.Sprintf("%s|%s|%s|%s|%s|%d", req.Origin, req.Destination, req.DepartDate, ret, req.Cabin, index)
	return uuid.NewSHA1(candidateNamespace, []byte(name)).String()
}
