package providers

import (
	"time"

	"github.com/dharmasatrya/triotrip/internal/models"
	"github.com/dharmasatrya/triotrip/internal/timezone"
)

// Itineraries holds the canonical itinerary shapes for one request. The clock
// times are placeholders, not real schedules.
type Itineraries struct {
	Direct         []models.Segment
	ViaHubA        []models.Segment
	ViaHubB        []models.Segment
	TwoStop        []models.Segment
	InboundDirect  []models.Segment
	InboundOneStop []models.Segment
}

type leg struct {
	from, to        string
	depHour, depMin int
	arrHour, arrMin int
	durationMinutes int
}

var (
	hubsA = []string{"DEN", "SLC"}
	hubsB = []string{"DFW", "ORD"}
	hubsC = []string{"PHX", "SEA"}
)

// BuildItineraries materialises every outbound shape and, for round trips,
// both inbound shapes. Dates must already be validated.
func BuildItineraries(req models.SearchRequest) Itineraries {
	o, d := req.Origin, req.Destination
	hubA := pickHub(hubsA, o, d)
	hubB := pickHub(hubsB, o, d)
	hubC := pickHub(hubsC, o, d)

	depart, _ := time.Parse(models.DateLayout, req.DepartDate)

	it := Itineraries{
		Direct: buildLegs(depart, leg{o, d, 8, 0, 10, 15, 195}),
		ViaHubA: buildLegs(depart,
			leg{o, hubA, 6, 45, 8, 20, 115},
			leg{hubA, d, 9, 30, 11, 5, 125},
		),
		ViaHubB: buildLegs(depart,
			leg{o, hubB, 10, 10, 12, 0, 130},
			leg{hubB, d, 13, 15, 15, 5, 170},
		),
		TwoStop: buildLegs(depart,
			leg{o, hubA, 5, 50, 7, 25, 115},
			leg{hubA, hubC, 8, 40, 9, 55, 95},
			leg{hubC, d, 11, 20, 12, 30, 90},
		),
	}

	if req.IsRoundTrip() {
		ret, _ := time.Parse(models.DateLayout, *req.ReturnDate)
		it.InboundDirect = buildLegs(ret, leg{d, o, 17, 30, 22, 40, 190})
		it.InboundOneStop = buildLegs(ret,
			leg{d, hubA, 12, 10, 15, 25, 135},
			leg{hubA, o, 16, 40, 19, 50, 130},
		)
	}

	return it
}

func buildLegs(date time.Time, legs ...leg) []models.Segment {
	segments := make([]models.Segment, len(legs))
	for i, l := range legs {
		segments[i] = models.Segment{
			Origin:          l.from,
			Destination:     l.to,
			DepartAt:        timezone.LocalTime(date, l.from, l.depHour, l.depMin),
			ArriveAt:        timezone.LocalTime(date, l.to, l.arrHour, l.arrMin),
			DurationMinutes: l.durationMinutes,
		}
	}
	return segments
}

// pickHub returns the first hub that is neither endpoint of the trip.
func pickHub(hubs []string, origin, destination string) string {
	for _, h := range hubs {
		if h != origin && h != destination {
			return h
		}
	}
	return hubs[len(hubs)-1]
}

// TotalMinutes sums segment durations across any number of directions.
func TotalMinutes(directions ...[]models.Segment) int {
	total := 0
	for _, segs := range directions {
		for _, s := range segs {
			total += s.DurationMinutes
		}
	}
	return total
}
