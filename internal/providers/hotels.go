package providers

import (
	"math"
	"sort"

	"github.com/dharmasatrya/triotrip/internal/models"
)

const hotelsPerCandidate = 3

var hotelNames = []string{
	"Grand Plaza Hotel",
	"Riverside Suites",
	"Central Park Inn",
	"Harbor View Resort",
	"Skyline Boutique Hotel",
	"Garden Court Hotel",
	"Summit Lodge",
}

// buildHotels synthesises three stays for the candidate at index, cheapest
// first. Stars stay within [3, 5].
func buildHotels(index, seed, nights int, city, currency string) []models.HotelOption {
	perNightBase := 70 + seed/3

	hotels := make([]models.HotelOption, hotelsPerCandidate)
	for j := 0; j < hotelsPerCandidate; j++ {
		stars := 3 + (index+j)%3
		perNight := perNightBase + stars*18 + j*9 - index*4
		hotels[j] = models.HotelOption{
			Name:     hotelNames[(index*hotelsPerCandidate+j)%len(hotelNames)],
			Stars:    stars,
			City:     city,
			Price:    math.Round(float64(perNight * nights)),
			Currency: currency,
		}
	}

	sort.SliceStable(hotels, func(a, b int) bool {
		return hotels[a].Price < hotels[b].Price
	})
	return hotels
}

// primaryHotel picks the cheapest hotel meeting minStars, or the cheapest of
// all when none qualifies.
func primaryHotel(hotels []models.HotelOption, minStars int) *models.HotelOption {
	if len(hotels) == 0 {
		return nil
	}

	var best *models.HotelOption
	for i := range hotels {
		h := &hotels[i]
		if h.Stars < minStars {
			continue
		}
		if best == nil || h.Price < best.Price {
			best = h
		}
	}
	if best == nil {
		best = &hotels[0]
		for i := range hotels {
			if hotels[i].Price < best.Price {
				best = &hotels[i]
			}
		}
	}

	primary := *best
	return &primary
}
