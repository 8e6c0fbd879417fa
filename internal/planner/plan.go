package planner

import (
	"errors"
	"strings"
	"time"

	"github.com/dharmasatrya/triotrip/internal/amadeus"
	"github.com/dharmasatrya/triotrip/internal/models"
)

var (
	ErrMissingPrompt = errors.New("prompt or destination is required")
	ErrInvalidDate   = errors.New("startDate and endDate must use YYYY-MM-DD")
	ErrMalformedPlan = errors.New("AI returned malformed plan")
)

type Request struct {
	Prompt      string   `json:"prompt"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Travelers   int      `json:"travelers"`
	Budget      float64  `json:"budget"`
	Currency    string   `json:"currency"`
	Interests   []string `json:"interests"`
}

func (r *Request) Validate() error {
	r.Prompt = strings.TrimSpace(r.Prompt)
	r.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	r.Destination = strings.TrimSpace(r.Destination)
	if r.Prompt == "" && r.Destination == "" {
		return ErrMissingPrompt
	}
	for _, d := range []string{r.StartDate, r.EndDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(models.DateLayout, d); err != nil {
			return ErrInvalidDate
		}
	}
	if r.Travelers < 1 {
		r.Travelers = 1
	}
	if r.Currency == "" {
		r.Currency = "USD"
	}
	return nil
}

type Activity struct {
	Time          string  `json:"time,omitempty"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	EstimatedCost float64 `json:"estimatedCost,omitempty"`
}

type Day struct {
	Day        int        `json:"day"`
	Date       string     `json:"date,omitempty"`
	Title      string     `json:"title,omitempty"`
	Activities []Activity `json:"activities"`
}

// FlightQuery is the flight the model suggests. Codes are IATA airports.
type FlightQuery struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	DepartDate  string `json:"departDate"`
	ReturnDate  string `json:"returnDate,omitempty"`
	Adults      int    `json:"adults,omitempty"`
}

func (q *FlightQuery) searchable() bool {
	return q != nil && len(q.Origin) == 3 && len(q.Destination) == 3 && q.DepartDate != ""
}

type Budget struct {
	Flights    float64 `json:"flights"`
	Lodging    float64 `json:"lodging"`
	Activities float64 `json:"activities"`
	Food       float64 `json:"food"`
	Total      float64 `json:"total"`
	Currency   string  `json:"currency"`
}

type Plan struct {
	ID              string          `json:"id"`
	Summary         string          `json:"summary"`
	Destination     string          `json:"destination"`
	Days            []Day           `json:"days"`
	Flight          *FlightQuery    `json:"flight,omitempty"`
	EstimatedBudget *Budget         `json:"estimatedBudget,omitempty"`
	Offers          []amadeus.Offer `json:"offers"`
	CreatedAt       time.Time       `json:"createdAt"`
}
