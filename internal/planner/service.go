package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/dharmasatrya/triotrip/internal/ai"
	"github.com/dharmasatrya/triotrip/internal/amadeus"
	"github.com/dharmasatrya/triotrip/internal/store"
)

const maxOffers = 5

// OfferSearcher is the part of the Amadeus client the planner uses.
type OfferSearcher interface {
	Configured() bool
	SearchOffers(ctx context.Context, q amadeus.OfferQuery) ([]amadeus.Offer, error)
}

type Service struct {
	completer ai.Completer
	offers    OfferSearcher
	plans     store.PlanStore
	now       func() time.Time
}

// NewService wires the planner. offers may be nil, in which case plans are
// never enriched with live fares.
func NewService(completer ai.Completer, offers OfferSearcher, plans store.PlanStore) *Service {
	return &Service{
		completer: completer,
		offers:    offers,
		plans:     plans,
		now:       time.Now,
	}
}

// Plan asks the model for an itinerary, attaches live offers when it can,
// and stores the result.
func (s *Service) Plan(ctx context.Context, req Request) (*Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	text, err := s.completer.Complete(ctx, buildPrompt(req), systemPrompt)
	if err != nil {
		return nil, err
	}

	plan, err := parsePlan(text)
	if err != nil {
		log.Printf("planner: %v", err)
		return nil, ErrMalformedPlan
	}
	fillFromRequest(plan, req)

	plan.Offers = s.enrich(ctx, plan.Flight, req)
	plan.ID = uuid.New().String()
	plan.CreatedAt = s.now().UTC()

	raw, err := json.Marshal(plan)
	if err != nil {
		return nil, err
	}
	if err := s.plans.Save(ctx, plan.ID, raw); err != nil {
		return nil, err
	}

	return plan, nil
}

// Get returns a stored plan as saved.
func (s *Service) Get(ctx context.Context, id string) (json.RawMessage, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, store.ErrNotFound
	}
	return s.plans.Get(ctx, id)
}

func parsePlan(text string) (*Plan, error) {
	js, ok := ai.ExtractJSON(text)
	if !ok {
		return nil, errors.New("no JSON object in completion")
	}

	var plan Plan
	if err := json.Unmarshal([]byte(js), &plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	if len(plan.Days) == 0 {
		return nil, errors.New("plan has no days")
	}
	for i := range plan.Days {
		if plan.Days[i].Day == 0 {
			plan.Days[i].Day = i + 1
		}
		if plan.Days[i].Activities == nil {
			plan.Days[i].Activities = []Activity{}
		}
	}
	return &plan, nil
}

func fillFromRequest(plan *Plan, req Request) {
	if plan.Destination == "" {
		plan.Destination = req.Destination
	}
	if plan.Flight == nil && len(req.Origin) == 3 && len(req.Destination) == 3 && req.StartDate != "" {
		plan.Flight = &FlightQuery{
			Origin:      req.Origin,
			Destination: req.Destination,
			DepartDate:  req.StartDate,
			ReturnDate:  req.EndDate,
		}
	}
	if plan.Flight != nil && plan.Flight.Adults < 1 {
		plan.Flight.Adults = req.Travelers
	}
	if plan.EstimatedBudget != nil && plan.EstimatedBudget.Currency == "" {
		plan.EstimatedBudget.Currency = req.Currency
	}
}

func (s *Service) enrich(ctx context.Context, q *FlightQuery, req Request) []amadeus.Offer {
	if s.offers == nil || !s.offers.Configured() || !q.searchable() {
		return []amadeus.Offer{}
	}

	offers, err := s.offers.SearchOffers(ctx, amadeus.OfferQuery{
		Origin:      q.Origin,
		Destination: q.Destination,
		DepartDate:  q.DepartDate,
		ReturnDate:  q.ReturnDate,
		Adults:      q.Adults,
		Currency:    req.Currency,
		Max:         maxOffers,
	})
	if err != nil {
		log.Printf("planner: offer enrichment skipped: %v", err)
		return []amadeus.Offer{}
	}
	if len(offers) > maxOffers {
		offers = offers[:maxOffers]
	}
	if offers == nil {
		offers = []amadeus.Offer{}
	}
	return offers
}
