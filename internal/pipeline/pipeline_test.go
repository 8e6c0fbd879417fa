package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/dharmasatrya/triotrip/internal/models"
	"github.com/dharmasatrya/triotrip/internal/providers"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

// scenarioA is the AUS→LAS round trip used throughout.
func scenarioA() models.SearchRequest {
	return models.SearchRequest{
		Origin:           "AUS",
		Destination:      "LAS",
		DepartDate:       "2026-01-10",
		ReturnDate:       strPtr("2026-01-15"),
		RoundTrip:        true,
		PassengersAdults: intPtr(1),
		Cabin:            "ECONOMY",
		IncludeHotel:     false,
		Currency:         "USD",
		Sort:             "cheapest",
	}
}

func run(t *testing.T, req models.SearchRequest) *models.SearchResponse {
	t.Helper()
	if err := req.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	resp, err := New(providers.NewSyntheticProvider(), Config{}).Search(context.Background(), req)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	return resp
}

func TestScenarioA_FlightOnlyCheapest(t *testing.T) {
	resp := run(t, scenarioA())

	if len(resp.FlightOnly) != 6 {
		t.Fatalf("expected 6 results, got %d", len(resp.FlightOnly))
	}
	if resp.Results != nil {
		t.Error("full results should be absent without includeHotel")
	}
	if resp.HotelWarning != nil {
		t.Error("no hotel warning expected")
	}
	if resp.SortBasis != models.BasisFlightOnly {
		t.Errorf("sortBasis = %q", resp.SortBasis)
	}

	for i, r := range resp.FlightOnly {
		if r.HotelTotal != 0 || r.TotalCost != r.FlightTotal {
			t.Errorf("result %d: hotel_total %v total_cost %v flight_total %v", i, r.HotelTotal, r.TotalCost, r.FlightTotal)
		}
		if i > 0 && r.DisplayTotal < resp.FlightOnly[i-1].DisplayTotal {
			t.Errorf("result %d breaks ascending display_total", i)
		}
		if i > 0 && r.Flight.Price < resp.FlightOnly[i-1].Flight.Price {
			t.Errorf("result %d breaks ascending flight price", i)
		}
		if r.Flight.DeepLinks["airline"] == "" {
			t.Errorf("result %d: missing airline deep link", i)
		}
	}
}

func TestScenarioA_JSONHasNoHotelFields(t *testing.T) {
	raw, err := json.Marshal(run(t, scenarioA()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var body struct {
		Results      []map[string]any `json:"results"`
		HotelWarning *string          `json:"hotelWarning"`
		SortBasis    string           `json:"sortBasis"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for i, r := range body.Results {
		for _, k := range []string{"hotel", "hotels", "hotelCheckIn", "hotelCheckOut", "nights"} {
			if _, ok := r[k]; ok {
				t.Errorf("result %d carries %q", i, k)
			}
		}
		if r["hotel_total"] != float64(0) {
			t.Errorf("result %d: hotel_total = %v", i, r["hotel_total"])
		}
	}
}

func TestScenarioB_DefaultedNights(t *testing.T) {
	req := scenarioA()
	req.IncludeHotel = true

	resp := run(t, req)

	if resp.HotelWarning == nil || *resp.HotelWarning == "" {
		t.Fatal("expected a hotel warning when nights is absent")
	}
	if len(resp.Results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(resp.Results))
	}
	for i, r := range resp.Results {
		if len(r.Hotels) != 3 {
			t.Errorf("result %d: %d hotels", i, len(r.Hotels))
		}
		for _, h := range r.Hotels {
			if h.Stars < 3 || h.Stars > 5 {
				t.Errorf("result %d: star rating %d", i, h.Stars)
			}
		}
		if r.Hotel == nil || r.HotelTotal != r.Hotel.Price {
			t.Errorf("result %d: hotel_total not taken from primary hotel", i)
		}
		if r.TotalCost != r.FlightTotal+r.HotelTotal {
			t.Errorf("result %d: total_cost %v != %v + %v", i, r.TotalCost, r.FlightTotal, r.HotelTotal)
		}
		if r.Nights != 1 {
			t.Errorf("result %d: nights = %d", i, r.Nights)
		}
		if r.Hotel.DeepLinks["booking"] == "" {
			t.Errorf("result %d: missing hotel deep link", i)
		}
	}
}

func TestExplicitNights_NoWarning(t *testing.T) {
	req := scenarioA()
	req.IncludeHotel = true
	req.Nights = intPtr(4)
	req.SortBasis = models.BasisBundle

	resp := run(t, req)
	if resp.HotelWarning != nil {
		t.Errorf("unexpected warning %q", *resp.HotelWarning)
	}
	for i, r := range resp.Results {
		if r.DisplayTotal != r.TotalCost {
			t.Errorf("result %d: bundle basis should display total_cost", i)
		}
		if i > 0 && r.DisplayTotal < resp.Results[i-1].DisplayTotal {
			t.Errorf("result %d breaks ascending bundle total", i)
		}
	}
}

func TestScenarioC_NonStopOnly(t *testing.T) {
	req := scenarioA()
	req.MaxStops = intPtr(0)

	resp := run(t, req)
	if len(resp.FlightOnly) != 2 {
		t.Fatalf("expected the two non-stop candidates, got %d", len(resp.FlightOnly))
	}
	for _, r := range resp.FlightOnly {
		if r.Flight.Stops != 0 {
			t.Errorf("%s has %d stops", r.Flight.Carrier, r.Flight.Stops)
		}
	}
}

func TestScenarioD_UnreachableBudget(t *testing.T) {
	req := scenarioA()
	req.MinBudget = floatPtr(1000)

	resp := run(t, req)
	if resp.Len() != 0 {
		t.Fatalf("expected no results, got %d", resp.Len())
	}

	raw, _ := json.Marshal(resp)
	var body map[string]json.RawMessage
	_ = json.Unmarshal(raw, &body)
	if string(body["results"]) != "[]" {
		t.Errorf("results should serialise as [], got %s", body["results"])
	}
}

func TestBudgetBounds(t *testing.T) {
	req := scenarioA()
	req.IncludeHotel = true
	req.Nights = intPtr(2)
	req.MinBudget = floatPtr(300)
	req.MaxBudget = floatPtr(700)

	for _, r := range run(t, req).Results {
		if r.TotalCost < 300 || r.TotalCost > 700 {
			t.Errorf("%s: total_cost %v outside budget", r.Flight.Carrier, r.TotalCost)
		}
	}
}

func TestFlexible_RefundableFirst(t *testing.T) {
	req := scenarioA()
	req.Sort = models.SortFlexible

	resp := run(t, req)
	seenNonRefundable := false
	for _, r := range resp.FlightOnly {
		if !r.Flight.Refundable {
			seenNonRefundable = true
		} else if seenNonRefundable {
			t.Fatalf("refundable %s after a non-refundable candidate", r.Flight.Carrier)
		}
	}
}

func TestIdempotent(t *testing.T) {
	req := scenarioA()
	req.IncludeHotel = true
	req.Sort = "unknown-sort"

	first, _ := json.Marshal(run(t, req))
	second, _ := json.Marshal(run(t, req))
	if string(first) != string(second) {
		t.Error("identical requests produced different responses")
	}
}

type failingProvider struct{ err error }

func (f failingProvider) Name() string { return "failing" }

func (f failingProvider) Candidates(context.Context, models.SearchRequest) ([]models.Candidate, error) {
	return nil, f.err
}

func TestSearch_ProviderError(t *testing.T) {
	boom := errors.New("boom")
	req := scenarioA()
	_ = req.Validate()

	_, err := New(failingProvider{err: boom}, Config{}).Search(context.Background(), req)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
	var pe *providers.ProviderError
	if !errors.As(err, &pe) || pe.Provider != "failing" {
		t.Errorf("expected ProviderError from failing, got %v", err)
	}
}

func TestShape_FlightOnlyProjection(t *testing.T) {
	full := models.ResultCandidate{
		Flight:       models.FlightCandidate{Carrier: "JetBlue", Price: 200},
		Hotel:        &models.HotelOption{Price: 90},
		FlightTotal:  200,
		HotelTotal:   90,
		TotalCost:    290,
		DisplayTotal: 200,
	}

	resp := Shape([]models.ResultCandidate{full}, models.SearchRequest{SortBasis: models.BasisFlightOnly})
	want := models.FlightOnlyResult{
		Flight:       full.Flight,
		FlightTotal:  200,
		HotelTotal:   0,
		TotalCost:    200,
		DisplayTotal: 200,
	}
	if !reflect.DeepEqual(resp.FlightOnly[0], want) {
		t.Errorf("projection = %+v, want %+v", resp.FlightOnly[0], want)
	}
}
