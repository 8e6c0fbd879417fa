package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/triotrip/internal/ai"
	"github.com/dharmasatrya/triotrip/internal/booking"
	"github.com/dharmasatrya/triotrip/internal/cache"
	"github.com/dharmasatrya/triotrip/internal/models"
	"github.com/dharmasatrya/triotrip/internal/pipeline"
	"github.com/dharmasatrya/triotrip/internal/planner"
	"github.com/dharmasatrya/triotrip/internal/providers"
	"github.com/dharmasatrya/triotrip/internal/store"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memCache) Set(_ context.Context, key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = body
	return nil
}

func (m *memCache) Close() error { return nil }

type stubCompleter struct {
	text string
	err  error
}

func (s stubCompleter) Complete(context.Context, string, string) (string, error) {
	return s.text, s.err
}

type server struct {
	e *echo.Echo
}

func newServer(c cache.Cache, completer ai.Completer, booker Booker) *server {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler

	search := NewSearchHandler(pipeline.New(providers.NewSyntheticProvider(), pipeline.Config{}), c)
	aiHandler := NewAIHandler(completer, planner.NewService(completer, nil, store.NewMemoryStore()))
	bookingHandler := NewBookingHandler(booker)

	api := e.Group("/api")
	api.POST("/search", search.Search)
	api.POST("/ai/complete", aiHandler.Complete)
	api.POST("/ai/plan-trip", aiHandler.PlanTrip)
	api.GET("/ai/plans/:id", aiHandler.GetPlan)
	api.POST("/booking/offer", bookingHandler.Offer)
	api.POST("/booking/order", bookingHandler.Order)
	api.POST("/booking/order/get", bookingHandler.OrderGet)
	api.POST("/itinerary/pdf", ItineraryPDFHandler)
	e.GET("/health", HealthHandler(map[string]string{"ai": "disabled"}))

	return &server{e: e}
}

func (s *server) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func defaultServer() *server {
	return newServer(cache.NewNoOpCache(), stubCompleter{}, booking.NewClient(booking.Config{}))
}

const scenarioA = `{
	"origin": "AUS", "destination": "LAS",
	"departDate": "2026-01-10", "returnDate": "2026-01-15", "roundTrip": true,
	"passengersAdults": 1, "cabin": "ECONOMY",
	"includeHotel": false, "currency": "USD", "sort": "cheapest"
}`

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var out models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("error body is not JSON: %s", rec.Body.String())
	}
	return out
}

func TestSearch_ScenarioA(t *testing.T) {
	rec := defaultServer().do(http.MethodPost, "/api/search", scenarioA)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Results      []map[string]json.RawMessage `json:"results"`
		SortBasis    string                       `json:"sortBasis"`
		HotelWarning *string                      `json:"hotelWarning"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(body.Results))
	}
	if body.SortBasis != "flightOnly" || body.HotelWarning != nil {
		t.Errorf("sortBasis=%q hotelWarning=%v", body.SortBasis, body.HotelWarning)
	}
	if _, ok := body.Results[0]["hotel"]; ok {
		t.Error("flight-only results must not carry a hotel")
	}

	var first struct {
		Carrier string `json:"carrier"`
	}
	json.Unmarshal(body.Results[0]["flight"], &first)
	if first.Carrier != "Southwest Airlines" {
		t.Errorf("cheapest carrier = %q", first.Carrier)
	}
}

func TestSearch_CacheReturnsIdenticalBytes(t *testing.T) {
	s := newServer(newMemCache(), stubCompleter{}, booking.NewClient(booking.Config{}))

	first := s.do(http.MethodPost, "/api/search", scenarioA)
	second := s.do(http.MethodPost, "/api/search", scenarioA)

	if first.Header().Get("X-Cache") != "MISS" || second.Header().Get("X-Cache") != "HIT" {
		t.Errorf("cache headers: %q then %q", first.Header().Get("X-Cache"), second.Header().Get("X-Cache"))
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached body differs from the fresh one")
	}
}

func TestSearch_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing origin", `{"destination":"LAS","departDate":"2026-01-10"}`, string(models.ErrMissingOrigin)},
		{"missing destination", `{"origin":"AUS","departDate":"2026-01-10"}`, string(models.ErrMissingDestination)},
		{"missing depart date", `{"origin":"AUS","destination":"LAS"}`, string(models.ErrMissingDepartDate)},
		{"round trip without return", `{"origin":"AUS","destination":"LAS","departDate":"2026-01-10","roundTrip":true}`, string(models.ErrMissingReturnDate)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := defaultServer().do(http.MethodPost, "/api/search", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
			got := decodeError(t, rec)
			if got.Error != "validation_error" || got.Message != tt.want {
				t.Errorf("got %+v", got)
			}
		})
	}
}

func TestSearch_MalformedBody(t *testing.T) {
	rec := defaultServer().do(http.MethodPost, "/api/search", `{"origin":`)
	if rec.Code != http.StatusBadRequest || decodeError(t, rec).Error != "invalid_request" {
		t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestAIComplete(t *testing.T) {
	tests := []struct {
		name      string
		completer stubCompleter
		status    int
		body      string
	}{
		{"json", stubCompleter{text: "```json\n{\"tips\":[\"pack light\"]}\n```"}, http.StatusOK, `{"data":{"tips":["pack light"]}}`},
		{"prose", stubCompleter{text: "Pack light."}, http.StatusOK, `{"raw":"Pack light."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(cache.NewNoOpCache(), tt.completer, booking.NewClient(booking.Config{}))
			rec := s.do(http.MethodPost, "/api/ai/complete", `{"prompt":"tips?"}`)
			if rec.Code != tt.status {
				t.Fatalf("status = %d", rec.Code)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.body {
				t.Errorf("body = %s, want %s", got, tt.body)
			}
		})
	}
}

func TestAIComplete_Disabled(t *testing.T) {
	completer := ai.NewClient(ai.Config{Enabled: false})
	s := newServer(cache.NewNoOpCache(), completer, booking.NewClient(booking.Config{}))

	rec := s.do(http.MethodPost, "/api/ai/complete", `{"prompt":"hi"}`)
	if rec.Code != http.StatusServiceUnavailable || decodeError(t, rec).Error != "disabled" {
		t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodPost, "/api/ai/complete", `{"prompt":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty prompt status = %d", rec.Code)
	}
}

func TestPlanTrip(t *testing.T) {
	plan := `{"summary":"Desert weekend","destination":"Las Vegas","days":[{"day":1,"activities":[{"title":"Hoover Dam"}]}]}`
	s := newServer(cache.NewNoOpCache(), stubCompleter{text: plan}, booking.NewClient(booking.Config{}))

	rec := s.do(http.MethodPost, "/api/ai/plan-trip", `{"destination":"Las Vegas","travelers":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created planner.Plan
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil || created.ID == "" {
		t.Fatalf("decode plan: %v %s", err, rec.Body.String())
	}

	got := s.do(http.MethodGet, "/api/ai/plans/"+created.ID, "")
	if got.Code != http.StatusOK || !strings.Contains(got.Body.String(), "Desert weekend") {
		t.Errorf("stored plan: %d %s", got.Code, got.Body.String())
	}

	missing := s.do(http.MethodGet, "/api/ai/plans/8c4e8a1e-4d0a-4c35-9a43-1f0f3f2a7b11", "")
	if missing.Code != http.StatusNotFound {
		t.Errorf("missing plan status = %d", missing.Code)
	}
}

func TestPlanTrip_Errors(t *testing.T) {
	s := newServer(cache.NewNoOpCache(), stubCompleter{text: "Sounds fun!"}, booking.NewClient(booking.Config{}))

	rec := s.do(http.MethodPost, "/api/ai/plan-trip", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing prompt status = %d", rec.Code)
	}

	rec = s.do(http.MethodPost, "/api/ai/plan-trip", `{"prompt":"surprise me"}`)
	if rec.Code != http.StatusBadGateway || decodeError(t, rec).Message != "AI returned malformed plan" {
		t.Errorf("malformed plan: %d %s", rec.Code, rec.Body.String())
	}
}

func TestBooking(t *testing.T) {
	upstreamSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/air/offers/off_1":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{"id":"off_1"}}`))
		case "/air/orders":
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"errors":[{"title":"passenger missing"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstreamSrv.Close()

	s := newServer(cache.NewNoOpCache(), stubCompleter{}, booking.NewClient(booking.Config{BaseURL: upstreamSrv.URL, Token: "tok"}))

	rec := s.do(http.MethodPost, "/api/booking/offer", `{"offerId":"off_1"}`)
	if rec.Code != http.StatusOK || rec.Body.String() != `{"data":{"id":"off_1"}}` {
		t.Errorf("offer: %d %s", rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodPost, "/api/booking/order", `{"data":{}}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("order should relay the upstream status, got %d", rec.Code)
	}

	rec = s.do(http.MethodPost, "/api/booking/order/get", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing orderId status = %d", rec.Code)
	}

	rec = s.do(http.MethodPost, "/api/booking/order", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid order body status = %d", rec.Code)
	}
}

func TestBooking_Misconfigured(t *testing.T) {
	rec := defaultServer().do(http.MethodPost, "/api/booking/offer", `{"offerId":"off_1"}`)
	if rec.Code != http.StatusInternalServerError || decodeError(t, rec).Error != "misconfigured" {
		t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestItineraryPDF(t *testing.T) {
	body := `{
		"origin": "AUS", "destination": "LAS",
		"result": {
			"flight": {"carrier": "Delta Air Lines", "cabin": "ECONOMY", "currency": "USD",
				"outbound": [{"origin": "AUS", "destination": "LAS",
					"departAt": "2026-01-10T08:00:00-06:00", "arriveAt": "2026-01-10T09:15:00-08:00",
					"durationMinutes": 195}]},
			"flight_total": 240, "total_cost": 240, "display_total": 240,
			"passengers": {"adults": 1}
		}
	}`
	rec := defaultServer().do(http.MethodPost, "/api/itinerary/pdf", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(echo.HeaderContentType) != "application/pdf" || !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Errorf("not a PDF response: %q", rec.Header().Get(echo.HeaderContentType))
	}

	rec = defaultServer().do(http.MethodPost, "/api/itinerary/pdf", `{"result":{}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty result status = %d", rec.Code)
	}
}

func TestHealthAndUnknownRoute(t *testing.T) {
	s := defaultServer()

	rec := s.do(http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ai":"disabled"`) {
		t.Errorf("health: %d %s", rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodGet, "/api/nowhere", "")
	if rec.Code != http.StatusNotFound || decodeError(t, rec).Error != "not_found" {
		t.Errorf("unknown route: %d %s", rec.Code, rec.Body.String())
	}
}
