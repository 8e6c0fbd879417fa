package itinerary

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/dharmasatrya/triotrip/internal/models"
	"github.com/dharmasatrya/triotrip/pkg/currency"
)

var ErrNoFlight = errors.New("result has no flight to export")

// Document is one selected search result plus the labels shown in the header.
type Document struct {
	TravelerName string                 `json:"travelerName"`
	Origin       string                 `json:"origin"`
	Destination  string                 `json:"destination"`
	Result       models.ResultCandidate `json:"result"`
}

func (d Document) Validate() error {
	if d.Result.Flight.Carrier == "" || len(d.Result.Flight.Outbound) == 0 {
		return ErrNoFlight
	}
	return nil
}

// Render lays the document out on a single A4 page.
func Render(d Document, generated time.Time) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	code := d.Result.Flight.Currency
	if code == "" {
		code = "USD"
	}
	money := func(v float64) string { return tr(currency.Format(v, code)) }

	// header
	pdf.SetFillColor(16, 42, 67)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(170, 10, "TrioTrip Itinerary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(20)
	pdf.CellFormat(170, 6, tr(route(d)), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(36)

	section := func(title string) {
		pdf.SetFillColor(16, 42, 67)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(120, 7, tr(value), "", 1, "L", false, 0, "")
	}

	name := d.TravelerName
	if name == "" {
		name = "Guest Traveler"
	}
	section("Traveler")
	row("Name", name)
	row("Passengers", passengers(d.Result.Passengers))
	row("Generated", generated.UTC().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	f := d.Result.Flight
	section("Flight")
	row("Airline", fmt.Sprintf("%s (%s)", f.Carrier, strings.ToLower(f.Cabin)))
	row("Stops", stops(f.Stops))
	for i, seg := range f.Outbound {
		row(fmt.Sprintf("Outbound %d", i+1), leg(seg))
	}
	for i, seg := range f.Inbound {
		row(fmt.Sprintf("Return %d", i+1), leg(seg))
	}
	if f.DurationMinutes > 0 {
		row("Total time", hoursMinutes(f.DurationMinutes))
	}
	var perks []string
	if f.Refundable {
		perks = append(perks, "refundable")
	}
	if f.Greener {
		perks = append(perks, "lower emissions")
	}
	if len(perks) > 0 {
		row("Fare", strings.Join(perks, ", "))
	}
	pdf.Ln(4)

	if h := d.Result.Hotel; h != nil {
		section("Hotel")
		row("Hotel", fmt.Sprintf("%s (%d stars)", h.Name, h.Stars))
		row("City", h.City)
		if d.Result.HotelCheckIn != "" {
			row("Check-in", d.Result.HotelCheckIn)
			row("Check-out", d.Result.HotelCheckOut)
		}
		if d.Result.Nights > 0 {
			row("Nights", fmt.Sprintf("%d", d.Result.Nights))
		}
		pdf.Ln(4)
	}

	section("Cost")
	row("Flight", money(d.Result.FlightTotal))
	if d.Result.Hotel != nil {
		row("Hotel", money(d.Result.HotelTotal))
	}
	total := d.Result.TotalCost
	if total == 0 {
		total = d.Result.FlightTotal + d.Result.HotelTotal
	}
	pdf.SetFillColor(230, 236, 242)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(50, 9, "TOTAL", "", 0, "L", true, 0, "")
	pdf.CellFormat(120, 9, money(total), "", 1, "L", true, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(170, 4, "This is not a booking confirmation. Fares and hotel rates are indicative and may change before purchase.", "", "L", false)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render itinerary: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write itinerary: %w", err)
	}
	return buf.Bytes(), nil
}

func route(d Document) string {
	origin, dest := d.Origin, d.Destination
	if origin == "" {
		origin = d.Result.Flight.Outbound[0].Origin
	}
	if dest == "" {
		dest = d.Result.Flight.Outbound[len(d.Result.Flight.Outbound)-1].Destination
	}
	if len(d.Result.Flight.Inbound) > 0 {
		return origin + " - " + dest + " - " + origin
	}
	return origin + " - " + dest
}

func leg(s models.Segment) string {
	return fmt.Sprintf("%s %s - %s %s (%s)",
		s.Origin, s.DepartAt.Format("Mon 02 Jan 15:04"),
		s.Destination, s.ArriveAt.Format("15:04"),
		hoursMinutes(s.DurationMinutes))
}

func hoursMinutes(m int) string {
	return fmt.Sprintf("%dh %02dm", m/60, m%60)
}

func stops(n int) string {
	switch n {
	case 0:
		return "Nonstop"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", n)
	}
}

func passengers(p models.PassengerContext) string {
	s := fmt.Sprintf("%d adult", p.Adults)
	if p.Adults != 1 {
		s += "s"
	}
	if p.Children > 0 {
		s += fmt.Sprintf(", %d children", p.Children)
	}
	if p.Infants > 0 {
		s += fmt.Sprintf(", %d infants", p.Infants)
	}
	return s
}
