package planner

import (
	"fmt"
	"strings"

	"github.com/dharmasatrya/triotrip/pkg/currency"
)

const systemPrompt = `You are a travel planner. Reply with a single JSON object and nothing else.
The object must have this shape:
{"summary": string, "destination": string,
 "days": [{"day": number, "date": "YYYY-MM-DD", "title": string,
   "activities": [{"time": "HH:MM", "title": string, "description": string, "estimatedCost": number}]}],
 "flight": {"origin": IATA code, "destination": IATA code, "departDate": "YYYY-MM-DD", "returnDate": "YYYY-MM-DD", "adults": number},
 "estimatedBudget": {"flights": number, "lodging": number, "activities": number, "food": number, "total": number, "currency": string}}`

func buildPrompt(r Request) string {
	var b strings.Builder
	if r.Prompt != "" {
		b.WriteString(r.Prompt)
		b.WriteString("\n\n")
	}
	b.WriteString("Trip details:\n")
	if r.Origin != "" {
		fmt.Fprintf(&b, "- Departing from: %s\n", r.Origin)
	}
	if r.Destination != "" {
		fmt.Fprintf(&b, "- Destination: %s\n", r.Destination)
	}
	if r.StartDate != "" {
		fmt.Fprintf(&b, "- Start date: %s\n", r.StartDate)
	}
	if r.EndDate != "" {
		fmt.Fprintf(&b, "- End date: %s\n", r.EndDate)
	}
	fmt.Fprintf(&b, "- Travelers: %d\n", r.Travelers)
	if r.Budget > 0 {
		fmt.Fprintf(&b, "- Budget: %s total\n", currency.Format(r.Budget, r.Currency))
	}
	if len(r.Interests) > 0 {
		fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(r.Interests, ", "))
	}
	fmt.Fprintf(&b, "Quote all costs in %s.", r.Currency)
	return b.String()
}
