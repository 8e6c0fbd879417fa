package timezone

import (
	"strings"
	"sync"
	"time"
	_ "time/tzdata"
)

var airportZones = map[string]string{
	// North America
	"ATL": "America/New_York",
	"AUS": "America/Chicago",
	"BOS": "America/New_York",
	"CLT": "America/New_York",
	"DEN": "America/Denver",
	"DFW": "America/Chicago",
	"DTW": "America/Detroit",
	"EWR": "America/New_York",
	"IAH": "America/Chicago",
	"JFK": "America/New_York",
	"LAS": "America/Los_Angeles",
	"LAX": "America/Los_Angeles",
	"LGA": "America/New_York",
	"MCO": "America/New_York",
	"MIA": "America/New_York",
	"MSP": "America/Chicago",
	"ORD": "America/Chicago",
	"PHX": "America/Phoenix",
	"SEA": "America/Los_Angeles",
	"SFO": "America/Los_Angeles",
	"SLC": "America/Denver",
	"YVR": "America/Vancouver",
	"YYZ": "America/Toronto",
	"MEX": "America/Mexico_City",
	"CUN": "America/Cancun",
	"HNL": "Pacific/Honolulu",

	// Europe
	"AMS": "Europe/Amsterdam",
	"BCN": "Europe/Madrid",
	"CDG": "Europe/Paris",
	"FCO": "Europe/Rome",
	"FRA": "Europe/Berlin",
	"IST": "Europe/Istanbul",
	"LGW": "Europe/London",
	"LHR": "Europe/London",
	"MAD": "Europe/Madrid",
	"MUC": "Europe/Berlin",

	// Asia and Oceania
	"BKK": "Asia/Bangkok",
	"CGK": "Asia/Jakarta",
	"DPS": "Asia/Makassar",
	"DXB": "Asia/Dubai",
	"HND": "Asia/Tokyo",
	"NRT": "Asia/Tokyo",
	"SIN": "Asia/Singapore",
	"SYD": "Australia/Sydney",
}

var (
	mu        sync.RWMutex
	locations = make(map[string]*time.Location)
)

// ZoneByAirport returns the IANA zone name for an airport, or "UTC".
func ZoneByAirport(code string) string {
	if zone, ok := airportZones[strings.ToUpper(code)]; ok {
		return zone
	}
	return "UTC"
}

// LocationByAirport resolves the airport's zone, caching loaded locations.
func LocationByAirport(code string) *time.Location {
	zone := ZoneByAirport(code)

	mu.RLock()
	loc, ok := locations[zone]
	mu.RUnlock()
	if ok {
		return loc
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.UTC
	}

	mu.Lock()
	locations[zone] = loc
	mu.Unlock()
	return loc
}

// LocalTime builds a wall-clock time on the given date at the airport.
func LocalTime(date time.Time, airportCode string, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, LocationByAirport(airportCode))
}
