// internal/domain/entity/schedule_summary.go
package entity

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"flight-history-service/pkg/utils"
)

// RouteKey identifies a directional origin/destination pairing. EGLL-KJFK and
// KJFK-EGLL are different keys.
type RouteKey struct {
	Origin      string
	Destination string
}

func (k RouteKey) String() string {
	return k.Origin + "-" + k.Destination
}

// MarshalText lets RouteKey act as a JSON object key ("EGLL-KJFK").
func (k RouteKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses the ORIGIN-DEST form.
func (k *RouteKey) UnmarshalText(text []byte) error {
	origin, destination, found := strings.Cut(string(text), "-")
	if !found || origin == "" || destination == "" {
		return fmt.Errorf("invalid route key %q", string(text))
	}
	k.Origin = origin
	k.Destination = destination
	return nil
}

// TimeOfDay is a wall-clock time with second precision and no date or zone.
type TimeOfDay int32

// TimeOfDayOf returns the clock reading of t in t's own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay(h*3600 + m*60 + s)
}

// NewTimeOfDay builds a TimeOfDay from its components.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t/3600, (t%3600)/60, t%60)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := time.Parse(time.TimeOnly, string(text))
	if err != nil {
		return fmt.Errorf("invalid time of day %q: %w", string(text), err)
	}
	*t = TimeOfDayOf(parsed)
	return nil
}

// Weekday is a day of the week that serializes by name.
type Weekday time.Weekday

func (d Weekday) String() string {
	return time.Weekday(d).String()
}

func (d Weekday) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Weekday) UnmarshalText(text []byte) error {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.EqualFold(wd.String(), string(text)) {
			*d = Weekday(wd)
			return nil
		}
	}
	return fmt.Errorf("invalid weekday %q", string(text))
}

// ScheduleSummary aggregates every occurrence seen for one flight number and route.
type ScheduleSummary struct {
	Origin                  string               `json:"origin"`
	Destination             string               `json:"destination"`
	ScheduledDepartureTimes utils.Set[TimeOfDay] `json:"scheduled_departure_times"`
	ScheduledArrivalTimes   utils.Set[TimeOfDay] `json:"scheduled_arrival_times"`
	Weekdays                utils.Set[Weekday]   `json:"weekdays"`
	AircraftModels          utils.Set[string]    `json:"aircraft_models"`
	Callsigns               utils.Set[string]    `json:"callsigns"`
}

// RouteSummaries maps a route key to its summary under a single flight number.
type RouteSummaries map[RouteKey]*ScheduleSummary

// ConsolidatedResult maps flight number to its per-route summaries.
type ConsolidatedResult map[string]RouteSummaries

// FlightNumbers returns the flight numbers in ascending order.
func (r ConsolidatedResult) FlightNumbers() []string {
	numbers := make([]string, 0, len(r))
	for number := range r {
		numbers = append(numbers, number)
	}
	slices.Sort(numbers)
	return numbers
}

// Routes returns the route keys of a flight number ordered by origin, then destination.
func (r ConsolidatedResult) Routes(flightNumber string) []RouteKey {
	routes := r[flightNumber]
	keys := make([]RouteKey, 0, len(routes))
	for key := range routes {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b RouteKey) int {
		if c := strings.Compare(a.Origin, b.Origin); c != 0 {
			return c
		}
		return strings.Compare(a.Destination, b.Destination)
	})
	return keys
}

// Summary looks up the summary for a flight number and route.
func (r ConsolidatedResult) Summary(flightNumber string, key RouteKey) (*ScheduleSummary, bool) {
	summary, ok := r[flightNumber][key]
	return summary, ok
}

// RouteCount returns the number of (flight number, route) summaries.
func (r ConsolidatedResult) RouteCount() int {
	total := 0
	for _, routes := range r {
		total += len(routes)
	}
	return total
}
