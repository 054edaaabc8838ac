// internal/domain/entity/flight_occurrence.go
package entity

import (
	"time"
)

// FlightOccurrence is one historical operation of a flight leg as reported by the
// history source. Records are treated as read-only once decoded.
type FlightOccurrence struct {
	FlightNumber       string     `json:"flight_number"`
	OriginCode         string     `json:"origin_code"`
	DestinationCode    string     `json:"destination_code"`
	ScheduledDeparture *time.Time `json:"scheduled_departure,omitempty"`
	ScheduledArrival   *time.Time `json:"scheduled_arrival,omitempty"`
	AircraftModelCode  string     `json:"aircraft_model_code"`
	Callsign           *string    `json:"callsign,omitempty"`
}

// RouteKey returns the directional origin/destination key of the occurrence.
func (o FlightOccurrence) RouteKey() RouteKey {
	return RouteKey{Origin: o.OriginCode, Destination: o.DestinationCode}
}
