package entity

import "fmt"

// DefectReason describes why an occurrence could not be consolidated
type DefectReason string

const (
	DefectMissingFlightNumber   DefectReason = "missing_flight_number"
	DefectMalformedFlightNumber DefectReason = "malformed_flight_number"
	DefectMissingOrigin         DefectReason = "missing_origin"
	DefectMissingDestination    DefectReason = "missing_destination"
	DefectMissingAircraftModel  DefectReason = "missing_aircraft_model"
)

// RecordDefect reports a skipped occurrence by its position in the input
type RecordDefect struct {
	Index        int          `json:"index"`
	FlightNumber string       `json:"flight_number,omitempty"`
	Reason       DefectReason `json:"reason"`
}

func (d RecordDefect) Error() string {
	return fmt.Sprintf("record %d (%q): %s", d.Index, d.FlightNumber, d.Reason)
}
