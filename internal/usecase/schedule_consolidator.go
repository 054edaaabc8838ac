package usecase

import (
	"strings"
	"unicode"

	"flight-history-service/internal/domain/entity"
	"flight-history-service/pkg/logger"
	"flight-history-service/pkg/metrics"
	"flight-history-service/pkg/utils"
)

// ScheduleConsolidator reduces flight occurrences into per-route schedule summaries
type ScheduleConsolidator struct {
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewScheduleConsolidator creates a new schedule consolidator
func NewScheduleConsolidator(logger logger.Logger, metrics *metrics.Metrics) *ScheduleConsolidator {
	return &ScheduleConsolidator{
		logger:  logger,
		metrics: metrics,
	}
}

// Consolidate folds occurrences into a ConsolidatedResult keyed by flight number and route.
//
// Malformed occurrences are skipped and returned as defects; they never abort the fold.
// The result does not depend on the order of occurrences.
func (c *ScheduleConsolidator) Consolidate(occurrences []entity.FlightOccurrence) (entity.ConsolidatedResult, []entity.RecordDefect) {
	result := make(entity.ConsolidatedResult)
	var defects []entity.RecordDefect

	for i, occurrence := range occurrences {
		if reason, ok := validateOccurrence(occurrence); !ok {
			defect := entity.RecordDefect{
				Index:        i,
				FlightNumber: occurrence.FlightNumber,
				Reason:       reason,
			}
			defects = append(defects, defect)
			c.logger.Warn("Skipping malformed flight occurrence",
				"index", i,
				"flightNumber", occurrence.FlightNumber,
				"reason", reason)
			c.metrics.OccurrencesSkipped.WithLabelValues(string(reason)).Inc()
			continue
		}

		routes, ok := result[occurrence.FlightNumber]
		if !ok {
			routes = make(entity.RouteSummaries)
			result[occurrence.FlightNumber] = routes
		}

		key := occurrence.RouteKey()
		if summary, ok := routes[key]; ok {
			MergeOccurrence(summary, occurrence)
		} else {
			routes[key] = SummarizeOccurrence(occurrence)
		}
		c.metrics.OccurrencesConsolidated.Inc()
	}

	c.metrics.RoutesSummarized.Set(float64(result.RouteCount()))
	c.logger.Debug("Consolidated flight occurrences",
		"occurrences", len(occurrences),
		"skipped", len(defects),
		"flightNumbers", len(result),
		"routes", result.RouteCount())

	return result, defects
}

// SummarizeOccurrence builds the initial summary for the first occurrence of a route.
func SummarizeOccurrence(occurrence entity.FlightOccurrence) *entity.ScheduleSummary {
	summary := &entity.ScheduleSummary{
		Origin:                  occurrence.OriginCode,
		Destination:             occurrence.DestinationCode,
		ScheduledDepartureTimes: utils.NewSet[entity.TimeOfDay](),
		ScheduledArrivalTimes:   utils.NewSet[entity.TimeOfDay](),
		Weekdays:                utils.NewSet[entity.Weekday](),
		AircraftModels:          utils.NewSet[string](),
		Callsigns:               utils.NewSet[string](),
	}
	MergeOccurrence(summary, occurrence)
	return summary
}

// MergeOccurrence adds whatever the occurrence carries to an existing summary.
// Origin and destination are left untouched.
func MergeOccurrence(summary *entity.ScheduleSummary, occurrence entity.FlightOccurrence) {
	if dep := occurrence.ScheduledDeparture; dep != nil {
		// Clock and weekday are read in the zone the source recorded.
		summary.ScheduledDepartureTimes.Add(entity.TimeOfDayOf(*dep))
		summary.Weekdays.Add(entity.Weekday(dep.Weekday()))
	}
	if arr := occurrence.ScheduledArrival; arr != nil {
		summary.ScheduledArrivalTimes.Add(entity.TimeOfDayOf(*arr))
	}
	summary.AircraftModels.Add(occurrence.AircraftModelCode)
	if cs := occurrence.Callsign; cs != nil && strings.TrimSpace(*cs) != "" {
		summary.Callsigns.Add(*cs)
	}
}

func validateOccurrence(occurrence entity.FlightOccurrence) (entity.DefectReason, bool) {
	switch {
	case strings.TrimSpace(occurrence.FlightNumber) == "":
		return entity.DefectMissingFlightNumber, false
	case strings.IndexFunc(occurrence.FlightNumber, unicode.IsSpace) >= 0:
		return entity.DefectMalformedFlightNumber, false
	case strings.TrimSpace(occurrence.OriginCode) == "":
		return entity.DefectMissingOrigin, false
	case strings.TrimSpace(occurrence.DestinationCode) == "":
		return entity.DefectMissingDestination, false
	case strings.TrimSpace(occurrence.AircraftModelCode) == "":
		return entity.DefectMissingAircraftModel, false
	}
	return "", true
}
