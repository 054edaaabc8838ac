package usecase

import (
	"context"
	"fmt"
	"time"

	"flight-history-service/internal/domain/entity"
	"flight-history-service/internal/domain/repository"
	"flight-history-service/pkg/logger"
	"flight-history-service/pkg/metrics"

	"golang.org/x/oauth2"
)

// Fetch stages reported by FetchError
const (
	StageLogin   = "login"
	StageHistory = "history"
)

// FetchError is returned when retrieving history fails, before any aggregation happens
type FetchError struct {
	Stage        string
	FlightNumber string
	Err          error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s for %s: %v", e.Stage, e.FlightNumber, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FlightHistoryService runs the fetch, consolidate pipeline for one flight number
type FlightHistoryService struct {
	tokenSource  oauth2.TokenSource
	historyRepo  repository.FlightHistoryRepository
	consolidator *ScheduleConsolidator
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewFlightHistoryService creates a new flight history service
func NewFlightHistoryService(
	tokenSource oauth2.TokenSource,
	historyRepo repository.FlightHistoryRepository,
	consolidator *ScheduleConsolidator,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *FlightHistoryService {
	return &FlightHistoryService{
		tokenSource:  tokenSource,
		historyRepo:  historyRepo,
		consolidator: consolidator,
		metrics:      metrics,
		logger:       logger,
	}
}

// Summarize fetches the history of flightNumber and consolidates it.
// Any returned error is a *FetchError; skipped records are reported as defects.
func (s *FlightHistoryService) Summarize(ctx context.Context, flightNumber string) (entity.ConsolidatedResult, []entity.RecordDefect, error) {
	log := s.logger.With("flightNumber", flightNumber)
	start := time.Now()

	token, err := s.tokenSource.Token()
	if err != nil {
		return nil, nil, s.fetchFailed(StageLogin, flightNumber, err)
	}

	occurrences, err := s.historyRepo.HistoryByFlightNumber(ctx, token.AccessToken, flightNumber)
	if err != nil {
		return nil, nil, s.fetchFailed(StageHistory, flightNumber, err)
	}
	s.metrics.FetchTime.Observe(time.Since(start).Seconds())
	s.metrics.OccurrencesFetched.Add(float64(len(occurrences)))
	log.Info("Fetched flight history", "occurrences", len(occurrences))

	result, defects := s.consolidator.Consolidate(occurrences)
	log.Info("Flight history consolidated",
		"flightNumbers", len(result),
		"routes", result.RouteCount(),
		"skipped", len(defects))

	return result, defects, nil
}

func (s *FlightHistoryService) fetchFailed(stage, flightNumber string, err error) error {
	s.metrics.ErrorsCount.WithLabelValues(stage).Inc()
	return &FetchError{Stage: stage, FlightNumber: flightNumber, Err: err}
}
