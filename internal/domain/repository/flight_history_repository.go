package repository

import (
	"context"

	"flight-history-service/internal/domain/entity"
)

// FlightHistoryRepository defines the interface for retrieving historical flight occurrences
type FlightHistoryRepository interface {
	HistoryByFlightNumber(ctx context.Context, token string, flightNumber string) ([]entity.FlightOccurrence, error)
}
