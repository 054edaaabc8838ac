package usecase

import (
	"io"

	"flight-history-service/internal/domain/entity"
)

// SummaryRenderer defines the interface for output formats of a consolidated result
type SummaryRenderer interface {
	CanHandle(format string) bool
	Render(w io.Writer, result entity.ConsolidatedResult) error
}
