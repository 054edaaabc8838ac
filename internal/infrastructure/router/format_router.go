package router

import (
	"fmt"

	"flight-history-service/internal/usecase"
	"flight-history-service/pkg/logger"
)

// FormatRouter routes an output format name to the renderer that serves it
type FormatRouter struct {
	renderers []usecase.SummaryRenderer
	logger    logger.Logger
}

// NewFormatRouter creates a new format router
func NewFormatRouter(logger logger.Logger) *FormatRouter {
	return &FormatRouter{
		renderers: make([]usecase.SummaryRenderer, 0),
		logger:    logger,
	}
}

// Register registers a renderer; earlier registrations win on overlap
func (r *FormatRouter) Register(renderer usecase.SummaryRenderer) {
	r.renderers = append(r.renderers, renderer)
	r.logger.Debug("Registered renderer", "renderer", fmt.Sprintf("%T", renderer))
}

// GetRenderer returns the renderer for a given format
func (r *FormatRouter) GetRenderer(format string) (usecase.SummaryRenderer, error) {
	for _, renderer := range r.renderers {
		if renderer.CanHandle(format) {
			return renderer, nil
		}
	}
	return nil, fmt.Errorf("unsupported output format %q", format)
}
