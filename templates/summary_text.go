package templates

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"flight-history-service/internal/domain/entity"
)

const summaryTextTemplate = `{{- if not .Flights}}No flight history found.
{{else}}{{range .Flights}}Flight {{.Number}}
{{- range .Routes}}
  {{.Origin}} -> {{.Destination}}
    Departures: {{join .Departures}}
    Arrivals:   {{join .Arrivals}}
    Weekdays:   {{join .Weekdays}}
    Aircraft:   {{join .Models}}
    Callsigns:  {{join .Callsigns}}
{{- end}}
{{end}}{{end}}`

// TextSummaryRenderer writes a human-readable listing of the consolidated result
type TextSummaryRenderer struct {
	tmpl *template.Template
}

// NewTextSummaryRenderer creates a text renderer
func NewTextSummaryRenderer() *TextSummaryRenderer {
	tmpl := template.Must(template.New("summary").Funcs(template.FuncMap{
		"join": func(values []string) string {
			if len(values) == 0 {
				return "-"
			}
			return strings.Join(values, ", ")
		},
	}).Parse(summaryTextTemplate))

	return &TextSummaryRenderer{tmpl: tmpl}
}

// CanHandle determines if this renderer serves the given output format
func (r *TextSummaryRenderer) CanHandle(format string) bool {
	return strings.EqualFold(format, "text")
}

type textView struct {
	Flights []flightView
}

type flightView struct {
	Number string
	Routes []routeView
}

type routeView struct {
	Origin      string
	Destination string
	Departures  []string
	Arrivals    []string
	Weekdays    []string
	Models      []string
	Callsigns   []string
}

// Render writes flights and routes in sorted order
func (r *TextSummaryRenderer) Render(w io.Writer, result entity.ConsolidatedResult) error {
	view := textView{}
	for _, number := range result.FlightNumbers() {
		flight := flightView{Number: number}
		for _, key := range result.Routes(number) {
			summary := result[number][key]
			flight.Routes = append(flight.Routes, routeView{
				Origin:      summary.Origin,
				Destination: summary.Destination,
				Departures:  toStrings(summary.ScheduledDepartureTimes.Sorted()),
				Arrivals:    toStrings(summary.ScheduledArrivalTimes.Sorted()),
				Weekdays:    toStrings(summary.Weekdays.Sorted()),
				Models:      summary.AircraftModels.Sorted(),
				Callsigns:   summary.Callsigns.Sorted(),
			})
		}
		view.Flights = append(view.Flights, flight)
	}

	if err := r.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	return nil
}

func toStrings[T fmt.Stringer](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}
