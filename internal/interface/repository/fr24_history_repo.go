package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"flight-history-service/internal/domain/entity"
	"flight-history-service/internal/domain/repository"
	"flight-history-service/pkg/logger"
	"flight-history-service/pkg/utils"
)

// FR24HistoryRepository fetches flight history from the Flightradar24 flight list endpoint
type FR24HistoryRepository struct {
	apiURL     string
	siteURL    string
	pageSize   int
	maxPages   int
	httpClient *http.Client
	logger     logger.Logger
}

// NewFR24HistoryRepository creates a new history repository. pageSize and maxPages
// below 1 are treated as 1.
func NewFR24HistoryRepository(apiURL, siteURL string, pageSize, maxPages int, httpClient *http.Client, logger logger.Logger) repository.FlightHistoryRepository {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &FR24HistoryRepository{
		apiURL:     strings.TrimRight(apiURL, "/"),
		siteURL:    siteURL,
		pageSize:   max(pageSize, 1),
		maxPages:   max(maxPages, 1),
		httpClient: httpClient,
		logger:     logger,
	}
}

// Wire format of /common/v1/flight/list.json. Only the fields that feed a
// FlightOccurrence are decoded; every nested object may be null.
type fr24ListResponse struct {
	Result struct {
		Response struct {
			Data []fr24Flight `json:"data"`
			Page struct {
				Current int `json:"current"`
				Total   int `json:"total"`
			} `json:"page"`
		} `json:"response"`
	} `json:"result"`
}

type fr24Flight struct {
	Identification *struct {
		Number *struct {
			Default string `json:"default"`
		} `json:"number"`
		Callsign *string `json:"callsign"`
	} `json:"identification"`
	Aircraft *struct {
		Model *struct {
			Code string `json:"code"`
		} `json:"model"`
	} `json:"aircraft"`
	Airport *struct {
		Origin      *fr24Airport `json:"origin"`
		Destination *fr24Airport `json:"destination"`
	} `json:"airport"`
	Time *struct {
		Scheduled *fr24Times `json:"scheduled"`
	} `json:"time"`
}

type fr24Airport struct {
	Code *struct {
		ICAO string `json:"icao"`
	} `json:"code"`
}

type fr24Times struct {
	Departure *int64 `json:"departure"`
	Arrival   *int64 `json:"arrival"`
}

// HistoryByFlightNumber returns the decoded occurrences for a flight number, in
// the order the source delivered them.
func (r *FR24HistoryRepository) HistoryByFlightNumber(ctx context.Context, token string, flightNumber string) ([]entity.FlightOccurrence, error) {
	var occurrences []entity.FlightOccurrence

	for page := 1; page <= r.maxPages; page++ {
		resp, err := r.fetchPage(ctx, token, flightNumber, page)
		if err != nil {
			return nil, err
		}

		data := resp.Result.Response.Data
		for i := range data {
			occurrences = append(occurrences, toOccurrence(&data[i]))
		}

		r.logger.Debug("Fetched flight history page",
			"flightNumber", flightNumber,
			"page", page,
			"flights", len(data))

		pageInfo := resp.Result.Response.Page
		if len(data) == 0 || pageInfo.Total == 0 || pageInfo.Current >= pageInfo.Total {
			break
		}
	}

	if occurrences == nil {
		occurrences = []entity.FlightOccurrence{}
	}
	return occurrences, nil
}

func (r *FR24HistoryRepository) fetchPage(ctx context.Context, token, flightNumber string, page int) (*fr24ListResponse, error) {
	query := url.Values{
		"query":   {flightNumber},
		"fetchBy": {"flight"},
		"page":    {strconv.Itoa(page)},
		"limit":   {strconv.Itoa(r.pageSize)},
		"token":   {token},
	}
	endpoint := fmt.Sprintf("%s/common/v1/flight/list.json?%s", r.apiURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	utils.SetBrowserHeaders(req, r.siteURL)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		// url.Error carries the full URL, token included
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, fmt.Errorf("failed to send request: %w", urlErr.Err)
		}
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if err := utils.CheckResponse(resp); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body fr24ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode flight list page %d: %w", page, err)
	}
	return &body, nil
}

// toOccurrence maps a wire flight onto the domain record. Missing nested objects
// become empty fields; deciding whether the record is usable is left to the consolidator.
func toOccurrence(f *fr24Flight) entity.FlightOccurrence {
	var o entity.FlightOccurrence

	if id := f.Identification; id != nil {
		if id.Number != nil {
			o.FlightNumber = id.Number.Default
		}
		if id.Callsign != nil && *id.Callsign != "" {
			callsign := *id.Callsign
			o.Callsign = &callsign
		}
	}
	if f.Aircraft != nil && f.Aircraft.Model != nil {
		o.AircraftModelCode = f.Aircraft.Model.Code
	}
	if ap := f.Airport; ap != nil {
		o.OriginCode = ap.Origin.icao()
		o.DestinationCode = ap.Destination.icao()
	}
	if f.Time != nil && f.Time.Scheduled != nil {
		o.ScheduledDeparture = unixUTC(f.Time.Scheduled.Departure)
		o.ScheduledArrival = unixUTC(f.Time.Scheduled.Arrival)
	}
	return o
}

func (a *fr24Airport) icao() string {
	if a == nil || a.Code == nil {
		return ""
	}
	return a.Code.ICAO
}

func unixUTC(seconds *int64) *time.Time {
	if seconds == nil {
		return nil
	}
	t := time.Unix(*seconds, 0).UTC()
	return &t
}
