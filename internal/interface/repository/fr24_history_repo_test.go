package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight-history-service/pkg/logger"
	"flight-history-service/pkg/utils"
)

const flightListPage = `{
  "result": {
    "response": {
      "data": [
        {
          "identification": {"number": {"default": "BA123", "alternative": null}, "callsign": "BAW123"},
          "aircraft": {"model": {"code": "B77W", "text": "Boeing 777-36N(ER)"}, "registration": "G-STBA"},
          "airline": {"name": "British Airways", "code": {"iata": "BA", "icao": "BAW"}},
          "airport": {
            "origin": {"name": "London Heathrow", "code": {"iata": "LHR", "icao": "EGLL"}},
            "destination": {"name": "New York JFK", "code": {"iata": "JFK", "icao": "KJFK"}}
          },
          "time": {
            "scheduled": {"departure": 1704103200, "arrival": 1704130200},
            "real": {"departure": null, "arrival": null},
            "estimated": {"departure": null, "arrival": null}
          }
        },
        {
          "identification": {"number": {"default": "BA123"}, "callsign": null},
          "aircraft": {"model": {"code": "B772"}},
          "airport": {
            "origin": {"code": {"icao": "KJFK"}},
            "destination": {"code": {"icao": "EGLL"}}
          },
          "time": {"scheduled": {"departure": null, "arrival": 1704180000}}
        },
        {
          "identification": {"number": {"default": "BA123"}},
          "aircraft": null,
          "airport": {"origin": null, "destination": {"code": {"icao": "EGLL"}}},
          "time": null
        }
      ],
      "page": {"current": 1, "total": 1}
    }
  }
}`

func newTestRepo(url string, pageSize, maxPages int) *FR24HistoryRepository {
	return NewFR24HistoryRepository(url, "https://www.flightradar24.com", pageSize, maxPages, nil, logger.NewNopLogger()).(*FR24HistoryRepository)
}

func TestHistoryByFlightNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/common/v1/flight/list.json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "BA123", q.Get("query"))
		assert.Equal(t, "flight", q.Get("fetchBy"))
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "25", q.Get("limit"))
		assert.Equal(t, "secret-token", q.Get("token"))
		assert.Equal(t, "https://www.flightradar24.com", r.Header.Get("Origin"))
		assert.Equal(t, "https://www.flightradar24.com", r.Header.Get("Referer"))
		assert.Equal(t, utils.BROWSER_USER_AGENT, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, flightListPage)
	}))
	defer srv.Close()

	repo := newTestRepo(srv.URL, 25, 1)
	occurrences, err := repo.HistoryByFlightNumber(context.Background(), "secret-token", "BA123")
	require.NoError(t, err)
	require.Len(t, occurrences, 3)

	first := occurrences[0]
	assert.Equal(t, "BA123", first.FlightNumber)
	assert.Equal(t, "EGLL", first.OriginCode)
	assert.Equal(t, "KJFK", first.DestinationCode)
	assert.Equal(t, "B77W", first.AircraftModelCode)
	require.NotNil(t, first.Callsign)
	assert.Equal(t, "BAW123", *first.Callsign)
	require.NotNil(t, first.ScheduledDeparture)
	assert.True(t, time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC).Equal(*first.ScheduledDeparture))
	assert.Equal(t, time.UTC, first.ScheduledDeparture.Location())
	require.NotNil(t, first.ScheduledArrival)
	assert.True(t, time.Date(2024, time.January, 1, 17, 30, 0, 0, time.UTC).Equal(*first.ScheduledArrival))

	second := occurrences[1]
	assert.Equal(t, "KJFK", second.OriginCode)
	assert.Nil(t, second.Callsign)
	assert.Nil(t, second.ScheduledDeparture)
	assert.NotNil(t, second.ScheduledArrival)

	// Sparse records are passed through; the consolidator decides they are unusable.
	third := occurrences[2]
	assert.Equal(t, "BA123", third.FlightNumber)
	assert.Empty(t, third.OriginCode)
	assert.Equal(t, "EGLL", third.DestinationCode)
	assert.Empty(t, third.AircraftModelCode)
	assert.Nil(t, third.ScheduledDeparture)
}

func TestHistoryByFlightNumberNullData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result": {"response": {"data": null, "page": {"current": 1, "total": 0}}}}`)
	}))
	defer srv.Close()

	occurrences, err := newTestRepo(srv.URL, 25, 3).HistoryByFlightNumber(context.Background(), "t", "ZZ999")
	require.NoError(t, err)
	assert.NotNil(t, occurrences)
	assert.Empty(t, occurrences)
}

func TestHistoryByFlightNumberPaging(t *testing.T) {
	var pages []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pages = append(pages, page)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		fmt.Fprintf(w, `{"result": {"response": {
			"data": [
				{"identification": {"number": {"default": "AF10"}}, "aircraft": {"model": {"code": "A359"}},
				 "airport": {"origin": {"code": {"icao": "LFPG"}}, "destination": {"code": {"icao": "KJFK"}}}}
			],
			"page": {"current": %s, "total": 2}}}}`, page)
	}))
	defer srv.Close()

	occurrences, err := newTestRepo(srv.URL, 2, 5).HistoryByFlightNumber(context.Background(), "t", "AF10")
	require.NoError(t, err)
	assert.Len(t, occurrences, 2)
	assert.Equal(t, []string{"1", "2"}, pages)
}

func TestHistoryByFlightNumberMaxPages(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"result": {"response": {
			"data": [{"identification": {"number": {"default": "AF10"}}}],
			"page": {"current": 1, "total": 50}}}}`)
	}))
	defer srv.Close()

	occurrences, err := newTestRepo(srv.URL, 25, 1).HistoryByFlightNumber(context.Background(), "t", "AF10")
	require.NoError(t, err)
	assert.Len(t, occurrences, 1)
	assert.Equal(t, 1, requests)
}

func TestHistoryByFlightNumberServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestRepo(srv.URL, 25, 1).HistoryByFlightNumber(context.Background(), "secret-token", "BA123")
	require.Error(t, err)

	var statusErr *utils.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.NotContains(t, err.Error(), "secret-token")
}

func TestHistoryByFlightNumberBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>captcha</html>`)
	}))
	defer srv.Close()

	_, err := newTestRepo(srv.URL, 25, 1).HistoryByFlightNumber(context.Background(), "t", "BA123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode flight list page 1")
}

func TestHistoryByFlightNumberTransportErrorHidesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestRepo(url, 25, 1).HistoryByFlightNumber(context.Background(), "secret-token", "BA123")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to send request"))
	assert.NotContains(t, err.Error(), "secret-token")
}
