package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsIsolatedRegistries(t *testing.T) {
	a := NewMetrics("flight_history")
	b := NewMetrics("flight_history")

	a.OccurrencesConsolidated.Add(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(a.OccurrencesConsolidated))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.OccurrencesConsolidated))
}

func TestPush(t *testing.T) {
	var path, body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewMetrics("flight_history")
	m.OccurrencesFetched.Add(25)

	require.NoError(t, m.Push(context.Background(), srv.URL, "flight_history"))
	assert.Equal(t, "/metrics/job/flight_history", path)
	assert.NotEmpty(t, body)
}

func TestPushGatewayDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewMetrics("flight_history").Push(context.Background(), srv.URL, "flight_history")
	assert.Error(t, err)
}
