package nhl

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"puckval/domain/player"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const skatersJSON = `{"data": [
	{"playerId": 8478402, "skaterFullName": "Connor McDavid", "positionCode": "C",
	 "timeOnIcePerGame": 1290.5, "goals": 64, "assists": 89, "shots": 352, "corsiPct": 55.1},
	{"playerId": 8477956, "skaterFullName": "Cale Makar", "positionCode": "D",
	 "timeOnIcePerGame": 1494.0, "goals": 21, "assists": 69, "shots": 233}
]}`

func newTestServer(t *testing.T, rosterStatus int, hits *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		switch r.URL.Path {
		case "/skaters":
			w.Write([]byte(skatersJSON))
		case "/rosters":
			if rosterStatus != http.StatusOK {
				w.WriteHeader(rosterStatus)
				return
			}
			w.Write([]byte(`{"rostered": ["8478402"]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestFetchTableBuildsCanonicalRows(t *testing.T) {
	var hits int64
	srv := newTestServer(t, http.StatusOK, &hits)
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, time.Minute)
	table, err := client.FetchTable(t.Context())
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	mcdavid, ok := table.ByID("8478402")
	require.True(t, ok)
	assert.Equal(t, "Connor McDavid", mcdavid.Name)
	assert.Equal(t, player.PositionForward, mcdavid.Position)
	assert.InDelta(t, 1290.5, mcdavid.Usage, 1e-9)

	// Known fields rename to canonical category keys, unknown numeric
	// fields pass through.
	assert.InDelta(t, 64, mcdavid.Stats["G"], 1e-9)
	assert.InDelta(t, 89, mcdavid.Stats["A"], 1e-9)
	assert.InDelta(t, 352, mcdavid.Stats["SOG"], 1e-9)
	assert.InDelta(t, 55.1, mcdavid.Stats["corsiPct"], 1e-9)

	require.NotNil(t, mcdavid.Rostered)
	assert.True(t, *mcdavid.Rostered)

	makar, _ := table.ByID("8477956")
	require.NotNil(t, makar.Rostered)
	assert.False(t, *makar.Rostered)
}

func TestFetchTableReusesCacheWithinTTL(t *testing.T) {
	var hits int64
	srv := newTestServer(t, http.StatusOK, &hits)
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, time.Minute)
	first, err := client.FetchTable(t.Context())
	require.NoError(t, err)
	requests := atomic.LoadInt64(&hits)

	second, err := client.FetchTable(t.Context())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, requests, atomic.LoadInt64(&hits), "cached fetch must not hit the API")
}

func TestFetchTableInvalidateForcesRefetch(t *testing.T) {
	var hits int64
	srv := newTestServer(t, http.StatusOK, &hits)
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, time.Minute)
	_, err := client.FetchTable(t.Context())
	require.NoError(t, err)
	before := atomic.LoadInt64(&hits)

	client.Invalidate()
	_, err = client.FetchTable(t.Context())
	require.NoError(t, err)
	assert.Greater(t, atomic.LoadInt64(&hits), before)
}

func TestFetchTableMissingRosterFeedLeavesFlagsNil(t *testing.T) {
	var hits int64
	srv := newTestServer(t, http.StatusNotFound, &hits)
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, time.Minute)
	table, err := client.FetchTable(t.Context())
	require.NoError(t, err)

	for _, r := range table.Rows {
		assert.Nil(t, r.Rostered)
	}
}

func TestFetchTableSkaterEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, time.Minute)
	_, err := client.FetchTable(t.Context())
	assert.Error(t, err)
}
