package worldtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTimeServer mocks the WorldTimeAPI timezone endpoint
func mockTimeServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/timezone/Europe/London":
			json.NewEncoder(w).Encode(TimezoneInfo{
				Timezone:     "Europe/London",
				Datetime:     "2026-08-23T14:30:45.123456+01:00",
				UTCOffset:    "+01:00",
				Abbreviation: "BST",
				DayOfWeek:    0,
				DayOfYear:    235,
				WeekNumber:   34,
				Unixtime:     1787837445,
				DST:          true,
			})
		case "/timezone/Asia/Tokyo":
			json.NewEncoder(w).Encode(TimezoneInfo{
				Timezone:     "Asia/Tokyo",
				Datetime:     "2026-08-23T22:30:45.123456+09:00",
				UTCOffset:    "+09:00",
				Abbreviation: "JST",
				DayOfWeek:    0,
				DayOfYear:    235,
				WeekNumber:   34,
			})
		case "/timezone/Asia/Hong_Kong":
			json.NewEncoder(w).Encode(TimezoneInfo{
				Timezone:     "Asia/Hong_Kong",
				Datetime:     "2026-08-23T21:30:45+08:00",
				UTCOffset:    "+08:00",
				Abbreviation: "HKT",
				DayOfWeek:    0,
				DayOfYear:    235,
				WeekNumber:   34,
			})
		case "/timezone/Asia/Dubai":
			w.Write([]byte(`{"timezone":"Asia/Dubai","datetime":"not-a-timestamp","utc_offset":"+04:00"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"unknown location"}`))
		}
	}))
}

func TestNewClient(t *testing.T) {
	client := NewClient("", nil)
	assert.Equal(t, DefaultBaseURL, client.BaseURL)
	require.NotNil(t, client.HTTPClient)
	assert.Equal(t, 5*time.Second, client.HTTPClient.Timeout)
}

func TestClient_GetTimezone(t *testing.T) {
	ts := mockTimeServer()
	defer ts.Close()

	client := NewClient(ts.URL, nil)

	info, err := client.GetTimezone(context.Background(), "Europe/London")
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", info.Timezone)
	assert.Equal(t, "2026-08-23T14:30:45.123456+01:00", info.Datetime)
	assert.Equal(t, "+01:00", info.UTCOffset)
	assert.Equal(t, 235, info.DayOfYear)
	assert.Equal(t, 34, info.WeekNumber)
	assert.True(t, info.DST)
}

func TestClient_GetTimezone_NotFound(t *testing.T) {
	ts := mockTimeServer()
	defer ts.Close()

	client := NewClient(ts.URL, nil)

	_, err := client.GetTimezone(context.Background(), "Unknown/Zone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API request failed with status 404")
}

func TestClient_GetTimezone_NetworkError(t *testing.T) {
	ts := mockTimeServer()
	baseURL := ts.URL
	ts.Close()

	client := NewClient(baseURL, nil)

	_, err := client.GetTimezone(context.Background(), "Europe/London")
	require.Error(t, err)

	var urlErr *url.Error
	assert.True(t, errors.As(err, &urlErr))
}

func TestClient_GetTimezone_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, nil)
	client.HTTPClient.Timeout = 20 * time.Millisecond

	start := time.Now()
	_, err := client.GetTimezone(context.Background(), "Europe/London")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)

	var urlErr *url.Error
	require.True(t, errors.As(err, &urlErr))
	assert.True(t, urlErr.Timeout())
}
