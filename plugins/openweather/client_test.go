package openweather

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

// mockWeatherServer mocks the OpenWeatherMap current weather endpoint
func mockWeatherServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path != "/weather" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("appid") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
			return
		}

		switch r.URL.Query().Get("q") {
		case "London":
			json.NewEncoder(w).Encode(CurrentWeather{
				Name:    "London",
				Weather: []WeatherCondition{{ID: 802, Main: "Clouds", Description: "scattered clouds", Icon: "03d"}},
				Main:    MainMetrics{Temp: 21.5, FeelsLike: 20.1, TempMin: 19.2, TempMax: 23.1, Pressure: 1012, Humidity: 65},
				Wind:    WindInfo{Speed: 3.6, Deg: 240},
				Sys:     SysInfo{Country: "GB"},
			})
		case "Teapot City":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"cod":500,"message":"Internal error"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"cod":"404","message":"city not found"}`))
		}
	}))
}

func TestNewClient(t *testing.T) {
	client := NewClient("test-key", "", "", nil)
	assert.Equal(t, "test-key", client.APIKey)
	assert.Equal(t, DefaultBaseURL, client.BaseURL)
	assert.Equal(t, DefaultUnits, client.Units)
	require.NotNil(t, client.HTTPClient)
	assert.Equal(t, 10*time.Second, client.HTTPClient.Timeout)
}

func TestClient_GetCurrentWeather(t *testing.T) {
	ts := mockWeatherServer()
	defer ts.Close()

	client := NewClient("test-key", ts.URL, "metric", nil)

	weather, err := client.GetCurrentWeather(context.Background(), "London")
	require.NoError(t, err)
	assert.Equal(t, "London", weather.Name)
	assert.Equal(t, "GB", weather.Sys.Country)
	assert.Equal(t, 21.5, weather.Main.Temp)
	assert.Equal(t, 65, weather.Main.Humidity)
	require.Len(t, weather.Weather, 1)
	assert.Equal(t, "scattered clouds", weather.Weather[0].Description)
}

func TestClient_GetCurrentWeather_LocationNotFound(t *testing.T) {
	ts := mockWeatherServer()
	defer ts.Close()

	client := NewClient("test-key", ts.URL, "metric", nil)

	_, err := client.GetCurrentWeather(context.Background(), "Nowhere")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLocationNotFound))
	assert.Contains(t, err.Error(), "Nowhere")
}

func TestClient_GetCurrentWeather_MissingAPIKey(t *testing.T) {
	// Unreachable base URL proves the credential check fires before any dial
	client := NewClient("", "http://127.0.0.1:1", "metric", nil)

	_, err := client.GetCurrentWeather(context.Background(), "London")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestClient_GetCurrentWeather_APIError(t *testing.T) {
	ts := mockWeatherServer()
	defer ts.Close()

	client := NewClient("test-key", ts.URL, "metric", nil)

	_, err := client.GetCurrentWeather(context.Background(), "Teapot City")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API request failed with status 500")
	assert.Contains(t, err.Error(), "Internal error")
}

func TestClient_GetCurrentWeather_NetworkError(t *testing.T) {
	ts := mockWeatherServer()
	baseURL := ts.URL
	ts.Close()

	client := NewClient("test-key", baseURL, "metric", nil)

	_, err := client.GetCurrentWeather(context.Background(), "London")
	require.Error(t, err)

	var urlErr *url.Error
	assert.True(t, errors.As(err, &urlErr))
}

func TestClient_GetCurrentWeather_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	client := NewClient("test-key", ts.URL, "metric", nil)
	client.HTTPClient.Timeout = 20 * time.Millisecond

	start := time.Now()
	_, err := client.GetCurrentWeather(context.Background(), "London")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)

	var urlErr *url.Error
	require.True(t, errors.As(err, &urlErr))
	assert.True(t, urlErr.Timeout())
}
