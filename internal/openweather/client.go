// Package openweather implements the weather collaborator against the
// OpenWeather current-conditions and 5-day/3-hour forecast endpoints.
package openweather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"

	"github.com/ajanata/weatherclock"
	"github.com/ajanata/weatherclock/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client fetches weather data for one fixed city. It implements
// weatherclock.WeatherSource; the control loop owns the call timing, the
// client only bounds each call with the request context.
type Client struct {
	baseURL    string
	city       string
	apiKey     string
	units      string
	lang       string
	offset     int64 // seconds added to UTC timestamps for the display
	httpClient *http.Client
}

// New creates a client from the device configuration. The UTC offset comes
// from the NTP config so forecast slot times line up with the clock screen.
func New(cfg config.WeatherConfig, offsetSeconds int) *Client {
	return NewWithHTTP(cfg, offsetSeconds, &http.Client{Timeout: cfg.FetchTimeout})
}

// NewWithHTTP creates a client with a custom HTTP client, for tests.
func NewWithHTTP(cfg config.WeatherConfig, offsetSeconds int, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    "https://" + cfg.Host,
		city:       cfg.City,
		apiKey:     cfg.APIKey,
		units:      cfg.Units,
		lang:       cfg.Lang,
		offset:     int64(offsetSeconds),
		httpClient: httpClient,
	}
}

func (c *Client) get(ctx context.Context, path string, extra url.Values) ([]byte, error) {
	q := url.Values{}
	q.Set("q", c.city)
	q.Set("appid", c.apiKey)
	q.Set("units", c.units)
	if c.lang != "" {
		q.Set("lang", c.lang)
	}
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Current fetches and decodes the current conditions.
func (c *Client) Current(ctx context.Context) (weatherclock.CurrentConditions, error) {
	body, err := c.get(ctx, "/data/2.5/weather", nil)
	if err != nil {
		return weatherclock.CurrentConditions{}, fmt.Errorf("current conditions: %w", err)
	}
	return parseCurrent(body)
}

// Forecast fetches the next 8 three-hour slots. The set is all-or-nothing: a
// response with fewer entries is rejected so a partial payload never replaces
// a complete one.
func (c *Client) Forecast(ctx context.Context) (weatherclock.ForecastSet, error) {
	q := url.Values{}
	q.Set("cnt", fmt.Sprint(weatherclock.ForecastSlots))
	body, err := c.get(ctx, "/data/2.5/forecast", q)
	if err != nil {
		return weatherclock.ForecastSet{}, fmt.Errorf("forecast: %w", err)
	}
	return parseForecast(body, c.offset)
}

func parseCurrent(body []byte) (weatherclock.CurrentConditions, error) {
	var payload currentPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return weatherclock.CurrentConditions{}, fmt.Errorf("current conditions: %w", err)
	}
	cur := weatherclock.CurrentConditions{
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		Pressure:    payload.Main.Pressure,
	}
	if len(payload.Weather) > 0 {
		cur.Description = payload.Weather[0].Description
	}
	return cur, nil
}

func parseForecast(body []byte, offset int64) (weatherclock.ForecastSet, error) {
	var payload forecastPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return weatherclock.ForecastSet{}, fmt.Errorf("forecast: %w", err)
	}
	if len(payload.List) < weatherclock.ForecastSlots {
		return weatherclock.ForecastSet{}, fmt.Errorf("forecast: %d entries, want %d", len(payload.List), weatherclock.ForecastSlots)
	}

	var set weatherclock.ForecastSet
	for i := 0; i < weatherclock.ForecastSlots; i++ {
		item := payload.List[i]
		set[i] = weatherclock.ForecastEntry{
			Timestamp: item.Dt + offset,
			TempMin:   item.Main.TempMin,
			TempMax:   item.Main.TempMax,
			Pressure:  item.Main.Pressure,
			Humidity:  item.Main.Humidity,
			Pop:       item.Pop,
			Rain:      item.Rain.ThreeHours,
		}
		if len(item.Weather) > 0 {
			set[i].Description = item.Weather[0].Description
		}
	}
	return set, nil
}

var _ weatherclock.WeatherSource = (*Client)(nil)
