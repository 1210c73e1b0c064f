// Package openmeteo fetches a short-range weather forecast from the
// Open-Meteo API: fahrenheit temperatures, millimeter precipitation,
// unixtime timestamps, one-day horizon.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/angas/weatherbot-go/errs"
	"github.com/angas/weatherbot-go/geocode"
	"github.com/angas/weatherbot-go/httpx"
)

const forecastDays = 1

type Client struct {
	baseURL  string
	timezone string
	http     *httpx.Client
	logger   *slog.Logger
}

func New(baseURL, timezone string, http *httpx.Client, logger *slog.Logger) *Client {
	return &Client{baseURL: baseURL, timezone: timezone, http: http, logger: logger}
}

type wireResponse struct {
	Latitude         float64                    `json:"latitude"`
	Longitude        float64                    `json:"longitude"`
	UtcOffsetSeconds int                        `json:"utc_offset_seconds"`
	Hourly           map[string]json.RawMessage `json:"hourly"`
	Daily            map[string]json.RawMessage `json:"daily"`
}

// Fetch requests today's forecast for the given coordinate.
func (c *Client) Fetch(ctx context.Context, coord geocode.Coordinate) (*Forecast, error) {
	if err := validate(coord); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	params.Set("hourly", strings.Join(HourlyVariables, ","))
	params.Set("daily", strings.Join(DailyVariables, ","))
	params.Set("temperature_unit", "fahrenheit")
	params.Set("wind_speed_unit", "mph")
	params.Set("precipitation_unit", "mm")
	params.Set("timeformat", "unixtime")
	params.Set("timezone", c.timezone)
	params.Set("forecast_days", strconv.Itoa(forecastDays))

	c.logger.Info("fetching forecast from Open-Meteo",
		slog.Float64("latitude", coord.Latitude),
		slog.Float64("longitude", coord.Longitude))

	var wire wireResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"?"+params.Encode(), &wire); err != nil {
		return nil, fmt.Errorf("fetching forecast: %w: %w", errs.ErrTransport, err)
	}

	hourly, err := decodeSeries(wire.Hourly, HourlyVariables)
	if err != nil {
		return nil, fmt.Errorf("decoding hourly series: %w: %w", errs.ErrTransport, err)
	}
	daily, err := decodeSeries(wire.Daily, DailyVariables)
	if err != nil {
		return nil, fmt.Errorf("decoding daily series: %w: %w", errs.ErrTransport, err)
	}

	if hourly.Len() == 0 && daily.Len() == 0 {
		return nil, fmt.Errorf("%w: no data received from Open-Meteo", errs.ErrTransport)
	}

	return &Forecast{
		Latitude:         wire.Latitude,
		Longitude:        wire.Longitude,
		UtcOffsetSeconds: wire.UtcOffsetSeconds,
		Hourly:           hourly,
		Daily:            daily,
	}, nil
}

func validate(coord geocode.Coordinate) error {
	for _, v := range []float64{coord.Latitude, coord.Longitude} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: latitude and longitude must be numeric values", errs.ErrValidation)
		}
	}
	if coord.Latitude < -90 || coord.Latitude > 90 || coord.Longitude < -180 || coord.Longitude > 180 {
		return fmt.Errorf("%w: coordinate (%v, %v) out of range", errs.ErrValidation, coord.Latitude, coord.Longitude)
	}
	return nil
}

// decodeSeries resolves each requested variable by name but keeps the request
// list's ordering for positional access, so fetch and normalize stay aligned.
func decodeSeries(block map[string]json.RawMessage, names []string) (*Series, error) {
	if block == nil {
		return NewSeries(names, nil, map[string][]float64{}), nil
	}

	rawTimes, ok := block["time"]
	if !ok {
		return nil, fmt.Errorf("series has no time range")
	}
	var times []int64
	if err := json.Unmarshal(rawTimes, &times); err != nil {
		return nil, fmt.Errorf("parsing time range: %w", err)
	}

	values := make(map[string][]float64, len(names))
	for _, name := range names {
		raw, ok := block[name]
		if !ok {
			return nil, fmt.Errorf("response is missing variable %q", name)
		}
		var vals []float64
		if err := json.Unmarshal(raw, &vals); err != nil {
			return nil, fmt.Errorf("parsing variable %q: %w", name, err)
		}
		if len(vals) != len(times) {
			return nil, fmt.Errorf("variable %q has %d values for %d timestamps", name, len(vals), len(times))
		}
		values[name] = vals
	}

	return NewSeries(names, times, values), nil
}
