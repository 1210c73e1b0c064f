// Package geocode resolves a place name to WGS84 coordinates using the
// OpenWeatherMap direct geocoding API.
package geocode

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/angas/weatherbot-go/errs"
	"github.com/angas/weatherbot-go/httpx"
)

// The request caps results and only the top entry is ever consumed,
// so the first match always wins.
const resultLimit = 2

type Coordinate struct {
	Latitude  float64
	Longitude float64
}

type Client struct {
	baseURL string
	apiKey  string
	http    *httpx.Client
	logger  *slog.Logger
}

func New(baseURL, apiKey string, http *httpx.Client, logger *slog.Logger) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, http: http, logger: logger}
}

type result struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
}

// Resolve looks up the coordinates for a place within a region.
func (c *Client) Resolve(ctx context.Context, place, regionCode string) (Coordinate, error) {
	query := place
	if regionCode != "" {
		query += "," + regionCode
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", fmt.Sprint(resultLimit))
	params.Set("appid", c.apiKey)

	c.logger.Info("resolving geocode", slog.String("query", query))

	var results []result
	if err := c.http.GetJSON(ctx, c.baseURL+"?"+params.Encode(), &results); err != nil {
		return Coordinate{}, fmt.Errorf("geocoding %q: %w: %w", query, errs.ErrTransport, err)
	}

	if len(results) == 0 {
		return Coordinate{}, fmt.Errorf("%w: no geocoding data for %q", errs.ErrNotFound, query)
	}

	first := results[0]
	if first.Lat == nil || first.Lon == nil {
		return Coordinate{}, fmt.Errorf("%w: geocoding result for %q has no coordinates", errs.ErrNotFound, query)
	}

	c.logger.Debug("geocode resolved",
		slog.Float64("latitude", *first.Lat),
		slog.Float64("longitude", *first.Lon))

	return Coordinate{Latitude: *first.Lat, Longitude: *first.Lon}, nil
}
