package task

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/angas/weatherbot-go/chart"
	"github.com/angas/weatherbot-go/config"
	"github.com/angas/weatherbot-go/forecast"
	"github.com/angas/weatherbot-go/geocode"
	"github.com/angas/weatherbot-go/message"
	"github.com/angas/weatherbot-go/openmeteo"
)

type Geocoder interface {
	Resolve(ctx context.Context, place, regionCode string) (geocode.Coordinate, error)
}

type ForecastFetcher interface {
	Fetch(ctx context.Context, coord geocode.Coordinate) (*openmeteo.Forecast, error)
}

type Notifier interface {
	SendDM(ctx context.Context, userID, content string, image io.Reader) error
}

// DailyReport runs the whole pipeline once: geocode the configured place,
// fetch today's forecast, normalize it, compose the message, render the
// chart and deliver both in one direct message.
type DailyReport struct {
	logger   *slog.Logger
	geocoder Geocoder
	fetcher  ForecastFetcher
	notifier Notifier
	cnfg     *config.AppConfig
	loc      *time.Location
}

func NewDailyReport(
	logger *slog.Logger,
	geocoder Geocoder,
	fetcher ForecastFetcher,
	notifier Notifier,
	cnfg *config.AppConfig,
) (*DailyReport, error) {
	loc, err := time.LoadLocation(cnfg.Forecast.GetTimezone())
	if err != nil {
		return nil, fmt.Errorf("loading timezone %s: %w", cnfg.Forecast.GetTimezone(), err)
	}
	return &DailyReport{
		logger:   logger,
		geocoder: geocoder,
		fetcher:  fetcher,
		notifier: notifier,
		cnfg:     cnfg,
		loc:      loc,
	}, nil
}

// Run fails closed: the first stage error aborts the run and nothing is
// delivered. Message and chart always travel together or not at all.
func (r *DailyReport) Run(ctx context.Context) error {
	coord, err := r.geocoder.Resolve(ctx, r.cnfg.Location.Place, r.cnfg.Location.RegionCode)
	if err != nil {
		r.logger.Error("geocoding failed", slog.String("place", r.cnfg.Location.Place), slog.Any("error", err))
		return err
	}

	raw, err := r.fetcher.Fetch(ctx, coord)
	if err != nil {
		r.logger.Error("forecast fetch failed", slog.Any("error", err))
		return err
	}

	daily, err := forecast.Daily(raw, r.loc)
	if err != nil {
		r.logger.Error("daily normalization failed", slog.Any("error", err))
		return err
	}

	hourly, err := forecast.Hourly(raw, r.loc, forecast.MinHour)
	if err != nil {
		r.logger.Error("hourly normalization failed", slog.Any("error", err))
		return err
	}

	msg := message.Compose(r.cnfg.Discord.UserId, r.cnfg.Discord.DisplayName, daily)

	img, err := chart.Render(hourly)
	if err != nil {
		r.logger.Error("chart rendering failed", slog.Any("error", err))
		return err
	}

	if err := r.notifier.SendDM(ctx, r.cnfg.Discord.UserId, msg, img); err != nil {
		r.logger.Error("delivery failed", slog.Any("error", err))
		return err
	}

	r.logger.Info("daily report delivered",
		slog.String("date", daily.Date.Format("2006-01-02")),
		slog.Int("hourlyPoints", len(hourly)))
	return nil
}
