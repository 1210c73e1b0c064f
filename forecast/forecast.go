// Package forecast normalizes raw Open-Meteo responses into a one-row daily
// summary and an hourly time series in the target timezone.
package forecast

import (
	"fmt"
	"time"

	"github.com/angas/weatherbot-go/errs"
	"github.com/angas/weatherbot-go/openmeteo"
)

// MinHour is the hour-of-day filter: forecast hours before 06:00 local time
// are dropped from the hourly series.
const MinHour = 6

type DailyRecord struct {
	Date                        time.Time
	TemperatureMax              float64
	TemperatureMin              float64
	Sunrise                     time.Time
	Sunset                      time.Time
	DaylightDuration            time.Duration
	UvIndexMax                  float64
	PrecipitationHours          float64
	PrecipitationProbabilityMax float64
}

type HourlyRecord struct {
	Timestamp     time.Time
	Hour          int
	Temperature   float64
	Precipitation float64
}

// Daily assembles the single daily summary row for the one-day horizon.
func Daily(raw *openmeteo.Forecast, loc *time.Location) (DailyRecord, error) {
	d := raw.Daily
	if d.Len() != 1 {
		return DailyRecord{}, fmt.Errorf("%w: expected exactly one daily row, got %d", errs.ErrTransport, d.Len())
	}

	var rec DailyRecord
	var firstErr error
	first := func(pos int) float64 {
		vals, err := d.Values(pos)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if len(vals) == 0 {
			return 0
		}
		return vals[0]
	}

	rec.TemperatureMax = first(openmeteo.DailyTemperatureMax)
	rec.TemperatureMin = first(openmeteo.DailyTemperatureMin)
	rec.Sunrise = time.Unix(int64(first(openmeteo.DailySunrise)), 0).In(loc)
	rec.Sunset = time.Unix(int64(first(openmeteo.DailySunset)), 0).In(loc)
	rec.DaylightDuration = time.Duration(first(openmeteo.DailyDaylightDuration)) * time.Second
	rec.UvIndexMax = first(openmeteo.DailyUvIndexMax)
	rec.PrecipitationHours = first(openmeteo.DailyPrecipitationHours)
	rec.PrecipitationProbabilityMax = first(openmeteo.DailyPrecipitationProbabilityMax)
	if firstErr != nil {
		return DailyRecord{}, fmt.Errorf("%w: %w", errs.ErrTransport, firstErr)
	}

	day := time.Unix(d.Start(), 0).In(loc)
	rec.Date = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

	return rec, nil
}

// Hourly builds the hourly series from the response's time range (half-open,
// end excluded), converts the timestamps to loc and drops hours before
// minHour. The result may be empty; callers must cope with that.
func Hourly(raw *openmeteo.Forecast, loc *time.Location, minHour int) ([]HourlyRecord, error) {
	h := raw.Hourly

	temps, err := h.Values(openmeteo.HourlyTemperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrTransport, err)
	}
	precs, err := h.Values(openmeteo.HourlyPrecipitation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrTransport, err)
	}

	interval := h.Interval()
	if interval <= 0 {
		return nil, fmt.Errorf("%w: non-positive series interval %d", errs.ErrTransport, interval)
	}

	records := make([]HourlyRecord, 0, h.Len())
	i := 0
	for epoch := h.Start(); epoch < h.End(); epoch += interval {
		if i >= len(temps) || i >= len(precs) {
			return nil, fmt.Errorf("%w: hourly series shorter than its time range", errs.ErrTransport)
		}
		ts := time.Unix(epoch, 0).In(loc)
		if ts.Hour() >= minHour {
			records = append(records, HourlyRecord{
				Timestamp:     ts,
				Hour:          ts.Hour(),
				Temperature:   temps[i],
				Precipitation: precs[i],
			})
		}
		i++
	}

	return records, nil
}
