package forecast

import (
	"errors"
	"testing"
	"time"

	"github.com/angas/weatherbot-go/errs"
	"github.com/angas/weatherbot-go/openmeteo"
	"github.com/angas/weatherbot-go/slice"
)

// 2025-07-01 00:00:00 UTC
const dayStart int64 = 1751328000

func hourlyForecast(hours int) *openmeteo.Forecast {
	times := make([]int64, hours)
	temps := make([]float64, hours)
	precs := make([]float64, hours)
	for i := 0; i < hours; i++ {
		times[i] = dayStart + int64(i)*3600
		temps[i] = 60 + float64(i)
		precs[i] = float64(i % 3)
	}
	return &openmeteo.Forecast{
		Hourly: openmeteo.NewSeries(openmeteo.HourlyVariables, times, map[string][]float64{
			"temperature_2m": temps,
			"precipitation":  precs,
		}),
	}
}

func dailyForecast(days int) *openmeteo.Forecast {
	times := make([]int64, days)
	for i := range times {
		times[i] = dayStart + int64(i)*86400
	}
	values := map[string][]float64{}
	for pos, name := range openmeteo.DailyVariables {
		vals := make([]float64, days)
		for i := range vals {
			vals[i] = float64(pos)
		}
		values[name] = vals
	}
	if days > 0 {
		values["temperature_2m_max"][0] = 80.0
		values["temperature_2m_min"][0] = 60.0
		values["sunrise"][0] = float64(dayStart + 6*3600)
		values["sunset"][0] = float64(dayStart + 20*3600)
		values["daylight_duration"][0] = 50400
		values["uv_index_max"][0] = 9.0
	}
	return &openmeteo.Forecast{
		Daily: openmeteo.NewSeries(openmeteo.DailyVariables, times, values),
	}
}

func TestHourlyFiltersEarlyHours(t *testing.T) {
	records, err := Hourly(hourlyForecast(24), time.UTC, MinHour)
	if err != nil {
		t.Fatalf("Hourly() unexpected error: %v", err)
	}

	if len(records) != 18 {
		t.Fatalf("expected 18 retained records, got %d", len(records))
	}
	if records[0].Hour != 6 || records[len(records)-1].Hour != 23 {
		t.Errorf("expected hours 6..23, got %d..%d", records[0].Hour, records[len(records)-1].Hour)
	}
	if !slice.All(records, func(r HourlyRecord) bool { return r.Hour >= MinHour }) {
		t.Errorf("retained record before hour %d", MinHour)
	}
	for i := 1; i < len(records); i++ {
		if !records[i].Timestamp.After(records[i-1].Timestamp) {
			t.Errorf("timestamps not strictly increasing at index %d", i)
		}
	}
}

func TestHourlyHalfOpenRange(t *testing.T) {
	records, err := Hourly(hourlyForecast(2), time.UTC, 0)
	if err != nil {
		t.Fatalf("Hourly() unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records (end excluded), got %d", len(records))
	}
	last := records[1].Timestamp.Unix()
	if last != dayStart+3600 {
		t.Errorf("expected last timestamp %d, got %d", dayStart+3600, last)
	}
}

func TestHourlyEmptySeries(t *testing.T) {
	raw := &openmeteo.Forecast{
		Hourly: openmeteo.NewSeries(openmeteo.HourlyVariables, nil, map[string][]float64{
			"temperature_2m": {},
			"precipitation":  {},
		}),
	}
	records, err := Hourly(raw, time.UTC, MinHour)
	if err != nil {
		t.Fatalf("Hourly() unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty result, got %d records", len(records))
	}
}

func TestHourlyTimezoneConversion(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*3600)
	records, err := Hourly(hourlyForecast(24), loc, MinHour)
	if err != nil {
		t.Fatalf("Hourly() unexpected error: %v", err)
	}

	// Midnight UTC is 17:00 the previous day in UTC-7, so the first seven
	// local hours (00..06 of the forecast day) come from later UTC epochs.
	for _, r := range records {
		if r.Hour != r.Timestamp.Hour() {
			t.Errorf("hour %d does not match timestamp %v", r.Hour, r.Timestamp)
		}
		if r.Hour < MinHour {
			t.Errorf("retained record at local hour %d", r.Hour)
		}
	}
}

func TestDailySingleRow(t *testing.T) {
	rec, err := Daily(dailyForecast(1), time.UTC)
	if err != nil {
		t.Fatalf("Daily() unexpected error: %v", err)
	}

	if rec.TemperatureMax != 80.0 || rec.TemperatureMin != 60.0 {
		t.Errorf("unexpected temperatures: max=%v min=%v", rec.TemperatureMax, rec.TemperatureMin)
	}
	if rec.UvIndexMax != 9.0 {
		t.Errorf("expected uv index 9.0, got %v", rec.UvIndexMax)
	}
	if rec.Date.Format("2006-01-02") != "2025-07-01" {
		t.Errorf("expected date 2025-07-01, got %v", rec.Date)
	}
	if rec.Sunrise.Hour() != 6 || rec.Sunset.Hour() != 20 {
		t.Errorf("unexpected sunrise/sunset: %v / %v", rec.Sunrise, rec.Sunset)
	}
	if rec.DaylightDuration != 14*time.Hour {
		t.Errorf("expected 14h daylight, got %v", rec.DaylightDuration)
	}
}

func TestDailyRejectsWrongRowCount(t *testing.T) {
	for _, days := range []int{0, 2} {
		if _, err := Daily(dailyForecast(days), time.UTC); !errors.Is(err, errs.ErrTransport) {
			t.Errorf("Daily() with %d rows expected transport error, got %v", days, err)
		}
	}
}
