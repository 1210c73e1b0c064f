package openmeteo

import (
	"fmt"
)

// Positions of the variables within the request lists below. The provider
// response is decoded by these same positions, so the lists are the single
// source of truth for the request/decode ordering contract.
const (
	HourlyTemperature = iota
	HourlyPrecipitation
)

const (
	DailyTemperatureMax = iota
	DailyTemperatureMin
	DailySunrise
	DailySunset
	DailyDaylightDuration
	DailyUvIndexMax
	DailyPrecipitationHours
	DailyPrecipitationProbabilityMax
)

var HourlyVariables = []string{
	"temperature_2m",
	"precipitation",
}

var DailyVariables = []string{
	"temperature_2m_max",
	"temperature_2m_min",
	"sunrise",
	"sunset",
	"daylight_duration",
	"uv_index_max",
	"precipitation_hours",
	"precipitation_probability_max",
}

// Series holds one block (hourly or daily) of the provider response:
// an epoch time range plus the variable value slices, addressable by their
// position in the request list.
type Series struct {
	names  []string
	times  []int64
	values map[string][]float64
}

func NewSeries(names []string, times []int64, values map[string][]float64) *Series {
	return &Series{names: names, times: times, values: values}
}

func (s *Series) Len() int {
	return len(s.times)
}

// Start is the epoch second of the first entry.
func (s *Series) Start() int64 {
	if len(s.times) == 0 {
		return 0
	}
	return s.times[0]
}

// End is the exclusive epoch end of the range (last entry plus one interval).
func (s *Series) End() int64 {
	if len(s.times) == 0 {
		return 0
	}
	return s.times[len(s.times)-1] + s.Interval()
}

// Interval is the declared spacing between entries in seconds.
func (s *Series) Interval() int64 {
	if len(s.times) < 2 {
		return 3600
	}
	return s.times[1] - s.times[0]
}

// Values returns the value slice for the variable at the given request
// position.
func (s *Series) Values(pos int) ([]float64, error) {
	if pos < 0 || pos >= len(s.names) {
		return nil, fmt.Errorf("variable position %d out of range (have %d variables)", pos, len(s.names))
	}
	name := s.names[pos]
	v, ok := s.values[name]
	if !ok {
		return nil, fmt.Errorf("provider response is missing variable %q", name)
	}
	return v, nil
}

// Forecast is the raw provider response for one coordinate and one day.
type Forecast struct {
	Latitude         float64
	Longitude        float64
	UtcOffsetSeconds int
	Hourly           *Series
	Daily            *Series
}
