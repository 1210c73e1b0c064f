package message

import (
	"strings"
	"testing"

	"github.com/angas/weatherbot-go/forecast"
)

func TestUvRiskBuckets(t *testing.T) {
	tests := []struct {
		name     string
		uvIndex  float64
		expected RiskLabel
	}{
		{name: "zero is low", uvIndex: 0, expected: RiskLow},
		{name: "just below low boundary", uvIndex: 2.999, expected: RiskLow},
		{name: "boundary 3.0 belongs to medium", uvIndex: 3.0, expected: RiskMedium},
		{name: "boundary 6.0 belongs to high", uvIndex: 6.0, expected: RiskHigh},
		{name: "boundary 8.0 belongs to very high", uvIndex: 8.0, expected: RiskVeryHigh},
		{name: "boundary 11.0 belongs to extreme", uvIndex: 11.0, expected: RiskExtreme},
		{name: "far beyond scale", uvIndex: 42, expected: RiskExtreme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UvRisk(tt.uvIndex); got != tt.expected {
				t.Errorf("UvRisk(%v) expected %q, got %q", tt.uvIndex, tt.expected, got)
			}
		})
	}
}

func TestUvRiskMonotonic(t *testing.T) {
	rank := map[RiskLabel]int{RiskLow: 0, RiskMedium: 1, RiskHigh: 2, RiskVeryHigh: 3, RiskExtreme: 4}

	prev := -1
	for v := 0.0; v < 15; v += 0.1 {
		r := rank[UvRisk(v)]
		if r < prev {
			t.Fatalf("risk decreased at uv index %v", v)
		}
		prev = r
	}
}

func TestComposeTemplate(t *testing.T) {
	daily := forecast.DailyRecord{
		TemperatureMax: 72.04,
		TemperatureMin: 55.0,
		UvIndexMax:     4.2,
	}

	got := Compose("123", "Anton", daily)

	expected := "<@123>\n" +
		"Good morning Anton!\n\n" +
		"Today's forecast:\n" +
		"- High: 72.0 °F\n" +
		"- Low: 55.0 °F\n" +
		"- UV Index: 4.2 - Medium Risk\n" +
		"\n\n"
	if got != expected {
		t.Errorf("Compose() expected %q, got %q", expected, got)
	}
	if !strings.Contains(got, "<@123>") {
		t.Errorf("message should embed the recipient mention, got %q", got)
	}
}
