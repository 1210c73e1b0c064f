package chart

import (
	"bytes"
	"testing"
	"time"

	"github.com/angas/weatherbot-go/forecast"
)

func TestBucketForBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		mm       float64
		expected PrecipBucket
	}{
		{name: "dry hour", mm: 0, expected: BucketNone},
		{name: "trace amount", mm: 0.1, expected: BucketLight},
		{name: "boundary 2.5 is light", mm: 2.5, expected: BucketLight},
		{name: "boundary 7.6 is medium", mm: 7.6, expected: BucketMedium},
		{name: "boundary 50 is heavy", mm: 50, expected: BucketHeavy},
		{name: "just above 50 is extreme", mm: 50.01, expected: BucketExtreme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BucketFor(tt.mm); got != tt.expected {
				t.Errorf("BucketFor(%v) expected %v, got %v", tt.mm, tt.expected, got)
			}
		})
	}
}

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderProducesPng(t *testing.T) {
	start := time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC)
	records := make([]forecast.HourlyRecord, 18)
	for i := range records {
		ts := start.Add(time.Duration(i) * time.Hour)
		records[i] = forecast.HourlyRecord{
			Timestamp:     ts,
			Hour:          ts.Hour(),
			Temperature:   60 + float64(i),
			Precipitation: float64(i) * 0.5,
		}
	}

	buf, err := Render(records)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Errorf("rendered image is not a PNG")
	}
}

func TestRenderEmptySeries(t *testing.T) {
	buf, err := Render(nil)
	if err != nil {
		t.Fatalf("Render(nil) unexpected error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Errorf("empty-series chart is not a PNG")
	}
}
