// Package chart renders the hourly temperature series as a PNG: a muted line
// through the hourly points, each point colored by precipitation intensity.
package chart

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/angas/weatherbot-go/forecast"
	"github.com/angas/weatherbot-go/slice"
)

// Fixed axis contract so charts stay visually comparable across days.
const (
	xMin = 6
	xMax = 24
	yMin = 25
	yMax = 110
)

type PrecipBucket int

const (
	BucketNone PrecipBucket = iota
	BucketLight
	BucketMedium
	BucketHeavy
	BucketExtreme
)

// BucketFor maps a precipitation amount in millimeters to its intensity
// bucket. Boundary values belong to the lower bucket.
func BucketFor(mm float64) PrecipBucket {
	switch {
	case mm == 0:
		return BucketNone
	case mm <= 2.5:
		return BucketLight
	case mm <= 7.6:
		return BucketMedium
	case mm <= 50:
		return BucketHeavy
	default:
		return BucketExtreme
	}
}

func (b PrecipBucket) Color() color.NRGBA {
	switch b {
	case BucketNone:
		return color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff} // blue
	case BucketLight:
		return color.NRGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff} // green
	case BucketMedium:
		return color.NRGBA{R: 0xf1, G: 0xc4, B: 0x0f, A: 0xff} // yellow
	case BucketHeavy:
		return color.NRGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff} // red
	default:
		return color.NRGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff} // dark red
	}
}

func (b PrecipBucket) Label() string {
	switch b {
	case BucketNone:
		return "No precipitation"
	case BucketLight:
		return "Light (≤2.5mm)"
	case BucketMedium:
		return "Medium (≤7.6mm)"
	case BucketHeavy:
		return "Heavy (≤50mm)"
	default:
		return "Extreme (>50mm)"
	}
}

func glyphStyle(b PrecipBucket) draw.GlyphStyle {
	return draw.GlyphStyle{
		Color:  b.Color(),
		Radius: vg.Points(5),
		Shape:  draw.CircleGlyph{},
	}
}

// glyphThumb draws a single glyph as a legend thumbnail.
type glyphThumb struct {
	style draw.GlyphStyle
}

func (g glyphThumb) Thumbnail(c *draw.Canvas) {
	c.DrawGlyph(g.style, c.Center())
}

// Render draws the temperature-vs-hour chart and returns it as an encoded
// PNG buffer positioned at its start. An empty series still yields a valid
// chart with axes and legend, just without data points.
func Render(hourly []forecast.HourlyRecord) (*bytes.Buffer, error) {
	p := plot.New()

	p.Title.Text = "Temperature"
	if len(hourly) > 0 {
		p.Title.Text = fmt.Sprintf("Temperature for %s", hourly[0].Timestamp.Format("2006-01-02"))
	}
	p.X.Label.Text = "Hour of Day"
	p.Y.Label.Text = "Temperature (°F)"
	p.Add(plotter.NewGrid())

	xys := plotter.XYs(slice.Map(hourly, func(r forecast.HourlyRecord) plotter.XY {
		return plotter.XY{X: float64(r.Hour), Y: r.Temperature}
	}))
	buckets := slice.Map(hourly, func(r forecast.HourlyRecord) PrecipBucket {
		return BucketFor(r.Precipitation)
	})

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("building temperature line: %w", err)
	}
	line.LineStyle = draw.LineStyle{
		Color: color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80},
		Width: vg.Points(1.5),
	}
	p.Add(line)

	points, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("building temperature points: %w", err)
	}
	points.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return glyphStyle(buckets[i])
	}
	p.Add(points)

	// Legend always enumerates all buckets, whether present in the data or not.
	for b := BucketNone; b <= BucketExtreme; b++ {
		p.Legend.Add(b.Label(), glyphThumb{style: glyphStyle(b)})
	}
	p.Legend.Top = true

	p.X.Min, p.X.Max = xMin, xMax
	p.Y.Min, p.Y.Max = yMin, yMax
	p.X.Tick.Marker = evenHourTicks()

	wt, err := p.WriterTo(8*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("encoding chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing chart image: %w", err)
	}
	return &buf, nil
}

func evenHourTicks() plot.ConstantTicks {
	var ticks []plot.Tick
	for hour := xMin; hour <= xMax; hour += 2 {
		ticks = append(ticks, plot.Tick{Value: float64(hour), Label: fmt.Sprint(hour)})
	}
	return plot.ConstantTicks(ticks)
}
