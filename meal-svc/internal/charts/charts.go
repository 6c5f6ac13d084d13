// Package charts renders nutrient series as inline SVG.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"math"
	"strings"

	"school-meal/meal-svc/internal/domain"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrEmptySeries = errors.New("series has no positive values")

var DefaultPalette = []drawing.Color{
	drawing.ColorFromHex("ffcc80"),
	drawing.ColorFromHex("81d4fa"),
	drawing.ColorFromHex("ffab91"),
	drawing.ColorFromHex("a5d6a7"),
	drawing.ColorFromHex("ce93d8"),
	drawing.ColorFromHex("fff59d"),
	drawing.ColorFromHex("b0bec5"),
	drawing.ColorFromHex("f48fb1"),
	drawing.ColorFromHex("80cbc4"),
}

type Renderer struct {
	Width   int
	Height  int
	Palette []drawing.Color
}

func NewRenderer() *Renderer {
	return &Renderer{
		Width:   480,
		Height:  360,
		Palette: DefaultPalette,
	}
}

func (r *Renderer) color(i int) drawing.Color {
	return r.Palette[i%len(r.Palette)]
}

func (r *Renderer) Pie(title string, series domain.ChartSeries) (string, error) {
	var values []chart.Value
	for i, v := range series.Values {
		if v <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: series.Labels[i],
			Value: v,
			Style: chart.Style{
				FillColor:   r.color(i),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
			},
		})
	}
	if len(values) == 0 {
		return "", ErrEmptySeries
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  r.Height,
		Height: r.Height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.SVG, &buf); err != nil {
		return "", fmt.Errorf("render pie chart: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) Bar(title string, series domain.ChartSeries) (string, error) {
	if !hasPositive(series) {
		return "", ErrEmptySeries
	}

	maxValue := 0.0
	bars := make([]chart.Value, 0, series.Len())
	for i, v := range series.Values {
		maxValue = math.Max(maxValue, v)
		bars = append(bars, chart.Value{
			Label: series.Labels[i],
			Value: math.Max(v, 0),
			Style: chart.Style{
				FillColor:   r.color(i),
				StrokeColor: r.color(i),
			},
		})
	}

	barWidth := (r.Width - 120) / (2 * len(bars))
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 8 {
		barWidth = 8
	}

	bar := chart.BarChart{
		Title: title,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue * 1.15},
		},
		Width:      r.Width,
		Height:     r.Height,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := bar.Render(chart.SVG, &buf); err != nil {
		return "", fmt.Errorf("render bar chart: %w", err)
	}
	return buf.String(), nil
}

// Radar draws one polygon over len(series) axes, scaled to the largest value.
// go-chart has no polar series, so the SVG is written directly.
func (r *Renderer) Radar(title string, series domain.ChartSeries) (string, error) {
	if !hasPositive(series) {
		return "", ErrEmptySeries
	}

	n := series.Len()
	maxValue := 0.0
	for _, v := range series.Values {
		maxValue = math.Max(maxValue, v)
	}

	cx := float64(r.Height) / 2
	cy := float64(r.Height)/2 + 12
	radius := float64(r.Height)/2 - 60

	point := func(i int, scale float64) (float64, float64) {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		return cx + radius*scale*math.Cos(angle), cy + radius*scale*math.Sin(angle)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		r.Height, r.Height, r.Height, r.Height)
	fmt.Fprintf(&b, `<text x="%.1f" y="22" text-anchor="middle" font-size="15" font-weight="bold">%s</text>`,
		cx, html.EscapeString(title))

	for _, ring := range []float64{0.25, 0.5, 0.75, 1} {
		b.WriteString(`<polygon fill="none" stroke="#dddddd" points="`)
		for i := 0; i < n; i++ {
			x, y := point(i, ring)
			fmt.Fprintf(&b, "%.1f,%.1f ", x, y)
		}
		b.WriteString(`"/>`)
	}

	for i := 0; i < n; i++ {
		x, y := point(i, 1)
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#cccccc"/>`, cx, cy, x, y)
		lx, ly := point(i, 1.18)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="13">%s</text>`,
			lx, ly, html.EscapeString(series.Labels[i]))
	}

	fill := r.color(1)
	fmt.Fprintf(&b, `<polygon fill="%s" fill-opacity="0.45" stroke="%s" stroke-width="2" points="`,
		fill.String(), fill.String())
	for i, v := range series.Values {
		x, y := point(i, math.Max(v, 0)/maxValue)
		fmt.Fprintf(&b, "%.1f,%.1f ", x, y)
	}
	b.WriteString(`"/></svg>`)

	return b.String(), nil
}

func hasPositive(series domain.ChartSeries) bool {
	for _, v := range series.Values {
		if v > 0 {
			return true
		}
	}
	return false
}
