package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	png "image/png"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/iafilius/OverdoseTrends/cmd/odviewer/uihelpers"
	"github.com/iafilius/OverdoseTrends/src/applog"
	"github.com/iafilius/OverdoseTrends/src/dataset"
	"github.com/iafilius/OverdoseTrends/src/viewmodel"
)

const (
	xAxisName = "Year"
	yAxisName = "Overdose Rate per 100,000"

	// paddings in image pixels around the whole chart
	chartPadTop    = 36
	chartPadLeft   = 20
	chartPadRight  = 30
	chartPadBottom = 34
	// rough room go-chart takes for the right-hand Y axis; only used to size the year ticks
	axisRightGutterPx = 52

	lineWidth      = 2.0
	dotRadius      = 2.0
	legendFontSize = 9.0
	defaultWidth   = 1100
)

var (
	gridStyle = chart.Style{
		StrokeColor:     drawing.ColorFromHex("dddddd"),
		StrokeWidth:     1,
		StrokeDashArray: []float64{3, 3},
	}
	legendText       = drawing.ColorFromHex("333333")
	legendBorder     = drawing.ColorFromHex("cccccc")
	legendBackground = drawing.ColorWhite
)

// hexColor converts a palette entry to a go-chart color.
func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
}

// substanceSeries draws one substance as a line with dots, leaving gaps at NaN values.
// go-chart's ContinuousSeries would draw NaN through the plot, so values are walked here.
type substanceSeries struct {
	Key     string
	Label   string
	Color   drawing.Color
	XValues []float64
	YValues []float64
}

func (s substanceSeries) GetName() string          { return s.Label }
func (s substanceSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s substanceSeries) GetStyle() chart.Style {
	return chart.Style{StrokeColor: s.Color, StrokeWidth: lineWidth, DotColor: s.Color, DotWidth: dotRadius}
}

func (s substanceSeries) Validate() error {
	if len(s.XValues) != len(s.YValues) {
		return fmt.Errorf("series %s: %d x values vs %d y values", s.Key, len(s.XValues), len(s.YValues))
	}
	return nil
}

func (s substanceSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, _ chart.Style) {
	type pt struct{ x, y int }
	var pts []pt
	r.SetStrokeColor(s.Color)
	r.SetStrokeWidth(lineWidth)
	r.SetStrokeDashArray(nil)
	open := false
	for i, xv := range s.XValues {
		yv := s.YValues[i]
		if math.IsNaN(yv) || math.IsInf(yv, 0) {
			open = false
			continue
		}
		x := canvasBox.Left + xrange.Translate(xv)
		y := canvasBox.Bottom - yrange.Translate(yv)
		pts = append(pts, pt{x, y})
		if !open {
			r.MoveTo(x, y)
			open = true
			continue
		}
		r.LineTo(x, y)
	}
	if len(pts) > 0 {
		r.Stroke()
	}
	for _, p := range pts {
		r.SetFillColor(s.Color)
		r.SetStrokeColor(s.Color)
		r.Circle(dotRadius, p.x, p.y)
		r.FillStroke()
	}
}

// plotGeometry is where go-chart put the plot area on the last render, in image pixels.
type plotGeometry struct {
	Box    chart.Box
	XRange chart.Range
}

func (g plotGeometry) valid() bool { return g.XRange != nil && g.Box.Width() > 0 }

// yearX is the image x of year, computed the same way substanceSeries.Render places its points.
func (g plotGeometry) yearX(year int) int {
	return g.Box.Left + g.XRange.Translate(float64(year))
}

// axisAnchor keeps go-chart drawing axes and grid when every substance is hidden.
// It also records the final canvas box and x range into geom.
type axisAnchor struct {
	geom *plotGeometry
}

func (axisAnchor) GetName() string           { return "" }
func (axisAnchor) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (axisAnchor) GetStyle() chart.Style     { return chart.Style{} }
func (axisAnchor) Validate() error           { return nil }

func (a axisAnchor) Render(_ chart.Renderer, canvasBox chart.Box, xrange, _ chart.Range, _ chart.Style) {
	if a.geom != nil {
		a.geom.Box = canvasBox
		a.geom.XRange = xrange
	}
}

// legend draws a single centered row of swatches under the X axis, one per substance series.
func legend(c *chart.Chart) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		var entries []substanceSeries
		for _, s := range c.Series {
			if ss, ok := s.(substanceSeries); ok {
				entries = append(entries, ss)
			}
		}
		if len(entries) == 0 {
			return
		}
		const pad, swatch, gap = 5, 14, 12
		r.SetFont(defaults.Font)
		r.SetFontSize(legendFontSize)
		r.SetFontColor(legendText)
		textH := 0
		rowW := 2 * pad
		for i, e := range entries {
			tb := r.MeasureText(e.Label)
			if tb.Height() > textH {
				textH = tb.Height()
			}
			rowW += swatch + 4 + tb.Width()
			if i > 0 {
				rowW += gap
			}
		}
		left := (c.Width - rowW) / 2
		if left < 0 {
			left = 0
		}
		top := c.Height - chartPadBottom + 6
		box := chart.Box{Top: top, Left: left, Right: left + rowW, Bottom: top + textH + 2*pad}

		r.SetFillColor(legendBackground)
		r.SetStrokeColor(legendBorder)
		r.SetStrokeWidth(1)
		r.SetStrokeDashArray(nil)
		r.MoveTo(box.Left, box.Top)
		r.LineTo(box.Right, box.Top)
		r.LineTo(box.Right, box.Bottom)
		r.LineTo(box.Left, box.Bottom)
		r.LineTo(box.Left, box.Top)
		r.FillStroke()

		x := box.Left + pad
		midY := box.Top + pad + textH/2
		baseline := box.Top + pad + textH
		for _, e := range entries {
			r.SetStrokeColor(e.Color)
			r.SetStrokeWidth(lineWidth)
			r.MoveTo(x, midY)
			r.LineTo(x+swatch, midY)
			r.Stroke()
			x += swatch + 4
			r.SetFontColor(legendText)
			r.Text(e.Label, x, baseline)
			x += r.MeasureText(e.Label).Width() + gap
		}
	}
}

// xBounds is the plotted year range, padded by half a year on each side so edge dots stay visible.
func xBounds(ds *dataset.Dataset) (float64, float64) {
	if ds.Empty() {
		return 0, 1
	}
	first, last := ds.Years[0], ds.Years[0]
	for _, y := range ds.Years {
		if y < first {
			first = y
		}
		if y > last {
			last = y
		}
	}
	return float64(first) - 0.5, float64(last) + 0.5
}

// yBounds spans zero to a rounded maximum of the visible series. With nothing
// visible the whole table is used so the axes stay put while toggling.
func yBounds(ds *dataset.Dataset, vis *viewmodel.Visibility) (float64, float64, []chart.Tick) {
	max, ok := ds.MaxRate(vis.VisibleSubstances())
	if !ok {
		max, ok = ds.MaxRate(ds.Substances)
	}
	if !ok {
		max = 1
	}
	top := uihelpers.NiceMax(max)
	vals := uihelpers.BuildNumericTicks(0, top, 6)
	ticks := make([]chart.Tick, 0, len(vals))
	for _, v := range vals {
		ticks = append(ticks, chart.Tick{Value: v, Label: uihelpers.FormatNumericTick(v)})
	}
	if n := len(vals); n > 0 && vals[n-1] > top {
		top = vals[n-1]
	}
	return 0, top, ticks
}

// buildSeries returns one series per visible substance, in load order.
func buildSeries(ds *dataset.Dataset, vis *viewmodel.Visibility, palette viewmodel.Palette) []substanceSeries {
	if ds.Empty() {
		return nil
	}
	xs := make([]float64, len(ds.Records))
	for i, rec := range ds.Records {
		xs[i] = float64(rec.Year)
	}
	var out []substanceSeries
	for _, s := range vis.VisibleSubstances() {
		out = append(out, substanceSeries{
			Key:     s,
			Label:   dataset.DisplayLabel(s),
			Color:   hexColor(palette.Color(s)),
			XValues: xs,
			YValues: ds.Series(s),
		})
	}
	return out
}

// buildChart assembles the go-chart definition for the current state. The returned
// geometry is filled in once the chart has been rendered.
func buildChart(ds *dataset.Dataset, vis *viewmodel.Visibility, palette viewmodel.Palette, title string, w, h int) (chart.Chart, *plotGeometry) {
	xMin, xMax := xBounds(ds)
	yMin, yMax, yTicks := yBounds(ds, vis)

	var xTicks []chart.Tick
	if !ds.Empty() {
		// go-chart narrows the x range to the tick span, so unlabeled edge ticks keep the half-year padding
		xTicks = append(xTicks, chart.Tick{Value: xMin})
		maxTicks := (w - chartPadLeft - chartPadRight - axisRightGutterPx) / 48
		for _, y := range uihelpers.BuildYearTicks(int(xMin+0.5), int(xMax-0.5), maxTicks) {
			xTicks = append(xTicks, chart.Tick{Value: float64(y), Label: fmt.Sprintf("%d", y)})
		}
		xTicks = append(xTicks, chart.Tick{Value: xMax})
	}

	geom := &plotGeometry{}
	series := []chart.Series{axisAnchor{geom: geom}}
	for _, s := range buildSeries(ds, vis, palette) {
		series = append(series, s)
	}
	ch := chart.Chart{
		Title:      title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: chartPadTop, Left: chartPadLeft, Right: chartPadRight, Bottom: chartPadBottom}},
		XAxis: chart.XAxis{
			Name:           xAxisName,
			Ticks:          xTicks,
			Range:          &chart.ContinuousRange{Min: xMin, Max: xMax},
			GridMajorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Name:           yAxisName,
			Ticks:          yTicks,
			Range:          &chart.ContinuousRange{Min: yMin, Max: yMax},
			GridMajorStyle: gridStyle,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{legend(&ch)}
	return ch, geom
}

// renderChartImage draws the chart, falling back to a blank image on render errors.
// The geometry is only valid for a real chart.
func renderChartImage(ds *dataset.Dataset, vis *viewmodel.Visibility, palette viewmodel.Palette, title string, w, h int) (image.Image, plotGeometry) {
	if ds.Empty() {
		return blank(w, h, "No data loaded"), plotGeometry{}
	}
	ch, geom := buildChart(ds, vis, palette, title, w, h)
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		applog.Errorf("chart render error: %v; showing blank fallback", err)
		return blank(w, h, "Chart unavailable"), plotGeometry{}
	}
	img, err := png.Decode(&buf)
	if err != nil {
		applog.Errorf("chart decode error: %v; showing blank fallback", err)
		return blank(w, h, "Chart unavailable"), plotGeometry{}
	}
	return img, *geom
}

// blank returns a plain white placeholder with an optional caption.
func blank(w, h int, caption string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if strings.TrimSpace(caption) == "" {
		return img
	}
	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.RGBA{R: 120, G: 120, B: 120, A: 255}), Face: face}
	tw := dr.MeasureString(caption).Ceil()
	dr.Dot = fixed.Point26_6{X: fixed.I((w - tw) / 2), Y: fixed.I(h / 2)}
	dr.DrawString(caption)
	return img
}
