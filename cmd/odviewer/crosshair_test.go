package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/iafilius/OverdoseTrends/src/dataset"
	"github.com/iafilius/OverdoseTrends/src/viewmodel"
)

func TestComputeContainRect(t *testing.T) {
	// wider view: letterboxed left/right
	x, y, w, h, s := computeContainRect(1000, 400, 1200, 400)
	if s != 1 || x != 100 || y != 0 || w != 1000 || h != 400 {
		t.Fatalf("got x=%v y=%v w=%v h=%v s=%v", x, y, w, h, s)
	}
	// narrower view: scaled down, letterboxed top/bottom
	x, y, w, h, s = computeContainRect(1000, 400, 500, 400)
	if s != 0.5 || x != 0 || y != 100 || w != 500 || h != 200 {
		t.Fatalf("got x=%v y=%v w=%v h=%v s=%v", x, y, w, h, s)
	}
	// no image yet
	_, _, w, h, s = computeContainRect(0, 0, 300, 200)
	if s != 1 || w != 300 || h != 200 {
		t.Fatalf("empty image: w=%v h=%v s=%v", w, h, s)
	}
}

func renderedGeometry(t *testing.T, ds *dataset.Dataset, w, h int) plotGeometry {
	t.Helper()
	_, geom := renderChartImage(ds, viewmodel.NewVisibility(ds.Substances), viewmodel.NewPalette(nil), "", w, h)
	if !geom.valid() {
		t.Fatalf("no plot geometry after render: %+v", geom)
	}
	return geom
}

func TestXCentersYears_IncreasingInsidePlot(t *testing.T) {
	ds := sampleDataset(t)
	geom := renderedGeometry(t, ds, 1000, 384)
	centers := xCentersYears(ds, geom, 1000, 384, 1000, 384)
	if len(centers) != len(ds.Records) {
		t.Fatalf("centers=%d records=%d", len(centers), len(ds.Records))
	}
	left, right := float32(geom.Box.Left), float32(geom.Box.Right)
	for i, c := range centers {
		if c <= left || c >= right {
			t.Fatalf("center %d at %v outside plot (%v,%v)", i, c, left, right)
		}
		if i > 0 && c <= centers[i-1] {
			t.Fatalf("centers not increasing: %v", centers)
		}
	}
	// half the view: everything halves
	half := xCentersYears(ds, geom, 1000, 384, 500, 192)
	for i := range centers {
		if math.Abs(float64(half[i]-centers[i]/2)) > 0.01 {
			t.Fatalf("scaled center %d = %v want %v", i, half[i], centers[i]/2)
		}
	}
	if xCentersYears(nil, geom, 1000, 384, 1000, 384) != nil {
		t.Fatalf("expected nil centers without data")
	}
	if xCentersYears(ds, plotGeometry{}, 1000, 384, 1000, 384) != nil {
		t.Fatalf("expected nil centers before the first render")
	}
}

// isFentanylRed matches the solid part of a #d62728 dot.
func isFentanylRed(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 > 180 && g>>8 < 110 && b>>8 < 110
}

func TestXCentersYears_MatchRenderedDots(t *testing.T) {
	// every other year missing, so each value is an isolated dot
	var sb strings.Builder
	sb.WriteString("Drug")
	for y := 1999; y <= 2022; y++ {
		fmt.Fprintf(&sb, ",%d", y)
	}
	sb.WriteString("\nFentanyl")
	for i := 0; i < 24; i++ {
		if i%2 == 0 {
			fmt.Fprintf(&sb, ",%d", 5+i)
		} else {
			sb.WriteString(",")
		}
	}
	sb.WriteString("\n")
	raw, err := dataset.ParseTable(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ds := raw.Reshape()

	const w, h = 1100, 384
	img, geom := renderChartImage(ds, viewmodel.NewVisibility(ds.Substances), viewmodel.NewPalette(nil), "", w, h)
	if !geom.valid() {
		t.Fatalf("no plot geometry")
	}

	// columns of the plot area holding red pixels, grouped into runs
	var dots []float32
	runStart := -1
	for x := geom.Box.Left; x <= geom.Box.Right+1; x++ {
		red := false
		if x <= geom.Box.Right {
			for y := geom.Box.Top; y <= geom.Box.Bottom; y++ {
				if isFentanylRed(img.At(x, y)) {
					red = true
					break
				}
			}
		}
		switch {
		case red && runStart < 0:
			runStart = x
		case !red && runStart >= 0:
			dots = append(dots, float32(runStart+x-1)/2)
			runStart = -1
		}
	}
	if len(dots) != 12 {
		t.Fatalf("found %d dots in the image, want 12: %v", len(dots), dots)
	}

	centers := xCentersYears(ds, geom, w, h, w, h)
	for k, dotX := range dots {
		idx, lineX := nearestIndexAndLineXFromCenters(centers, dotX)
		if idx != 2*k {
			t.Fatalf("dot %d at x=%v snaps to year %d, want %d", k, dotX, ds.Records[idx].Year, ds.Records[2*k].Year)
		}
		if math.Abs(float64(lineX-dotX)) > 3 {
			t.Fatalf("crosshair for %d at x=%v, dot drawn at x=%v", ds.Records[idx].Year, lineX, dotX)
		}
	}
}

func TestTooltipRows_UseLineColors(t *testing.T) {
	ds := sampleDataset(t)
	vis := viewmodel.NewVisibility(ds.Substances)
	palette := viewmodel.NewPalette(nil)
	fg := color.Black

	rows := tooltipRows(ds, vis, palette, 1, fg)
	want := []struct {
		text string
		hex  string
	}{
		{"Year: 2000", ""},
		{"Heroin: 0.7", "#9467bd"},
		{"Cocaine: N/A", "#1f77b4"},
		{"Other Opioids: 1.5", "#ff7f0e"},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows=%+v", rows)
	}
	if !rows[0].Bold || rows[0].Color != fg || rows[0].Text != want[0].text {
		t.Fatalf("heading row %+v", rows[0])
	}
	for i := 1; i < len(want); i++ {
		if rows[i].Text != want[i].text || rows[i].Bold {
			t.Fatalf("row %d = %+v want %q", i, rows[i], want[i].text)
		}
		if rows[i].Color != hexColor(want[i].hex) {
			t.Fatalf("row %d color %v want %s", i, rows[i].Color, want[i].hex)
		}
	}

	vis.Toggle("Cocaine")
	rows = tooltipRows(ds, vis, palette, 1, fg)
	if len(rows) != 3 || rows[2].Text != "Other Opioids: 1.5" || rows[2].Color != hexColor("#ff7f0e") {
		t.Fatalf("hidden substance should drop its row without shifting colors: %+v", rows)
	}
	if tooltipRows(nil, nil, palette, 0, fg) != nil {
		t.Fatalf("no rows without data")
	}
}

func TestNearestIndexAndTooltip(t *testing.T) {
	ds := sampleDataset(t)
	vis := viewmodel.NewVisibility(ds.Substances)
	centers := xCentersYears(ds, renderedGeometry(t, ds, 1000, 384), 1000, 384, 1000, 384)

	idx, lineX := nearestIndexAndLineXFromCenters(centers, centers[1]+3)
	if idx != 1 || lineX != centers[1] {
		t.Fatalf("idx=%d lineX=%v want 1/%v", idx, lineX, centers[1])
	}
	idx, _ = nearestIndexAndLineXFromCenters(centers, -50)
	if idx != 0 {
		t.Fatalf("left of plot should snap to first year, got %d", idx)
	}
	idx, _ = nearestIndexAndLineXFromCenters(centers, 5000)
	if idx != len(centers)-1 {
		t.Fatalf("right of plot should snap to last year, got %d", idx)
	}

	// 2000 has no Cocaine value
	lines := viewmodel.TooltipLines(ds, vis, 1)
	want := []string{"Year: 2000", "Heroin: 0.7", "Cocaine: N/A", "Other Opioids: 1.5"}
	if len(lines) != len(want) {
		t.Fatalf("lines=%v want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q want %q", i, lines[i], want[i])
		}
	}

	if i, x := nearestIndexAndLineXFromCenters(nil, 10); i != 0 || x != 0 {
		t.Fatalf("empty centers: %d %v", i, x)
	}
}
