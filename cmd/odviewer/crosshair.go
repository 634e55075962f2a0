package main

import (
	"image/color"
	"math"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/OverdoseTrends/src/dataset"
	"github.com/iafilius/OverdoseTrends/src/viewmodel"
)

// computeContainRect returns where an image of imgW x imgH lands inside a
// viewW x viewH area under ImageFillContain, and the scale applied.
func computeContainRect(imgW, imgH, viewW, viewH float32) (drawX, drawY, drawW, drawH, scale float32) {
	if imgW <= 0 || imgH <= 0 {
		return 0, 0, viewW, viewH, 1
	}
	sx := viewW / imgW
	sy := viewH / imgH
	scale = sx
	if sy < sx {
		scale = sy
	}
	drawW = imgW * scale
	drawH = imgH * scale
	drawX = (viewW - drawW) / 2
	drawY = (viewH - drawH) / 2
	return
}

// xCentersYears maps each year to its x position in overlay space, using the
// plot box recorded when the chart image was rendered.
func xCentersYears(ds *dataset.Dataset, geom plotGeometry, imgW, imgH, viewW, viewH float32) []float32 {
	if ds.Empty() || !geom.valid() {
		return nil
	}
	drawX, _, _, _, scale := computeContainRect(imgW, imgH, viewW, viewH)
	px := make([]float32, len(ds.Records))
	for i, rec := range ds.Records {
		px[i] = drawX + float32(geom.yearX(rec.Year))*scale
	}
	return px
}

// tooltipRow is one tooltip line and the color it is drawn in.
type tooltipRow struct {
	Text  string
	Color color.Color
	Bold  bool
}

// tooltipRows pairs the tooltip text with each substance's line color; the year heading uses fg.
func tooltipRows(ds *dataset.Dataset, vis *viewmodel.Visibility, palette viewmodel.Palette, idx int, fg color.Color) []tooltipRow {
	lines := viewmodel.TooltipLines(ds, vis, idx)
	if len(lines) == 0 {
		return nil
	}
	names := vis.VisibleSubstances()
	rows := make([]tooltipRow, 0, len(lines))
	rows = append(rows, tooltipRow{Text: lines[0], Color: fg, Bold: true})
	for i, line := range lines[1:] {
		rows = append(rows, tooltipRow{Text: line, Color: hexColor(palette.Color(names[i]))})
	}
	return rows
}

// nearestIndexAndLineXFromCenters picks nearest index to mouseX given precomputed centers.
func nearestIndexAndLineXFromCenters(centers []float32, mouseX float32) (int, float32) {
	if len(centers) == 0 {
		return 0, 0
	}
	best := 0
	bestD := float32(math.MaxFloat32)
	for i, c := range centers {
		d := float32(math.Abs(float64(mouseX - c)))
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best, centers[best]
}

// crosshairOverlay sits on top of the chart image and shows a tooltip for the
// year nearest to the mouse.
type crosshairOverlay struct {
	widget.BaseWidget
	state    *uiState
	mouse    fyne.Position
	hovering bool
}

func newCrosshairOverlay(state *uiState) *crosshairOverlay {
	c := &crosshairOverlay{state: state}
	c.ExtendBaseWidget(c)
	return c
}

func (c *crosshairOverlay) CreateRenderer() fyne.WidgetRenderer {
	// background to ensure full hit-area for hover events
	bg := canvas.NewRectangle(color.Transparent)
	lineV := canvas.NewLine(color.RGBA{R: 150, G: 150, B: 150, A: 200})
	lineV.StrokeWidth = 1
	label := container.NewVBox()
	labelBG := canvas.NewRectangle(color.RGBA{R: 255, G: 255, B: 255, A: 235})
	labelBG.StrokeColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	labelBG.StrokeWidth = 1
	labelBG.CornerRadius = 4
	return &crosshairRenderer{c: c, bg: bg, lineV: lineV, labelBG: labelBG, label: label,
		objs: []fyne.CanvasObject{bg, lineV, labelBG, label}}
}

type crosshairRenderer struct {
	c       *crosshairOverlay
	bg      *canvas.Rectangle
	lineV   *canvas.Line
	labelBG *canvas.Rectangle
	label   *fyne.Container
	shown   string
	objs    []fyne.CanvasObject
}

func (r *crosshairRenderer) hide() {
	r.lineV.Position1 = fyne.NewPos(-10, -10)
	r.lineV.Position2 = fyne.NewPos(-10, -10)
	r.labelBG.Resize(fyne.NewSize(0, 0))
	r.labelBG.Move(fyne.NewPos(-1000, -1000))
	r.label.Move(fyne.NewPos(-1000, -1000))
}

func (r *crosshairRenderer) Destroy() {}

func (r *crosshairRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	st := r.c.state
	if !r.c.hovering || st == nil || st.data.Empty() {
		r.hide()
		return
	}
	if st.chartImg == nil || st.chartImg.Image == nil || !st.plot.valid() {
		r.hide()
		return
	}
	b := st.chartImg.Image.Bounds()
	imgW, imgH := float32(b.Dx()), float32(b.Dy())
	drawX, drawY, _, _, scale := computeContainRect(imgW, imgH, size.Width, size.Height)
	x, y := r.c.mouse.X, r.c.mouse.Y
	// only inside the plot area of the drawn image
	plotLeft := drawX + float32(st.plot.Box.Left)*scale
	plotRight := drawX + float32(st.plot.Box.Right)*scale
	plotTop := drawY + float32(st.plot.Box.Top)*scale
	plotBottom := drawY + float32(st.plot.Box.Bottom)*scale
	if x < plotLeft || x > plotRight || y < plotTop || y > plotBottom {
		r.hide()
		return
	}
	centers := xCentersYears(st.data, st.plot, imgW, imgH, size.Width, size.Height)
	idx, lineX := nearestIndexAndLineXFromCenters(centers, x)
	rows := tooltipRows(st.data, st.vis, st.palette, idx, theme.Color(theme.ColorNameForeground))
	if len(rows) == 0 {
		r.hide()
		return
	}
	r.lineV.Position1 = fyne.NewPos(lineX, plotTop)
	r.lineV.Position2 = fyne.NewPos(lineX, plotBottom)
	r.setRows(rows)

	pad := float32(6)
	ts := r.label.MinSize()
	bgW := ts.Width + 2*pad
	bgH := ts.Height + 2*pad
	tx, ty := lineX+12, y+12
	if tx+bgW > size.Width {
		tx = lineX - 12 - bgW
	}
	if tx < 0 {
		tx = 0
	}
	if ty+bgH > size.Height {
		ty = size.Height - bgH
	}
	r.labelBG.Resize(fyne.NewSize(bgW, bgH))
	r.labelBG.Move(fyne.NewPos(tx, ty))
	r.label.Move(fyne.NewPos(tx+pad, ty+pad))
	r.label.Resize(ts)
}

// setRows rebuilds the tooltip text only when the hovered year or visibility changed.
func (r *crosshairRenderer) setRows(rows []tooltipRow) {
	parts := make([]string, len(rows))
	for i, row := range rows {
		parts[i] = row.Text
	}
	key := strings.Join(parts, "\n")
	if key == r.shown {
		return
	}
	r.shown = key
	objs := make([]fyne.CanvasObject, 0, len(rows))
	for _, row := range rows {
		txt := canvas.NewText(row.Text, row.Color)
		txt.TextStyle = fyne.TextStyle{Bold: row.Bold}
		objs = append(objs, txt)
	}
	r.label.Objects = objs
	r.label.Refresh()
}

func (r *crosshairRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *crosshairRenderer) Objects() []fyne.CanvasObject { return r.objs }

func (r *crosshairRenderer) Refresh() {
	r.Layout(r.c.Size())
	r.lineV.StrokeColor = theme.Color(theme.ColorNameDisabled)
	r.bg.Refresh()
	r.lineV.Refresh()
	r.labelBG.Refresh()
	r.label.Refresh()
}

func (c *crosshairOverlay) MouseMoved(ev *desktop.MouseEvent) {
	c.hovering = true
	c.mouse = ev.Position
	c.Refresh()
}
func (c *crosshairOverlay) MouseIn(ev *desktop.MouseEvent) {
	c.hovering = true
	c.mouse = ev.Position
	c.Refresh()
}
func (c *crosshairOverlay) MouseOut() { c.hovering = false; c.Refresh() }

var _ desktop.Hoverable = (*crosshairOverlay)(nil)
