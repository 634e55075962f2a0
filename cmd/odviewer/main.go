package main

import (
	"flag"
	"image/color"
	png "image/png"
	"os"
	"sync"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/OverdoseTrends/cmd/odviewer/uihelpers"
	"github.com/iafilius/OverdoseTrends/src/applog"
	"github.com/iafilius/OverdoseTrends/src/dataset"
	"github.com/iafilius/OverdoseTrends/src/viewmodel"
)

const hintText = "Click on the drug names above to show/hide their trends. Hover over the chart to see detailed values."

type uiState struct {
	app     fyne.App
	window  fyne.Window
	cfg     Config
	palette viewmodel.Palette

	// nil until the background load succeeds
	data *dataset.Dataset
	vis  *viewmodel.Visibility

	loadOnce sync.Once
	loadFn   func(path string) (*dataset.Dataset, error)

	togglesBox *fyne.Container
	toggles    map[string]*widget.Button
	chartImg   *canvas.Image
	plot       plotGeometry
	overlay    *crosshairOverlay
}

func newUIState(a fyne.App, w fyne.Window, cfg Config) *uiState {
	return &uiState{
		app:     a,
		window:  w,
		cfg:     cfg,
		palette: viewmodel.NewPalette(cfg.Colors),
		loadFn:  dataset.Load,
		toggles: map[string]*widget.Button{},
	}
}

type lightTheme struct{}

func (l *lightTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantLight)
}
func (l *lightTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (l *lightTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (l *lightTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var configPath, fileFlag, logLevel, exportPath, hideFlag string
	flag.StringVar(&configPath, "config", defaultConfigPath, "Path to YAML config (skipped if absent)")
	flag.StringVar(&fileFlag, "file", "", "Path to the overdose table (.csv or .xlsx)")
	flag.StringVar(&logLevel, "log-level", "", "debug|info|warn|error")
	flag.StringVar(&exportPath, "export", "", "Render the chart to this PNG and exit")
	flag.StringVar(&hideFlag, "hide", "", "Comma separated substances to hide in -export")
	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		applog.Errorf("%v", err)
		os.Exit(1)
	}
	cfg.applyFlags(fileFlag, logLevel)
	if lvl, err := applog.ParseLevel(cfg.LogLevel); err != nil {
		applog.Warnf("%v, staying at %s", err, applog.GetLogLevel())
	} else {
		applog.SetLevel(lvl)
	}

	if exportPath != "" {
		if err := RunExportMode(cfg, exportPath, parseHideList(hideFlag)); err != nil {
			applog.Errorf("export failed: %v", err)
			os.Exit(1)
		}
		return
	}

	a := app.NewWithID("com.overdosetrends.viewer")
	a.Settings().SetTheme(&lightTheme{})
	w := a.NewWindow(cfg.Title)
	w.Resize(fyne.NewSize(defaultWidth, 720))

	state := newUIState(a, w, cfg)
	w.SetContent(state.buildContent())
	buildMenus(state)
	watchResize(state)
	state.startLoad()

	w.ShowAndRun()
}

// buildContent lays out title, toggle row, chart with hover overlay and the hint line.
func (s *uiState) buildContent() fyne.CanvasObject {
	title := widget.NewLabelWithStyle(s.cfg.Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	s.togglesBox = container.NewGridWrap(fyne.NewSize(0, 0))

	s.chartImg = canvas.NewImageFromImage(nil)
	s.chartImg.FillMode = canvas.ImageFillContain
	s.overlay = newCrosshairOverlay(s)
	s.redrawChart()

	hint := widget.NewLabel(hintText)
	hint.Wrapping = fyne.TextWrapWord
	hint.Importance = widget.LowImportance

	return container.NewVBox(
		title,
		s.togglesBox,
		container.NewStack(s.chartImg, s.overlay),
		hint,
	)
}

// startLoad runs the loader once in the background and hands the result to the UI thread.
func (s *uiState) startLoad() {
	s.loadOnce.Do(func() {
		path := s.cfg.DataFile
		applog.Debugf("loading %s", path)
		go func() {
			ds, err := s.loadFn(path)
			fyne.Do(func() { s.applyLoad(ds, err) })
		}()
	})
}

// applyLoad installs a loaded dataset. On failure the window keeps its empty chart and no toggles.
func (s *uiState) applyLoad(ds *dataset.Dataset, err error) {
	if err != nil {
		applog.Errorf("Error loading data: %v", err)
		return
	}
	if ds.Empty() {
		applog.Warnf("no substances loaded from %s", s.cfg.DataFile)
		return
	}
	s.data = ds
	s.vis = viewmodel.NewVisibility(ds.Substances)
	for _, name := range ds.Substances {
		if !applog.Enabled(applog.LevelDebug) {
			break
		}
		if !s.palette.Has(name) {
			applog.Debugf("no color for %s, using %s", name, viewmodel.FallbackColor)
		}
	}
	applog.Infof("loaded %d years x %d substances", len(ds.Years), len(ds.Substances))
	s.rebuildToggles()
	s.redrawChart()
}

func (s *uiState) rebuildToggles() {
	if s.togglesBox == nil {
		return
	}
	s.togglesBox.RemoveAll()
	s.toggles = map[string]*widget.Button{}
	// equal cells sized to the widest label, wrapping onto new rows as the window narrows
	var cell fyne.Size
	for _, name := range s.vis.Substances() {
		name := name
		b := widget.NewButton(dataset.DisplayLabel(name), func() { s.toggle(name) })
		styleToggle(b, s.vis.Visible(name))
		s.toggles[name] = b
		s.togglesBox.Add(b)
		cell = cell.Max(b.MinSize())
	}
	s.togglesBox.Layout = layout.NewGridWrapLayout(cell)
	s.togglesBox.Refresh()
}

// toggle flips one substance and redraws.
func (s *uiState) toggle(name string) {
	if s.vis == nil {
		return
	}
	on := s.vis.Toggle(name)
	applog.Debugf("toggle %s -> %v", name, on)
	if b := s.toggles[name]; b != nil {
		styleToggle(b, on)
	}
	s.redrawChart()
}

func styleToggle(b *widget.Button, on bool) {
	if on {
		b.Importance = widget.HighImportance
	} else {
		b.Importance = widget.LowImportance
	}
	b.Refresh()
}

func (s *uiState) redrawChart() {
	if s.chartImg == nil {
		return
	}
	w, h := chartSize(s)
	s.chartImg.Image, s.plot = renderChartImage(s.data, s.vis, s.palette, "", w, h)
	s.chartImg.SetMinSize(fyne.NewSize(float32(w)/2, float32(h)))
	s.chartImg.Refresh()
	if s.overlay != nil {
		s.overlay.Refresh()
	}
}

// chartSize follows the window width; the height is fixed by config.
func chartSize(s *uiState) (int, int) {
	height := 0
	if s != nil {
		height = s.cfg.ChartHeight
	}
	if s == nil || s.window == nil || s.window.Canvas() == nil || s.window.Canvas().Size().Width <= 0 {
		return uihelpers.ComputeChartDimensions(defaultWidth, height)
	}
	// ~95% of the window, minus a small margin for padding
	return uihelpers.ComputeChartDimensions(int(s.window.Canvas().Size().Width*0.95)-12, height)
}

// menus and shortcuts
func buildMenus(s *uiState) {
	if s == nil || s.window == nil {
		return
	}
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export Chart…", func() { exportChartPNG(s, "overdose_rates.png") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { s.window.Close() }),
	)
	s.window.SetMainMenu(fyne.NewMainMenu(fileMenu))

	canv := s.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyE, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { exportChartPNG(s, "overdose_rates.png") })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyE, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { exportChartPNG(s, "overdose_rates.png") })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { s.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { s.window.Close() })
	}
}

func exportChartPNG(s *uiState, defaultName string) {
	if s == nil || s.window == nil {
		return
	}
	if s.chartImg == nil || s.chartImg.Image == nil || s.data.Empty() {
		dialog.ShowInformation("Export", "No chart to export.", s.window)
		return
	}
	img := s.chartImg.Image
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img); err != nil {
			applog.Errorf("export %s: %v", wc.URI(), err)
			dialog.ShowError(err, s.window)
			return
		}
		applog.Infof("exported chart to %s", wc.URI())
	}, s.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// watchResize redraws the chart when the window width changes, until the window closes.
func watchResize(s *uiState) {
	w := s.window
	if w == nil || w.Canvas() == nil {
		return
	}
	prevW := int(w.Canvas().Size().Width)
	done := make(chan struct{})
	w.SetOnClosed(func() { close(done) })
	go func() {
		t := time.NewTicker(300 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				c := w.Canvas()
				if c == nil {
					continue
				}
				curW := int(c.Size().Width)
				if curW != prevW {
					prevW = curW
					fyne.Do(s.redrawChart)
				}
			}
		}
	}()
}
