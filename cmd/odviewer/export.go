package main

import (
	"bytes"
	"fmt"
	png "image/png"
	"os"
	"path/filepath"

	"github.com/iafilius/OverdoseTrends/cmd/odviewer/uihelpers"
	"github.com/iafilius/OverdoseTrends/src/applog"
	"github.com/iafilius/OverdoseTrends/src/dataset"
	"github.com/iafilius/OverdoseTrends/src/viewmodel"
)

// RunExportMode loads cfg.DataFile, hides the given substances and writes the chart as a PNG.
// It runs headlessly without creating a UI window.
func RunExportMode(cfg Config, outPath string, hidden []string) error {
	ds, err := dataset.Load(cfg.DataFile)
	if err != nil {
		return err
	}
	if ds.Empty() {
		return fmt.Errorf("%s: %w", cfg.DataFile, dataset.ErrEmptyTable)
	}
	vis := viewmodel.NewVisibility(ds.Substances)
	for _, name := range hidden {
		if !vis.Visible(name) {
			applog.Warnf("hide %s: not a visible substance, skipping", name)
			continue
		}
		vis.Toggle(name)
	}
	w, h := uihelpers.ComputeChartDimensions(defaultWidth, cfg.ChartHeight)
	img, _ := renderChartImage(ds, vis, viewmodel.NewPalette(cfg.Colors), cfg.Title, w, h)

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode %s: %w", outPath, err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	applog.Infof("wrote %s (%dx%d, %d of %d substances shown)", outPath, w, h, len(vis.VisibleSubstances()), len(ds.Substances))
	return nil
}
