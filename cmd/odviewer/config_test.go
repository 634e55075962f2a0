package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "odviewer.yaml"))
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if !reflect.DeepEqual(cfg, defaultConfig()) {
		t.Fatalf("got %+v want defaults", cfg)
	}
}

func TestLoadConfig_OverridesAndColors(t *testing.T) {
	p := filepath.Join(t.TempDir(), "odviewer.yaml")
	body := `data_file: data/rates.xlsx
title: "Overdose Deaths"
chart_height: 420
log_level: DEBUG
colors:
  "Other/Opioids": "#000000"
  Kratom: 17becf
`
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataFile != "data/rates.xlsx" || cfg.Title != "Overdose Deaths" || cfg.ChartHeight != 420 || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Colors["Other_Opioids"] != "#000000" || cfg.Colors["Kratom"] != "17becf" {
		t.Fatalf("colors not normalized: %v", cfg.Colors)
	}

	cfg.applyFlags("other.csv", "")
	if cfg.DataFile != "other.csv" || cfg.LogLevel != "debug" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestLoadConfig_ParseError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(p, []byte("chart_height: [1, 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(p); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParseHideList(t *testing.T) {
	got := parseHideList(" Heroin, Other/Opioids ,,")
	want := []string{"Heroin", "Other_Opioids"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if parseHideList("") != nil {
		t.Fatalf("empty flag should hide nothing")
	}
}
