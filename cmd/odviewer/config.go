package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iafilius/OverdoseTrends/cmd/odviewer/uihelpers"
	"github.com/iafilius/OverdoseTrends/src/dataset"
)

const (
	defaultConfigPath = "odviewer.yaml"
	defaultDataFile   = "overdose_data.csv"
	defaultTitle      = "Drug Overdose Rates (1999-2022)"
)

// Config is the optional odviewer.yaml file.
type Config struct {
	DataFile    string            `yaml:"data_file"`
	Title       string            `yaml:"title"`
	ChartHeight int               `yaml:"chart_height"`
	LogLevel    string            `yaml:"log_level"`
	Colors      map[string]string `yaml:"colors"` // substance -> hex, keys may use "/" like the table
}

func defaultConfig() Config {
	return Config{
		DataFile:    defaultDataFile,
		Title:       defaultTitle,
		ChartHeight: uihelpers.DefaultChartHeight,
		LogLevel:    "info",
	}
}

// loadConfig reads path if it exists. A missing file yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	// Defaults
	if s := strings.TrimSpace(fileCfg.DataFile); s != "" {
		cfg.DataFile = s
	}
	if s := strings.TrimSpace(fileCfg.Title); s != "" {
		cfg.Title = s
	}
	if fileCfg.ChartHeight > 0 {
		cfg.ChartHeight = fileCfg.ChartHeight
	}
	if s := strings.TrimSpace(fileCfg.LogLevel); s != "" {
		cfg.LogLevel = strings.ToLower(s)
	}
	if len(fileCfg.Colors) > 0 {
		cfg.Colors = make(map[string]string, len(fileCfg.Colors))
		for k, v := range fileCfg.Colors {
			cfg.Colors[dataset.NormalizeSubstance(k)] = v
		}
	}
	return cfg, nil
}

// applyFlags lets non-empty command line values win over the file.
func (c *Config) applyFlags(file, logLevel string) {
	if s := strings.TrimSpace(file); s != "" {
		c.DataFile = s
	}
	if s := strings.TrimSpace(logLevel); s != "" {
		c.LogLevel = strings.ToLower(s)
	}
}

// parseHideList splits "-hide Heroin,Other/Opioids" into normalized substance keys.
func parseHideList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if k := dataset.NormalizeSubstance(part); k != "" {
			out = append(out, k)
		}
	}
	return out
}
