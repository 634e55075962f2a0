package viewmodel

import "strings"

// FallbackColor is used for substances missing from the palette.
const FallbackColor = "#7f7f7f"

// DefaultColors maps substance keys to their line colors.
var DefaultColors = map[string]string{
	"Other_Opioids":    "#ff7f0e",
	"Fentanyl":         "#d62728",
	"Heroin":           "#9467bd",
	"Cocaine":          "#1f77b4",
	"Psychostimulants": "#2ca02c",
	"Methadone":        "#8c564b",
}

// Palette is a fixed substance -> hex color lookup.
type Palette struct {
	colors map[string]string
}

// NewPalette starts from DefaultColors and applies overrides on top.
func NewPalette(overrides map[string]string) Palette {
	p := Palette{colors: make(map[string]string, len(DefaultColors)+len(overrides))}
	for k, c := range DefaultColors {
		p.colors[k] = c
	}
	for k, c := range overrides {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if !strings.HasPrefix(c, "#") {
			c = "#" + c
		}
		p.colors[k] = strings.ToLower(c)
	}
	return p
}

// Color returns the hex color for name, or FallbackColor.
func (p Palette) Color(name string) string {
	if c, ok := p.colors[name]; ok {
		return c
	}
	return FallbackColor
}

// Has reports whether name has its own color.
func (p Palette) Has(name string) bool {
	_, ok := p.colors[name]
	return ok
}
