package dataset

import (
	"math"
	"strings"
)

// SubstanceSeparator is the character raw names use between words (e.g. "Other/Opioids").
const SubstanceSeparator = "/"

// normalizedSeparator replaces SubstanceSeparator inside substance keys.
const normalizedSeparator = "_"

// YearRecord carries every substance's rate for one year.
type YearRecord struct {
	Year  int
	Rates map[string]float64
}

// Rate returns the value for name; ok is false when it is absent, NaN or infinite.
func (r YearRecord) Rate(name string) (float64, bool) {
	v, ok := r.Rates[name]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN(), false
	}
	return v, true
}

// Dataset is the reshaped, read-only view consumed by the chart.
type Dataset struct {
	Years      []int
	Substances []string
	Records    []YearRecord
}

// Reshape transposes the table into one YearRecord per header year.
func (t *RawTable) Reshape() *Dataset {
	ds := &Dataset{
		Years:      append([]int(nil), t.Years...),
		Substances: t.Substances(),
		Records:    make([]YearRecord, len(t.Years)),
	}
	for i, y := range t.Years {
		rates := make(map[string]float64, len(t.Rows))
		for _, row := range t.Rows {
			rates[row.Substance] = row.Rates[i]
		}
		ds.Records[i] = YearRecord{Year: y, Rates: rates}
	}
	return ds
}

// Empty reports whether there is nothing to plot: no years or no substances.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Records) == 0 || len(d.Substances) == 0
}

// Series returns name's rates in year order; missing values are NaN.
func (d *Dataset) Series(name string) []float64 {
	if d == nil {
		return nil
	}
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i], _ = r.Rate(name)
	}
	return out
}

// MaxRate returns the largest non-NaN rate across names, and false if there is none.
func (d *Dataset) MaxRate(names []string) (float64, bool) {
	max := math.Inf(-1)
	found := false
	if d == nil {
		return 0, false
	}
	for _, r := range d.Records {
		for _, n := range names {
			if v, ok := r.Rate(n); ok && v > max {
				max = v
				found = true
			}
		}
	}
	if !found {
		return 0, false
	}
	return max, true
}

// NormalizeSubstance trims a raw name and replaces every separator with "_".
func NormalizeSubstance(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), SubstanceSeparator, normalizedSeparator)
}

// DisplayLabel turns a substance key into the human-readable label ("Other_Opioids" -> "Other Opioids").
func DisplayLabel(name string) string {
	return strings.ReplaceAll(name, normalizedSeparator, " ")
}
