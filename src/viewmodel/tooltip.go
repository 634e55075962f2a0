package viewmodel

import (
	"fmt"
	"math"
	"strconv"

	"github.com/iafilius/OverdoseTrends/src/dataset"
)

// MissingPlaceholder replaces rates that are absent or unparsable.
const MissingPlaceholder = "N/A"

// FormatRate renders a rate with one decimal place.
func FormatRate(v float64, ok bool) string {
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return MissingPlaceholder
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// TooltipLines describes the year at idx: a "Year: N" heading and one
// "Label: value" line per visible substance. Out of range idx yields nil.
func TooltipLines(ds *dataset.Dataset, vis *Visibility, idx int) []string {
	if ds.Empty() || idx < 0 || idx >= len(ds.Records) {
		return nil
	}
	rec := ds.Records[idx]
	lines := []string{fmt.Sprintf("Year: %d", rec.Year)}
	for _, s := range vis.VisibleSubstances() {
		v, ok := rec.Rate(s)
		lines = append(lines, dataset.DisplayLabel(s)+": "+FormatRate(v, ok))
	}
	return lines
}
