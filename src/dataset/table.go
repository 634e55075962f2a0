// Package dataset loads the substance-by-year rate table and reshapes it into
// one record per year.
//
// Input layout: the header row holds an ignored first cell followed by year
// labels; every following row is a substance name followed by one rate per year.
// Cells that do not parse as numbers become NaN rather than errors.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrEmptyTable is returned when the input has no header row.
	ErrEmptyTable = errors.New("table has no header row")
	// ErrMalformedHeader is returned when a header year label is not an integer.
	ErrMalformedHeader = errors.New("malformed header")
)

// RawTable is the parsed file before reshaping.
type RawTable struct {
	Years []int
	Rows  []RawRow
}

// RawRow is one substance and its rates in header-year order.
type RawRow struct {
	Substance string
	Rates     []float64
}

// ParseTable reads comma-separated text into a RawTable.
func ParseTable(r io.Reader) (*RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return parseRecords(records)
}

// parseRecords builds a RawTable from already split cells (CSV or spreadsheet rows).
func parseRecords(records [][]string) (*RawTable, error) {
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}
	header := records[0]
	if len(header) > 0 {
		header = header[1:]
	}
	years := make([]int, 0, len(header))
	for i, cell := range header {
		y, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil {
			return nil, fmt.Errorf("%w: column %d year %q", ErrMalformedHeader, i+2, cell)
		}
		years = append(years, y)
	}

	t := &RawTable{Years: years}
	index := map[string]int{}
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		name := NormalizeSubstance(rec[0])
		if name == "" {
			continue
		}
		rates := make([]float64, len(years))
		for i := range rates {
			rates[i] = math.NaN()
			if i+1 < len(rec) {
				rates[i] = parseRate(rec[i+1])
			}
		}
		// repeated substances keep their first position, last values win
		if at, ok := index[name]; ok {
			t.Rows[at].Rates = rates
			continue
		}
		index[name] = len(t.Rows)
		t.Rows = append(t.Rows, RawRow{Substance: name, Rates: rates})
	}
	return t, nil
}

// parseRate reads one cell; anything that is not a finite number is missing.
func parseRate(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// Substances returns the row names in first-seen order.
func (t *RawTable) Substances() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Substance
	}
	return out
}
