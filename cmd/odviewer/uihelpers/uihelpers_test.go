package uihelpers

import (
	"math"
	"testing"
)

func TestComputeChartDimensions(t *testing.T) {
	cases := []struct {
		inW, inH     int
		wantW, wantH int
	}{
		{100, 0, 640, DefaultChartHeight},
		{639, 384, 640, 384},
		{1600, 0, 1600, DefaultChartHeight},
		{1200, 120, 1200, 200},
		{1200, 500, 1200, 500},
	}
	for _, c := range cases {
		w, h := ComputeChartDimensions(c.inW, c.inH)
		if w != c.wantW || h != c.wantH {
			t.Fatalf("ComputeChartDimensions(%d,%d) = %d,%d want %d,%d", c.inW, c.inH, w, h, c.wantW, c.wantH)
		}
	}
}

func TestBuildYearTicks(t *testing.T) {
	all := BuildYearTicks(1999, 2022, 30)
	if len(all) != 24 || all[0] != 1999 || all[23] != 2022 {
		t.Fatalf("expected every year, got %v", all)
	}
	for i := 1; i < len(all); i++ {
		if all[i] != all[i-1]+1 {
			t.Fatalf("non-contiguous years: %v", all)
		}
	}

	sparse := BuildYearTicks(1999, 2022, 12)
	if len(sparse) > 12 {
		t.Fatalf("too many ticks: %v", sparse)
	}
	if sparse[0] != 1999 || sparse[len(sparse)-1] != 2022 {
		t.Fatalf("ends not kept: %v", sparse)
	}
	for i := 1; i < len(sparse); i++ {
		if sparse[i] <= sparse[i-1] {
			t.Fatalf("ticks not increasing: %v", sparse)
		}
	}

	single := BuildYearTicks(2000, 2000, 5)
	if len(single) != 1 || single[0] != 2000 {
		t.Fatalf("single year: %v", single)
	}
	swapped := BuildYearTicks(2002, 2000, 1)
	if swapped[0] != 2000 || swapped[len(swapped)-1] != 2002 {
		t.Fatalf("swapped bounds: %v", swapped)
	}
}

func TestNiceMax(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{7.0, 8},
		{32.3, 40},
		{0, 1},
		{-3, 1},
		{math.NaN(), 1},
		{95, 100},
	}
	for _, c := range cases {
		if got := NiceMax(c.in); got != c.want {
			t.Fatalf("NiceMax(%v) = %v want %v", c.in, got, c.want)
		}
		if !math.IsNaN(c.in) && c.in > 0 && NiceMax(c.in) < c.in {
			t.Fatalf("NiceMax(%v) below input", c.in)
		}
	}
}

func TestBuildNumericTicksAndFormat(t *testing.T) {
	cases := []struct {
		min, max float64
		n        int
	}{
		{0, 40, 6},
		{0, 1, 5},
		{0, 8, 6},
	}
	for _, c := range cases {
		vals := BuildNumericTicks(c.min, c.max, c.n)
		if len(vals) < 2 {
			t.Fatalf("expected >=2 ticks for %#v got %v", c, vals)
		}
		if vals[0] > c.min {
			t.Fatalf("first tick %v above min %v", vals[0], c.min)
		}
		if last := vals[len(vals)-1]; last < c.max {
			t.Fatalf("last tick %v below max %v (vals=%v)", last, c.max, vals)
		}
	}
	if BuildNumericTicks(0, 1, 1) != nil {
		t.Fatalf("n<2 should yield nil")
	}

	if got := FormatNumericTick(0); got != "0" {
		t.Fatalf("format 0 => %q", got)
	}
	if got := FormatNumericTick(123.4); got != "123" {
		t.Fatalf("format 123.4 => %q want 123", got)
	}
	if got := FormatNumericTick(20); got != "20" {
		t.Fatalf("format 20 => %q want 20", got)
	}
	if got := FormatNumericTick(12.5); got != "12.5" {
		t.Fatalf("format 12.5 => %q want 12.5", got)
	}
	if got := FormatNumericTick(2.5); got != "2.5" {
		t.Fatalf("format 2.5 => %q want 2.5", got)
	}
	if got := FormatNumericTick(0.25); got != "0.25" {
		t.Fatalf("format 0.25 => %q want 0.25", got)
	}
}
