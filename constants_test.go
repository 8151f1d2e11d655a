package rational

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// readConstantDigits returns the decimal expansions used to generate constants.
func readConstantDigits(t *testing.T) map[string]string {
	t.Helper()
	f, err := os.Open(filepath.Join("scripts", "constants", "constants_data.csv"))
	if err != nil {
		t.Fatalf("os.Open() failed: %v", err)
	}
	defer func() { _ = f.Close() }()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("csv.ReadAll() failed: %v", err)
	}
	digits := make(map[string]string, len(recs))
	for _, rec := range recs[1:] {
		digits[rec[0]] = rec[2]
	}
	return digits
}

func TestConstants(t *testing.T) {
	tests := []struct {
		name  string
		r     Rational
		float float64
	}{
		{"Pi", Pi, math.Pi},
		{"E", E, math.E},
	}
	digits := readConstantDigits(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.r.IsApprox() {
				t.Errorf("%v.IsApprox() = false, want true", tt.name)
			}
			if got := tt.r.Den(); got.Cmp(defaultMaxDenom) != 0 {
				t.Errorf("%v.Den() = %v, want %v", tt.name, got, defaultMaxDenom)
			}
			got, err := tt.r.Float64()
			if err != nil {
				t.Fatalf("%v.Float64() failed: %v", tt.name, err)
			}
			if got != tt.float {
				t.Errorf("%v.Float64() = %v, want %v", tt.name, got, tt.float)
			}

			// Nearest fraction to the long decimal expansion
			s, ok := digits[tt.name]
			if !ok {
				t.Fatalf("constant %v is missing from the data file", tt.name)
			}
			if len(s) < 1000 {
				t.Errorf("len(%v digits) = %v, want at least 1000", tt.name, len(s))
			}
			want := MustParse(s).Approx()
			if !tt.r.Equal(want) {
				t.Errorf("%v = %q, want %q", tt.name, tt.r, want)
			}
		})
	}
}

func TestConstants_Basic(t *testing.T) {
	if !Zero.IsZero() || Zero.IsApprox() {
		t.Errorf("Zero = %q, approx %v, want exact 0", Zero, Zero.IsApprox())
	}
	if !One.IsOne() || One.IsApprox() {
		t.Errorf("One = %q, approx %v, want exact 1", One, One.IsApprox())
	}
	if !ApproxZero.IsZero() || !ApproxZero.IsApprox() {
		t.Errorf("ApproxZero = %q, approx %v, want approximate 0", ApproxZero, ApproxZero.IsApprox())
	}
	if !ApproxOne.IsOne() || !ApproxOne.IsApprox() {
		t.Errorf("ApproxOne = %q, approx %v, want approximate 1", ApproxOne, ApproxOne.IsApprox())
	}
	if Zero != (Rational{}) {
		t.Errorf("Zero != Rational{}")
	}
}
