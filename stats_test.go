package rational

import (
	"errors"
	"testing"
)

func mustParseSlice(vals ...string) []Rational {
	res := make([]Rational, len(vals))
	for i, v := range vals {
		res[i] = MustParse(v)
	}
	return res
}

func TestSum(t *testing.T) {
	tests := []struct {
		vals   []Rational
		want   string
		approx bool
	}{
		{nil, "0", false},
		{mustParseSlice("1/3", "1/6"), "1/2", false},
		{mustParseSlice("1/2", "-1/3", "-1/6"), "0", false},
		{mustParseSlice("1", "1/2", "1/3", "1/4", "1/5"), "137/60", false},
		{[]Rational{One, ApproxZero}, "1", true},
	}
	for _, tt := range tests {
		got := Sum(tt.vals...)
		if got.String() != tt.want {
			t.Errorf("Sum(%v) = %q, want %q", tt.vals, got, tt.want)
		}
		if got.IsApprox() != tt.approx {
			t.Errorf("Sum(%v).IsApprox() = %v, want %v", tt.vals, got.IsApprox(), tt.approx)
		}
	}
}

func TestProduct(t *testing.T) {
	tests := []struct {
		vals   []Rational
		want   string
		approx bool
	}{
		{nil, "1", false},
		{mustParseSlice("1/2", "1/3", "1/4", "1/5"), "1/120", false},
		{mustParseSlice("22/7", "0", "-1"), "0", false},
		{mustParseSlice("-2/3", "3/2"), "-1", false},
		{[]Rational{One, ApproxOne}, "1", true},
	}
	for _, tt := range tests {
		got := Product(tt.vals...)
		if got.String() != tt.want {
			t.Errorf("Product(%v) = %q, want %q", tt.vals, got, tt.want)
		}
		if got.IsApprox() != tt.approx {
			t.Errorf("Product(%v).IsApprox() = %v, want %v", tt.vals, got.IsApprox(), tt.approx)
		}
	}
}

func TestRational_AddAll(t *testing.T) {
	tests := []struct {
		r    string
		vals []Rational
		want string
	}{
		{"1/2", nil, "1/2"},
		{"1/2", mustParseSlice("1/3", "1/6"), "1"},
		{"-1/2", mustParseSlice("1/4", "1/4", "-1"), "-1"},
	}
	for _, tt := range tests {
		r := MustParse(tt.r)
		got := r.AddAll(tt.vals...)
		if got.String() != tt.want {
			t.Errorf("%q.AddAll(%v) = %q, want %q", r, tt.vals, got, tt.want)
		}
	}
}

func TestRational_MulAll(t *testing.T) {
	tests := []struct {
		r      string
		vals   []Rational
		want   string
		approx bool
	}{
		{"1/2", nil, "1/2", false},
		{"1/2", mustParseSlice("1/3", "1/2"), "1/12", false},
		{"1/2", []Rational{ApproxOne}, "1/2", true},
	}
	for _, tt := range tests {
		r := MustParse(tt.r)
		got := r.MulAll(tt.vals...)
		if got.String() != tt.want {
			t.Errorf("%q.MulAll(%v) = %q, want %q", r, tt.vals, got, tt.want)
		}
		if got.IsApprox() != tt.approx {
			t.Errorf("%q.MulAll(%v).IsApprox() = %v, want %v", r, tt.vals, got.IsApprox(), tt.approx)
		}
	}
}

func TestMin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			vals   []Rational
			want   string
			approx bool
		}{
			{mustParseSlice("1/2", "-1/3", "22/7", "-1/4"), "-1/3", false},
			{[]Rational{One}, "1", false},
			// First of equal values
			{[]Rational{MustParse("1/2"), MustParse("1/3").Mul(ApproxOne), MustParse("1/3")}, "1/3", true},
		}
		for _, tt := range tests {
			got, err := Min(tt.vals...)
			if err != nil {
				t.Errorf("Min(%v) failed: %v", tt.vals, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("Min(%v) = %q, want %q", tt.vals, got, tt.want)
			}
			if got.IsApprox() != tt.approx {
				t.Errorf("Min(%v).IsApprox() = %v, want %v", tt.vals, got.IsApprox(), tt.approx)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		_, err := Min()
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Min() = %v, want %v", err, ErrEmptyInput)
		}
	})
}

func TestMax(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			vals   []Rational
			want   string
			approx bool
		}{
			{mustParseSlice("1/2", "-1/3", "22/7", "-1/4"), "22/7", false},
			{[]Rational{One}, "1", false},
			// First of equal values
			{[]Rational{MustParse("1/2").Mul(ApproxOne), MustParse("1/3"), MustParse("1/2")}, "1/2", true},
		}
		for _, tt := range tests {
			got, err := Max(tt.vals...)
			if err != nil {
				t.Errorf("Max(%v) failed: %v", tt.vals, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("Max(%v) = %q, want %q", tt.vals, got, tt.want)
			}
			if got.IsApprox() != tt.approx {
				t.Errorf("Max(%v).IsApprox() = %v, want %v", tt.vals, got.IsApprox(), tt.approx)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		_, err := Max()
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Max() = %v, want %v", err, ErrEmptyInput)
		}
	})
}

func TestMean(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			vals []string
			want string
		}{
			{[]string{"1/2"}, "1/2"},
			{[]string{"1", "2"}, "3/2"},
			{[]string{"1/2", "1/3", "1/6"}, "1/3"},
			{[]string{"-1", "1"}, "0"},
			{[]string{"1", "1/2", "1/4", "1/8"}, "15/32"},
		}
		for _, tt := range tests {
			got, err := Mean(mustParseSlice(tt.vals...)...)
			if err != nil {
				t.Errorf("Mean(%v) failed: %v", tt.vals, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("Mean(%v) = %q, want %q", tt.vals, got, tt.want)
			}
			if got.IsApprox() {
				t.Errorf("Mean(%v).IsApprox() = true, want false", tt.vals)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		_, err := Mean()
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Mean() = %v, want %v", err, ErrEmptyInput)
		}
	})
}

func TestMedian(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			vals []string
			want string
		}{
			{[]string{"1/2"}, "1/2"},
			{[]string{"3", "1", "2"}, "2"},
			{[]string{"1", "1/2", "1/4", "1/8"}, "3/8"},
			{[]string{"5", "-1", "3", "1"}, "2"},
			{[]string{"1/3", "1/3", "1/3", "1/3"}, "1/3"},
			{[]string{"22/7", "-1/2", "0", "7", "1/100"}, "1/100"},
		}
		for _, tt := range tests {
			vals := mustParseSlice(tt.vals...)
			got, err := Median(vals...)
			if err != nil {
				t.Errorf("Median(%v) failed: %v", tt.vals, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("Median(%v) = %q, want %q", tt.vals, got, tt.want)
			}

			// Input is not reordered
			for i, v := range vals {
				if v.String() != MustParse(tt.vals[i]).String() {
					t.Errorf("Median(%v) reordered the input to %v", tt.vals, vals)
					break
				}
			}
		}
	})

	t.Run("approx", func(t *testing.T) {
		vals := []Rational{MustParse("1"), MustParse("2").Mul(ApproxOne), MustParse("3")}
		got, err := Median(vals...)
		if err != nil {
			t.Fatalf("Median(%v) failed: %v", vals, err)
		}
		if got.String() != "2" || !got.IsApprox() {
			t.Errorf("Median(%v) = %q, approx %v, want approximate 2", vals, got, got.IsApprox())
		}
	})

	t.Run("error", func(t *testing.T) {
		_, err := Median()
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Median() = %v, want %v", err, ErrEmptyInput)
		}
	})
}
