package rational

import (
	"fmt"
	"slices"
)

// Sum returns the sum of the rationals.
// The sum of no rationals is exact 0.
func Sum(vals ...Rational) Rational {
	s := Zero
	for _, v := range vals {
		s = s.Add(v)
	}
	return s
}

// Product returns the product of the rationals.
// The product of no rationals is exact 1.
func Product(vals ...Rational) Rational {
	p := One
	for _, v := range vals {
		p = p.Mul(v)
	}
	return p
}

// AddAll returns the sum of rational r and all the given rationals.
// See also function [Sum].
func (r Rational) AddAll(vals ...Rational) Rational {
	return r.Add(Sum(vals...))
}

// MulAll returns the product of rational r and all the given rationals.
// See also function [Product].
func (r Rational) MulAll(vals ...Rational) Rational {
	return r.Mul(Product(vals...))
}

// Min returns the smallest of the rationals.
// If several rationals are equal to the minimum, the first one is returned.
// See also method [Rational.Min].
//
// Min returns an error if no rationals are given.
func Min(vals ...Rational) (Rational, error) {
	if len(vals) == 0 {
		return Rational{}, fmt.Errorf("computing minimum: %w", ErrEmptyInput)
	}
	m := vals[0]
	for _, v := range vals[1:] {
		m = m.Min(v)
	}
	return m, nil
}

// Max returns the largest of the rationals.
// If several rationals are equal to the maximum, the first one is returned.
// See also method [Rational.Max].
//
// Max returns an error if no rationals are given.
func Max(vals ...Rational) (Rational, error) {
	if len(vals) == 0 {
		return Rational{}, fmt.Errorf("computing maximum: %w", ErrEmptyInput)
	}
	m := vals[0]
	for _, v := range vals[1:] {
		m = m.Max(v)
	}
	return m, nil
}

// Mean returns the arithmetic mean (average) of the rationals.
//
// Mean returns an error if no rationals are given.
func Mean(vals ...Rational) (Rational, error) {
	if len(vals) == 0 {
		return Rational{}, fmt.Errorf("computing mean: %w", ErrEmptyInput)
	}
	return mean(vals), nil
}

func mean(vals []Rational) Rational {
	m, err := Sum(vals...).quo(NewFromInt(len(vals)))
	if err != nil {
		// len(vals) > 0
		panic(fmt.Sprintf("mean of %v values failed: %v", len(vals), err))
	}
	return m
}

// Median returns the median of the rationals: the middle rational in sorted
// order, or the mean of the two middle rationals if their count is even.
// The slice is not modified.
//
// Median returns an error if no rationals are given.
func Median(vals ...Rational) (Rational, error) {
	if len(vals) == 0 {
		return Rational{}, fmt.Errorf("computing median: %w", ErrEmptyInput)
	}
	sorted := slices.Clone(vals)
	slices.SortStableFunc(sorted, Rational.Cmp)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	return mean(sorted[mid-1 : mid+1]), nil
}
