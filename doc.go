/*
Package rational implements immutable exact rational numbers.
A [Rational] is a fraction of two arbitrary-precision integers, backed by
[big.Int], and is designed for calculations that must not drift the way
binary floating-point numbers do.

# Features

  - Immutable rationals, ensuring safe usage across multiple goroutines
  - Exact arithmetic and comparison operations
  - Tracking of approximate values, such as values converted from floats
  - Conversions to and from integers, floats, and decimals
  - Rounding to decimal places, significant digits, or a given unit
  - Aggregates such as sum, product, mean, and median

# Representation

A rational is always kept in canonical form:

  - the denominator is positive and the numerator carries the sign;
  - the numerator and the denominator are coprime;
  - zero is represented only as 0/1.

Besides the fraction, every rational carries an approximation flag.
A rational is approximate if it may deviate from the value that was actually
intended: when it was converted from a binary float, derived from an
irrational constant such as [Pi], produced by rounding, or computed from
another approximate rational.
Arithmetic operations on exact rationals always produce exact rationals.
The flag does not take part in comparisons: an approximate rational is equal
to an exact rational with the same fraction.

# Conversions

The package provides methods for converting rationals:

  - from/to string:
    [Parse], [ParseFrac], [ParseDecimal], [Rational.String], [Rational.Format].
  - from/to integers:
    [New], [NewFromInt], [NewFromBig], [Rational.Int64], [Rational.BigInt].
  - from/to floats:
    [NewFromFloat64], [Rational.Float64].
  - from/to decimals:
    [NewFromDecimal], [NewFromBigDecimal], [Rational.Decimal], [Rational.BigDecimal].

Conversions to integers truncate toward zero.
Conversions to floats round half to even from the exact quotient.
Conversions to decimals are exact and fail if the decimal expansion of
the rational does not terminate.

# Rounding

Rationals can be rounded to a number of digits after the decimal point using
[Rational.Round], [Rational.Trunc], [Rational.Floor], and [Rational.Ceil],
to a number of significant digits using [Rational.RoundSig], to a multiple
of a unit using [Rational.Quantize], or to a bounded denominator using
[Rational.Approx].
Rounding that changes the value flags the result as approximate.

# Errors

Errors wrap one of the sentinel values of this package, such as
[ErrDivisionByZero] or [ErrParse], and can be tested with [errors.Is].
Functions with the Must prefix panic instead of returning errors.
*/
package rational
