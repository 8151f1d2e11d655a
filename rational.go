package rational

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/govalues/decimal"
	bigdec "github.com/shopspring/decimal"
)

// Errors returned by constructors, arithmetic operations and conversions.
// Returned errors wrap one of these values and can be tested with [errors.Is].
var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrParse          = errors.New("invalid rational syntax")
	ErrInvalidValue   = errors.New("invalid value")
	ErrOverflow       = errors.New("overflow")
	ErrInexact        = errors.New("inexact conversion")
	ErrEmptyInput     = errors.New("empty input")
)

// maxExponent bounds the decimal exponent accepted by [ParseDecimal].
const maxExponent = 100_000

var (
	bigOne  = big.NewInt(1)
	bigFive = big.NewInt(5)
	bigTen  = big.NewInt(10)
)

// Rational type represents a fraction of two arbitrary-precision integers.
// Its zero value corresponds to exact 0.
//
// A rational is always kept in canonical form: the denominator is positive,
// the numerator carries the sign, and the fraction is reduced to lowest terms.
// Besides the fraction, a rational carries an approximation flag, see
// [Rational.IsApprox].
//
// Rational is immutable and designed to be safe for concurrent use by
// multiple goroutines.
type Rational struct {
	num    *big.Int // numerator, nil means 0
	den    *big.Int // denominator, nil means 1
	approx bool     // value may deviate from the intended quantity
}

// Integer is the set of fixed-width integer types accepted by [NewFromInt].
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// newRatUnsafe creates a new rational without reducing the fraction.
// Use it only if you are absolutely sure that num and den are coprime
// and den is positive. The arguments must not be modified afterwards.
func newRatUnsafe(num, den *big.Int, approx bool) Rational {
	if num != nil && num.Sign() == 0 {
		num, den = nil, nil
	}
	if den != nil && den.Cmp(bigOne) == 0 {
		den = nil
	}
	return Rational{num: num, den: den, approx: approx}
}

// newRatSafe creates a new rational and reduces the fraction.
// It takes ownership of num and den.
func newRatSafe(num, den *big.Int, approx bool) (Rational, error) {
	if den.Sign() == 0 {
		return Rational{}, ErrDivisionByZero
	}
	return reduce(num, den, approx), nil
}

// reduce moves the sign to the numerator and divides both parts by their
// greatest common divisor. It takes ownership of num and den.
// The denominator must not be zero.
func reduce(num, den *big.Int, approx bool) Rational {
	if num.Sign() == 0 {
		return Rational{approx: approx}
	}
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	var g big.Int
	g.GCD(nil, nil, num, den)
	if g.Cmp(bigOne) != 0 {
		num.Quo(num, &g)
		den.Quo(den, &g)
	}
	return newRatUnsafe(num, den, approx)
}

// New returns a rational equal to num / den in canonical form.
//
// New returns an error if the denominator is 0.
func New(num, den int64) (Rational, error) {
	r, err := newRatSafe(big.NewInt(num), big.NewInt(den), false)
	if err != nil {
		return Rational{}, fmt.Errorf("computing [%v/%v]: %w", num, den, err)
	}
	return r, nil
}

// MustNew is like [New] but panics if the rational cannot be constructed.
// It simplifies safe initialization of global variables holding rationals.
func MustNew(num, den int64) Rational {
	r, err := New(num, den)
	if err != nil {
		panic(fmt.Sprintf("New(%v, %v) failed: %v", num, den, err))
	}
	return r
}

// NewFromBig returns a rational equal to num / den in canonical form.
// The arguments are copied and can be reused by the caller.
//
// NewFromBig returns an error if the denominator is 0.
func NewFromBig(num, den *big.Int) (Rational, error) {
	r, err := newRatSafe(new(big.Int).Set(num), new(big.Int).Set(den), false)
	if err != nil {
		return Rational{}, fmt.Errorf("computing [%v/%v]: %w", num, den, err)
	}
	return r, nil
}

// NewFromInt returns an exact rational equal to integer v.
func NewFromInt[T Integer](v T) Rational {
	var n big.Int
	if v < 0 {
		n.SetInt64(int64(v))
	} else {
		n.SetUint64(uint64(v))
	}
	return newRatUnsafe(&n, nil, false)
}

// NewFromBigInt returns an exact rational equal to integer v.
// The argument is copied and can be reused by the caller.
func NewFromBigInt(v *big.Int) Rational {
	return newRatUnsafe(new(big.Int).Set(v), nil, false)
}

// NewFromFloat64 converts a float to a rational.
// The result is the exact binary value of the float, its denominator being
// a power of two. For example, 0.1 is converted to
// 3602879701896397/36028797018963968.
// Since the float may itself be an approximation of the intended value,
// the result is always flagged as approximate.
// See also method [Rational.Float64].
//
// NewFromFloat64 returns an error if the float is a special value (NaN or Inf).
func NewFromFloat64(f float64) (Rational, error) {
	r, err := newRatFromFloat(f)
	if err != nil {
		return Rational{}, fmt.Errorf("converting float: %w", err)
	}
	return r, nil
}

// NewFromFloat32 is like [NewFromFloat64] but for single precision floats.
// For example, float32(0.1) is converted to 13421773/134217728.
func NewFromFloat32(f float32) (Rational, error) {
	r, err := newRatFromFloat(float64(f))
	if err != nil {
		return Rational{}, fmt.Errorf("converting float: %w", err)
	}
	return r, nil
}

func newRatFromFloat(f float64) (Rational, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Rational{}, fmt.Errorf("%w: special value %v", ErrInvalidValue, f)
	}
	if f == 0 {
		return ApproxZero, nil
	}

	// f = frac * 2^exp with 0.5 <= |frac| < 1
	frac, exp := math.Frexp(f)
	mant := int64(frac * 0x1p53)
	exp -= 53

	num := big.NewInt(mant)
	den := big.NewInt(1)
	if exp > 0 {
		num.Lsh(num, uint(exp))
	} else {
		den.Lsh(den, uint(-exp))
	}
	return reduce(num, den, true), nil
}

// NewFromDecimal converts a decimal to an exact rational.
// The scale of the decimal is not preserved: 1.50 is converted to 3/2.
// See also method [Rational.Decimal].
func NewFromDecimal(d decimal.Decimal) Rational {
	num := new(big.Int).SetUint64(d.Coef())
	if d.IsNeg() {
		num.Neg(num)
	}
	return reduce(num, pow10(d.Scale()), false)
}

// NewFromBigDecimal converts an arbitrary-precision decimal to an exact rational.
// See also method [Rational.BigDecimal].
func NewFromBigDecimal(d bigdec.Decimal) Rational {
	num := d.Coefficient()
	exp := int(d.Exponent())
	if exp >= 0 {
		num.Mul(num, pow10(exp))
		return newRatUnsafe(num, nil, false)
	}
	return reduce(num, pow10(-exp), false)
}

// ParseDecimal converts a decimal string to an exact rational.
// The input string must be in one of the following formats:
//
//	1.234
//	-1234
//	+0.000001234
//	1.83e5
//	-.5E-3
//
// ParseDecimal returns an error if the string is not a valid decimal.
func ParseDecimal(s string) (Rational, error) {
	r, err := parseDecimal(s)
	if err != nil {
		return Rational{}, fmt.Errorf("parsing decimal %q: %w", s, err)
	}
	return r, nil
}

func parseDecimal(s string) (Rational, error) {
	d, err := bigdec.NewFromString(s)
	if err != nil {
		return Rational{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if e := d.Exponent(); e > maxExponent || e < -maxExponent {
		return Rational{}, fmt.Errorf("%w: exponent %v out of range", ErrParse, e)
	}
	return NewFromBigDecimal(d), nil
}

// ParseFrac converts a pair of base 10 integer strings to a rational equal to
// num / den in canonical form.
//
// ParseFrac returns an error if:
//   - any of the strings is not a valid integer;
//   - the denominator is 0.
func ParseFrac(num, den string) (Rational, error) {
	r, err := parseFrac(num, den)
	if err != nil {
		return Rational{}, fmt.Errorf("parsing fraction [%q/%q]: %w", num, den, err)
	}
	return r, nil
}

func parseFrac(num, den string) (Rational, error) {
	n, ok := new(big.Int).SetString(num, 10)
	if !ok {
		return Rational{}, fmt.Errorf("%w: numerator %q", ErrParse, num)
	}
	d, ok := new(big.Int).SetString(den, 10)
	if !ok {
		return Rational{}, fmt.Errorf("%w: denominator %q", ErrParse, den)
	}
	return newRatSafe(n, d, false)
}

// Parse converts a string to a rational.
// The input string must be in one of the following formats:
//
//	7
//	-22/7
//	3/-4
//	1.25
//	-1.5e-3
//
// Any output of [Rational.String] is accepted.
//
// Parse returns an error if:
//   - the string is neither a fraction nor a decimal;
//   - the denominator is 0.
func Parse(s string) (Rational, error) {
	r, err := parse(s)
	if err != nil {
		return Rational{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return r, nil
}

func parse(s string) (Rational, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		return parseFrac(num, den)
	}
	return parseDecimal(s)
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding rationals.
func MustParse(s string) Rational {
	r, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("Parse(%q) failed: %v", s, err))
	}
	return r
}

// numer returns the numerator. The result must not be modified.
func (r Rational) numer() *big.Int {
	if r.num == nil {
		return new(big.Int)
	}
	return r.num
}

// denom returns the denominator. The result must not be modified.
func (r Rational) denom() *big.Int {
	if r.den == nil {
		return bigOne
	}
	return r.den
}

// Num returns a copy of the numerator of the canonical fraction.
// The sign of the rational is carried by the numerator.
func (r Rational) Num() *big.Int {
	return new(big.Int).Set(r.numer())
}

// Den returns a copy of the denominator of the canonical fraction.
// The denominator is always positive.
func (r Rational) Den() *big.Int {
	return new(big.Int).Set(r.denom())
}

// Canonical returns the rational reduced to lowest terms.
// Every rational produced by this package is already canonical, so
// Canonical returns a value equal to r.
func (r Rational) Canonical() Rational {
	return reduce(r.Num(), r.Den(), r.approx)
}

// IsApprox returns true if the rational may deviate from the mathematically
// intended value, because it was created from a float, an irrational constant,
// a rounding operation, or an operation with another approximate rational.
// Exact operations on exact rationals always produce exact rationals.
func (r Rational) IsApprox() bool {
	return r.approx
}

// Sign returns:
//
//	-1 if r < 0
//	 0 if r = 0
//	+1 if r > 0
func (r Rational) Sign() int {
	if r.num == nil {
		return 0
	}
	return r.num.Sign()
}

// IsZero returns:
//
//	true  if r = 0
//	false otherwise
func (r Rational) IsZero() bool {
	return r.Sign() == 0
}

// IsOne returns:
//
//	true  if r = 1
//	false otherwise
func (r Rational) IsOne() bool {
	return r.IsInt() && r.numer().Cmp(bigOne) == 0
}

// IsNeg returns:
//
//	true  if r < 0
//	false otherwise
func (r Rational) IsNeg() bool {
	return r.Sign() < 0
}

// IsPos returns:
//
//	true  if r > 0
//	false otherwise
func (r Rational) IsPos() bool {
	return r.Sign() > 0
}

// IsInt returns true if the denominator is 1.
func (r Rational) IsInt() bool {
	return r.denom().Cmp(bigOne) == 0
}

// WithinOne returns:
//
//	true  if -1 < r < 1
//	false otherwise
func (r Rational) WithinOne() bool {
	return r.numer().CmpAbs(r.denom()) < 0
}

// BitLen returns the number of bits required to represent the absolute values
// of the numerator and the denominator.
// It grows with the cost of arithmetic on the rational and can be used to
// decide when to call [Rational.Approx].
func (r Rational) BitLen() int {
	return r.numer().BitLen() + r.denom().BitLen()
}

// Abs returns the absolute value of the rational.
func (r Rational) Abs() Rational {
	if r.IsNeg() {
		return r.Neg()
	}
	return r
}

// Magnitude returns the absolute value of the rational.
// It is the same as [Rational.Abs].
func (r Rational) Magnitude() Rational {
	return r.Abs()
}

// Neg returns a rational with the opposite sign.
func (r Rational) Neg() Rational {
	if r.IsZero() {
		return r
	}
	return newRatUnsafe(new(big.Int).Neg(r.num), r.den, r.approx)
}

// Inv returns the inverse of the rational.
//
// Inv returns an error if the rational is 0.
func (r Rational) Inv() (Rational, error) {
	q, err := r.inv()
	if err != nil {
		return Rational{}, fmt.Errorf("inverting %v: %w", r, err)
	}
	return q, nil
}

func (r Rational) inv() (Rational, error) {
	if r.IsZero() {
		return Rational{}, ErrDivisionByZero
	}
	num, den := r.Den(), r.Num()
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	return newRatUnsafe(num, den, r.approx), nil
}

// Add returns the sum of rationals r and b.
func (r Rational) Add(b Rational) Rational {
	return r.add(b, false)
}

// Sub returns the difference between rationals r and b.
func (r Rational) Sub(b Rational) Rational {
	return r.add(b, true)
}

// SubAbs returns the absolute difference between rationals r and b.
func (r Rational) SubAbs(b Rational) Rational {
	return r.Sub(b).Abs()
}

// add computes (n1 * d2 +/- n2 * d1) / (d1 * d2).
// The denominators may share factors, so the result is always reduced.
func (r Rational) add(b Rational, neg bool) Rational {
	approx := r.approx || b.approx
	n1, d1 := r.numer(), r.denom()
	n2, d2 := b.numer(), b.denom()

	num := new(big.Int).Mul(n1, d2)
	t := new(big.Int).Mul(n2, d1)
	if neg {
		num.Sub(num, t)
	} else {
		num.Add(num, t)
	}
	den := t.Mul(d1, d2)
	return reduce(num, den, approx)
}

// Mul returns the product of rationals r and b.
func (r Rational) Mul(b Rational) Rational {
	approx := r.approx || b.approx
	num := new(big.Int).Mul(r.numer(), b.numer())
	den := new(big.Int).Mul(r.denom(), b.denom())
	return reduce(num, den, approx)
}

// FMA returns the [fused multiply-addition] of rationals r, b, and c.
// It computes r * b + c with a single reduction of the result.
//
// [fused multiply-addition]: https://en.wikipedia.org/wiki/Multiply%E2%80%93accumulate_operation#Fused_multiply%E2%80%93add
func (r Rational) FMA(b, c Rational) Rational {
	approx := r.approx || b.approx || c.approx
	n1, d1 := r.numer(), r.denom()
	n2, d2 := b.numer(), b.denom()
	n3, d3 := c.numer(), c.denom()

	// (n1 * n2 * d3 + n3 * d1 * d2) / (d1 * d2 * d3)
	dd := new(big.Int).Mul(d1, d2)
	num := new(big.Int).Mul(n1, n2)
	num.Mul(num, d3)
	t := new(big.Int).Mul(n3, dd)
	num.Add(num, t)
	den := dd.Mul(dd, d3)
	return reduce(num, den, approx)
}

// Quo returns the quotient of rationals r and b.
// It is the same as multiplying r by the inverse of b.
//
// Quo returns an error if b is 0.
func (r Rational) Quo(b Rational) (Rational, error) {
	q, err := r.quo(b)
	if err != nil {
		return Rational{}, fmt.Errorf("computing [%v / %v]: %w", r, b, err)
	}
	return q, nil
}

func (r Rational) quo(b Rational) (Rational, error) {
	if b.IsZero() {
		return Rational{}, ErrDivisionByZero
	}
	approx := r.approx || b.approx
	num := new(big.Int).Mul(r.numer(), b.denom())
	den := new(big.Int).Mul(r.denom(), b.numer())
	return reduce(num, den, approx), nil
}

// Pow returns rational r raised to the integer power exp.
// A negative exponent raises the inverse of r to the power -exp.
// Any rational raised to the power 0 is exact 1, including 0.
//
// Pow returns an error if r is 0 and the exponent is negative.
func (r Rational) Pow(exp int) (Rational, error) {
	p, err := r.pow(exp)
	if err != nil {
		return Rational{}, fmt.Errorf("computing [%v^%v]: %w", r, exp, err)
	}
	return p, nil
}

func (r Rational) pow(exp int) (Rational, error) {
	if exp == 0 {
		return One, nil
	}

	num, den := r.numer(), r.denom()
	var e uint64
	if exp > 0 {
		e = uint64(exp)
	} else {
		if r.IsZero() {
			return Rational{}, ErrDivisionByZero
		}
		num, den = den, num
		e = uint64(-(exp + 1)) + 1
	}
	if r.IsZero() {
		return r, nil
	}

	// Powers of coprime integers stay coprime, only the sign needs moving.
	n := new(big.Int).Set(num)
	d := new(big.Int).Set(den)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	if n.CmpAbs(bigOne) == 0 && d.Cmp(bigOne) == 0 {
		// |r| = 1, result is 1 or -1
		if n.Sign() < 0 && e%2 == 0 {
			n.Neg(n)
		}
		return newRatUnsafe(n, nil, r.approx), nil
	}
	x := new(big.Int).SetUint64(e)
	n.Exp(n, x, nil)
	d.Exp(d, x, nil)
	return newRatUnsafe(n, d, r.approx), nil
}

// Cmp compares rationals and returns:
//
//	-1 if r < b
//	 0 if r = b
//	+1 if r > b
//
// The comparison is exact and ignores the approximation flag.
// See also method [Rational.CmpAbs].
func (r Rational) Cmp(b Rational) int {
	n1, d1 := r.numer(), r.denom()
	n2, d2 := b.numer(), b.denom()

	// Different signs
	if s1, s2 := n1.Sign(), n2.Sign(); s1 != s2 {
		return cmp.Compare(s1, s2)
	}

	// Same denominators
	if d1.Cmp(d2) == 0 {
		return n1.Cmp(n2)
	}

	// r < b if and only if n1 * d2 < n2 * d1, since denominators are positive
	x := new(big.Int).Mul(n1, d2)
	y := new(big.Int).Mul(n2, d1)
	return x.Cmp(y)
}

// CmpAbs compares absolute values of rationals and returns:
//
//	-1 if |r| < |b|
//	 0 if |r| = |b|
//	+1 if |r| > |b|
//
// See also method [Rational.Cmp].
func (r Rational) CmpAbs(b Rational) int {
	x := new(big.Int).Mul(r.numer(), b.denom())
	y := new(big.Int).Mul(b.numer(), r.denom())
	return x.CmpAbs(y)
}

// Equal returns true if rationals r and b have the same value.
// The approximation flag is ignored, so an approximate rational is equal to
// an exact rational with the same fraction.
func (r Rational) Equal(b Rational) bool {
	return r.numer().Cmp(b.numer()) == 0 && r.denom().Cmp(b.denom()) == 0
}

// Hash returns a hash of the canonical fraction.
// Equal rationals have the same hash, regardless of their approximation flags.
func (r Rational) Hash() uint64 {
	h := xxhash.New()
	writeHashInt(h, r.numer())
	writeHashInt(h, r.denom())
	return h.Sum64()
}

// writeHashInt writes the sign, the length and the magnitude of x.
func writeHashInt(h *xxhash.Digest, x *big.Int) {
	b := x.Bytes()
	l := len(b)
	var head [5]byte
	head[0] = byte(x.Sign() + 1)
	head[1] = byte(l >> 24)
	head[2] = byte(l >> 16)
	head[3] = byte(l >> 8)
	head[4] = byte(l)
	_, _ = h.Write(head[:])
	_, _ = h.Write(b)
}

// LessThan returns true if r < b.
func (r Rational) LessThan(b Rational) bool {
	return r.Cmp(b) < 0
}

// LessThanOrEqual returns true if r <= b.
func (r Rational) LessThanOrEqual(b Rational) bool {
	return r.Cmp(b) <= 0
}

// GreaterThan returns true if r > b.
func (r Rational) GreaterThan(b Rational) bool {
	return r.Cmp(b) > 0
}

// GreaterThanOrEqual returns true if r >= b.
func (r Rational) GreaterThanOrEqual(b Rational) bool {
	return r.Cmp(b) >= 0
}

// Min returns the smaller rational.
// If the rationals are equal, r is returned.
// See also function [Min].
func (r Rational) Min(b Rational) Rational {
	if r.Cmp(b) <= 0 {
		return r
	}
	return b
}

// Max returns the larger rational.
// If the rationals are equal, r is returned.
// See also function [Max].
func (r Rational) Max(b Rational) Rational {
	if r.Cmp(b) >= 0 {
		return r
	}
	return b
}

// Clamp compares rationals and returns:
//
//	min if r < min
//	max if r > max
//	  r otherwise
//
// Clamp returns an error if min is greater than max.
func (r Rational) Clamp(min, max Rational) (Rational, error) {
	if min.Cmp(max) > 0 {
		return Rational{}, fmt.Errorf("clamping %v: invalid range [%v, %v]", r, min, max)
	}
	if r.Cmp(min) < 0 {
		return min, nil
	}
	if r.Cmp(max) > 0 {
		return max, nil
	}
	return r, nil
}

// WithinTolerance returns true if |r - b| <= |tol|.
func (r Rational) WithinTolerance(b, tol Rational) bool {
	return r.Sub(b).CmpAbs(tol) <= 0
}

// IsApproxZero returns true if |r| <= |tol|.
func (r Rational) IsApproxZero(tol Rational) bool {
	return r.WithinTolerance(Zero, tol)
}

// IsApproxOne returns true if |r - 1| <= |tol|.
func (r Rational) IsApproxOne(tol Rational) bool {
	return r.WithinTolerance(One, tol)
}

// BigInt returns the rational truncated toward zero.
// This conversion loses the fractional part unless [Rational.IsInt] is true.
func (r Rational) BigInt() *big.Int {
	return new(big.Int).Quo(r.numer(), r.denom())
}

// Int64 returns the rational truncated toward zero.
//
// Int64 returns an error if the truncated value cannot be represented
// as an int64.
func (r Rational) Int64() (int64, error) {
	q := r.BigInt()
	if !q.IsInt64() {
		return 0, fmt.Errorf("converting %v to int64: %w", r, ErrOverflow)
	}
	return q.Int64(), nil
}

// Int32 returns the rational truncated toward zero.
//
// Int32 returns an error if the truncated value cannot be represented
// as an int32.
func (r Rational) Int32() (int32, error) {
	q := r.BigInt()
	if !q.IsInt64() || q.Int64() < math.MinInt32 || q.Int64() > math.MaxInt32 {
		return 0, fmt.Errorf("converting %v to int32: %w", r, ErrOverflow)
	}
	return int32(q.Int64()), nil
}

// Uint64 returns the rational truncated toward zero.
//
// Uint64 returns an error if the truncated value is negative or cannot be
// represented as a uint64.
func (r Rational) Uint64() (uint64, error) {
	q := r.BigInt()
	if !q.IsUint64() {
		return 0, fmt.Errorf("converting %v to uint64: %w", r, ErrOverflow)
	}
	return q.Uint64(), nil
}

// Float64 returns the nearest binary floating-point number rounded
// using [rounding half to even] (banker's rounding).
// The quotient is computed exactly before rounding, so large numerators
// and denominators do not lose precision.
// See also constructor [NewFromFloat64].
//
// Float64 returns an error if the magnitude of the rational is too large
// for a float64.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (r Rational) Float64() (float64, error) {
	f, _ := new(big.Rat).SetFrac(r.numer(), r.denom()).Float64()
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("converting %v to float64: %w", r, ErrOverflow)
	}
	return f, nil
}

// Float32 is like [Rational.Float64] but for single precision floats.
func (r Rational) Float32() (float32, error) {
	f, _ := new(big.Rat).SetFrac(r.numer(), r.denom()).Float32()
	if math.IsInf(float64(f), 0) {
		return 0, fmt.Errorf("converting %v to float32: %w", r, ErrOverflow)
	}
	return f, nil
}

// terminating returns coef and scale such that r = coef / 10^scale
// with the smallest possible scale.
// It returns an error if the decimal expansion of r does not terminate,
// which is the case when the denominator has a prime factor other than 2 and 5.
func (r Rational) terminating() (*big.Int, int, error) {
	d := r.Den()
	twos := int(d.TrailingZeroBits())
	d.Rsh(d, uint(twos))

	fives := 0
	var q, m big.Int
	for {
		q.QuoRem(d, bigFive, &m)
		if m.Sign() != 0 {
			break
		}
		d.Set(&q)
		fives++
	}
	if d.Cmp(bigOne) != 0 {
		return nil, 0, ErrInexact
	}

	// n / (2^twos * 5^fives) = n * 2^(scale-twos) * 5^(scale-fives) / 10^scale
	scale := max(twos, fives)
	coef := r.Num()
	coef.Lsh(coef, uint(scale-twos))
	coef.Mul(coef, new(big.Int).Exp(bigFive, big.NewInt(int64(scale-fives)), nil))
	return coef, scale, nil
}

// Decimal returns the exact decimal representation of the rational.
// See also constructor [NewFromDecimal].
//
// Decimal returns an error if:
//   - the decimal expansion of the rational does not terminate, for example 1/3;
//   - the expansion needs more than [decimal.MaxPrec] digits or more than
//     [decimal.MaxScale] digits after the decimal point.
//
// To convert a non-terminating rational, round it first, for example
// with [Rational.Round].
func (r Rational) Decimal() (decimal.Decimal, error) {
	d, err := r.decimal()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v to decimal: %w", r, err)
	}
	return d, nil
}

func (r Rational) decimal() (decimal.Decimal, error) {
	coef, scale, err := r.terminating()
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !coef.IsInt64() || scale > decimal.MaxScale {
		return decimal.Decimal{}, ErrOverflow
	}
	return decimal.New(coef.Int64(), scale)
}

// BigDecimal returns the exact arbitrary-precision decimal representation
// of the rational.
// See also constructor [NewFromBigDecimal].
//
// BigDecimal returns an error if the decimal expansion of the rational does
// not terminate, for example 1/3.
func (r Rational) BigDecimal() (bigdec.Decimal, error) {
	coef, scale, err := r.terminating()
	if err == nil && scale > math.MaxInt32 {
		err = ErrOverflow
	}
	if err != nil {
		return bigdec.Decimal{}, fmt.Errorf("converting %v to decimal: %w", r, err)
	}
	return bigdec.NewFromBigInt(coef, int32(-scale)), nil
}

// roundMode is a rule for rounding an inexact quotient to an integer.
type roundMode int

const (
	halfEven roundMode = iota // to nearest, ties to even
	toZero                    // truncation
	toNegInf                  // floor
	toPosInf                  // ceiling
)

// quoRound returns x / y rounded to an integer according to mode,
// and whether the quotient was inexact. The divisor must be positive.
func quoRound(x, y *big.Int, mode roundMode) (*big.Int, bool) {
	q, m := new(big.Int).QuoRem(x, y, new(big.Int))
	if m.Sign() == 0 {
		return q, false
	}
	up := false
	switch mode {
	case toNegInf:
		up = m.Sign() < 0
	case toPosInf:
		up = m.Sign() > 0
	case halfEven:
		// Compare the doubled remainder with the divisor
		m.Abs(m)
		m.Lsh(m, 1)
		c := m.Cmp(y)
		up = c > 0 || (c == 0 && q.Bit(0) == 1)
	}
	// Truncated quotient is moved away from zero
	if up {
		if x.Sign() < 0 {
			q.Sub(q, bigOne)
		} else {
			q.Add(q, bigOne)
		}
	}
	return q, true
}

// pow10 returns a new integer equal to 10^n.
func pow10(n int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}

// rescale rounds the rational to a multiple of 10^-scale.
// The result is flagged as approximate if rounding changed the value.
func (r Rational) rescale(scale int, mode roundMode) Rational {
	if r.IsInt() && scale >= 0 {
		return r
	}
	n, d := r.numer(), r.denom()
	if scale >= 0 {
		p := pow10(scale)
		q, inexact := quoRound(new(big.Int).Mul(n, p), d, mode)
		if !inexact {
			return r
		}
		return reduce(q, p, true)
	}
	p := pow10(-scale)
	q, inexact := quoRound(n, new(big.Int).Mul(d, p), mode)
	if !inexact {
		return r
	}
	return newRatUnsafe(q.Mul(q, p), nil, true)
}

// Round returns a rational rounded to the specified number of digits after
// the decimal point using [rounding half to even] (banker's rounding).
// A negative scale rounds to the left of the decimal point: -2 rounds to
// hundreds.
// If rounding changes the value, the result is flagged as approximate.
// See also methods [Rational.RoundSig], [Rational.Quantize].
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (r Rational) Round(scale int) Rational {
	return r.rescale(scale, halfEven)
}

// Trunc returns a rational truncated to the specified number of digits after
// the decimal point using [rounding toward zero].
// If rounding changes the value, the result is flagged as approximate.
//
// [rounding toward zero]: https://en.wikipedia.org/wiki/Rounding#Rounding_toward_zero
func (r Rational) Trunc(scale int) Rational {
	return r.rescale(scale, toZero)
}

// Floor returns a rational rounded down to the specified number of digits after
// the decimal point using [rounding toward negative infinity].
// If rounding changes the value, the result is flagged as approximate.
//
// [rounding toward negative infinity]: https://en.wikipedia.org/wiki/Rounding#Rounding_down
func (r Rational) Floor(scale int) Rational {
	return r.rescale(scale, toNegInf)
}

// Ceil returns a rational rounded up to the specified number of digits after
// the decimal point using [rounding toward positive infinity].
// If rounding changes the value, the result is flagged as approximate.
//
// [rounding toward positive infinity]: https://en.wikipedia.org/wiki/Rounding#Rounding_up
func (r Rational) Ceil(scale int) Rational {
	return r.rescale(scale, toPosInf)
}

// cmpPow10 compares |r| with 10^k.
func (r Rational) cmpPow10(k int) int {
	x := new(big.Int).Abs(r.numer())
	y := r.Den()
	if k >= 0 {
		y.Mul(y, pow10(k))
	} else {
		x.Mul(x, pow10(-k))
	}
	return x.Cmp(y)
}

// intDigits returns e such that 10^(e-1) <= |r| < 10^e.
// The rational must not be 0.
func (r Rational) intDigits() int {
	// log10(|r|) estimated from bit lengths, then corrected exactly
	lg := r.numer().BitLen() - r.denom().BitLen()
	e := int(math.Floor(float64(lg)*math.Log10(2))) + 1
	for r.cmpPow10(e) >= 0 {
		e++
	}
	for r.cmpPow10(e-1) < 0 {
		e--
	}
	return e
}

// RoundSig returns a rational rounded to the specified number of significant
// decimal digits using [rounding half to even] (banker's rounding).
// A number of digits less than 1 is treated as 1.
// If rounding changes the value, the result is flagged as approximate.
// See also methods [Rational.Round], [Rational.Quantize].
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (r Rational) RoundSig(digits int) Rational {
	if r.IsZero() {
		return r
	}
	digits = max(digits, 1)
	return r.Round(digits - r.intDigits())
}

// Quantize returns the multiple of |unit| nearest to r, using
// [rounding half to even] on ties.
// For example, quantizing 22/7 with unit 1/16 gives 25/8.
// The result is flagged as approximate if rounding changed the value or
// if any of the arguments is approximate.
// See also methods [Rational.Round], [Rational.RoundSig].
//
// Quantize returns an error if the unit is 0.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (r Rational) Quantize(unit Rational) (Rational, error) {
	q, err := r.quantize(unit)
	if err != nil {
		return Rational{}, fmt.Errorf("quantizing %v to %v: %w", r, unit, err)
	}
	return q, nil
}

func (r Rational) quantize(unit Rational) (Rational, error) {
	if unit.IsZero() {
		return Rational{}, ErrDivisionByZero
	}
	u := unit.Abs()
	// round((n1 / d1) / (n2 / d2)) = round(n1 * d2 / (d1 * n2))
	x := new(big.Int).Mul(r.numer(), u.denom())
	y := new(big.Int).Mul(r.denom(), u.numer())
	q, inexact := quoRound(x, y, halfEven)
	approx := r.approx || unit.approx || inexact
	return reduce(q.Mul(q, u.numer()), u.Den(), approx), nil
}

// defaultMaxDenom is the denominator bound used by [Rational.Approx], 2^128.
var defaultMaxDenom = new(big.Int).Lsh(bigOne, 128)

// Approx returns the rational approximated with a denominator of at most 2^128.
// It is the same as [Rational.ApproxBigDenom] with that bound.
// This is useful on long chains of calculations, where numerators and
// denominators grow without bound.
func (r Rational) Approx() Rational {
	a, err := r.approxDenom(defaultMaxDenom)
	if err != nil {
		panic(fmt.Sprintf("%v.Approx() failed: %v", r, err))
	}
	return a
}

// ApproxDenom is like [Rational.ApproxBigDenom] but takes an int64 bound.
func (r Rational) ApproxDenom(max int64) (Rational, error) {
	return r.ApproxBigDenom(big.NewInt(max))
}

// ApproxBigDenom returns the rational unchanged if its denominator does not
// exceed max. Otherwise it returns the fraction with denominator max nearest
// to r, using [rounding half to even] on ties, in canonical form and flagged
// as approximate.
// For example, approximating [Pi] with a bound of 113 gives 355/113.
//
// ApproxBigDenom returns an error if max is not positive.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (r Rational) ApproxBigDenom(max *big.Int) (Rational, error) {
	a, err := r.approxDenom(max)
	if err != nil {
		return Rational{}, fmt.Errorf("approximating %v with denominator %v: %w", r, max, err)
	}
	return a, nil
}

func (r Rational) approxDenom(max *big.Int) (Rational, error) {
	if max.Sign() <= 0 {
		return Rational{}, fmt.Errorf("%w: denominator bound must be positive", ErrInvalidValue)
	}
	if r.denom().Cmp(max) <= 0 {
		return r, nil
	}
	x := new(big.Int).Mul(r.numer(), max)
	q, inexact := quoRound(x, r.denom(), halfEven)
	return reduce(q, new(big.Int).Set(max), r.approx || inexact), nil
}

// appendText appends the canonical text form of the rational to buf.
func (r Rational) appendText(buf []byte) []byte {
	buf = r.numer().Append(buf, 10)
	if !r.IsInt() {
		buf = append(buf, '/')
		buf = r.denom().Append(buf, 10)
	}
	return buf
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of the rational: "n" if the denominator is 1, and "n/d"
// otherwise. The approximation flag is not part of the representation.
// See also methods [Rational.Format], [Rational.MarshalText].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (r Rational) String() string {
	return string(r.appendText(nil))
}

// fixedScale returns the default number of fractional digits of the %f verb:
// the exact scale for terminating rationals and [decimal.MaxScale] otherwise.
func (r Rational) fixedScale() int {
	_, scale, err := r.terminating()
	if err != nil {
		return decimal.MaxScale
	}
	return scale
}

// appendFixed appends the decimal expansion of |r| rounded half to even to
// the given number of fractional digits, and reports whether it is negative.
func (r Rational) appendFixed(buf []byte, scale int) ([]byte, bool) {
	coef, _ := quoRound(new(big.Int).Mul(r.numer(), pow10(scale)), r.denom(), halfEven)
	neg := coef.Sign() < 0
	digs := coef.Abs(coef).Append(nil, 10)
	if len(digs) <= scale {
		// Leading zeros
		pad := make([]byte, scale-len(digs)+1)
		for i := range pad {
			pad[i] = '0'
		}
		digs = append(pad, digs...)
	}
	split := len(digs) - scale
	buf = append(buf, digs[:split]...)
	if scale > 0 {
		buf = append(buf, '.')
		buf = append(buf, digs[split:]...)
	}
	return buf, neg
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example | Description                      |
//	| ------ | ------- | -------------------------------- |
//	| %s, %v | -5/4    | Fraction                         |
//	| %q     | "-5/4"  | Quoted fraction                  |
//	| %f     | -1.25   | Decimal expansion                |
//	| %d     | -1      | Integer part, truncated          |
//
// The '-' format flag can be used with all verbs.
// The '+', ' ', '0' format flags can be used with %f and %d.
//
// Precision is only supported for the %f verb.
// The default precision is the exact scale of the rational if its
// decimal expansion terminates, and [decimal.MaxScale] otherwise.
// The expansion is rounded using half to even rounding.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (r Rational) Format(state fmt.State, verb rune) {
	var body []byte
	neg, numeric := false, false
	switch verb {
	case 'f', 'F':
		scale, ok := state.Precision()
		if !ok {
			scale = r.fixedScale()
		}
		body, neg = r.appendFixed(nil, scale)
		numeric = true
	case 'd', 'D':
		q := r.BigInt()
		neg = q.Sign() < 0
		body = q.Abs(q).Append(nil, 10)
		numeric = true
	default:
		body = r.appendText(nil)
	}

	// Arithmetic sign
	var sign []byte
	switch {
	case !numeric:
		// skip
	case neg:
		sign = []byte{'-'}
	case state.Flag('+'):
		sign = []byte{'+'}
	case state.Flag(' '):
		sign = []byte{' '}
	}

	// Opening and closing quotes
	quote := verb == 'q' || verb == 'Q'
	width := len(sign) + len(body)
	if quote {
		width += 2
	}

	// Calculating padding
	lspaces, lzeros, tspaces := 0, 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		case state.Flag('0') && numeric:
			lzeros = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	buf := make([]byte, 0, width)
	for range lspaces {
		buf = append(buf, ' ')
	}
	if quote {
		buf = append(buf, '"')
	}
	buf = append(buf, sign...)
	for range lzeros {
		buf = append(buf, '0')
	}
	buf = append(buf, body...)
	if quote {
		buf = append(buf, '"')
	}
	for range tspaces {
		buf = append(buf, ' ')
	}

	// Writing result
	//nolint:errcheck
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'f', 'F', 'd', 'D':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(rational.Rational="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}
