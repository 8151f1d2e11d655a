package rational

import (
	"fmt"
	"math/big"
)

//go:generate go run scripts/constants/codegen.go

var (
	// Zero is exact 0. It is equal to the zero value of [Rational].
	Zero = Rational{}

	// One is exact 1.
	One = newRatUnsafe(big.NewInt(1), nil, false)

	// ApproxZero is 0 flagged as approximate.
	// Adding it to a rational keeps the value but marks the result as approximate.
	ApproxZero = Rational{approx: true}

	// ApproxOne is 1 flagged as approximate.
	// Multiplying a rational by it keeps the value but marks the result as
	// approximate.
	ApproxOne = newRatUnsafe(big.NewInt(1), nil, true)
)

// mustNewApprox creates an approximate rational from a canonical fraction
// given as a pair of base 10 strings.
// It is used by generated constants.
func mustNewApprox(num, den string) Rational {
	r, err := ParseFrac(num, den)
	if err != nil {
		panic(fmt.Sprintf("ParseFrac(%q, %q) failed: %v", num, den, err))
	}
	r.approx = true
	return r
}
