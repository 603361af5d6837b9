// Package convert implements the share/token conversion arithmetic for the
// elastic-supply ledger. Shares are the exact internal unit of ownership and
// tokens are the projection of shares through the global divisor. All
// rounding loss is confined to the shares to tokens direction so the internal
// state stays exact.
package convert

import (
	"errors"

	"github.com/holiman/uint256"
)

// These values bound the global divisor. The divisor starts at MaxDivisor
// and only shrinks from there, which raises every projected balance.
const (
	MinDivisor uint64 = 1_000_000_000
	MaxDivisor uint64 = 1_000_000_000_000_000_000
)

// Set of error variables for conversion failures.
var (
	ErrInvalidDivisor = errors.New("divisor must not be zero")
	ErrOverflow       = errors.New("conversion overflows 256 bits")
)

// Rounding declares how a shares to tokens conversion resolves the
// fractional remainder.
type Rounding int

// Set of supported rounding policies.
const (
	Down Rounding = iota
	Closest
	Up
)

// SharesToTokens converts an amount of shares to the token amount visible
// through the specified divisor. Division only shrinks the value so this
// direction can never overflow.
func SharesToTokens(shares *uint256.Int, divisor uint64, r Rounding) (*uint256.Int, error) {
	if divisor == 0 {
		return nil, ErrInvalidDivisor
	}

	d := uint256.NewInt(divisor)
	tokens := new(uint256.Int)
	rem := new(uint256.Int)
	tokens.DivMod(shares, d, rem)

	if rem.IsZero() {
		return tokens, nil
	}

	switch r {
	case Up:
		tokens.AddUint64(tokens, 1)

	case Closest:

		// Ties round up: remainder*2 == divisor bumps the quotient.
		rem.Lsh(rem, 1)
		if !rem.Lt(d) {
			tokens.AddUint64(tokens, 1)
		}
	}

	return tokens, nil
}

// TokensToShares converts a token amount to the exact number of backing
// shares under the specified divisor. This direction scales up by an integer
// factor so it never needs rounding, but it can overflow.
func TokensToShares(tokens *uint256.Int, divisor uint64) (*uint256.Int, error) {
	if divisor == 0 {
		return nil, ErrInvalidDivisor
	}

	shares, overflow := new(uint256.Int).MulOverflow(tokens, uint256.NewInt(divisor))
	if overflow {
		return nil, ErrOverflow
	}

	return shares, nil
}

// MaxTokens returns the largest token amount representable under the
// specified divisor. Minting past this value would overflow the backing
// share calculation.
func MaxTokens(divisor uint64) *uint256.Int {
	maxShares := new(uint256.Int).Not(new(uint256.Int))
	return maxShares.Div(maxShares, uint256.NewInt(divisor))
}
