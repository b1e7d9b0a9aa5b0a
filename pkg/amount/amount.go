// Package amount converts between UI amounts and on-chain base units.
package amount

import (
	"math"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// SolDecimals is the number of decimal places in a SOL amount.
const SolDecimals = 9

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrNotRepresentable = errors.New("value cannot be represented")
)

var maxUnits = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

// ParseUnits converts a string representation of a token amount into base
// units for a mint with the given number of decimals.
//
// An error is returned if the value string is invalid or negative, or if it
// cannot be accurately represented in base units. For example, a value with
// more precision than decimals allows, or a value exceeding a u64.
func ParseUnits(val string, decimals uint8) (uint64, error) {
	val = strings.TrimSpace(val)
	if len(val) == 0 {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(val)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q", val)
	}

	if d.IsNegative() {
		return 0, errors.Wrapf(ErrInvalidAmount, "negative value %s", val)
	}

	units := d.Shift(int32(decimals))
	if !units.Equal(units.Truncate(0)) {
		return 0, errors.Wrapf(ErrNotRepresentable, "%s exceeds %d decimals", val, decimals)
	}
	if units.GreaterThan(maxUnits) {
		return 0, errors.Wrapf(ErrNotRepresentable, "%s overflows", val)
	}

	return units.BigInt().Uint64(), nil
}

// MustParseUnits calls ParseUnits, panicking if there's an error.
//
// This should only be used if you know for sure this will not panic.
func MustParseUnits(val string, decimals uint8) uint64 {
	result, err := ParseUnits(val, decimals)
	if err != nil {
		panic(err)
	}

	return result
}

// FormatUnits converts an amount in base units to its string
// representation, always printing every decimal place.
func FormatUnits(units uint64, decimals uint8) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(units), -int32(decimals)).StringFixed(int32(decimals))
}
