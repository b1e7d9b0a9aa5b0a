package amount

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	validCases := map[string]uint64{
		"0.000000001": 1,
		"0.000000002": 2,
		"0.5":         5e8,
		"1.000000000": 1e9,
		"1.500000000": 1e9 + 1e9/2,
		"1":           1e9,
		"2":           2e9,
		" 3.25 ":      3_250_000_000,
		"0":           0,
		// Largest representable SOL amount.
		"18446744073.709551615": 18446744073709551615,
	}
	for in, expected := range validCases {
		actual, err := ParseUnits(in, SolDecimals)
		require.NoError(t, err, in)
		assert.Equal(t, expected, actual, in)

		trimmed := strings.TrimSpace(in)
		if strings.Contains(trimmed, ".") && len(strings.Split(trimmed, ".")[1]) == SolDecimals {
			assert.Equal(t, trimmed, FormatUnits(expected, SolDecimals))
		}
	}

	actual, err := ParseUnits("12.345678", 6)
	require.NoError(t, err)
	assert.EqualValues(t, 12345678, actual)

	actual, err = ParseUnits("42", 0)
	require.NoError(t, err)
	assert.EqualValues(t, 42, actual)

	for _, in := range []string{"", "abc", "10.0.0", "-1", "-0.5"} {
		_, err := ParseUnits(in, SolDecimals)
		assert.True(t, errors.Is(err, ErrInvalidAmount), in)
	}

	for _, in := range []string{"0.0000000001", "1.0000000015", "18446744073.709551616", "100000000000"} {
		_, err := ParseUnits(in, SolDecimals)
		assert.True(t, errors.Is(err, ErrNotRepresentable), in)
	}
}

func TestMustParseUnits(t *testing.T) {
	assert.EqualValues(t, 1e9, MustParseUnits("1", SolDecimals))
	assert.Panics(t, func() {
		MustParseUnits("nope", SolDecimals)
	})
}

func TestFormatUnits(t *testing.T) {
	for _, tc := range []struct {
		units    uint64
		decimals uint8
		expected string
	}{
		{0, 9, "0.000000000"},
		{1, 9, "0.000000001"},
		{1_500_000_000, 9, "1.500000000"},
		{12345678, 6, "12.345678"},
		{42, 0, "42"},
		{18446744073709551615, 9, "18446744073.709551615"},
	} {
		assert.Equal(t, tc.expected, FormatUnits(tc.units, tc.decimals), fmt.Sprintf("%d/%d", tc.units, tc.decimals))
	}
}
