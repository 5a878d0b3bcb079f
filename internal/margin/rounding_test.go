package margin

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundUpToIncrement(t *testing.T) {
	cases := []struct {
		name      string
		value     string
		increment string
		want      string
	}{
		{"AboveMultiple", "503000", "10000", "510000"},
		{"Midpoint", "505000", "10000", "510000"},
		{"JustAboveMultiple", "500001", "10000", "510000"},
		{"ExactMultiple", "500000", "10000", "500000"},
		{"Zero", "0", "10000", "0"},
		{"Fractional", "1234567.89", "10000", "1240000"},
		{"SmallIncrement", "1001", "1", "1001"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value := decimal.RequireFromString(tc.value)
			increment := decimal.RequireFromString(tc.increment)

			got, err := RoundUpToIncrement(value, increment)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s, want %s", got, tc.want)
		})
	}
}

func TestRoundDownToIncrement(t *testing.T) {
	cases := []struct {
		name      string
		value     string
		increment string
		want      string
	}{
		{"BelowMultiple", "809999", "10000", "800000"},
		{"ExactMultiple", "800000", "10000", "800000"},
		{"Fractional", "1234567.89", "10000", "1230000"},
		{"BelowOneIncrement", "9999", "10000", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value := decimal.RequireFromString(tc.value)
			increment := decimal.RequireFromString(tc.increment)

			got, err := RoundDownToIncrement(value, increment)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s, want %s", got, tc.want)
		})
	}
}

func TestRoundingIdempotence(t *testing.T) {
	increment := decimal.NewFromInt(10_000)

	for _, raw := range []string{"503000", "505000", "1234567.89", "800000"} {
		value := decimal.RequireFromString(raw)

		up, err := RoundUpToIncrement(value, increment)
		require.NoError(t, err)
		upAgain, err := RoundUpToIncrement(up, increment)
		require.NoError(t, err)
		assert.True(t, up.Equal(upAgain), "round-up not idempotent for %s: %s then %s", raw, up, upAgain)

		down, err := RoundDownToIncrement(value, increment)
		require.NoError(t, err)
		downAgain, err := RoundDownToIncrement(down, increment)
		require.NoError(t, err)
		assert.True(t, down.Equal(downAgain), "round-down not idempotent for %s: %s then %s", raw, down, downAgain)
	}
}

func TestRoundingRejectsBadIncrement(t *testing.T) {
	for _, increment := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		_, err := RoundUpToIncrement(decimal.NewFromInt(1), increment)
		assert.Error(t, err)

		_, err = RoundDownToIncrement(decimal.NewFromInt(1), increment)
		assert.Error(t, err)
	}
}
