package csa

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeThreshold(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		unlimited bool
		amount    string
	}{
		{"Infinity", "Infinity", true, ""},
		{"InfinityLower", "infinity", true, ""},
		{"Inf", "inf", true, ""},
		{"InfinitySymbol", "∞", true, ""},
		{"Unlimited", "Unlimited", true, ""},
		{"None", "None", true, ""},
		{"Null", "null", true, ""},
		{"InfinityWithProviso", "Infinity; provided that no Event of Default has occurred", true, ""},
		{"NA", "N/A", false, "0"},
		{"Zero", "0", false, "0"},
		{"ZeroWord", "zero", false, "0"},
		{"Empty", "", false, "0"},
		{"PlainNumber", "1000000", false, "1000000"},
		{"FormattedAmount", "$2,500,000", false, "2500000"},
		{"DollarUSD", "USD 750,000", false, "750000"},
		{"DecimalPlaces", "1000000.50", false, "1000000.50"},
		{"Unparseable", "see schedule B", false, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeThreshold(tc.input)

			assert.Equal(t, tc.unlimited, got.IsUnlimited())
			if !tc.unlimited {
				want := decimal.RequireFromString(tc.amount)
				assert.True(t, got.Amount().Equal(want), "amount = %s, want %s", got.Amount(), want)
			}
		})
	}
}

func TestThresholdJSON(t *testing.T) {
	t.Run("UnlimitedMarshalsAsToken", func(t *testing.T) {
		data, err := json.Marshal(UnlimitedThreshold())
		require.NoError(t, err)

		// must be the reserved string token, never a numeric literal
		assert.Equal(t, `"Infinity"`, string(data))
	})

	t.Run("FiniteMarshalsAsNumber", func(t *testing.T) {
		data, err := json.Marshal(FiniteThreshold(decimal.NewFromInt(2_000_000)))
		require.NoError(t, err)

		assert.Equal(t, `"2000000"`, string(data))
	})

	t.Run("RoundTrip", func(t *testing.T) {
		for _, original := range []Threshold{
			UnlimitedThreshold(),
			FiniteThreshold(decimal.Zero),
			FiniteThreshold(decimal.NewFromInt(2_000_000)),
			FiniteThreshold(decimal.RequireFromString("1234567.89")),
		} {
			data, err := json.Marshal(original)
			require.NoError(t, err)

			var decoded Threshold
			require.NoError(t, json.Unmarshal(data, &decoded))

			assert.Equal(t, original.IsUnlimited(), decoded.IsUnlimited())
			if !original.IsUnlimited() {
				assert.True(t, original.Amount().Equal(decoded.Amount()))
			}
		}
	})

	t.Run("UnmarshalNumericLiteral", func(t *testing.T) {
		var th Threshold
		require.NoError(t, json.Unmarshal([]byte(`1500000`), &th))

		assert.False(t, th.IsUnlimited())
		assert.True(t, th.Amount().Equal(decimal.NewFromInt(1_500_000)))
	})

	t.Run("UnmarshalRejectsGarbage", func(t *testing.T) {
		var th Threshold
		assert.Error(t, json.Unmarshal([]byte(`"not a threshold"`), &th))
		assert.Error(t, json.Unmarshal([]byte(`{}`), &th))
	})
}

func TestThresholdArithmetic(t *testing.T) {
	t.Run("UnlimitedAbsorbsAddition", func(t *testing.T) {
		sum := UnlimitedThreshold().Add(decimal.NewFromInt(1_000_000))
		assert.True(t, sum.IsUnlimited())
	})

	t.Run("FiniteAdds", func(t *testing.T) {
		sum := FiniteThreshold(decimal.NewFromInt(100)).Add(decimal.NewFromInt(50))
		require.False(t, sum.IsUnlimited())
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(150)))
	})
}

func TestParseThreshold(t *testing.T) {
	th, err := ParseThreshold("Infinity")
	require.NoError(t, err)
	assert.True(t, th.IsUnlimited())

	th, err = ParseThreshold("250000")
	require.NoError(t, err)
	assert.True(t, th.Amount().Equal(decimal.NewFromInt(250_000)))

	_, err = ParseThreshold("n/a")
	assert.Error(t, err, "strict parse must not accept loose document forms")
}
