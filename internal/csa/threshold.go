package csa

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Reserved wire token for an unlimited threshold. Unlimited must never
// serialize as a numeric literal, so a very large finite threshold can
// always be told apart from "no threshold".
const InfinityToken = "Infinity"

// Document strings treated as an unlimited threshold. Matched as prefixes
// to handle clauses like "Infinity; provided that ...".
var infinityStrings = []string{"infinity", "inf", "∞", "unlimited", "none", "null"}

// Document strings treated as a zero threshold.
var zeroStrings = []string{"n/a", "na", "0", "zero", ""}

// Threshold is the exposure level below which no margin call is required.
// It is either a finite non-negative amount or unlimited (the CSA states
// "Infinity" — the party never has to post collateral). Modeled as a sum
// type rather than a magic numeric constant so arithmetic can never turn
// an unlimited threshold into a finite call amount.
type Threshold struct {
	amount    decimal.Decimal
	unlimited bool
}

// FiniteThreshold returns a threshold with a concrete amount.
func FiniteThreshold(amount decimal.Decimal) Threshold {
	return Threshold{amount: amount}
}

// UnlimitedThreshold returns the unlimited sentinel.
func UnlimitedThreshold() Threshold {
	return Threshold{unlimited: true}
}

func (t Threshold) IsUnlimited() bool {
	return t.unlimited
}

// Amount returns the finite amount. Only meaningful when !IsUnlimited().
func (t Threshold) Amount() decimal.Decimal {
	return t.amount
}

// Add returns the threshold shifted by d. Unlimited absorbs any finite
// addend and stays unlimited.
func (t Threshold) Add(d decimal.Decimal) Threshold {
	if t.unlimited {
		return t
	}
	return Threshold{amount: t.amount.Add(d)}
}

func (t Threshold) String() string {
	if t.unlimited {
		return InfinityToken
	}
	return t.amount.String()
}

func (t Threshold) MarshalJSON() ([]byte, error) {
	if t.unlimited {
		return json.Marshal(InfinityToken)
	}
	return t.amount.MarshalJSON()
}

func (t *Threshold) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseThreshold(s)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}

	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("threshold must be a number or a string: %w", err)
	}
	*t = FiniteThreshold(d)
	return nil
}

// ParseThreshold parses a threshold string in strict wire form: the
// reserved infinity token (any case) or a plain number.
func ParseThreshold(s string) (Threshold, error) {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, InfinityToken) || strings.EqualFold(trimmed, "inf") {
		return UnlimitedThreshold(), nil
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Threshold{}, fmt.Errorf("invalid threshold %q: %w", s, err)
	}
	return FiniteThreshold(d), nil
}

// NormalizeThreshold normalizes the loose forms extracted CSA documents
// use for threshold-like fields:
//
//	"Infinity" / "Unlimited" / "None"  -> unlimited (no margin call ever)
//	"N/A" / "0" / ""                   -> zero (call on any excess)
//	numeric text                       -> that amount
//
// Unparseable text normalizes to zero, the safest reading for the secured
// party (a call fires rather than silently never firing).
func NormalizeThreshold(value string) Threshold {
	v := strings.ToLower(strings.TrimSpace(value))

	for _, inf := range infinityStrings {
		if strings.HasPrefix(v, inf) {
			return UnlimitedThreshold()
		}
	}
	for _, zero := range zeroStrings {
		if v == zero {
			return FiniteThreshold(decimal.Zero)
		}
	}

	// Strip currency formatting before the numeric parse.
	v = strings.NewReplacer(",", "", "$", "", "usd", "").Replace(v)
	v = strings.TrimSpace(v)

	d, err := decimal.NewFromString(v)
	if err != nil {
		return FiniteThreshold(decimal.Zero)
	}
	return FiniteThreshold(d)
}
