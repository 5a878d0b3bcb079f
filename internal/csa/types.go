package csa

import (
	"fmt"

	"frizo/csa_margin_engine/common"
	"github.com/shopspring/decimal"
)

// Currency ISO code. Exposure and collateral values arrive pre-converted
// to the CSA base currency; conversion is an upstream concern.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
)

// CollateralType standardized taxonomy for eligible collateral. The
// category is informational to the calculator; it only matters for
// haircut resolution against the CSA schedule.
type CollateralType string

const (
	CashUSD                  CollateralType = "CASH_USD"
	CashEUR                  CollateralType = "CASH_EUR"
	CashGBP                  CollateralType = "CASH_GBP"
	CashJPY                  CollateralType = "CASH_JPY"
	USTreasury               CollateralType = "US_TREASURY"
	USAgency                 CollateralType = "US_AGENCY"
	GovernmentBonds          CollateralType = "GOVERNMENT_BONDS"
	CorporateBonds           CollateralType = "CORPORATE_BONDS"
	MortgageBackedSecurities CollateralType = "MORTGAGE_BACKED_SECURITIES"
	AssetBackedSecurities    CollateralType = "ASSET_BACKED_SECURITIES"
	MunicipalBonds           CollateralType = "MUNICIPAL_BONDS"
	ForeignSovereign         CollateralType = "FOREIGN_SOVEREIGN"
	EquitiesListed           CollateralType = "EQUITIES_LISTED"
	MoneyMarketFunds         CollateralType = "MONEY_MARKET_FUNDS"
	CollateralTypeOther      CollateralType = "OTHER"
)

// CollateralItem one posted collateral position, already valued in the
// CSA base currency with its haircut resolved.
type CollateralItem struct {
	CollateralType CollateralType  `json:"collateral_type"`
	MarketValue    decimal.Decimal `json:"market_value"`
	HaircutRate    decimal.Decimal `json:"haircut_rate"` // fraction in [0,1]
	Currency       Currency        `json:"currency"`
	Description    string          `json:"description,omitempty"`
	MaturityYears  *float64        `json:"maturity_years,omitempty"`
}

// EffectiveValue risk-adjusted value after the haircut:
// market_value * (1 - haircut_rate). Always <= MarketValue for a valid item.
func (c CollateralItem) EffectiveValue() decimal.Decimal {
	return c.MarketValue.Mul(decimal.NewFromInt(1).Sub(c.HaircutRate))
}

// HaircutAmount value shaved off by the haircut.
func (c CollateralItem) HaircutAmount() decimal.Decimal {
	return c.MarketValue.Mul(c.HaircutRate)
}

// MaturityBucket one row of a bucketed haircut schedule, e.g.
// "99% (1-2yr)" -> {MinYears:1, MaxYears:2, Haircut:0.01}.
// A nil bound means unbounded on that side.
type MaturityBucket struct {
	MinYears            *float64        `json:"min_years,omitempty"`
	MaxYears            *float64        `json:"max_years,omitempty"`
	ValuationPercentage decimal.Decimal `json:"valuation_percentage"`
	Haircut             decimal.Decimal `json:"haircut"`
}

// EligibleCollateral one entry of the CSA Paragraph 11 eligible
// collateral schedule. Either a flat haircut applies across maturities or
// MaturityBuckets carries the per-bucket rates.
type EligibleCollateral struct {
	StandardizedType    CollateralType   `json:"standardized_type"`
	Description         string           `json:"description,omitempty"`
	MaturityBuckets     []MaturityBucket `json:"maturity_buckets,omitempty"`
	ValuationPercentage decimal.Decimal  `json:"flat_valuation_percentage"`
	FlatHaircut         decimal.Decimal  `json:"flat_haircut"`
}

// CSATerms the extracted Paragraph 13 elections of one Credit Support
// Annex, normalized upstream. Immutable per calculation call.
type CSATerms struct {
	TermsID string `json:"terms_id,omitempty"`
	PartyA  string `json:"party_a,omitempty"`
	PartyB  string `json:"party_b,omitempty"`

	PartyAThreshold *Threshold `json:"party_a_threshold"`
	PartyBThreshold *Threshold `json:"party_b_threshold"`

	PartyAMinTransferAmount decimal.Decimal `json:"party_a_mta"`
	PartyBMinTransferAmount decimal.Decimal `json:"party_b_mta"`

	PartyAIndependentAmount decimal.Decimal `json:"party_a_independent_amount"`
	PartyBIndependentAmount decimal.Decimal `json:"party_b_independent_amount"`

	Rounding     decimal.Decimal `json:"rounding"`
	BaseCurrency Currency        `json:"base_currency"`

	EligibleCollateral []EligibleCollateral `json:"eligible_collateral,omitempty"`
}

// PartyTerms the threshold / MTA / independent amount triple that applies
// to one exposure direction.
type PartyTerms struct {
	Party             common.PartyPerspective
	Threshold         Threshold
	MinTransferAmount decimal.Decimal
	IndependentAmount decimal.Decimal
}

// TermsFor resolves the elections for the party whose exposure is being
// margined. A missing threshold is an error: "Infinity" in the contract
// must arrive as the unlimited sentinel, never as an absent field.
func (t *CSATerms) TermsFor(p common.PartyPerspective) (PartyTerms, error) {
	switch p {
	case common.PartyA:
		if t.PartyAThreshold == nil {
			return PartyTerms{}, fmt.Errorf("party_a_threshold is not set")
		}
		return PartyTerms{
			Party:             p,
			Threshold:         *t.PartyAThreshold,
			MinTransferAmount: t.PartyAMinTransferAmount,
			IndependentAmount: t.PartyAIndependentAmount,
		}, nil
	case common.PartyB:
		if t.PartyBThreshold == nil {
			return PartyTerms{}, fmt.Errorf("party_b_threshold is not set")
		}
		return PartyTerms{
			Party:             p,
			Threshold:         *t.PartyBThreshold,
			MinTransferAmount: t.PartyBMinTransferAmount,
			IndependentAmount: t.PartyBIndependentAmount,
		}, nil
	default:
		return PartyTerms{}, fmt.Errorf("unknown party perspective: %d", p)
	}
}

// PartyName returns the legal entity name for a perspective, if extracted.
func (t *CSATerms) PartyName(p common.PartyPerspective) string {
	if p == common.PartyA {
		return t.PartyA
	}
	return t.PartyB
}
