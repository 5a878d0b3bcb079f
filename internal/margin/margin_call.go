package margin

import (
	"frizo/csa_margin_engine/internal/csa"
	"github.com/shopspring/decimal"
)

// Action margin-call decision
type Action string

const (
	ActionCall     Action = "CALL"      // call for more collateral
	ActionReturn   Action = "RETURN"    // counterparty can request return
	ActionNoAction Action = "NO_ACTION" // exposure adequately collateralized
)

// CalculationStep one algorithmic stage of the margin derivation.
// Steps are append-only and never reordered or mutated once recorded;
// per-item entries inside Inputs keep the input collateral order.
type CalculationStep struct {
	StepNumber   int                    `json:"step_number"`
	Description  string                 `json:"description"`
	Formula      string                 `json:"formula"`
	Inputs       map[string]interface{} `json:"inputs"`
	Result       decimal.Decimal        `json:"result"`
	SourceClause string                 `json:"source_clause,omitempty"`
}

// CollateralBreakdown per-item contribution recorded at the effective
// collateral step.
type CollateralBreakdown struct {
	CollateralType csa.CollateralType `json:"collateral_type"`
	MarketValue    decimal.Decimal    `json:"market_value"`
	HaircutRate    decimal.Decimal    `json:"haircut_rate"`
	HaircutAmount  decimal.Decimal    `json:"haircut_amount"`
	EffectiveValue decimal.Decimal    `json:"effective_value"`
}

// MarginCall the complete, immutable calculation result. It carries every
// intermediate scalar and the full step trail so the derivation can be
// replayed and audited without re-running the engine. One MarginCall is
// produced per calculation and never mutated afterward.
type MarginCall struct {
	Action   Action          `json:"action"`
	Amount   decimal.Decimal `json:"amount"` // non-negative, 0 on NO_ACTION
	Currency csa.Currency    `json:"currency"`

	NetExposure            decimal.Decimal `json:"net_exposure"`
	Threshold              csa.Threshold   `json:"threshold"`
	EffectiveCollateral    decimal.Decimal `json:"effective_collateral"`
	ExposureAboveThreshold decimal.Decimal `json:"exposure_above_threshold"`

	PostedCollateralItems []csa.CollateralItem `json:"posted_collateral_items"`
	CalculationSteps      []CalculationStep    `json:"calculation_steps"`

	// provenance echoes, passed through from the request
	CounterpartyName string `json:"counterparty_name,omitempty"`
	TermsID          string `json:"csa_terms_id,omitempty"`
}
