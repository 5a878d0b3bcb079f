package margin

import (
	"fmt"

	"frizo/csa_margin_engine/common"
	"frizo/csa_margin_engine/internal/csa"
	"frizo/csa_margin_engine/internal/logger"
	"github.com/shopspring/decimal"
)

// Calculator CSA margin-call engine. Stateless: every Calculate call owns
// its inputs and output exclusively, so concurrent calls for different
// documents need no coordination. Identical inputs produce identical
// MarginCall output, step for step.
type Calculator struct {
	log *logger.Logger
}

// NewCalculator creates a calculator. A nil logger falls back to the
// package default; the logger only traces steps, it never affects results.
func NewCalculator(log *logger.Logger) *Calculator {
	if log == nil {
		log = logger.Default()
	}
	return &Calculator{log: log}
}

// =====================================================
// Calculate
// =====================================================

// Calculate runs the five-step margin determination for one exposure
// direction:
//
//	1. record net exposure
//	2. effective collateral = sum(market_value * (1 - haircut_rate))
//	3. exposure above threshold = max(0, exposure + IA - threshold)
//	4. raw requirement = exposure above threshold - effective collateral
//	5. MTA suppression, then rounding (CALL rounds up, RETURN rounds down)
//
// All failures are validation failures raised before step 1; once the
// steps start the calculation cannot fail. Net exposure is a
// decimal.Decimal, so non-finite exposures are unrepresentable at this
// boundary; callers parsing floats or text must reject NaN/Inf upstream.
func (c *Calculator) Calculate(
	terms *csa.CSATerms,
	perspective common.PartyPerspective,
	netExposure decimal.Decimal,
	postedCollateral []csa.CollateralItem,
) (*MarginCall, error) {

	partyTerms, err := c.validate(terms, perspective, postedCollateral)
	if err != nil {
		return nil, err
	}

	counterparty := terms.PartyName(perspective.Other())

	c.log.Debug("starting margin calculation",
		"counterparty", counterparty,
		"party", perspective.String(),
		"net_exposure", netExposure.String(),
		"threshold", partyTerms.Threshold.String(),
		"mta", partyTerms.MinTransferAmount.String(),
		"rounding", terms.Rounding.String(),
	)

	steps := make([]CalculationStep, 0, 5)

	// Step 1: net exposure, recorded as-is. No transformation, but it
	// anchors the audit trail to the valuation input.
	steps = append(steps, CalculationStep{
		StepNumber:  1,
		Description: "Record current net exposure",
		Formula:     "net_exposure",
		Inputs: map[string]interface{}{
			"net_exposure": netExposure,
		},
		Result:       netExposure,
		SourceClause: "Mark-to-market valuation input",
	})

	// Step 2: effective value of posted collateral after haircuts.
	effectiveCollateral, breakdown := effectiveCollateralValue(postedCollateral)
	steps = append(steps, CalculationStep{
		StepNumber:  2,
		Description: "Calculate effective value of posted collateral (after haircuts)",
		Formula:     "sum(market_value * (1 - haircut_rate)) for each collateral item",
		Inputs: map[string]interface{}{
			"posted_collateral": breakdown,
		},
		Result:       effectiveCollateral,
		SourceClause: "CSA Paragraph 11 - Valuation and Haircuts",
	})
	c.log.Debug("effective collateral", "value", effectiveCollateral.String(), "items", len(postedCollateral))

	// Step 3: exposure above threshold. An unlimited threshold
	// short-circuits the whole determination: that party never posts
	// collateral, whatever the exposure.
	if partyTerms.Threshold.IsUnlimited() {
		steps = append(steps, CalculationStep{
			StepNumber:  3,
			Description: "Unlimited threshold - no collateral ever required for this party",
			Formula:     "threshold = Infinity -> exposure_above_threshold = 0",
			Inputs: map[string]interface{}{
				"net_exposure":       netExposure,
				"independent_amount": partyTerms.IndependentAmount,
				"threshold":          csa.InfinityToken,
			},
			Result:       decimal.Zero,
			SourceClause: "CSA Paragraph 13 - Threshold Amount (unlimited)",
		})

		c.log.Debug("unlimited threshold, no action", "counterparty", counterparty)

		return &MarginCall{
			Action:                 ActionNoAction,
			Amount:                 decimal.Zero,
			Currency:               terms.BaseCurrency,
			NetExposure:            netExposure,
			Threshold:              partyTerms.Threshold,
			EffectiveCollateral:    effectiveCollateral,
			ExposureAboveThreshold: decimal.Zero,
			PostedCollateralItems:  postedCollateral,
			CalculationSteps:       steps,
			CounterpartyName:       counterparty,
			TermsID:                terms.TermsID,
		}, nil
	}

	exposureAboveThreshold := decimal.Max(
		decimal.Zero,
		netExposure.Add(partyTerms.IndependentAmount).Sub(partyTerms.Threshold.Amount()),
	)
	steps = append(steps, CalculationStep{
		StepNumber:  3,
		Description: "Calculate exposure above threshold",
		Formula:     "max(0, net_exposure + independent_amount - threshold)",
		Inputs: map[string]interface{}{
			"net_exposure":       netExposure,
			"independent_amount": partyTerms.IndependentAmount,
			"threshold":          partyTerms.Threshold.Amount(),
		},
		Result:       exposureAboveThreshold,
		SourceClause: "CSA Paragraph 13 - Threshold Amount / Independent Amount",
	})
	c.log.Debug("exposure above threshold", "value", exposureAboveThreshold.String())

	// Step 4: raw requirement. Positive -> post more collateral,
	// negative -> excess may be returned.
	rawRequirement := exposureAboveThreshold.Sub(effectiveCollateral)
	steps = append(steps, CalculationStep{
		StepNumber:  4,
		Description: "Calculate raw margin requirement",
		Formula:     "exposure_above_threshold - effective_collateral",
		Inputs: map[string]interface{}{
			"exposure_above_threshold": exposureAboveThreshold,
			"effective_collateral":     effectiveCollateral,
		},
		Result:       rawRequirement,
		SourceClause: "CSA Paragraph 3 - Credit Support Obligations",
	})
	c.log.Debug("raw requirement", "value", rawRequirement.String())

	// Step 5: de-minimis suppression, then rounding.
	action, amount, step5 := c.applyMTAAndRounding(rawRequirement, partyTerms.MinTransferAmount, terms.Rounding)
	steps = append(steps, step5)

	c.log.Info("margin calculation complete",
		"counterparty", counterparty,
		"action", string(action),
		"amount", amount.String(),
	)

	return &MarginCall{
		Action:                 action,
		Amount:                 amount,
		Currency:               terms.BaseCurrency,
		NetExposure:            netExposure,
		Threshold:              partyTerms.Threshold,
		EffectiveCollateral:    effectiveCollateral,
		ExposureAboveThreshold: exposureAboveThreshold,
		PostedCollateralItems:  postedCollateral,
		CalculationSteps:       steps,
		CounterpartyName:       counterparty,
		TermsID:                terms.TermsID,
	}, nil
}

// =====================================================
// calculation stages
// =====================================================

// effectiveCollateralValue totals the post-haircut value of every posted
// item. Per-item contributions come back in input order for the audit
// record.
func effectiveCollateralValue(items []csa.CollateralItem) (decimal.Decimal, []CollateralBreakdown) {
	total := decimal.Zero
	breakdown := make([]CollateralBreakdown, 0, len(items))

	for _, item := range items {
		effective := item.EffectiveValue()
		total = total.Add(effective)

		breakdown = append(breakdown, CollateralBreakdown{
			CollateralType: item.CollateralType,
			MarketValue:    item.MarketValue,
			HaircutRate:    item.HaircutRate,
			HaircutAmount:  item.HaircutAmount(),
			EffectiveValue: effective,
		})
	}

	return total, breakdown
}

// applyMTAAndRounding decides the final action and amount. Requirements
// with |raw| below the MTA are suppressed to NO_ACTION (contractual
// de-minimis). Otherwise CALL amounts round up to the increment and
// RETURN amounts round down, so the secured party never under-calls and
// never over-returns.
func (c *Calculator) applyMTAAndRounding(rawRequirement, mta, rounding decimal.Decimal) (Action, decimal.Decimal, CalculationStep) {
	absRaw := rawRequirement.Abs()

	if rawRequirement.IsZero() || absRaw.LessThan(mta) {
		return ActionNoAction, decimal.Zero, CalculationStep{
			StepNumber:  5,
			Description: "Apply Minimum Transfer Amount (MTA) - requirement suppressed",
			Formula:     "abs(raw_requirement) < minimum_transfer_amount -> amount = 0",
			Inputs: map[string]interface{}{
				"raw_requirement":         rawRequirement,
				"abs_raw_requirement":     absRaw,
				"minimum_transfer_amount": mta,
			},
			Result:       decimal.Zero,
			SourceClause: "CSA Paragraph 13 - Minimum Transfer Amount",
		}
	}

	if rawRequirement.Sign() > 0 {
		// rounding increment was validated > 0, Round*ToIncrement cannot fail
		amount, _ := RoundUpToIncrement(rawRequirement, rounding)
		return ActionCall, amount, CalculationStep{
			StepNumber:  5,
			Description: "Round collateral call amount up to the rounding increment",
			Formula:     "ceil(raw_requirement / rounding) * rounding",
			Inputs: map[string]interface{}{
				"raw_requirement":         rawRequirement,
				"minimum_transfer_amount": mta,
				"rounding":                rounding,
				"rule":                    "round_up",
			},
			Result:       amount,
			SourceClause: "CSA Paragraph 13 - Rounding",
		}
	}

	amount, _ := RoundDownToIncrement(absRaw, rounding)
	return ActionReturn, amount, CalculationStep{
		StepNumber:  5,
		Description: "Round collateral return amount down to the rounding increment",
		Formula:     "floor(abs(raw_requirement) / rounding) * rounding",
		Inputs: map[string]interface{}{
			"raw_requirement":         rawRequirement,
			"abs_raw_requirement":     absRaw,
			"minimum_transfer_amount": mta,
			"rounding":                rounding,
			"rule":                    "round_down",
		},
		Result:       amount,
		SourceClause: "CSA Paragraph 13 - Rounding",
	}
}

// =====================================================
// validation
// =====================================================

// validate rejects malformed input before any arithmetic. Returns the
// resolved per-party terms on success.
func (c *Calculator) validate(
	terms *csa.CSATerms,
	perspective common.PartyPerspective,
	postedCollateral []csa.CollateralItem,
) (csa.PartyTerms, error) {

	if terms == nil {
		return csa.PartyTerms{}, newValidationError("csa_terms", "", "nil", "CSA terms are required")
	}

	partyTerms, err := terms.TermsFor(perspective)
	if err != nil {
		return csa.PartyTerms{}, newValidationError(
			"threshold", perspective.String(), "missing",
			"threshold must be resolvable; an unlimited threshold must be stated as Infinity, not omitted",
		)
	}

	if !partyTerms.Threshold.IsUnlimited() && partyTerms.Threshold.Amount().Sign() < 0 {
		return csa.PartyTerms{}, newValidationError(
			"threshold", perspective.String(), partyTerms.Threshold.String(),
			"threshold must be >= 0 or Infinity",
		)
	}
	if partyTerms.MinTransferAmount.Sign() < 0 {
		return csa.PartyTerms{}, newValidationError(
			"minimum_transfer_amount", perspective.String(), partyTerms.MinTransferAmount.String(),
			"minimum transfer amount must be >= 0",
		)
	}
	if partyTerms.IndependentAmount.Sign() < 0 {
		return csa.PartyTerms{}, newValidationError(
			"independent_amount", perspective.String(), partyTerms.IndependentAmount.String(),
			"independent amount must be >= 0",
		)
	}
	if terms.Rounding.Sign() <= 0 {
		return csa.PartyTerms{}, newValidationError(
			"rounding", "", terms.Rounding.String(),
			"rounding increment must be > 0",
		)
	}

	one := decimal.NewFromInt(1)
	for i, item := range postedCollateral {
		if item.MarketValue.Sign() < 0 {
			return csa.PartyTerms{}, newValidationError(
				"market_value", "", item.MarketValue.String(),
				"collateral item "+itemRef(i, item)+" market value must be >= 0",
			)
		}
		if item.HaircutRate.Sign() < 0 || item.HaircutRate.GreaterThan(one) {
			return csa.PartyTerms{}, newValidationError(
				"haircut_rate", "", item.HaircutRate.String(),
				"collateral item "+itemRef(i, item)+" haircut rate must be within [0, 1]",
			)
		}
	}

	return partyTerms, nil
}

func itemRef(index int, item csa.CollateralItem) string {
	if item.Description != "" {
		return item.Description
	}
	return fmt.Sprintf("%s #%d", item.CollateralType, index)
}
