package main

import (
	"fmt"
	"log"

	"frizo/csa_margin_engine/common"
	"frizo/csa_margin_engine/internal/csa"
	"frizo/csa_margin_engine/internal/margin"
	"github.com/shopspring/decimal"
)

func main() {
	fmt.Println("CSA Margin Engine v1.0.0")
	fmt.Println("ISDA/CSA margin-call determination engine implemented in Go")

	engine := NewMarginEngine()
	if err := engine.Start(); err != nil {
		log.Fatalf("Failed to run margin engine demo: %v", err)
	}
}

// MarginEngine represents the main engine
type MarginEngine struct {
	name    string
	version string
}

// NewMarginEngine creates a new margin engine instance
func NewMarginEngine() *MarginEngine {
	return &MarginEngine{
		name:    "CSA Margin Engine",
		version: "1.0.0",
	}
}

// Start runs one worked margin calculation end to end
func (me *MarginEngine) Start() error {
	fmt.Printf("Starting %s %s...\n", me.name, me.version)

	threshold := csa.FiniteThreshold(decimal.NewFromInt(2_000_000))
	terms := &csa.CSATerms{
		PartyA:                  "Dealer Bank Plc",
		PartyB:                  "Pension Fund LLC",
		PartyAThreshold:         &threshold,
		PartyBThreshold:         &threshold,
		PartyAMinTransferAmount: decimal.NewFromInt(100_000),
		PartyBMinTransferAmount: decimal.NewFromInt(100_000),
		Rounding:                decimal.NewFromInt(10_000),
		BaseCurrency:            csa.USD,
	}

	posted := []csa.CollateralItem{
		{
			CollateralType: csa.CashUSD,
			MarketValue:    decimal.NewFromInt(3_000_000),
			HaircutRate:    decimal.Zero,
			Currency:       csa.USD,
		},
	}

	calc := margin.NewCalculator(nil)
	result, err := calc.Calculate(terms, common.PartyA, decimal.NewFromInt(5_500_000), posted)
	if err != nil {
		return err
	}

	fmt.Printf("Decision: %s %s %s\n", result.Action, result.Amount, result.Currency)
	for _, step := range result.CalculationSteps {
		fmt.Printf("  step %d: %-70s = %s\n", step.StepNumber, step.Description, step.Result)
	}

	return nil
}
