package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"frizo/csa_margin_engine/common"
	internalcommon "frizo/csa_margin_engine/internal/common"
	"frizo/csa_margin_engine/internal/config"
	"frizo/csa_margin_engine/internal/csa"
	"frizo/csa_margin_engine/internal/logger"
	"frizo/csa_margin_engine/internal/margin"
	"frizo/csa_margin_engine/internal/version"
	"frizo/csa_margin_engine/pkg/utils"
	"github.com/shopspring/decimal"
)

// CalculationRequest is the JSON envelope the engine consumes: the
// normalized CSA terms plus one market snapshot.
type CalculationRequest struct {
	CSATerms         csa.CSATerms            `json:"csa_terms"`
	PartyPerspective common.PartyPerspective `json:"party_perspective"`
	NetExposure      decimal.Decimal         `json:"net_exposure"`
	PostedCollateral []csa.CollateralItem    `json:"posted_collateral"`
}

// CalculationResponse wraps the result with an envelope identifier. The
// identifier lives here, outside the calculator, so the calculation
// itself stays reproducible input-for-input.
type CalculationResponse struct {
	CalculationID string             `json:"calculation_id"`
	Result        *margin.MarginCall `json:"result"`
}

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		healthCheck = flag.Bool("health-check", false, "Perform health check")
		configFile  = flag.String("config", "", "Path to YAML configuration file")
		logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error)")
		inputFile   = flag.String("input", "", "Path to calculation request JSON")
		outputFile  = flag.String("output", "", "Write the result JSON to this path instead of stdout")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	if *showHelp {
		fmt.Printf("CSA Margin Engine %s\n\n", version.Short())
		fmt.Println("Usage:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *healthCheck {
		fmt.Println("OK")
		os.Exit(0)
	}

	cfg := loadConfig(*configFile)
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	log := logger.NewWithFormat(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	logger.SetDefault(log)

	log.Info("Starting CSA Margin Engine",
		"version", version.Short(),
		"environment", cfg.Environment,
	)

	if *inputFile == "" {
		log.Error("no input file given, use -input <request.json>")
		os.Exit(2)
	}

	if err := run(cfg, log, *inputFile, *outputFile); err != nil {
		var vErr *margin.ValidationError
		if errors.As(err, &vErr) {
			log.Error("invalid calculation request", "field", vErr.Field, "party", vErr.Party, "reason", vErr.Reason)
		} else {
			log.Error("calculation failed", "error", err)
		}
		os.Exit(1)
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Load()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config %s: %v\n", path, err)
		os.Exit(2)
	}
	return cfg
}

func run(cfg *config.Config, log *logger.Logger, inputPath, outputPath string) error {
	if !utils.FileExists(inputPath) {
		return fmt.Errorf("input file %s does not exist", inputPath)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	var req CalculationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}

	if req.CSATerms.TermsID == "" {
		req.CSATerms.TermsID = internalcommon.GenerateTermsID()
	}
	if req.CSATerms.BaseCurrency == "" {
		req.CSATerms.BaseCurrency = csa.Currency(cfg.DefaultBaseCurrency)
	}

	log.Debug("calculation request parsed",
		"terms_id", req.CSATerms.TermsID,
		"perspective", req.PartyPerspective.String(),
		"collateral_types", utils.Map(req.PostedCollateral, func(item csa.CollateralItem) string {
			return string(item.CollateralType)
		}),
	)

	calc := margin.NewCalculator(log)
	result, err := calc.Calculate(&req.CSATerms, req.PartyPerspective, req.NetExposure, req.PostedCollateral)
	if err != nil {
		return err
	}

	resp := CalculationResponse{
		CalculationID: internalcommon.GenerateCalculationID(),
		Result:        result,
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize result: %w", err)
	}
	out = append(out, '\n')

	if outputPath == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	log.Info("result written", "path", outputPath, "action", string(result.Action), "amount", result.Amount.String())
	return nil
}
