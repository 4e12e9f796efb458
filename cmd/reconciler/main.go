package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"bank-reconciliation/internal/config"
	"bank-reconciliation/internal/gateway"
	"bank-reconciliation/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	// Define command-line flags
	bankFile := flag.String("bank", "", "Path to the bank statement CSV file (required)")
	ledgerFile := flag.String("ledger", "", "Path to the ledger export CSV file (required)")
	flag.Parse()

	// Validate required flags
	if *bankFile == "" || *ledgerFile == "" {
		fmt.Println("Error: Both flags (-bank, -ledger) are required.")
		flag.Usage()
		os.Exit(1)
	}

	// Tolerance overrides may live in a .env file; absence is fine.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("could not load .env: %v", err)
	}

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Dependency Injection (Wiring the application) ---
	// 1. Create the record source (the outermost layer)
	csvSource := gateway.NewCSVRecordSource()

	// 2. Create the usecase and inject the source (the core logic layer)
	reconciliationUseCase := usecase.NewReconciliationUseCase(csvSource, settings)

	// --- Execute the Usecase ---
	result, err := reconciliationUseCase.Reconcile(context.Background(), *bankFile, *ledgerFile)
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}

	for _, row := range result.SkippedBank {
		log.Warnf("skipped bank row %d (%q, %q): %s", row.Index, row.Record.DateText, row.Record.AmountText, row.Reason)
	}
	for _, row := range result.SkippedLedger {
		log.Warnf("skipped ledger row %d (%q, %q): %s", row.Index, row.Record.DateText, row.Record.AmountText, row.Reason)
	}

	// --- Present the Output ---
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to generate JSON report: %v", err)
	}

	fmt.Println(string(output))
}
