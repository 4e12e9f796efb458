// Package config holds the tolerance settings for a reconciliation run.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// Settings is the full configuration surface of the matching engine. All
// amount tolerances are in the same currency unit as the input amounts.
type Settings struct {
	// ExactDateToleranceDays is the maximum date distance, in days, for an
	// individual exact match.
	ExactDateToleranceDays int

	// FuzzySearchRange bounds the fuzzy scan by list position: only the first
	// N remaining ledger entries are considered.
	FuzzySearchRange int

	// FuzzyDateToleranceDays is the maximum date distance for a fuzzy match.
	FuzzyDateToleranceDays int

	// AmountTolerance is used by the exact/fuzzy pass and by the difference
	// flagging in the final result.
	AmountTolerance decimal.Decimal

	// GroupAmountTolerance is used by the per-date aggregate pass.
	GroupAmountTolerance decimal.Decimal

	// RunningBalanceTolerance is used by the cumulative-sum pass.
	RunningBalanceTolerance decimal.Decimal
}

// Default returns the stock tolerances: 1 day exact, 6-entry fuzzy window
// within 7 days, and 0.01 on every amount comparison.
func Default() Settings {
	tolerance := decimal.RequireFromString("0.01")
	return Settings{
		ExactDateToleranceDays:  1,
		FuzzySearchRange:        6,
		FuzzyDateToleranceDays:  7,
		AmountTolerance:         tolerance,
		GroupAmountTolerance:    tolerance,
		RunningBalanceTolerance: tolerance,
	}
}

// Load returns the defaults with any RECON_* environment overrides applied.
func Load() (Settings, error) {
	s := Default()

	if err := overrideInt("RECON_EXACT_DATE_TOLERANCE_DAYS", &s.ExactDateToleranceDays); err != nil {
		return Settings{}, err
	}
	if err := overrideInt("RECON_FUZZY_SEARCH_RANGE", &s.FuzzySearchRange); err != nil {
		return Settings{}, err
	}
	if err := overrideInt("RECON_FUZZY_DATE_TOLERANCE_DAYS", &s.FuzzyDateToleranceDays); err != nil {
		return Settings{}, err
	}
	if err := overrideDecimal("RECON_AMOUNT_TOLERANCE", &s.AmountTolerance); err != nil {
		return Settings{}, err
	}
	if err := overrideDecimal("RECON_GROUP_AMOUNT_TOLERANCE", &s.GroupAmountTolerance); err != nil {
		return Settings{}, err
	}
	if err := overrideDecimal("RECON_RUNNING_BALANCE_TOLERANCE", &s.RunningBalanceTolerance); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func overrideInt(key string, dst *int) error {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	*dst = v
	return nil
}

func overrideDecimal(key string, dst *decimal.Decimal) error {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	*dst = v
	return nil
}
