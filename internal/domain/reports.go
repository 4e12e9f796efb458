package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrEmptyInput is returned when either side has no normalized records; the
// matching passes never run in that case.
var ErrEmptyInput = errors.New("no records to reconcile")

// MatchType names the pass that produced a match group.
type MatchType string

const (
	MatchExact          MatchType = "exact"
	MatchFuzzy          MatchType = "fuzzy"
	MatchGrouped        MatchType = "grouped"
	MatchRunningBalance MatchType = "running_balance"
)

// MatchGroup is one or more bank transactions reconciled against one or more
// ledger transactions as a single logical match. Exactly one pass creates a
// group, and it is never mutated afterwards. Date is a representative date (the
// triggering bank transaction's), not necessarily shared by every member.
type MatchGroup struct {
	BankTransactions   []Transaction   `json:"bank_transactions"`
	LedgerTransactions []Transaction   `json:"ledger_transactions"`
	BankTotal          decimal.Decimal `json:"bank_total"`
	LedgerTotal        decimal.Decimal `json:"ledger_total"`
	Date               time.Time       `json:"date"`
	Difference         decimal.Decimal `json:"difference"`
	MatchType          MatchType       `json:"match_type"`
}

// SkippedRow reports one input row the normalizer could not parse. The row is
// excluded from the run, never aborting it.
type SkippedRow struct {
	Index  int       `json:"index"`
	Record RawRecord `json:"record"`
	Reason string    `json:"reason"`
}

// Summary provides high-level statistics of a reconciliation run.
type Summary struct {
	TotalBankRecords   int `json:"total_bank_records"`
	TotalLedgerRecords int `json:"total_ledger_records"`
	SkippedBankRows    int `json:"skipped_bank_rows"`
	SkippedLedgerRows  int `json:"skipped_ledger_rows"`
	MatchGroups        int `json:"match_groups"`
	TotalUnmatched     int `json:"total_unmatched"`
}

// ReconciliationResult is the sole output of a run. Every normalized input
// transaction appears in exactly one match group or one unmatched list;
// Differences is the subset of MatchGroups whose difference exceeds the amount
// tolerance.
type ReconciliationResult struct {
	MatchGroups     []MatchGroup  `json:"match_groups"`
	UnmatchedBank   []Transaction `json:"unmatched_bank"`
	UnmatchedLedger []Transaction `json:"unmatched_ledger"`
	Differences     []MatchGroup  `json:"differences"`
	SkippedBank     []SkippedRow  `json:"skipped_bank"`
	SkippedLedger   []SkippedRow  `json:"skipped_ledger"`
	Summary         Summary       `json:"summary"`
}
