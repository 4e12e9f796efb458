package usecase

import (
	"context"
	"fmt"

	"bank-reconciliation/internal/config"
	"bank-reconciliation/internal/domain"
	"bank-reconciliation/internal/normalizer"

	"github.com/labstack/gommon/log"
)

// ReconciliationUseCase orchestrates a reconciliation run: fetch, normalize,
// three matching passes in strict sequence, then result assembly. It holds no
// state between runs; a single instance must not run twice concurrently over
// the same working data.
type ReconciliationUseCase struct {
	source   RecordSource
	settings config.Settings
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(source RecordSource, settings config.Settings) *ReconciliationUseCase {
	return &ReconciliationUseCase{source: source, settings: settings}
}

// Reconcile fetches both record sets through the source and reconciles them.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, bankPath, ledgerPath string) (*domain.ReconciliationResult, error) {
	bankRecords, err := uc.source.GetBankRecords(ctx, bankPath)
	if err != nil {
		return nil, fmt.Errorf("could not get bank records: %w", err)
	}

	ledgerRecords, err := uc.source.GetLedgerRecords(ctx, ledgerPath)
	if err != nil {
		return nil, fmt.Errorf("could not get ledger records: %w", err)
	}

	return uc.ReconcileRecords(bankRecords, ledgerRecords)
}

// ReconcileRecords runs the full pipeline on caller-supplied raw pairs. Rows
// that fail normalization are reported on the result, never aborting the run;
// an entirely empty side aborts before any matching pass.
func (uc *ReconciliationUseCase) ReconcileRecords(bankRecords, ledgerRecords []domain.RawRecord) (*domain.ReconciliationResult, error) {
	bank, skippedBank := normalizer.Normalize(bankRecords, domain.SourceBank)
	ledger, skippedLedger := normalizer.Normalize(ledgerRecords, domain.SourceLedger)

	log.Infof("[Reconcile] normalized %d bank and %d ledger records (skipped %d/%d)",
		len(bank), len(ledger), len(skippedBank), len(skippedLedger))

	if len(bank) == 0 {
		return nil, fmt.Errorf("bank side: %w", domain.ErrEmptyInput)
	}
	if len(ledger) == 0 {
		return nil, fmt.Errorf("ledger side: %w", domain.ErrEmptyInput)
	}

	totalBank, totalLedger := len(bank), len(ledger)
	groups := make([]domain.MatchGroup, 0)

	exactGroups, bank, ledger := exactMatcher{settings: uc.settings}.match(bank, ledger)
	groups = append(groups, exactGroups...)
	log.Infof("[Reconcile] exact pass: %d groups, %d bank / %d ledger remaining",
		len(exactGroups), len(bank), len(ledger))

	groupedGroups, bank, ledger := groupMatcher{settings: uc.settings}.match(bank, ledger)
	groups = append(groups, groupedGroups...)
	log.Infof("[Reconcile] grouped pass: %d groups, %d bank / %d ledger remaining",
		len(groupedGroups), len(bank), len(ledger))

	balanceGroups, bank, ledger := runningBalanceMatcher{settings: uc.settings}.match(bank, ledger)
	groups = append(groups, balanceGroups...)
	log.Infof("[Reconcile] running-balance pass: %d groups, %d bank / %d ledger remaining",
		len(balanceGroups), len(bank), len(ledger))

	return uc.assembleResult(groups, bank, ledger, skippedBank, skippedLedger, totalBank, totalLedger), nil
}

// assembleResult turns the leftovers and every emitted group into the final
// immutable result.
func (uc *ReconciliationUseCase) assembleResult(
	groups []domain.MatchGroup,
	unmatchedBank, unmatchedLedger []domain.Transaction,
	skippedBank, skippedLedger []domain.SkippedRow,
	totalBank, totalLedger int,
) *domain.ReconciliationResult {
	differences := make([]domain.MatchGroup, 0)
	for _, g := range groups {
		if g.Difference.Cmp(uc.settings.AmountTolerance) > 0 {
			differences = append(differences, g)
		}
	}

	if unmatchedBank == nil {
		unmatchedBank = make([]domain.Transaction, 0)
	}
	if unmatchedLedger == nil {
		unmatchedLedger = make([]domain.Transaction, 0)
	}

	return &domain.ReconciliationResult{
		MatchGroups:     groups,
		UnmatchedBank:   unmatchedBank,
		UnmatchedLedger: unmatchedLedger,
		Differences:     differences,
		SkippedBank:     skippedBank,
		SkippedLedger:   skippedLedger,
		Summary: domain.Summary{
			TotalBankRecords:   totalBank,
			TotalLedgerRecords: totalLedger,
			SkippedBankRows:    len(skippedBank),
			SkippedLedgerRows:  len(skippedLedger),
			MatchGroups:        len(groups),
			TotalUnmatched:     len(unmatchedBank) + len(unmatchedLedger),
		},
	}
}
