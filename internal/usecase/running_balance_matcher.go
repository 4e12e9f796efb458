package usecase

import (
	"bank-reconciliation/internal/config"
	"bank-reconciliation/internal/domain"

	"github.com/shopspring/decimal"
)

// runningBalanceMatcher is pass 3: greedy cumulative-sum convergence. It
// captures batching differences over a short span, where many small entries
// on one side add up to a few larger entries on the other.
type runningBalanceMatcher struct {
	settings config.Settings
}

// match advances two cursors over the date-sorted working lists, one side per
// iteration: the bank side when its running sum is strictly smaller, the
// ledger side otherwise. Ties advance the ledger side. When the sums converge
// within tolerance, the consumed prefixes become one RunningBalance group and
// the scan restarts on the shrunk lists. The pass ends when the side due to
// advance has no elements left; whatever is accumulated by then is discarded
// and falls through unmatched.
func (m runningBalanceMatcher) match(bank, ledger []domain.Transaction) ([]domain.MatchGroup, []domain.Transaction, []domain.Transaction) {
	var groups []domain.MatchGroup

	bankIdx, ledgerIdx := 0, 0
	bankSum, ledgerSum := decimal.Zero, decimal.Zero

	for {
		// Only the side about to advance needs elements left; the other side
		// may already be fully consumed into its running sum.
		if bankSum.LessThan(ledgerSum) {
			if bankIdx == len(bank) {
				break
			}
			bankSum = bankSum.Add(bank[bankIdx].Amount)
			bankIdx++
		} else {
			if ledgerIdx == len(ledger) {
				break
			}
			ledgerSum = ledgerSum.Add(ledger[ledgerIdx].Amount)
			ledgerIdx++
		}

		// A group needs at least one element on each side before the block
		// can close.
		if bankIdx == 0 || ledgerIdx == 0 {
			continue
		}
		if bankSum.Sub(ledgerSum).Abs().Cmp(m.settings.RunningBalanceTolerance) > 0 {
			continue
		}

		bankBlock := append([]domain.Transaction(nil), bank[:bankIdx]...)
		ledgerBlock := append([]domain.Transaction(nil), ledger[:ledgerIdx]...)
		groups = append(groups, newMatchGroup(domain.MatchRunningBalance, bankBlock, ledgerBlock))

		bank = bank[bankIdx:]
		ledger = ledger[ledgerIdx:]
		bankIdx, ledgerIdx = 0, 0
		bankSum, ledgerSum = decimal.Zero, decimal.Zero
	}

	return groups, bank, ledger
}
