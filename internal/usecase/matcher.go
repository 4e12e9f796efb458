package usecase

import (
	"time"

	"bank-reconciliation/internal/domain"

	"github.com/shopspring/decimal"
)

// newMatchGroup builds a group from the two member sets. The representative
// date is the triggering bank transaction's date.
func newMatchGroup(matchType domain.MatchType, bank, ledger []domain.Transaction) domain.MatchGroup {
	bankTotal := sumAmounts(bank)
	ledgerTotal := sumAmounts(ledger)
	return domain.MatchGroup{
		BankTransactions:   bank,
		LedgerTransactions: ledger,
		BankTotal:          bankTotal,
		LedgerTotal:        ledgerTotal,
		Date:               bank[0].Date,
		Difference:         bankTotal.Sub(ledgerTotal).Abs(),
		MatchType:          matchType,
	}
}

func sumAmounts(transactions []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}
	return total
}

// amountsWithin reports whether two amounts are at most tolerance apart.
// Closed interval: a distance of exactly the tolerance is a match.
func amountsWithin(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().Cmp(tolerance) <= 0
}

// datesWithin reports whether two day-granular dates are at most days apart.
func datesWithin(a, b time.Time, days int) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= time.Duration(days)*24*time.Hour
}

// removeAt returns the list without the element at i. The result never shares
// a backing array tail with the input, so earlier removals cannot clobber
// later reads.
func removeAt(list []domain.Transaction, i int) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
