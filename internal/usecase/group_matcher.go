package usecase

import (
	"time"

	"bank-reconciliation/internal/config"
	"bank-reconciliation/internal/domain"
)

// groupMatcher is pass 2: per-calendar-date aggregate matches. It resolves
// granularity differences where one side posts a day's movements as line
// items and the other as a single aggregate.
type groupMatcher struct {
	settings config.Settings
}

// match buckets each working list by calendar date. A date present on both
// sides whose sums agree within tolerance is matched all-or-nothing: every
// transaction in both buckets joins one Grouped group. Dates on one side
// only, or with disagreeing sums, are left for the next pass.
func (m groupMatcher) match(bank, ledger []domain.Transaction) ([]domain.MatchGroup, []domain.Transaction, []domain.Transaction) {
	bankByDate, bankKeys := bucketByDate(bank)
	ledgerByDate, _ := bucketByDate(ledger)

	var groups []domain.MatchGroup
	matched := make(map[string]bool)

	for _, key := range bankKeys {
		ledgerBucket, ok := ledgerByDate[key]
		if !ok {
			continue
		}
		bankBucket := bankByDate[key]
		if amountsWithin(sumAmounts(bankBucket), sumAmounts(ledgerBucket), m.settings.GroupAmountTolerance) {
			groups = append(groups, newMatchGroup(domain.MatchGrouped, bankBucket, ledgerBucket))
			matched[key] = true
		}
	}

	return groups, withoutDates(bank, matched), withoutDates(ledger, matched)
}

func dateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// bucketByDate groups transactions by calendar date, keeping original
// relative order inside each bucket, and returns keys in encounter order.
func bucketByDate(transactions []domain.Transaction) (map[string][]domain.Transaction, []string) {
	buckets := make(map[string][]domain.Transaction)
	var keys []string
	for _, t := range transactions {
		key := dateKey(t.Date)
		if _, seen := buckets[key]; !seen {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], t)
	}
	return buckets, keys
}

// withoutDates compacts the working list, dropping every transaction whose
// date was matched. Relative order of the survivors is preserved.
func withoutDates(transactions []domain.Transaction, matched map[string]bool) []domain.Transaction {
	remaining := make([]domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !matched[dateKey(t.Date)] {
			remaining = append(remaining, t)
		}
	}
	return remaining
}
