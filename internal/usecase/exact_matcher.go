package usecase

import (
	"bank-reconciliation/internal/config"
	"bank-reconciliation/internal/domain"
)

// exactMatcher is pass 1: one-to-one matches, exact first, then fuzzy.
//
// Both scans take the first candidate in list order, never the closest by
// date or amount. That tie-break is load-bearing: together with the date
// pre-sort it makes every run reproducible.
type exactMatcher struct {
	settings config.Settings
}

// match walks the bank working list by position. Each bank transaction is
// tried against the full ledger list for an exact hit (date within 1 day,
// amount within tolerance); failing that, against a position-bounded fuzzy
// window. Matched elements are removed from both lists and the bank index is
// not advanced, since the list has shifted left.
func (m exactMatcher) match(bank, ledger []domain.Transaction) ([]domain.MatchGroup, []domain.Transaction, []domain.Transaction) {
	var groups []domain.MatchGroup

	for i := 0; i < len(bank); {
		bt := bank[i]

		matchType := domain.MatchExact
		j := m.scanExact(bt, ledger)
		if j < 0 {
			matchType = domain.MatchFuzzy
			j = m.scanFuzzy(bt, ledger)
		}
		if j < 0 {
			i++
			continue
		}

		groups = append(groups, newMatchGroup(matchType,
			[]domain.Transaction{bt},
			[]domain.Transaction{ledger[j]},
		))
		bank = removeAt(bank, i)
		ledger = removeAt(ledger, j)
	}

	return groups, bank, ledger
}

func (m exactMatcher) scanExact(bt domain.Transaction, ledger []domain.Transaction) int {
	for j, lt := range ledger {
		if datesWithin(bt.Date, lt.Date, m.settings.ExactDateToleranceDays) &&
			amountsWithin(bt.Amount, lt.Amount, m.settings.AmountTolerance) {
			return j
		}
	}
	return -1
}

// scanFuzzy checks only the first FuzzySearchRange remaining ledger entries.
// The window is positional, not date-filtered: a better-dated candidate past
// the window is never considered.
func (m exactMatcher) scanFuzzy(bt domain.Transaction, ledger []domain.Transaction) int {
	searchRange := m.settings.FuzzySearchRange
	if searchRange > len(ledger) {
		searchRange = len(ledger)
	}
	for j := 0; j < searchRange; j++ {
		lt := ledger[j]
		if amountsWithin(bt.Amount, lt.Amount, m.settings.AmountTolerance) &&
			datesWithin(bt.Date, lt.Date, m.settings.FuzzyDateToleranceDays) {
			return j
		}
	}
	return -1
}
