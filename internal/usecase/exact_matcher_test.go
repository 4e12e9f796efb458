package usecase

import (
	"testing"
	"time"

	"bank-reconciliation/internal/config"
	"bank-reconciliation/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(source domain.Source, day string, amount string) domain.Transaction {
	d, err := time.Parse(time.DateOnly, day)
	if err != nil {
		panic(err)
	}
	return domain.Transaction{
		Date:   d,
		Amount: decimal.RequireFromString(amount),
		Source: source,
	}
}

func bankTx(day, amount string) domain.Transaction   { return tx(domain.SourceBank, day, amount) }
func ledgerTx(day, amount string) domain.Transaction { return tx(domain.SourceLedger, day, amount) }

func TestExactMatcher_SameDateSameAmount(t *testing.T) {
	m := exactMatcher{settings: config.Default()}

	groups, bank, ledger := m.match(
		[]domain.Transaction{bankTx("2024-04-01", "50000")},
		[]domain.Transaction{ledgerTx("2024-04-01", "50000")},
	)

	require.Len(t, groups, 1)
	assert.Equal(t, domain.MatchExact, groups[0].MatchType)
	assert.True(t, groups[0].Difference.IsZero())
	assert.Equal(t, groups[0].Date, groups[0].BankTransactions[0].Date)
	assert.Empty(t, bank)
	assert.Empty(t, ledger)
}

func TestExactMatcher_ToleranceBoundariesAreMatches(t *testing.T) {
	m := exactMatcher{settings: config.Default()}

	// Exactly 1 day apart and exactly 0.01 apart: both closed intervals.
	groups, bank, ledger := m.match(
		[]domain.Transaction{bankTx("2024-04-01", "100.00")},
		[]domain.Transaction{ledgerTx("2024-04-02", "100.01")},
	)

	require.Len(t, groups, 1)
	assert.Equal(t, domain.MatchExact, groups[0].MatchType)
	assert.Empty(t, bank)
	assert.Empty(t, ledger)
}

func TestExactMatcher_FuzzyFallback(t *testing.T) {
	m := exactMatcher{settings: config.Default()}

	// 5 days apart rules out an exact hit; amount within 0.01 and date within
	// 7 days makes it a fuzzy match.
	groups, bank, ledger := m.match(
		[]domain.Transaction{bankTx("2024-04-01", "500")},
		[]domain.Transaction{ledgerTx("2024-04-06", "500.005")},
	)

	require.Len(t, groups, 1)
	assert.Equal(t, domain.MatchFuzzy, groups[0].MatchType)
	assert.Empty(t, bank)
	assert.Empty(t, ledger)
}

func TestExactMatcher_BeyondFuzzyDateTolerance(t *testing.T) {
	m := exactMatcher{settings: config.Default()}

	groups, bank, ledger := m.match(
		[]domain.Transaction{bankTx("2024-04-01", "500")},
		[]domain.Transaction{ledgerTx("2024-04-09", "500")},
	)

	assert.Empty(t, groups)
	assert.Len(t, bank, 1)
	assert.Len(t, ledger, 1)
}

func TestExactMatcher_FirstCandidateInListOrderWins(t *testing.T) {
	m := exactMatcher{settings: config.Default()}

	// Both ledger entries qualify; the positionally first one is taken even
	// though the second is the closer date.
	groups, _, ledger := m.match(
		[]domain.Transaction{bankTx("2024-04-02", "750")},
		[]domain.Transaction{
			ledgerTx("2024-04-01", "750"),
			ledgerTx("2024-04-02", "750"),
		},
	)

	require.Len(t, groups, 1)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), groups[0].LedgerTransactions[0].Date)
	require.Len(t, ledger, 1)
	assert.Equal(t, time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC), ledger[0].Date)
}

func TestExactMatcher_FuzzyWindowIsPositional(t *testing.T) {
	m := exactMatcher{settings: config.Default()}

	// Six fillers occupy the whole fuzzy window; the amount match sits at
	// position 6, two days out — beyond the exact window, well inside the
	// fuzzy date tolerance, and still never considered.
	ledger := []domain.Transaction{
		ledgerTx("2024-04-10", "1"),
		ledgerTx("2024-04-10", "2"),
		ledgerTx("2024-04-10", "3"),
		ledgerTx("2024-04-10", "4"),
		ledgerTx("2024-04-10", "5"),
		ledgerTx("2024-04-10", "6"),
		ledgerTx("2024-04-14", "999"),
	}

	groups, bank, ledgerRest := m.match(
		[]domain.Transaction{bankTx("2024-04-12", "999")},
		ledger,
	)

	assert.Empty(t, groups)
	assert.Len(t, bank, 1)
	assert.Len(t, ledgerRest, 7)
}

func TestExactMatcher_ContinuesFromSamePositionAfterRemoval(t *testing.T) {
	m := exactMatcher{settings: config.Default()}

	bank := []domain.Transaction{
		bankTx("2024-04-01", "100"),
		bankTx("2024-04-01", "200"),
		bankTx("2024-04-01", "300"),
	}
	ledger := []domain.Transaction{
		ledgerTx("2024-04-01", "300"),
		ledgerTx("2024-04-01", "200"),
		ledgerTx("2024-04-01", "100"),
	}

	groups, bankRest, ledgerRest := m.match(bank, ledger)

	assert.Len(t, groups, 3)
	assert.Empty(t, bankRest)
	assert.Empty(t, ledgerRest)
}
