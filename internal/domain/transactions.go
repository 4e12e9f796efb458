package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source identifies which record set a transaction came from.
type Source string

const (
	SourceBank   Source = "BANK"
	SourceLedger Source = "LEDGER"
)

// RawRecord is one source row before normalization: date and amount exactly as
// they appeared in the input (statement export, ledger dump, pasted grid).
type RawRecord struct {
	DateText   string `json:"date_text"`
	AmountText string `json:"amount_text"`
}

// Transaction is a normalized record. Date carries day-level granularity only
// (UTC midnight); Amount is a decimal in the input's currency unit. A
// Transaction is never mutated after the normalizer creates it.
type Transaction struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Source Source          `json:"source"`
}
