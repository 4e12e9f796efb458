package usecase

import (
	"context"

	"bank-reconciliation/internal/domain"
)

// RecordSource defines the interface for fetching raw records before
// normalization. The usecase layer depends on this interface, not on a
// concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_source.go -source=interface.go RecordSource
type RecordSource interface {
	GetBankRecords(ctx context.Context, path string) ([]domain.RawRecord, error)
	GetLedgerRecords(ctx context.Context, path string) ([]domain.RawRecord, error)
}
