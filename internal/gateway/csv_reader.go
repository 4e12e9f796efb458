package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"bank-reconciliation/internal/domain"
)

// CSVRecordSource implements the RecordSource interface for two-column
// (date, amount) CSV files with a header row. It hands the raw text through
// untouched; validity is the normalizer's concern. Rows where both fields are
// blank are dropped here, before the engine ever sees them.
type CSVRecordSource struct{}

// NewCSVRecordSource creates a new source instance.
func NewCSVRecordSource() *CSVRecordSource {
	return &CSVRecordSource{}
}

// GetBankRecords reads the bank statement CSV file.
func (s *CSVRecordSource) GetBankRecords(ctx context.Context, path string) ([]domain.RawRecord, error) {
	return s.readRecords(path)
}

// GetLedgerRecords reads the ledger export CSV file.
func (s *CSVRecordSource) GetLedgerRecords(ctx context.Context, path string) ([]domain.RawRecord, error) {
	return s.readRecords(path)
}

func (s *CSVRecordSource) readRecords(path string) ([]domain.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	var records []domain.RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("row in %s has %d columns, want at least 2 (date, amount)", path, len(row))
		}

		dateText := strings.TrimSpace(row[0])
		amountText := strings.TrimSpace(row[1])
		if dateText == "" && amountText == "" {
			continue
		}

		records = append(records, domain.RawRecord{
			DateText:   dateText,
			AmountText: amountText,
		})
	}
	return records, nil
}
