// Package normalizer turns raw date/amount text into canonical transactions.
//
// Dates arrive in whatever shape the source system exported: Excel-style
// "01-Apr-24", dash-separated "24-04-2024", slash/dot/space separated
// day-first numerics, or the occasional month-first layout. Amounts arrive
// with currency symbols and grouping separators ("₹1,50,000.00"). Rows that
// cannot be parsed are reported as skipped, never failing the run.
package normalizer

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"bank-reconciliation/internal/domain"

	"github.com/shopspring/decimal"
)

// ParseError describes a single unparseable field. It is row-scoped: the
// caller drops the row and carries on.
type ParseError struct {
	Field string
	Raw   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s from %q", e.Field, e.Raw)
}

var (
	monthAbbrevFormat = regexp.MustCompile(`^(\d{1,2})-([A-Za-z]{3})-(\d{2})$`)
	dashFormat        = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	dateSeparators    = regexp.MustCompile(`[/\-.\s]+`)
)

var monthAbbrevs = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Layouts tried as a last resort, standing in for a locale-aware generic
// date-text parser.
var fallbackLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

// ParseDate parses raw date text. Formats are tried in a fixed precedence and
// every numeric candidate must survive calendar round-trip validation, so
// day 31 in a 30-day month is rejected rather than rolled over.
func ParseDate(raw string) (time.Time, error) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return time.Time{}, &ParseError{Field: "date", Raw: raw}
	}

	// DD-Mon-YY, the Excel export shape. Two-digit years below 50 are 2000s.
	if m := monthAbbrevFormat.FindStringSubmatch(clean); m != nil {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		if month, ok := monthAbbrevs[strings.ToLower(m[2])]; ok {
			if year < 50 {
				year += 2000
			} else {
				year += 1900
			}
			if d, ok := makeDate(day, month, year); ok {
				return d, nil
			}
		}
	}

	// DD-MM-YYYY with a four-digit year.
	if m := dashFormat.FindStringSubmatch(clean); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if d, ok := makeNumericDate(day, month, year); ok {
			return d, nil
		}
	}

	// Generic three-part split, day-first (the primary locale convention),
	// then month-first as a fallback for ambiguous input.
	if parts := splitDateParts(clean); parts != nil {
		if d, ok := makeNumericDate(parts[0], parts[1], parts[2]); ok {
			return d, nil
		}
		if d, ok := makeNumericDate(parts[1], parts[0], parts[2]); ok {
			return d, nil
		}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, &ParseError{Field: "date", Raw: raw}
}

// splitDateParts splits on /, -, . or whitespace and returns exactly three
// numeric components, or nil.
func splitDateParts(clean string) []int {
	var fields []string
	for _, p := range dateSeparators.Split(clean, -1) {
		if strings.TrimSpace(p) != "" {
			fields = append(fields, p)
		}
	}
	if len(fields) != 3 {
		return nil
	}
	parts := make([]int, 3)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil
		}
		parts[i] = n
	}
	return parts
}

// makeNumericDate range-checks numeric day/month/year components before the
// calendar round trip. Years outside [1900, 2100] are rejected.
func makeNumericDate(day, month, year int) (time.Time, bool) {
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1900 || year > 2100 {
		return time.Time{}, false
	}
	return makeDate(day, time.Month(month), year)
}

// makeDate builds the date and verifies the round trip: time.Date normalizes
// overflow (Feb 31 becomes Mar 3), so any component drift means the input was
// not a real calendar date.
func makeDate(day int, month time.Month, year int) (time.Time, bool) {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != month || d.Year() != year {
		return time.Time{}, false
	}
	return d, true
}

// ParseAmount parses raw amount text. Currency symbols, grouping separators
// and whitespace are stripped; what remains must be a plain decimal number,
// optionally negative.
func ParseAmount(raw string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	stripped := b.String()
	if stripped == "" {
		return decimal.Decimal{}, &ParseError{Field: "amount", Raw: raw}
	}
	amount, err := decimal.NewFromString(stripped)
	if err != nil {
		return decimal.Decimal{}, &ParseError{Field: "amount", Raw: raw}
	}
	return amount, nil
}

// Normalize parses every raw record for one side. Unparseable rows become
// skipped-row diagnostics; the remainder is returned sorted date-ascending
// with original relative order preserved among equal dates.
func Normalize(records []domain.RawRecord, source domain.Source) ([]domain.Transaction, []domain.SkippedRow) {
	transactions := make([]domain.Transaction, 0, len(records))
	var skipped []domain.SkippedRow

	for i, rec := range records {
		date, err := ParseDate(rec.DateText)
		if err != nil {
			skipped = append(skipped, domain.SkippedRow{Index: i, Record: rec, Reason: err.Error()})
			continue
		}
		amount, err := ParseAmount(rec.AmountText)
		if err != nil {
			skipped = append(skipped, domain.SkippedRow{Index: i, Record: rec, Reason: err.Error()})
			continue
		}
		transactions = append(transactions, domain.Transaction{
			Date:   date,
			Amount: amount,
			Source: source,
		})
	}

	sort.SliceStable(transactions, func(a, b int) bool {
		return transactions[a].Date.Before(transactions[b].Date)
	})
	return transactions, skipped
}
