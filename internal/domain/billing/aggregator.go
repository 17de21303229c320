package billing

import (
	"github.com/shopspring/decimal"

	"github.com/trimworks/takeoff-api/internal/domain"
)

// FormColumns is the number of job columns on the printed invoice form. Each
// column holds an (amount, quantity) pair, so a packed line has 2*FormColumns
// slots.
const FormColumns = 5

// PackedLine is one category row of the printed form with its numbers packed
// into the fixed 10-slot layout: slot 2k is the amount and slot 2k+1 the
// quantity for column k. An invalid NullDecimal prints as a blank, which the
// form uses to distinguish "not applicable" from an actual zero.
type PackedLine struct {
	Category    CategoryKey
	Description string
	Slots       [2 * FormColumns]decimal.NullDecimal
}

// AggregateResult merges up to five jobs into one invoice: per-category
// packed rows plus grand totals. Grand totals are plain sums of each job's
// already-rounded figures; nothing is re-rounded here.
type AggregateResult struct {
	Lines    []PackedLine
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Aggregate packs 1 to 5 calculation results into the fixed form layout.
//
// Jobs are right-aligned: with N jobs, job i (input order) lands in column
// 4-(N-1)+i. One job fills only the rightmost column; five jobs fill all of
// them left to right.
func Aggregate(results []*CalculationResult) (*AggregateResult, error) {
	n := len(results)
	if n < 1 || n > FormColumns {
		return nil, domain.ErrTooManyJobs
	}

	agg := &AggregateResult{
		Lines:    make([]PackedLine, 0, len(Categories)),
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
	}
	for ci, cat := range Categories {
		line := PackedLine{Category: cat.Key, Description: cat.Description}
		for i, r := range results {
			if r == nil || ci >= len(r.LineItems) {
				continue
			}
			li := r.LineItems[ci]
			col := FormColumns - 1 - (n - 1) + i
			if !li.Amount.IsZero() {
				line.Slots[2*col] = decimal.NullDecimal{Decimal: li.Amount, Valid: true}
			}
			if !li.Quantity.IsZero() {
				line.Slots[2*col+1] = decimal.NullDecimal{Decimal: li.Quantity, Valid: true}
			}
		}
		agg.Lines = append(agg.Lines, line)
	}

	for _, r := range results {
		if r == nil {
			return nil, domain.ErrInvalidInput
		}
		agg.Subtotal = agg.Subtotal.Add(r.Subtotal)
		agg.Tax = agg.Tax.Add(r.Tax)
		agg.Total = agg.Total.Add(r.Total)
	}
	return agg, nil
}
