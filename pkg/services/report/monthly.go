package report

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/de-tools/ledger-atlas/pkg/calendar"
	"github.com/de-tools/ledger-atlas/pkg/models/domain"
)

// Aggregate buckets transactions by Gregorian (UTC) month, oldest first. Months without
// transactions are absent.
func Aggregate(txs []domain.Transaction) []domain.MonthlyBucket {
	index := make(map[string]int)
	var buckets []domain.MonthlyBucket

	for _, tx := range txs {
		d := tx.Date.UTC()
		key := fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))

		i, ok := index[key]
		if !ok {
			mid := time.Date(d.Year(), d.Month(), 15, 0, 0, 0, 0, time.UTC)
			buckets = append(buckets, domain.MonthlyBucket{
				Period:     key,
				MonthLabel: calendar.MonthLabel(mid),
				Revenue:    decimal.Zero,
				Expenses:   decimal.Zero,
			})
			i = len(buckets) - 1
			index[key] = i
		}

		switch tx.Type {
		case domain.TransactionIncome:
			buckets[i].Revenue = buckets[i].Revenue.Add(tx.Amount)
		case domain.TransactionExpense:
			buckets[i].Expenses = buckets[i].Expenses.Add(tx.Amount)
		}
	}

	slices.SortFunc(buckets, func(a, b domain.MonthlyBucket) int {
		switch {
		case a.Period < b.Period:
			return -1
		case a.Period > b.Period:
			return 1
		}
		return 0
	})
	return buckets
}

// Summarize totals the ledger.
func Summarize(txs []domain.Transaction) domain.Summary {
	s := domain.Summary{TotalRevenue: decimal.Zero, TotalExpenses: decimal.Zero}
	for _, tx := range txs {
		switch tx.Type {
		case domain.TransactionIncome:
			s.TotalRevenue = s.TotalRevenue.Add(tx.Amount)
		case domain.TransactionExpense:
			s.TotalExpenses = s.TotalExpenses.Add(tx.Amount)
		}
	}
	return s
}
