package report

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/de-tools/ledger-atlas/pkg/models/domain"
)

// IncomeDistribution sums income per category, largest share first. Ties are ordered by name.
func IncomeDistribution(txs []domain.Transaction) []domain.IncomeShare {
	index := make(map[string]int)
	var shares []domain.IncomeShare
	for _, tx := range txs {
		if tx.Type != domain.TransactionIncome {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			shares = append(shares, domain.IncomeShare{Category: tx.Category, Amount: decimal.Zero})
			i = len(shares) - 1
			index[tx.Category] = i
		}
		shares[i].Amount = shares[i].Amount.Add(tx.Amount)
	}

	shares = slices.DeleteFunc(shares, func(s domain.IncomeShare) bool { return !s.Amount.IsPositive() })
	slices.SortFunc(shares, func(a, b domain.IncomeShare) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return shares
}
