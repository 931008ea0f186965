package adapters

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ledger-atlas/pkg/models/domain"
)

func TestMapDomainReportToAPI(t *testing.T) {
	rng, err := domain.NewDateRange(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	report := &domain.FinancialReport{
		Range: rng,
		Transactions: []domain.Transaction{{
			Key: "k", Date: rng.Start, Amount: decimal.NewFromInt(100), Type: domain.TransactionIncome, Source: "/rent/",
		}},
		MonthlyBuckets: []domain.MonthlyBucket{{Period: "2024-03", Revenue: decimal.NewFromInt(100), Expenses: decimal.NewFromInt(40)}},
		Summary:        domain.Summary{TotalRevenue: decimal.NewFromInt(100), TotalExpenses: decimal.NewFromInt(40)},
	}

	got := MapDomainReportToAPI(report)

	assert.Equal(t, "1403/01/01", got.Period.StartJalaali)
	assert.Equal(t, "1403/01/01", got.Transactions[0].JalaaliDate)
	assert.Equal(t, "/rent/", got.Transactions[0].SourceAPI)
	assert.True(t, got.MonthlyBuckets[0].Profit.Equal(decimal.NewFromInt(60)))
	assert.True(t, got.Summary.NetProfit.Equal(decimal.NewFromInt(60)))

	body, err := json.Marshal(got)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, []any{}, raw["errors"])
	assert.Contains(t, raw, "arrears")
	assert.Equal(t, "60", raw["summary"].(map[string]any)["netProfit"])
}

func TestMapDomainPageToAPI(t *testing.T) {
	page := domain.Page{Items: []domain.Transaction{}, Page: 2, PageSize: 10, TotalItems: 11, TotalPages: 2}

	got := MapDomainPageToAPI(page, nil)

	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 2, got.TotalPages)
	assert.NotNil(t, got.Items)
	assert.NotNil(t, got.Errors)
}
