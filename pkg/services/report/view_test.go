package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ledger-atlas/pkg/models/domain"
)

func sampleLedger(n int) []domain.Transaction {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]domain.Transaction, 0, n)
	for i := 0; i < n; i++ {
		typ := domain.TransactionIncome
		category := "rent"
		if i%3 == 0 {
			typ = domain.TransactionExpense
			category = "salary"
		}
		out = append(out, domain.Transaction{
			Key:         fmt.Sprintf("k%02d", i),
			Date:        base.Add(time.Duration(i) * time.Hour),
			Description: fmt.Sprintf("Entry %d", i),
			Category:    category,
			Amount:      decimal.NewFromInt(int64(i + 1)),
			Type:        typ,
			RelatedName: "-",
		})
	}
	return out
}

func TestView_TypeFilterIsSubset(t *testing.T) {
	ledger := sampleLedger(25)

	page := View(ledger, domain.Filter{Type: domain.TransactionIncome}, 1, 100)

	assert.Equal(t, 16, page.TotalItems)
	for _, item := range page.Items {
		assert.Equal(t, domain.TransactionIncome, item.Type)
		assert.Contains(t, ledger, item)
	}
}

func TestView_PagesReassembleFilteredSet(t *testing.T) {
	ledger := sampleLedger(23)
	filter := domain.Filter{Category: "rent"}
	expected := View(ledger, filter, 1, len(ledger)).Items

	for size := 1; size <= 25; size++ {
		first := View(ledger, filter, 1, size)
		var all []domain.Transaction
		for p := 1; p <= first.TotalPages; p++ {
			all = append(all, View(ledger, filter, p, size).Items...)
		}
		require.Equal(t, expected, all, "page size %d", size)
	}
}

func TestView_Pagination(t *testing.T) {
	ledger := sampleLedger(23)

	tests := []struct {
		name      string
		page      int
		pageSize  int
		wantPage  int
		wantPages int
		wantItems int
	}{
		{name: "first page", page: 1, pageSize: 10, wantPage: 1, wantPages: 3, wantItems: 10},
		{name: "trailing page", page: 3, pageSize: 10, wantPage: 3, wantPages: 3, wantItems: 3},
		{name: "clamped high", page: 9, pageSize: 10, wantPage: 3, wantPages: 3, wantItems: 3},
		{name: "clamped low", page: -2, pageSize: 10, wantPage: 1, wantPages: 3, wantItems: 10},
		{name: "default size", page: 1, pageSize: 0, wantPage: 1, wantPages: 3, wantItems: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := View(ledger, domain.Filter{}, tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPages, got.TotalPages)
			assert.Len(t, got.Items, tt.wantItems)
			assert.Equal(t, 23, got.TotalItems)
		})
	}
}

func TestView_EmptyResultHasOnePage(t *testing.T) {
	got := View(sampleLedger(5), domain.Filter{Search: "nothing matches this"}, 4, 10)

	assert.Equal(t, 1, got.TotalPages)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 0, got.TotalItems)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}

func TestView_SearchIsCaseInsensitive(t *testing.T) {
	ledger := []domain.Transaction{
		{Key: "a", Description: "Rent - floor: 2 - Alice", Category: "rent", RelatedName: "Alice", Type: domain.TransactionIncome},
		{Key: "b", Description: "Salary payment - Bob", Category: "salary", RelatedName: "Bob", Type: domain.TransactionExpense},
		{Key: "c", Description: "Parking", Category: "miscellaneous income", RelatedName: "ALICE", Type: domain.TransactionIncome},
	}

	byName := View(ledger, domain.Filter{Search: "alice"}, 1, 10)
	assert.Len(t, byName.Items, 2)

	byCategory := View(ledger, domain.Filter{Search: "  SALARY "}, 1, 10)
	require.Len(t, byCategory.Items, 1)
	assert.Equal(t, "b", byCategory.Items[0].Key)

	combined := View(ledger, domain.Filter{Search: "alice", Type: domain.TransactionIncome, Category: "rent"}, 1, 10)
	require.Len(t, combined.Items, 1)
	assert.Equal(t, "a", combined.Items[0].Key)
}

func TestCategories(t *testing.T) {
	ledger := []domain.Transaction{
		{Category: "salary"}, {Category: "rent"}, {Category: "salary"}, {Category: "اجاره"},
	}

	got := Categories(ledger)

	assert.Len(t, got, 3)
	assert.ElementsMatch(t, []string{"rent", "salary", "اجاره"}, got)
	assert.Less(t, indexOf(got, "rent"), indexOf(got, "salary"))
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
