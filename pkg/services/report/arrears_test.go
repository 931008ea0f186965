package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ledger-atlas/pkg/models/domain"
	"github.com/de-tools/ledger-atlas/pkg/models/store"
)

func decode[T any](t *testing.T, payload string) []T {
	t.Helper()
	var out []T
	require.NoError(t, json.Unmarshal([]byte(payload), &out))
	return out
}

func TestSumOutstanding(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{name: "total wins", payload: `[{"total_remainder": "1,000", "customers_list": {"a": {"remainder": 5}}}]`, expected: "1000"},
		{name: "nested fallback when total missing", payload: `[{"customers_list": {"a": {"remainder": 5}, "b": {"remainder": "7"}}}]`, expected: "12"},
		{name: "nested fallback when total is zero", payload: `[{"total_remainder": 0, "customers_list": {"a": {"remainder": 5}}}]`, expected: "5"},
		{name: "negative and invalid contribute nothing", payload: `[{"total_remainder": "-20", "customers_list": {"a": {"remainder": -5}, "b": {"remainder": "x"}, "c": {"remainder": 3}}}]`, expected: "3"},
		{name: "no balance at all", payload: `[{"id": 1}]`, expected: "0"},
		{name: "several records", payload: `[{"total_remainder": 10}, {"total_remainder": 15}]`, expected: "25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SumOutstanding(decode[store.Charge](t, tt.payload))
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestComputeArrears(t *testing.T) {
	rng, err := domain.NewDateRange(
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	snap := store.Snapshot{
		Rent:      decode[store.Charge](t, `[{"date": "2024-03-05", "total_remainder": 100}, {"date": "2024-04-05", "total_remainder": 999}]`),
		Services:  decode[store.Charge](t, `[{"date": "2024-03-06", "customers_list": {"c1": {"remainder": 20}}}]`),
		Salaries:  decode[store.Salary](t, `[{"date": "2024-03-07", "total_remainder": "30"}]`),
		UnitBills: decode[store.UnitBill](t, `[{"date": "2024-03-08", "total_remainder": 40, "unit_details_list": {"u1": {"remainder": 500}}}]`),
	}

	got := ComputeArrears(snap, rng)

	assert.Equal(t, "120", got.RentService.String())
	assert.Equal(t, "30", got.Salary.String())
	assert.Equal(t, "40", got.UnitBills.String())
}

func TestComputeOccupancy(t *testing.T) {
	snap := store.Snapshot{
		Customers: decode[store.Customer](t, `[{"id": 1}, {"id": 2}, {"id": 3}]`),
		Agreements: decode[store.Agreement](t, `[
			{"status": "Active", "shop": [1, 2]},
			{"status": "Active", "shop": 2},
			{"status": "Active", "shop": [0, null]},
			{"status": "Expired", "shop": 9}
		]`),
	}

	got := ComputeOccupancy(snap)

	assert.Equal(t, domain.Occupancy{TotalCustomers: 3, ActiveAgreements: 3, ActiveShops: 2}, got)
}
