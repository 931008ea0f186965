package report

import (
	"github.com/shopspring/decimal"

	"github.com/de-tools/ledger-atlas/pkg/models/domain"
	"github.com/de-tools/ledger-atlas/pkg/models/store"
	"github.com/de-tools/ledger-atlas/pkg/services/ledger"
)

// SumOutstanding adds up what is still owed on records. A record's total_remainder is used when it
// is a positive number; otherwise its per-customer remainders are summed. Negative or unreadable
// values count as zero.
func SumOutstanding[T store.Outstanding](records []T) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		if total, ok := ledger.ParseAmount(r.OutstandingTotal().String()); ok {
			sum = sum.Add(total)
			continue
		}
		for _, share := range r.OutstandingShares().Entries {
			if rem, ok := ledger.ParseAmount(share.Value.Remainder.String()); ok {
				sum = sum.Add(rem)
			}
		}
	}
	return sum
}

// ComputeArrears sums outstanding balances of the records dated inside rng.
func ComputeArrears(snap store.Snapshot, rng domain.DateRange) domain.Arrears {
	rent := SumOutstanding(ledger.InRange(snap.Rent, rng))
	services := SumOutstanding(ledger.InRange(snap.Services, rng))
	return domain.Arrears{
		RentService: rent.Add(services),
		Salary:      SumOutstanding(ledger.InRange(snap.Salaries, rng)),
		UnitBills:   SumOutstanding(ledger.InRange(snap.UnitBills, rng)),
	}
}
