package report

import (
	"github.com/de-tools/ledger-atlas/pkg/models/domain"
	"github.com/de-tools/ledger-atlas/pkg/models/store"
)

const agreementActive = "Active"

// ComputeOccupancy counts customers, active agreements and the distinct shops those agreements cover.
func ComputeOccupancy(snap store.Snapshot) domain.Occupancy {
	occ := domain.Occupancy{TotalCustomers: len(snap.Customers)}
	shops := make(map[string]struct{})
	for _, a := range snap.Agreements {
		if a.Status != agreementActive {
			continue
		}
		occ.ActiveAgreements++
		for _, id := range a.Shop {
			if id.Present() {
				shops[id.String()] = struct{}{}
			}
		}
	}
	occ.ActiveShops = len(shops)
	return occ
}
