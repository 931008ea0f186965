package ledger

import (
	"fmt"

	"github.com/de-tools/ledger-atlas/pkg/models/store"
)

// CustomerLookup maps a customer id to its display name. It is built once per snapshot and only
// read afterwards.
type CustomerLookup map[string]string

func NewCustomerLookup(customers []store.Customer) CustomerLookup {
	lookup := make(CustomerLookup, len(customers))
	for _, c := range customers {
		if !c.ID.Present() {
			continue
		}
		id := c.ID.String()
		switch {
		case c.FullName != "":
			lookup[id] = c.FullName
		case c.Name != "":
			lookup[id] = c.Name
		default:
			lookup[id] = customerFallback(id)
		}
	}
	return lookup
}

// Name returns the customer's display name or a synthetic "Customer <id>".
func (l CustomerLookup) Name(id string) string {
	if name, ok := l[id]; ok {
		return name
	}
	return customerFallback(id)
}

func customerFallback(id string) string {
	return fmt.Sprintf("Customer %s", id)
}
