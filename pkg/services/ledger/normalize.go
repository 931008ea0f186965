package ledger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/ledger-atlas/pkg/metrics"
	"github.com/de-tools/ledger-atlas/pkg/models/domain"
	"github.com/de-tools/ledger-atlas/pkg/models/store"
)

const (
	CategoryGeneralExpenses = "general expenses"
	CategoryMiscIncome      = "miscellaneous income"
	CategoryRent            = "rent"
	CategoryServiceFee      = "service fee"
	CategoryUnitBills       = "unit bills"
	CategoryUnitDiscounts   = "unit discounts"
	CategorySalary          = "salary"
	CategoryUncategorized   = "uncategorized"
)

type Normalizer struct {
	recorder *metrics.Recorder
}

func NewNormalizer(recorder *metrics.Recorder) *Normalizer {
	return &Normalizer{recorder: recorder}
}

// Normalize flattens every dated source of the snapshot into ledger transactions that fall inside
// rng, newest first. The same snapshot always yields the same ledger, keys included.
func (n *Normalizer) Normalize(ctx context.Context, snap store.Snapshot, lookup CustomerLookup, rng domain.DateRange) []domain.Transaction {
	e := &emitter{ctx: ctx, recorder: n.recorder, lookup: lookup, rng: rng}

	e.expenditures(snap.Expenditures)
	e.miscIncome(snap.MiscIncome)
	e.charges(store.SourceRent, snap.Rent, "Rent", CategoryRent)
	e.charges(store.SourceServices, snap.Services, "Service fee", CategoryServiceFee)
	e.unitBills(snap.UnitBills)
	e.unitAdjustments(snap.UnitAdjustments)
	e.salaries(snap.Salaries)

	slices.SortStableFunc(e.out, func(a, b domain.Transaction) int {
		return b.Date.Compare(a.Date)
	})

	zerolog.Ctx(ctx).Debug().
		Int("transactions", len(e.out)).
		Time("from", rng.Start).
		Time("to", rng.End).
		Msg("ledger normalised")
	return e.out
}

func (e *emitter) expenditures(records []store.Expenditure) {
	eachInRange(e, store.SourceExpenditures, records, func(i int, r *store.Expenditure, date time.Time) {
		category := firstText(r.Category)
		description := firstText(r.Description)
		if description == "" {
			description = fmt.Sprintf("Expenditure: %s", orDefault(category, "general"))
		}
		e.emit(entry{
			record:      r.Record(),
			source:      store.SourceExpenditures,
			index:       i,
			typ:         domain.TransactionExpense,
			amount:      r.Amount,
			date:        date,
			description: description,
			category:    orDefault(category, CategoryGeneralExpenses),
		})
	})
}

func (e *emitter) miscIncome(records []store.MiscIncome) {
	eachInRange(e, store.SourceMiscIncome, records, func(i int, r *store.MiscIncome, date time.Time) {
		source := firstText(r.Source)
		e.emit(entry{
			record:      r.Record(),
			source:      store.SourceMiscIncome,
			index:       i,
			typ:         domain.TransactionIncome,
			amount:      r.Amount,
			date:        date,
			description: orDefault(firstText(r.Description, r.Source), CategoryMiscIncome),
			category:    orDefault(source, CategoryMiscIncome),
		})
	})
}

// charges handles rent and service fees: one entry per customer share when the record breaks the
// charge down, a single entry for the record's total otherwise.
func (e *emitter) charges(src store.Source, records []store.Charge, label, category string) {
	eachInRange(e, src, records, func(i int, r *store.Charge, date time.Time) {
		floor := orDefault(r.Floor.String(), "N/A")

		if r.CustomersList.Present {
			e.skipped(src, r.Record(), r.CustomersList.Skipped)
			for _, share := range r.CustomersList.Entries {
				if !share.Value.Taken.Present() {
					continue
				}
				e.emit(entry{
					record:      r.Record(),
					source:      src,
					index:       i,
					sub:         share.Key,
					typ:         domain.TransactionIncome,
					amount:      share.Value.Taken,
					date:        date,
					description: fmt.Sprintf("%s - floor: %s - %s", label, floor, e.lookup.Name(share.Key)),
					category:    category,
					related:     relation{kind: relatedCustomer, id: share.Key},
				})
			}
			return
		}

		if !r.TotalTaken.Present() {
			return
		}
		e.emit(entry{
			record:      r.Record(),
			source:      src,
			index:       i,
			typ:         domain.TransactionIncome,
			amount:      r.TotalTaken,
			date:        date,
			description: fmt.Sprintf("%s total - floor: %s", label, floor),
			category:    category,
			related:     relation{id: r.ID.String()},
		})
	})
}

func (e *emitter) unitBills(records []store.UnitBill) {
	eachInRange(e, store.SourceUnitBills, records, func(i int, r *store.UnitBill, date time.Time) {
		e.skipped(store.SourceUnitBills, r.Record(), r.UnitDetails.Skipped)
		for _, unit := range r.UnitDetails.Entries {
			if !unit.Value.Taken.Present() {
				continue
			}
			number := orDefault(unit.Value.UnitNumber.String(), "unknown")
			name := unit.Value.CustomerName.String()
			if name == "" {
				name = fmt.Sprintf("Unit %s", number)
			}
			e.emit(entry{
				record:      r.Record(),
				source:      store.SourceUnitBills,
				index:       i,
				sub:         unit.Key,
				typ:         domain.TransactionIncome,
				amount:      unit.Value.Taken,
				date:        date,
				description: fmt.Sprintf("Unit bill: %s (unit %s)", orDefault(unit.Value.CustomerName.String(), "unknown"), number),
				category:    CategoryUnitBills,
				related:     relation{kind: relatedDisplay, id: unit.Value.UnitID.String(), name: name},
			})
		}
	})
}

func (e *emitter) unitAdjustments(records []store.UnitAdjustment) {
	eachInRange(e, store.SourceUnitAdjustments, records, func(i int, r *store.UnitAdjustment, date time.Time) {
		e.emit(entry{
			record:      r.Record(),
			source:      store.SourceUnitAdjustments,
			index:       i,
			typ:         domain.TransactionExpense,
			amount:      r.Amount,
			date:        date,
			description: fmt.Sprintf("Unit discount: %s", orDefault(firstText(r.Description), "no description")),
			category:    CategoryUnitDiscounts,
			related:     relation{id: r.ID.String()},
		})
	})
}

func (e *emitter) salaries(records []store.Salary) {
	eachInRange(e, store.SourceSalaries, records, func(i int, r *store.Salary, date time.Time) {
		if !r.TotalTaken.Present() {
			return
		}
		e.emit(entry{
			record:      r.Record(),
			source:      store.SourceSalaries,
			index:       i,
			typ:         domain.TransactionExpense,
			amount:      r.TotalTaken,
			date:        date,
			description: fmt.Sprintf("Salary payment - %s", orDefault(r.Staff.Name, "staff")),
			category:    CategorySalary,
			related: relation{
				kind:   relatedStaff,
				id:     r.Staff.ID,
				name:   r.Staff.Name,
				shares: r.CustomersList,
			},
		})
	})
}
