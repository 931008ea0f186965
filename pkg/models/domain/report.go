package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidRange = errors.New("domain: start date is after end date")

// DateRange is an inclusive range of whole UTC days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange spans from the first instant of start's calendar day to the last instant of end's,
// both read in UTC.
func NewDateRange(start, end time.Time) (DateRange, error) {
	s := start.UTC()
	e := end.UTC()
	r := DateRange{
		Start: time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC),
		End:   time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC),
	}
	if r.End.Before(r.Start) {
		return DateRange{}, ErrInvalidRange
	}
	return r, nil
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Widen pads the range on both sides, used to over-fetch records near the edges.
func (r DateRange) Widen(d time.Duration) DateRange {
	return DateRange{Start: r.Start.Add(-d), End: r.End.Add(d)}
}

// Arrears holds outstanding balances by family of source.
type Arrears struct {
	RentService decimal.Decimal
	Salary      decimal.Decimal
	UnitBills   decimal.Decimal
}

type Summary struct {
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
}

func (s Summary) NetProfit() decimal.Decimal {
	return s.TotalRevenue.Sub(s.TotalExpenses)
}

// Occupancy counts customers and active agreements in the snapshot.
type Occupancy struct {
	TotalCustomers   int
	ActiveAgreements int
	ActiveShops      int
}

// FinancialReport is the complete best-effort result for one date range. Errors lists the sources
// that failed so callers can judge how far to trust the totals.
type FinancialReport struct {
	Range              DateRange
	Transactions       []Transaction
	MonthlyBuckets     []MonthlyBucket
	IncomeDistribution []IncomeShare
	Categories         []string
	Arrears            Arrears
	Summary            Summary
	Occupancy          Occupancy
	Errors             []string
}
