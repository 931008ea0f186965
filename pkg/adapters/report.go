package adapters

import (
	"time"

	"github.com/de-tools/ledger-atlas/pkg/calendar"
	"github.com/de-tools/ledger-atlas/pkg/models/api"
	"github.com/de-tools/ledger-atlas/pkg/models/domain"
)

func MapDomainReportToAPI(r *domain.FinancialReport) api.FinancialReport {
	buckets := make([]api.MonthlyBucket, 0, len(r.MonthlyBuckets))
	for _, b := range r.MonthlyBuckets {
		buckets = append(buckets, api.MonthlyBucket{
			Period:     b.Period,
			MonthLabel: b.MonthLabel,
			Revenue:    b.Revenue,
			Expenses:   b.Expenses,
			Profit:     b.Profit(),
		})
	}

	shares := make([]api.IncomeShare, 0, len(r.IncomeDistribution))
	for _, s := range r.IncomeDistribution {
		shares = append(shares, api.IncomeShare{Category: s.Category, Amount: s.Amount})
	}

	return api.FinancialReport{
		Period:             MapDomainRangeToAPI(r.Range),
		Transactions:       MapDomainTransactionsToAPI(r.Transactions),
		MonthlyBuckets:     buckets,
		IncomeDistribution: shares,
		Categories:         nonNil(r.Categories),
		Arrears: api.Arrears{
			RentService: r.Arrears.RentService,
			Salary:      r.Arrears.Salary,
			UnitBills:   r.Arrears.UnitBills,
		},
		Summary: api.Summary{
			TotalRevenue:  r.Summary.TotalRevenue,
			TotalExpenses: r.Summary.TotalExpenses,
			NetProfit:     r.Summary.NetProfit(),
		},
		ExtraSummary: api.ExtraSummary{
			TotalCustomers:   r.Occupancy.TotalCustomers,
			ActiveAgreements: r.Occupancy.ActiveAgreements,
			ActiveShops:      r.Occupancy.ActiveShops,
		},
		Errors: nonNil(r.Errors),
	}
}

func MapDomainRangeToAPI(rng domain.DateRange) api.Period {
	return api.Period{
		Start:        rng.Start,
		End:          rng.End,
		StartJalaali: jalaali(rng.Start),
		EndJalaali:   jalaali(rng.End),
	}
}

func MapDomainTransactionsToAPI(txs []domain.Transaction) []api.Transaction {
	out := make([]api.Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, api.Transaction{
			Key:         tx.Key,
			Date:        tx.Date,
			JalaaliDate: jalaali(tx.Date),
			Description: tx.Description,
			Category:    tx.Category,
			Amount:      tx.Amount,
			Type:        string(tx.Type),
			SourceAPI:   tx.Source,
			RelatedName: tx.RelatedName,
		})
	}
	return out
}

func MapDomainPageToAPI(p domain.Page, errs []string) api.TransactionPage {
	return api.TransactionPage{
		Items:      MapDomainTransactionsToAPI(p.Items),
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
		Errors:     nonNil(errs),
	}
}

func jalaali(t time.Time) string {
	d, err := calendar.FromTime(t)
	if err != nil {
		return ""
	}
	return d.String()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
