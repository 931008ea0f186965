package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type Period struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	StartJalaali string    `json:"startJalaali"`
	EndJalaali   string    `json:"endJalaali"`
}

type Transaction struct {
	Key         string          `json:"key"`
	Date        time.Time       `json:"date"`
	JalaaliDate string          `json:"jalaaliDate"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	SourceAPI   string          `json:"sourceApi"`
	RelatedName string          `json:"relatedName"`
}

type MonthlyBucket struct {
	Period     string          `json:"period"`
	MonthLabel string          `json:"monthLabel"`
	Revenue    decimal.Decimal `json:"revenue"`
	Expenses   decimal.Decimal `json:"expenses"`
	Profit     decimal.Decimal `json:"profit"`
}

type IncomeShare struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type Arrears struct {
	RentService decimal.Decimal `json:"rentService"`
	Salary      decimal.Decimal `json:"salary"`
	UnitBills   decimal.Decimal `json:"unitBills"`
}

type Summary struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

type ExtraSummary struct {
	TotalCustomers   int `json:"totalCustomers"`
	ActiveAgreements int `json:"activeAgreements"`
	ActiveShops      int `json:"activeShops"`
}

type FinancialReport struct {
	Period             Period          `json:"period"`
	Transactions       []Transaction   `json:"transactions"`
	MonthlyBuckets     []MonthlyBucket `json:"monthlyBuckets"`
	IncomeDistribution []IncomeShare   `json:"incomeDistribution"`
	Categories         []string        `json:"categories"`
	Arrears            Arrears         `json:"arrears"`
	Summary            Summary         `json:"summary"`
	ExtraSummary       ExtraSummary    `json:"extraSummary"`
	Errors             []string        `json:"errors"`
}

type TransactionPage struct {
	Items      []Transaction `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalItems int           `json:"totalItems"`
	TotalPages int           `json:"totalPages"`
	Errors     []string      `json:"errors"`
}

type CategoryList struct {
	Categories []string `json:"categories"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type PublishResult struct {
	Location string `json:"location"`
}
