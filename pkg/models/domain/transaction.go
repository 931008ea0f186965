package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is one normalized ledger line. Amount is always strictly positive.
type Transaction struct {
	Key         string
	Date        time.Time
	Description string
	Category    string
	Amount      decimal.Decimal
	Type        TransactionType
	Source      string // endpoint that produced the entry
	RelatedName string
}

// MonthlyBucket aggregates a Gregorian month of transactions.
type MonthlyBucket struct {
	Period     string // "2024-03"
	MonthLabel string // Jalaali month name and year of the bucket's mid-month day
	Revenue    decimal.Decimal
	Expenses   decimal.Decimal
}

func (b MonthlyBucket) Profit() decimal.Decimal {
	return b.Revenue.Sub(b.Expenses)
}

// IncomeShare is the total income booked under one category.
type IncomeShare struct {
	Category string
	Amount   decimal.Decimal
}

type Filter struct {
	Type     TransactionType
	Category string
	Search   string
}

// Page is one slice of a filtered ledger. Page numbers start at 1.
type Page struct {
	Items      []Transaction
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}
