package store

// Source identifies one backend collection feeding the ledger.
type Source string

const (
	SourceExpenditures    Source = "/Expenditure/"
	SourceMiscIncome      Source = "/Expenditure/income/"
	SourceRent            Source = "/rent/"
	SourceServices        Source = "/services/"
	SourceSalaries        Source = "/staff/salaries/"
	SourceCustomers       Source = "/api/customers/"
	SourceAgreements      Source = "/agreements/"
	SourceUnitBills       Source = "/units/bills/"
	SourceUnitAdjustments Source = "/units/finances/"
)

// Sources lists every collection in the order reports present them.
var Sources = []Source{
	SourceExpenditures,
	SourceMiscIncome,
	SourceRent,
	SourceServices,
	SourceSalaries,
	SourceCustomers,
	SourceAgreements,
	SourceUnitBills,
	SourceUnitAdjustments,
}

// Path is the endpoint path relative to the API base URL.
func (s Source) Path() string {
	return string(s)
}

// Snapshot is one fetch of every source, decoded into its typed variant.
type Snapshot struct {
	Expenditures    []Expenditure
	MiscIncome      []MiscIncome
	Rent            []Charge
	Services        []Charge
	Salaries        []Salary
	Customers       []Customer
	Agreements      []Agreement
	UnitBills       []UnitBill
	UnitAdjustments []UnitAdjustment
}
