package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/de-tools/ledger-atlas/pkg/calendar"
	"github.com/de-tools/ledger-atlas/pkg/models/domain"
)

const (
	SheetTransactions = "Transactions"
	SheetMonthly      = "Monthly"
	SheetSummary      = "Summary"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Workbook lays a report out over three sheets: the ledger, the monthly buckets and the totals.
func Workbook(report *domain.FinancialReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetTransactions); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetMonthly, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	rows := map[string][][]any{
		SheetTransactions: transactionRows(report.Transactions),
		SheetMonthly:      monthlyRows(report.MonthlyBuckets),
		SheetSummary:      summaryRows(report),
	}
	for sheet, data := range rows {
		for i, row := range data {
			if err := writeRow(f, sheet, i+1, row); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
			}
		}
	}
	return f, nil
}

// writeRow stores amounts as numeric cells holding their exact decimal text.
func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if d, ok := v.(decimal.Decimal); ok {
			err = f.SetCellDefault(sheet, cell, d.String())
		} else {
			err = f.SetCellValue(sheet, cell, v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteXLSX renders the report workbook to w.
func WriteXLSX(w io.Writer, report *domain.FinancialReport) error {
	f, err := Workbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func transactionRows(txs []domain.Transaction) [][]any {
	rows := [][]any{{"Date", "Jalaali date", "Description", "Category", "Type", "Amount", "Source", "Related"}}
	for _, tx := range txs {
		jalaali := ""
		if d, err := calendar.FromTime(tx.Date); err == nil {
			jalaali = d.String()
		}
		rows = append(rows, []any{
			tx.Date.Format("2006-01-02"),
			jalaali,
			tx.Description,
			tx.Category,
			string(tx.Type),
			tx.Amount,
			tx.Source,
			tx.RelatedName,
		})
	}
	return rows
}

func monthlyRows(buckets []domain.MonthlyBucket) [][]any {
	rows := [][]any{{"Period", "Month", "Revenue", "Expenses", "Profit"}}
	for _, b := range buckets {
		rows = append(rows, []any{
			b.Period,
			b.MonthLabel,
			b.Revenue,
			b.Expenses,
			b.Profit(),
		})
	}
	return rows
}

func summaryRows(report *domain.FinancialReport) [][]any {
	rows := [][]any{
		{"From", report.Range.Start.Format("2006-01-02")},
		{"To", report.Range.End.Format("2006-01-02")},
		{"Total revenue", report.Summary.TotalRevenue},
		{"Total expenses", report.Summary.TotalExpenses},
		{"Net profit", report.Summary.NetProfit()},
		{"Rent and service arrears", report.Arrears.RentService},
		{"Salary arrears", report.Arrears.Salary},
		{"Unit bill arrears", report.Arrears.UnitBills},
		{"Customers", report.Occupancy.TotalCustomers},
		{"Active agreements", report.Occupancy.ActiveAgreements},
		{"Active shops", report.Occupancy.ActiveShops},
	}
	for _, msg := range report.Errors {
		rows = append(rows, []any{"Degraded source", msg})
	}
	return rows
}
