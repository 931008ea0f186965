package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/de-tools/ledger-atlas/pkg/calendar"
	"github.com/de-tools/ledger-atlas/pkg/models/domain"
)

type TableConfig struct {
	DateWidth        int
	TypeWidth        int
	CategoryWidth    int
	AmountWidth      int
	DescriptionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		DateWidth:        10,
		TypeWidth:        7,
		CategoryWidth:    22,
		AmountWidth:      18,
		DescriptionWidth: 48,
	}
}

// Reporter renders reports and ledger pages as console text.
type Reporter struct {
	writer  io.Writer
	config  TableConfig
	printer *message.Printer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer:  writer,
		config:  DefaultTableConfig(),
		printer: message.NewPrinter(language.English),
	}
}

const reportTemplate = `
Financial Report
Period: {{day .Range.Start}} to {{day .Range.End}} ({{jalaali .Range.Start}} to {{jalaali .Range.End}})

Total Revenue:  {{money .Summary.TotalRevenue}}
Total Expenses: {{money .Summary.TotalExpenses}}
Net Profit:     {{money .Summary.NetProfit}}

=== Arrears ===
Rent & Services: {{money .Arrears.RentService}}
Salaries:        {{money .Arrears.Salary}}
Unit Bills:      {{money .Arrears.UnitBills}}

=== Occupancy ===
Customers: {{.Occupancy.TotalCustomers}}  Active Agreements: {{.Occupancy.ActiveAgreements}}  Active Shops: {{.Occupancy.ActiveShops}}

=== Monthly ===
{{range .MonthlyBuckets}}{{.Period}}  {{.MonthLabel}}  revenue {{money .Revenue}}  expenses {{money .Expenses}}  profit {{money .Profit}}
{{else}}no transactions
{{end}}
=== Income by Category ===
{{range .IncomeDistribution}}- {{.Category}}: {{money .Amount}}
{{else}}no income
{{end}}{{if .Errors}}
=== Unavailable Sources ===
{{range .Errors}}! {{.}}
{{end}}{{end}}`

const pageTemplate = `{{separator}}
{{header}}
{{separator}}
{{range .Items}}{{row .}}
{{end}}{{separator}}
Page {{.Page}} of {{.TotalPages}} ({{.TotalItems}} transactions)
`

func (c *Reporter) funcs() template.FuncMap {
	return template.FuncMap{
		"money":   c.money,
		"day":     func(t time.Time) string { return t.Format("2006-01-02") },
		"jalaali": jalaali,
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.DateWidth+2),
				strings.Repeat("-", c.config.TypeWidth+2),
				strings.Repeat("-", c.config.CategoryWidth+2),
				strings.Repeat("-", c.config.AmountWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
		"header": func() string {
			return c.formatRow("Date", "Type", "Category", "Amount", "Description")
		},
		"row": func(tx domain.Transaction) string {
			return c.formatRow(jalaali(tx.Date), string(tx.Type), tx.Category, c.money(tx.Amount), tx.Description)
		},
	}
}

// formatRow pads by rune count so Persian text lines up with ASCII.
func (c *Reporter) formatRow(date, kind, category, amount, desc string) string {
	return fmt.Sprintf("| %s | %s | %s | %s | %s |",
		pad(date, c.config.DateWidth),
		pad(kind, c.config.TypeWidth),
		pad(category, c.config.CategoryWidth),
		padLeft(amount, c.config.AmountWidth),
		pad(desc, c.config.DescriptionWidth))
}

func (c *Reporter) money(d decimal.Decimal) string {
	return c.printer.Sprintf("%v", number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2)))
}

// Handle prints the report summary.
func (c *Reporter) Handle(report *domain.FinancialReport) error {
	return c.execute(reportTemplate, report)
}

// Transactions prints one page of the ledger as a table.
func (c *Reporter) Transactions(page domain.Page) error {
	return c.execute(pageTemplate, page)
}

func (c *Reporter) execute(text string, data any) error {
	t, err := template.New("report").Funcs(c.funcs()).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, data)
}

func jalaali(t time.Time) string {
	d, err := calendar.FromTime(t)
	if err != nil {
		return t.Format("2006-01-02")
	}
	return d.String()
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-1]) + "…"
}

func pad(s string, width int) string {
	s = truncate(s, width)
	return s + strings.Repeat(" ", width-utf8.RuneCountInString(s))
}

func padLeft(s string, width int) string {
	s = truncate(s, width)
	return strings.Repeat(" ", width-utf8.RuneCountInString(s)) + s
}
