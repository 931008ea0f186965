package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/ledger-atlas/pkg/models/domain"
	"github.com/de-tools/ledger-atlas/pkg/runtime/terminal/export"
	reports "github.com/de-tools/ledger-atlas/pkg/services/report"
)

type TransactionsCmd struct {
	rangeFlags
	kind     string
	category string
	search   string
	page     int
	pageSize int
	globals  *Globals
	opener   Opener
	reporter *export.Reporter
}

func NewTransactionsCmd(globals *Globals, opener Opener, reporter *export.Reporter) *cobra.Command {
	tc := &TransactionsCmd{globals: globals, opener: opener, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List ledger transactions, filtered and paginated",
		RunE:  tc.run,
	}
	tc.register(cmd)
	cmd.Flags().StringVar(&tc.kind, "type", "", "Only income or expense transactions")
	cmd.Flags().StringVar(&tc.category, "category", "", "Only transactions of this category")
	cmd.Flags().StringVar(&tc.search, "q", "", "Case-insensitive search in description, name and category")
	cmd.Flags().IntVar(&tc.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&tc.pageSize, "page-size", 0, "Transactions per page (defaults to report.page_size)")
	return cmd
}

func (tc *TransactionsCmd) run(cmd *cobra.Command, _ []string) error {
	filter := domain.Filter{Type: domain.TransactionType(tc.kind), Category: tc.category, Search: tc.search}
	if filter.Type != "" && !filter.Type.Valid() {
		return fmt.Errorf("unsupported type %q, use income or expense", tc.kind)
	}

	report, session, err := build(cmd, tc.opener, tc.globals, &tc.rangeFlags)
	if err != nil {
		return err
	}

	pageSize := tc.pageSize
	if pageSize <= 0 {
		pageSize = session.Report.PageSize
	}
	return tc.reporter.Transactions(reports.View(report.Transactions, filter, tc.page, pageSize))
}
