package commands

import (
	"github.com/spf13/cobra"

	"github.com/de-tools/ledger-atlas/pkg/runtime/terminal/export"
)

type ReportCmd struct {
	rangeFlags
	globals  *Globals
	opener   Opener
	reporter *export.Reporter
}

func NewReportCmd(globals *Globals, opener Opener, reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{globals: globals, opener: opener, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print totals, arrears and monthly figures for a date range",
		RunE:  rc.run,
	}
	rc.register(cmd)
	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	report, _, err := build(cmd, rc.opener, rc.globals, &rc.rangeFlags)
	if err != nil {
		return err
	}
	return rc.reporter.Handle(report)
}
