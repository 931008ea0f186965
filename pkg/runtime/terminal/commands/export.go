package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	xlsx "github.com/de-tools/ledger-atlas/pkg/services/export"
)

type ExportCmd struct {
	rangeFlags
	out     string
	publish bool
	globals *Globals
	opener  Opener
}

func NewExportCmd(globals *Globals, opener Opener) *cobra.Command {
	ec := &ExportCmd{globals: globals, opener: opener}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the report as an xlsx workbook, or publish it to the export bucket",
		RunE:  ec.run,
	}
	ec.register(cmd)
	cmd.Flags().StringVarP(&ec.out, "out", "o", "", "Workbook path (defaults to financial_<from>_<to>.xlsx)")
	cmd.Flags().BoolVar(&ec.publish, "publish", false, "Upload to the configured export bucket instead of writing a file")
	cmd.MarkFlagsMutuallyExclusive("out", "publish")
	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	report, session, err := build(cmd, ec.opener, ec.globals, &ec.rangeFlags)
	if err != nil {
		return err
	}

	if ec.publish {
		if session.Publisher == nil {
			return errors.New("publishing is not configured, set export.bucket")
		}
		location, err := session.Publisher.Publish(cmd.Context(), report)
		if err != nil {
			return fmt.Errorf("failed to publish report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Published to %s\n", location)
		return nil
	}

	path := ec.out
	if path == "" {
		path = fmt.Sprintf("financial_%s_%s.xlsx", report.Range.Start.Format("2006-01-02"), report.Range.End.Format("2006-01-02"))
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := xlsx.WriteXLSX(f, report); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
