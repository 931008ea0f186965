package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type CategoriesCmd struct {
	rangeFlags
	globals *Globals
	opener  Opener
}

func NewCategoriesCmd(globals *Globals, opener Opener) *cobra.Command {
	cc := &CategoriesCmd{globals: globals, opener: opener}
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the transaction categories present in a date range",
		RunE:  cc.run,
	}
	cc.register(cmd)
	return cmd
}

func (cc *CategoriesCmd) run(cmd *cobra.Command, _ []string) error {
	report, _, err := build(cmd, cc.opener, cc.globals, &cc.rangeFlags)
	if err != nil {
		return err
	}
	for _, c := range report.Categories {
		fmt.Fprintln(cmd.OutOrStdout(), c)
	}
	return nil
}
