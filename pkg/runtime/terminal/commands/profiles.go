package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	globals *Globals
	opener  Opener
}

func NewProfilesCmd(globals *Globals, opener Opener) *cobra.Command {
	pc := &ProfilesCmd{globals: globals, opener: opener}
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the backends configured in the profiles file",
		RunE:  pc.run,
	}
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	profiles, err := pc.opener.ListProfiles(cmd.Context(), *pc.globals)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	if len(profiles) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No profiles found in %s\n", pc.globals.ProfilesPath)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Profiles in %s:\n%s\n", pc.globals.ProfilesPath, strings.Join(profiles, "\n"))
	return nil
}
