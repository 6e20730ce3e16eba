package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type pruneResult struct {
	Removed int `json:"removed"`
}

func newPruneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove entries whose profile no longer exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			removed, err := s.repo.PruneOrphans()
			if err != nil {
				return classify(err)
			}

			if a.flagJSON {
				return printJSON(cmd.OutOrStdout(), pruneResult{Removed: removed})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d orphaned entries\n", removed)
			return nil
		},
	}
}
