package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/repticare/internal/present"
	"github.com/mesh-intelligence/repticare/internal/stats"
)

type statsOutput struct {
	ProfileID string              `json:"profileId"`
	Summary   stats.Summary       `json:"summary"`
	Display   present.SummaryView `json:"display"`
}

func newStatsCmd(a *app) *cobra.Command {
	var profileID string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics for a profile (default: the first one)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := resolveProfile(s.repo, profileID)
			if err != nil {
				return err
			}

			sum := stats.Compute(p, s.repo.EntriesForProfile(p.ID), a.now())
			view := present.RenderSummary(p, sum)
			if a.flagJSON {
				return printJSON(cmd.OutOrStdout(), statsOutput{ProfileID: p.ID, Summary: sum, Display: view})
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "%s (%s)\n", view.Name, view.Species)
			fmt.Fprintf(tw, "Пол:\t%s\n", view.Gender)
			fmt.Fprintf(tw, "Возраст:\t%s\n", view.Age)
			fmt.Fprintf(tw, "Добавлен:\t%s\n", view.CreatedAt)
			fmt.Fprintf(tw, "Всего записей:\t%d\n", view.TotalEntries)
			if view.FirstEntry != "" {
				fmt.Fprintf(tw, "Первая запись:\t%s\n", view.FirstEntry)
				fmt.Fprintf(tw, "Последняя запись:\t%s\n", view.LastEntry)
			}
			fmt.Fprintf(tw, "Последний вес:\t%s\n", view.LastWeight)
			if view.WeightChange != "" {
				fmt.Fprintf(tw, "Изменение веса:\t%s\n", view.WeightChange)
			}
			fmt.Fprintf(tw, "Последнее кормление:\t%s\n", view.LastFeeding)
			fmt.Fprintf(tw, "Последняя линька:\t%s\n", view.LastShedding)
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "profile id (default: the first profile)")
	return cmd
}
