package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/repticare/internal/forms"
	"github.com/mesh-intelligence/repticare/internal/present"
	"github.com/mesh-intelligence/repticare/internal/stats"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Aliases: []string{"profiles", "reptile"},
		Short:   "Manage reptile profiles",
	}
	cmd.AddCommand(
		newProfileAddCmd(a),
		newProfileListCmd(a),
		newProfileShowCmd(a),
		newProfileDeleteCmd(a),
	)
	return cmd
}

func newProfileAddCmd(a *app) *cobra.Command {
	var form forms.ProfileForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a reptile profile",
		Example: `  repticare profile add --name Spike --species "Pogona vitticeps" --gender male --birth-date 2022-04-10
  repticare profile add --name Leo --species "Eublepharis macularius"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := form.Validate(a.now())
			if err != nil {
				return userErr(err)
			}

			s, err := a.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.repo.CreateProfile(in)
			if err != nil {
				return classify(err)
			}

			if a.flagJSON {
				return printJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) %s\n", p.Name, p.Species, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "name (required)")
	cmd.Flags().StringVar(&form.Species, "species", "", "species (required)")
	cmd.Flags().StringVar(&form.BirthDate, "birth-date", "", "birth date, YYYY-MM-DD")
	cmd.Flags().StringVar(&form.Gender, "gender", "", "male, female or unknown")
	return cmd
}

func newProfileListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List reptile profiles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			profiles := s.repo.Profiles()
			if a.flagJSON {
				return printJSON(cmd.OutOrStdout(), profiles)
			}
			if len(profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No profiles yet.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSPECIES\tGENDER\tENTRIES")
			for _, p := range profiles {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
					p.ID, p.Name, p.Species, present.GenderLabel(p.Gender), len(s.repo.EntriesForProfile(p.ID)))
			}
			return tw.Flush()
		},
	}
}

func newProfileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a profile (default: the first one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			var id string
			if len(args) == 1 {
				id = args[0]
			}
			p, err := resolveProfile(s.repo, id)
			if err != nil {
				return err
			}

			if a.flagJSON {
				return printJSON(cmd.OutOrStdout(), p)
			}

			var age *stats.Age
			if p.BirthDate != nil {
				v := stats.AgeAt(*p.BirthDate, a.now())
				age = &v
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "ID:\t%s\n", p.ID)
			fmt.Fprintf(tw, "Имя:\t%s\n", p.Name)
			fmt.Fprintf(tw, "Вид:\t%s\n", p.Species)
			fmt.Fprintf(tw, "Пол:\t%s\n", present.GenderLabel(p.Gender))
			fmt.Fprintf(tw, "Дата рождения:\t%s\n", present.FormatOptionalDate(p.BirthDate))
			fmt.Fprintf(tw, "Возраст:\t%s\n", stats.FormatAge(age))
			fmt.Fprintf(tw, "Добавлен:\t%s\n", present.FormatDate(p.CreatedAt))
			return tw.Flush()
		},
	}
}

func newProfileDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a profile and all of its entries",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			id := args[0]
			cascaded := len(s.repo.EntriesForProfile(id))
			if err := s.repo.DeleteProfile(id); err != nil {
				return classify(err)
			}

			if a.flagJSON {
				return printJSON(cmd.OutOrStdout(), deleteResult{ID: id, DeletedEntries: cascaded})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %s and %d entries\n", id, cascaded)
			return nil
		},
	}
}

type deleteResult struct {
	ID             string `json:"id"`
	DeletedEntries int    `json:"deletedEntries,omitempty"`
}
