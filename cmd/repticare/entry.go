package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/repticare/internal/forms"
	"github.com/mesh-intelligence/repticare/internal/present"
	"github.com/mesh-intelligence/repticare/pkg/types"
)

func newEntryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entry",
		Aliases: []string{"entries", "log"},
		Short:   "Manage diary entries",
	}
	cmd.AddCommand(
		newEntryAddCmd(a),
		newEntryListCmd(a),
		newEntryDeleteCmd(a),
	)
	return cmd
}

func newEntryAddCmd(a *app) *cobra.Command {
	var form forms.EntryForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a diary entry",
		Long: fmt.Sprintf(`Log a diary entry for a profile (default: the first one).

Entry types: %s`, entryTypeList()),
		Example: `  repticare entry add --type weight --weight 350
  repticare entry add --type feeding --feeding "2 crickets" --date 2024-05-01
  repticare entry add --profile <id> --type environment --temperature 31 --humidity 40`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			// Entries are only logged against existing profiles here; the
			// repository itself would accept an unknown id.
			p, err := resolveProfile(s.repo, form.ProfileID)
			if err != nil {
				return err
			}
			form.ProfileID = p.ID

			in, err := form.Validate(a.now())
			if err != nil {
				return userErr(err)
			}

			e, err := s.repo.CreateEntry(in)
			if err != nil {
				return classify(err)
			}

			if a.flagJSON {
				return printJSON(cmd.OutOrStdout(), e)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s for %s on %s %s\n",
				present.EntryTypeLabel(e.Type), p.Name, present.FormatDate(e.Date), e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.ProfileID, "profile", "", "profile id (default: the first profile)")
	cmd.Flags().StringVar(&form.Type, "type", "", "entry type (required)")
	cmd.Flags().StringVar(&form.Date, "date", "", "date, YYYY-MM-DD (default: now)")
	cmd.Flags().StringVar(&form.Weight, "weight", "", "weight in grams")
	cmd.Flags().StringVar(&form.Temperature, "temperature", "", "temperature in °C")
	cmd.Flags().StringVar(&form.Humidity, "humidity", "", "humidity in %")
	cmd.Flags().StringVar(&form.Feeding, "feeding", "", "what was fed")
	cmd.Flags().StringVar(&form.Notes, "notes", "", "free-form notes")
	return cmd
}

func entryTypeList() string {
	names := make([]string, 0, len(types.EntryTypes))
	for _, t := range types.EntryTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

func newEntryListCmd(a *app) *cobra.Command {
	var profileID string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List a profile's entries, newest first",
		Args:    cobra.NoArgs,
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

			entries := present.SortByDateDesc(s.repo.EntriesForProfile(p.ID))
			if a.flagJSON {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No entries for %s yet.\n", p.Name)
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tTYPE\tDETAILS")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					e.ID, present.FormatDate(e.Date), present.EntryTypeLabel(e.Type), entryDetails(e))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "profile id (default: the first profile)")
	return cmd
}

// entryDetails joins the filled optional fields in form order.
func entryDetails(e types.Entry) string {
	var parts []string
	if e.Weight != "" {
		parts = append(parts, e.Weight+" г")
	}
	if e.Temperature != "" {
		parts = append(parts, e.Temperature+"°C")
	}
	if e.Humidity != "" {
		parts = append(parts, e.Humidity+"%")
	}
	if e.Feeding != "" {
		parts = append(parts, e.Feeding)
	}
	if e.Notes != "" {
		parts = append(parts, e.Notes)
	}
	return strings.Join(parts, "; ")
}

func newEntryDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete one entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.repo.DeleteEntry(args[0]); err != nil {
				return classify(err)
			}

			if a.flagJSON {
				return printJSON(cmd.OutOrStdout(), deleteResult{ID: args[0]})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", args[0])
			return nil
		},
	}
}
