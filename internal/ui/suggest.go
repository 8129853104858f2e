package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmerino/whenworks/internal/schedule"
	"github.com/dmerino/whenworks/internal/suggest"
)

func (a *App) suggestCmd() *cobra.Command {
	var topN int
	var noColor bool

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Print the best meeting windows for the group",
		Long: `Rank the group's shared free time.

Windows need at least half the group (minimum two people) free to
qualify; ties are broken by duration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			group, err := a.defaultGroup(cmd)
			if err != nil {
				return err
			}

			members, err := a.repo.ListMembers(cmd.Context(), group.ID)
			if err != nil {
				return fmt.Errorf("listing members: %w", err)
			}

			records, err := a.repo.LoadAvailability(cmd.Context(), group.ID)
			if err != nil {
				return fmt.Errorf("loading availability: %w", err)
			}
			intervals, err := schedule.FromRecords(records)
			if err != nil {
				return fmt.Errorf("decoding availability: %w", err)
			}

			suggestions := suggest.Suggest(intervals, len(members), topN)
			if len(suggestions) == 0 {
				fmt.Printf("No window reaches %d people free.\n", suggest.Threshold(len(members)))
				return nil
			}

			fmt.Printf("%s (%d members, threshold %d)\n\n",
				formatHeader(group.Name), len(members), suggest.Threshold(len(members)))
			for i, s := range suggestions {
				fmt.Printf("%d. %s %s-%s  %s\n", i+1,
					s.Day.Name(),
					schedule.FormatHour(s.Start), schedule.FormatHour(s.End),
					formatOverlap(fmt.Sprintf("%d free", s.Attendance)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&topN, "top", "n", suggest.DefaultTopN, "Number of suggestions to print (negative for all)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
