package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmerino/whenworks/internal/overlap"
	"github.com/dmerino/whenworks/internal/schedule"
)

func (a *App) showCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the group's weekly overlap grid",
		Long: `Display the week as a text grid, one column per day and one
character per quarter hour.

Digits mark shared free time (how many people are free), '░' marks a
single person free, '-' marks busy time. Use 'whenworks suggest' for
ranked meeting windows.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			group, err := a.defaultGroup(cmd)
			if err != nil {
				return err
			}

			records, err := a.repo.LoadAvailability(cmd.Context(), group.ID)
			if err != nil {
				return fmt.Errorf("loading availability: %w", err)
			}
			intervals, err := schedule.FromRecords(records)
			if err != nil {
				return fmt.Errorf("decoding availability: %w", err)
			}

			if len(intervals) == 0 {
				fmt.Println("No availability recorded yet.")
				return nil
			}

			printWeekGrid(group, intervals)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// printWeekGrid renders the quarter-hour week grid to stdout. Each hour is
// one row of four quarter-cells per day.
func printWeekGrid(group schedule.Group, intervals []schedule.Interval) {
	const gutter = 6
	colWidth := 5 // four quarters plus a separator
	if w := (termWidth() - gutter) / 7; w < colWidth {
		colWidth = w
	}
	quarters := colWidth - 1
	if quarters < 1 {
		quarters = 1
	}

	fmt.Printf("=== %s [%s] ===\n\n", formatHeader(group.Name), group.InviteCode)

	// Day header
	fmt.Print(strings.Repeat(" ", gutter))
	for day := schedule.Weekday(0); day <= 6; day++ {
		fmt.Printf("%-*s", colWidth, day.Name())
	}
	fmt.Println()

	for h := schedule.DayStart; h < schedule.DayEnd; h++ {
		fmt.Printf("%5s ", schedule.FormatHour(h))
		for day := schedule.Weekday(0); day <= 6; day++ {
			for q := 0; q < quarters; q++ {
				hour := h + schedule.Hour(q)*schedule.Step*4/schedule.Hour(quarters)
				fmt.Print(quarterCell(day, hour, intervals))
			}
			fmt.Print(" ")
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Printf("%s shared free (count)  %s one person free  %s busy\n",
		formatOverlap("2-9"), formatFree("░"), formatBusy("-"))
}

// quarterCell picks one character for a (day, hour) sample.
func quarterCell(day schedule.Weekday, hour schedule.Hour, intervals []schedule.Interval) string {
	free := overlap.Count(day, hour, schedule.StatusAvailable, intervals)
	switch {
	case free >= 2:
		if free > 9 {
			free = 9
		}
		return formatOverlap(fmt.Sprintf("%d", free))
	case free == 1:
		return formatFree("░")
	case overlap.Count(day, hour, schedule.StatusBusy, intervals) > 0:
		return formatBusy("-")
	default:
		return formatMuted("·")
	}
}
