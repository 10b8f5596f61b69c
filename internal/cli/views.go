package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tempo/internal/core"
	"tempo/internal/view"
)

func addDay(topLevel *cobra.Command) {
	var exclude []string

	cmd := &cobra.Command{
		Use:   "day [date]",
		Short: "Show the per-category breakdown for a day",
		Example: `
tempo-cli day
tempo-cli day 2024-06-01
tempo-cli day --exclude Breaks
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := time.Now()
			if len(args) == 1 {
				var err error
				if ref, err = core.ParseBucket(args[0]); err != nil {
					return fmt.Errorf("parse date %q: %w", args[0], err)
				}
			}

			coord, err := newCoordinator(cmd)
			if err != nil {
				return err
			}

			b := view.DailyBreakdown(coord.Entries(), ref)
			for _, name := range exclude {
				b.Toggle(name)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", core.BucketDate(ref))
			if len(b.Rows) == 0 {
				fmt.Fprintln(out, "  no entries")
				return nil
			}
			for _, row := range b.Rows {
				marker := " "
				if !row.Enabled {
					marker = "-"
				}
				fmt.Fprintf(out, "%s %-20s %s\n", marker, row.Category, view.FormatHours(row.Hours))
			}
			fmt.Fprintf(out, "  %-20s %s\n", "total", view.FormatHours(b.Total()))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "categories to exclude from the total")

	topLevel.AddCommand(cmd)
}

func addMonth(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show the month's entries grouped per day",
		Example: `
tempo-cli month
tempo-cli month 2024-06
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := time.Now()
			if len(args) == 1 {
				var err error
				if ref, err = time.ParseInLocation("2006-01", args[0], time.Local); err != nil {
					return fmt.Errorf("parse month %q: %w", args[0], err)
				}
			}

			coord, err := newCoordinator(cmd)
			if err != nil {
				return err
			}

			groups := view.MonthGroups(coord.Entries(), ref)
			out := cmd.OutOrStdout()
			if len(groups) == 0 {
				fmt.Fprintf(out, "no entries in %s\n", ref.Format("January 2006"))
				return nil
			}
			for _, g := range groups {
				fmt.Fprintf(out, "%s\n", g.Label)
				for _, e := range g.Entries {
					category := e.Category
					if category == "" {
						category = view.UncategorizedLabel
					}
					fmt.Fprintf(out, "  %s  %s - %s  %-20s %s\n",
						e.ID,
						e.StartTime.In(time.Local).Format("15:04"),
						e.EndTime.In(time.Local).Format("15:04"),
						category,
						e.Description)
				}
			}
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
