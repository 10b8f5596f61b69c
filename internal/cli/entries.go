package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tempo/internal/core"
	"tempo/internal/view"
)

func addAdd(topLevel *cobra.Command) {
	var (
		date        string
		start       string
		end         string
		category    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a time entry",
		Example: `
tempo-cli add --start 09:00 --end 11:30 --category Work
tempo-cli add --date 2024-06-01 --start 13:00 --end 14:00 --description "standup"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime, endTime, err := parseRange(date, start, end)
			if err != nil {
				return err
			}

			coord, err := newCoordinator(cmd)
			if err != nil {
				return err
			}

			saved, err := coord.SaveEntry(cmd.Context(), core.TimeEntry{
				StartTime:   startTime,
				EndTime:     endTime,
				Category:    category,
				Description: description,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %s on %s (%s)\n",
				saved.ID, saved.Date, view.FormatHours(saved.Hours()))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day of the entry (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&start, "start", "", "start time (15:04 or RFC 3339)")
	cmd.Flags().StringVar(&end, "end", "", "end time (15:04 or RFC 3339)")
	cmd.Flags().StringVar(&category, "category", "", "category name")
	cmd.Flags().StringVar(&description, "description", "", "free-form description")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	topLevel.AddCommand(cmd)
}

func addMove(topLevel *cobra.Command) {
	var (
		date  string
		start string
		end   string
	)

	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Reschedule a time entry",
		Example: `
tempo-cli move 4f1c... --date 2024-06-02 --start 10:00 --end 11:00
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime, endTime, err := parseRange(date, start, end)
			if err != nil {
				return err
			}

			coord, err := newCoordinator(cmd)
			if err != nil {
				return err
			}

			moved, err := coord.Reschedule(cmd.Context(), args[0], startTime, endTime)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "moved %s to %s %s - %s\n",
				moved.ID, moved.Date,
				moved.StartTime.In(time.Local).Format("15:04"),
				moved.EndTime.In(time.Local).Format("15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day of the entry (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&start, "start", "", "new start time (15:04 or RFC 3339)")
	cmd.Flags().StringVar(&end, "end", "", "new end time (15:04 or RFC 3339)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a time entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := newCoordinator(cmd)
			if err != nil {
				return err
			}

			if err := coord.DeleteEntry(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

// parseRange resolves start and end flags against the given day. Times
// are either wall-clock (15:04) on that day or full RFC 3339 instants.
func parseRange(date, start, end string) (time.Time, time.Time, error) {
	day := time.Now()
	if date != "" {
		var err error
		if day, err = core.ParseBucket(date); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
		}
	}

	startTime, err := parseInstant(day, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse start %q: %w", start, err)
	}
	endTime, err := parseInstant(day, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse end %q: %w", end, err)
	}
	return startTime, endTime, nil
}

func parseInstant(day time.Time, value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	clock, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.Local), nil
}
