package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/progsightdimitri-maker/timesheet/internal/cli"
	"github.com/progsightdimitri-maker/timesheet/internal/engine"
	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

var (
	flagLogDate     string
	flagLogBillable bool
	flagFeedWeeks   int
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show recent entries grouped by week",
	RunE:  runFeed,
}

var logCmd = &cobra.Command{
	Use:   "log <project-id> <start> <end> [description]",
	Short: "Record a time entry (clock times as HH:MM)",
	Args:  cobra.RangeArgs(3, 4),
	RunE:  runLog,
}

func init() {
	feedCmd.Flags().IntVarP(&flagFeedWeeks, "weeks", "w", 4, "Number of recent weeks to show")
	logCmd.Flags().StringVar(&flagLogDate, "date", "", "Date (YYYY-MM-DD, default today)")
	logCmd.Flags().BoolVar(&flagLogBillable, "billable", true, "Entry is billable")
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(logCmd)
}

func runFeed(_ *cobra.Command, _ []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	snap, err := loadSnapshot(s, cfg)
	if err != nil {
		return err
	}

	weeks := engine.GroupWeeks(snap.Entries)
	if len(weeks) == 0 {
		fmt.Println("No entries yet. Record one with: timesheet log <project-id> <start> <end>")
		return nil
	}
	if flagFeedWeeks > 0 && len(weeks) > flagFeedWeeks {
		weeks = weeks[:flagFeedWeeks]
	}

	byID := projectPtrs(snap.Projects)
	for _, week := range weeks {
		fmt.Printf("\nWeek of %s  (%s)\n", week.Start.Format("Jan 2, 2006"), cli.FormatMinutes(week.TotalMinutes))
		for _, day := range week.Days {
			fmt.Printf("  %s  %s\n", day.Date.Format("Mon Jan 02"), cli.FormatMinutes(day.TotalMinutes))
			for _, e := range day.Entries {
				project := "?"
				if p, ok := byID[e.ProjectID]; ok {
					project = p.Name
				}
				desc := ""
				if e.Description != "" {
					desc = "  " + e.Description
				}
				fmt.Printf("    %s - %s  %-20s%s\n", e.Start, e.End, project, desc)
			}
		}
	}
	fmt.Println()
	return nil
}

func runLog(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	var projectID int64
	if _, err := fmt.Sscanf(args[0], "%d", &projectID); err != nil {
		return fmt.Errorf("invalid project id %q", args[0])
	}
	if _, err := s.GetProject(projectID); err != nil {
		return fmt.Errorf("project %d: %w", projectID, err)
	}

	date := time.Now()
	if flagLogDate != "" {
		if date, err = time.Parse("2006-01-02", flagLogDate); err != nil {
			return fmt.Errorf("invalid --date %q", flagLogDate)
		}
	}

	description := ""
	if len(args) == 4 {
		description = args[3]
	}

	e, err := s.CreateEntry(model.TimeEntry{
		ProjectID:   projectID,
		Date:        date,
		Start:       args[1],
		End:         args[2],
		Description: description,
		Billable:    flagLogBillable,
	})
	if err != nil {
		return fmt.Errorf("recording entry: %w", err)
	}

	minutes := engine.DurationMinutes(e.Start, e.End)
	fmt.Printf("Logged %s on %s (%s)\n", cli.FormatMinutes(minutes), e.Date.Format("2006-01-02"), e.Start+" - "+e.End)
	return nil
}
