package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/progsightdimitri-maker/timesheet/internal/cli"
	"github.com/progsightdimitri-maker/timesheet/internal/engine"
)

var flagBreakdown bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Monthly hours and amounts for a year",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVarP(&flagBreakdown, "breakdown", "b", false, "Show per-project hours under each month")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	snap, err := loadSnapshot(s, cfg)
	if err != nil {
		return err
	}
	crit, err := buildCriteria(snap.Projects)
	if err != nil {
		return err
	}

	report := engine.AggregateYear(snap.Entries, snap.Costs, snap.Projects, crit)

	money := func(amount float64) string {
		return cli.FormatMoney(amount, snap.Currency, snap.Locale)
	}

	t := cli.Table{
		Title:   fmt.Sprintf("Report %d  (client: %s, status: %s)", crit.Year, flagClient, flagStatus),
		Headers: []string{"Month", "Hours", "Hours Amt", "Licenses", "Servers", "Domains", "Total"},
	}
	for _, m := range report.Months {
		t.Rows = append(t.Rows, []string{
			m.Month.String(),
			cli.FormatHours(m.TotalHours),
			money(m.HoursAmount),
			money(m.LicensesAmount),
			money(m.ServersAmount),
			money(m.DomainsAmount),
			money(m.TotalAmount),
		})
	}
	t.Rows = append(t.Rows, cli.SeparatorRow)
	t.Rows = append(t.Rows, []string{
		"Total",
		cli.FormatHours(report.GrandTotalHours),
		"", "", "", "",
		money(report.GrandTotalAmount),
	})

	fmt.Println()
	fmt.Print(cli.RenderTable(t))

	if flagBreakdown {
		for _, m := range report.Months {
			if len(m.Breakdown) == 0 {
				continue
			}
			fmt.Printf("\n  %s %d\n", m.Month, report.Year)
			for _, ph := range m.Breakdown {
				fmt.Printf("    %-24s %s\n", ph.Name, cli.FormatHours(ph.Hours))
			}
		}
	}

	legend := engine.Legend(snap.Entries, snap.Projects, crit)
	if len(legend) > 0 {
		fmt.Printf("\n  Projects, %d\n", report.Year)
		for _, ph := range legend {
			fmt.Printf("    %-24s %s\n", ph.Name, cli.FormatHours(ph.Hours))
		}
	}
	fmt.Println()
	return nil
}
