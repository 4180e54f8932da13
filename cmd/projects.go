package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/progsightdimitri-maker/timesheet/internal/cli"
	"github.com/progsightdimitri-maker/timesheet/internal/engine"
)

var (
	flagProjectClient string
	flagProjectColor  string
	flagProjectRate   float64
	flagAllProjects   bool
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	RunE:  runProjects,
}

var projectsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsAdd,
}

func init() {
	projectsCmd.Flags().BoolVarP(&flagAllProjects, "all", "a", false, "Include deactivated projects")
	projectsAddCmd.Flags().StringVar(&flagProjectClient, "for", "", "Client name")
	projectsAddCmd.Flags().StringVar(&flagProjectColor, "color", "#6C63FF", "Hex color for charts")
	projectsAddCmd.Flags().Float64Var(&flagProjectRate, "rate", 0, "Hourly rate")
	projectsCmd.AddCommand(projectsAddCmd)
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(_ *cobra.Command, _ []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	projects, err := s.ListProjects(flagAllProjects)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("No projects yet. Create one with: timesheet projects add <name>")
		return nil
	}

	available := engine.AvailableProjects(projects, engine.ClientFilter(flagClient))

	t := cli.Table{Headers: []string{"ID", "Project", "Client", "Rate", "Active"}}
	for _, p := range available {
		client := p.Client
		if client == "" {
			client = "-"
		}
		active := "yes"
		if !p.Active {
			active = "no"
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", p.ID),
			p.Name,
			client,
			fmt.Sprintf("%.2f", p.HourlyRate),
			active,
		})
	}
	fmt.Print(cli.RenderTable(t))
	return nil
}

func runProjectsAdd(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.CreateProject(args[0], flagProjectClient, flagProjectColor, flagProjectRate)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	fmt.Printf("Created project %d: %s\n", p.ID, p.Name)
	return nil
}
