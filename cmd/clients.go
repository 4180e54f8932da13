package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/progsightdimitri-maker/timesheet/internal/cli"
)

var flagClientColor string

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List clients",
	RunE:  runClients,
}

var clientsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a client",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientsAdd,
}

func init() {
	clientsAddCmd.Flags().StringVar(&flagClientColor, "color", "#4385BE", "Hex color for charts")
	clientsCmd.AddCommand(clientsAddCmd)
	rootCmd.AddCommand(clientsCmd)
}

func runClients(_ *cobra.Command, _ []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	clients, err := s.ListClients()
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		fmt.Println("No clients yet. Create one with: timesheet clients add <name>")
		return nil
	}

	t := cli.Table{Headers: []string{"Client", "Color"}}
	for _, c := range clients {
		t.Rows = append(t.Rows, []string{c.Name, c.Color})
	}
	fmt.Print(cli.RenderTable(t))
	return nil
}

func runClientsAdd(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := s.CreateClient(args[0], flagClientColor)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}
	fmt.Printf("Created client %s\n", c.Name)
	return nil
}
