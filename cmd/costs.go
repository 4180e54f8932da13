package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/progsightdimitri-maker/timesheet/internal/cli"
	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

var (
	flagCostFilter   string
	flagCostCategory string
	flagCostProject  int64
	flagCostDate     string
	flagCostInvoiced bool
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "List cost items",
	RunE:  runCosts,
}

var costsAddCmd = &cobra.Command{
	Use:   "add <name> <price>",
	Short: "Record a cost item",
	Args:  cobra.ExactArgs(2),
	RunE:  runCostsAdd,
}

func init() {
	costsCmd.Flags().StringVar(&flagCostFilter, "category", "", `Filter by category: "licenses", "servers", or "domains"`)
	costsAddCmd.Flags().StringVar(&flagCostCategory, "category", "licenses", `Category: "licenses", "servers", or "domains"`)
	costsAddCmd.Flags().Int64Var(&flagCostProject, "project", 0, "Project id the cost belongs to")
	costsAddCmd.Flags().StringVar(&flagCostDate, "date", "", "Date (YYYY-MM-DD, default today)")
	costsAddCmd.Flags().BoolVar(&flagCostInvoiced, "invoiced", false, "Mark as already invoiced")
	costsCmd.AddCommand(costsAddCmd)
	rootCmd.AddCommand(costsCmd)
}

func costCategory(raw string) (model.CostCategory, error) {
	for _, cat := range model.Categories {
		if raw == string(cat) {
			return cat, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

func runCosts(_ *cobra.Command, _ []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	var cat model.CostCategory
	if flagCostFilter != "" {
		if cat, err = costCategory(flagCostFilter); err != nil {
			return err
		}
	}

	items, err := s.ListCostItems(cat)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No cost items.")
		return nil
	}

	snap, err := loadSnapshot(s, cfg)
	if err != nil {
		return err
	}

	t := cli.Table{Headers: []string{"Date", "Category", "Name", "Project", "Client", "Price", "Invoiced"}}
	byID := projectPtrs(snap.Projects)
	for _, c := range items {
		project := "-"
		if p, ok := byID[c.ProjectID]; ok {
			project = p.Name
		}
		client := c.Client
		if client == "" {
			client = "-"
		}
		invoiced := ""
		if c.Invoiced {
			invoiced = "yes"
		}
		t.Rows = append(t.Rows, []string{
			c.Date.Format("2006-01-02"),
			string(c.Category),
			c.Name,
			project,
			client,
			cli.FormatMoney(c.Price, snap.Currency, snap.Locale),
			invoiced,
		})
	}
	fmt.Print(cli.RenderTable(t))
	return nil
}

func runCostsAdd(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	cat, err := costCategory(flagCostCategory)
	if err != nil {
		return err
	}

	var price float64
	if _, err := fmt.Sscanf(args[1], "%f", &price); err != nil {
		return fmt.Errorf("invalid price %q", args[1])
	}

	date := time.Now()
	if flagCostDate != "" {
		if date, err = time.Parse("2006-01-02", flagCostDate); err != nil {
			return fmt.Errorf("invalid --date %q", flagCostDate)
		}
	}

	c, err := s.CreateCostItem(model.CostItem{
		Category:  cat,
		Name:      args[0],
		Price:     price,
		ProjectID: flagCostProject,
		Date:      date,
		Invoiced:  flagCostInvoiced,
	})
	if err != nil {
		return fmt.Errorf("recording cost: %w", err)
	}
	fmt.Printf("Recorded %s cost %d: %s\n", c.Category, c.ID, c.Name)
	return nil
}
