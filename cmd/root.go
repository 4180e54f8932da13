// Package cmd wires the timesheet commands together.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/progsightdimitri-maker/timesheet/internal/config"
	"github.com/progsightdimitri-maker/timesheet/internal/engine"
	"github.com/progsightdimitri-maker/timesheet/internal/model"
	"github.com/progsightdimitri-maker/timesheet/internal/store"
)

var (
	flagYear   int
	flagClient string
	flagStatus string
	flagDB     string
)

var rootCmd = &cobra.Command{
	Use:   "timesheet",
	Short: "Terminal time and expense tracker",
	Long:  "Track time entries and project costs, report monthly totals, and export billing summaries.",
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagYear, "year", "y", time.Now().Year(), "Report year")
	rootCmd.PersistentFlags().StringVarP(&flagClient, "client", "c", "all", `Client filter: "all", "unassigned", or a client name`)
	rootCmd.PersistentFlags().StringVarP(&flagStatus, "status", "s", "all", `Billing status filter: "all", "invoiced", or "not-invoiced"`)
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database file (defaults to the config dir)")
}

// openStore opens the database honoring --db, then the config file, then
// the default location.
func openStore() (*store.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}

	path := flagDB
	if path == "" {
		path = cfg.General.DBPath
	}
	if path == "" {
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, cfg, err
		}
	}

	s, err := store.New(path)
	if err != nil {
		return nil, cfg, fmt.Errorf("opening database: %w", err)
	}
	return s, cfg, nil
}

// snapshot is the in-memory working set the reporting commands run over.
type snapshot struct {
	Entries  []model.TimeEntry
	Costs    []model.CostItem
	Projects []model.Project
	Currency string
	Locale   string
}

// loadSnapshot reads everything a report needs in one pass. Currency and
// locale come from the settings table, falling back to the config file.
func loadSnapshot(s *store.Store, cfg config.Config) (*snapshot, error) {
	entries, err := s.ListEntries(store.EntryFilter{})
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}
	costs, err := s.ListCostItems("")
	if err != nil {
		return nil, fmt.Errorf("loading cost items: %w", err)
	}
	projects, err := s.ListProjects(true)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}

	currency, err := s.GetSetting(store.SettingCurrency)
	if err != nil || currency == "" {
		currency = cfg.Billing.Currency
	}
	locale, err := s.GetSetting(store.SettingLocale)
	if err != nil || locale == "" {
		locale = cfg.Billing.Locale
	}

	return &snapshot{
		Entries:  entries,
		Costs:    costs,
		Projects: projects,
		Currency: currency,
		Locale:   locale,
	}, nil
}

// buildCriteria resolves the persistent flags into filter criteria over
// the given project catalog.
func buildCriteria(projects []model.Project) (engine.Criteria, error) {
	client := engine.ClientFilter(flagClient)

	var invoice engine.InvoiceFilter
	switch flagStatus {
	case "all":
		invoice = engine.InvoiceAll
	case "invoiced":
		invoice = engine.InvoicedOnly
	case "not-invoiced":
		invoice = engine.NotInvoiced
	default:
		return engine.Criteria{}, fmt.Errorf("unknown --status %q", flagStatus)
	}

	available := engine.AvailableProjects(projects, client)
	return engine.Criteria{
		Year:       flagYear,
		Client:     client,
		ProjectIDs: engine.ReconcileSelection(nil, available),
		Invoice:    invoice,
	}, nil
}
