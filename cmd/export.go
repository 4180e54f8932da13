package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/progsightdimitri-maker/timesheet/internal/engine"
	"github.com/progsightdimitri-maker/timesheet/internal/export"
	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

var (
	flagFormat string
	flagOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries to a ledger, CSV, or JSON file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagFormat, "format", "f", "ledger", `Output format: "ledger", "csv", or "json"`)
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default timesheet-<year>.<ext>)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
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

	path := flagOutput
	if path == "" {
		ext := flagFormat
		if ext == "ledger" {
			ext = "txt"
		}
		path = fmt.Sprintf("timesheet-%d.%s", crit.Year, ext)
	}

	switch flagFormat {
	case "ledger":
		err = export.WriteLedger(path, snap.Entries, snap.Projects, crit)
	case "csv":
		err = export.ToCSV(engine.FilterEntries(snap.Entries, crit), projectPtrs(snap.Projects), path)
	case "json":
		err = export.ToJSON(engine.FilterEntries(snap.Entries, crit), projectPtrs(snap.Projects), path)
	default:
		return fmt.Errorf("unknown --format %q", flagFormat)
	}
	if err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	fmt.Printf("Exported to %s\n", path)
	return nil
}

func projectPtrs(projects []model.Project) map[int64]*model.Project {
	byID := make(map[int64]*model.Project, len(projects))
	for i := range projects {
		byID[projects[i].ID] = &projects[i]
	}
	return byID
}
