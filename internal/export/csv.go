package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/progsightdimitri-maker/timesheet/internal/engine"
	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

func ToCSV(entries []model.TimeEntry, projects map[int64]*model.Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Project", "Client", "Date", "Start", "End", "Minutes", "Billable", "Invoiced", "Description"}); err != nil {
		return err
	}

	for _, e := range entries {
		projectName, clientName := "Unknown", ""
		if p, ok := projects[e.ProjectID]; ok {
			projectName = p.Name
			clientName = p.Client
		}
		minutes := engine.DurationMinutes(e.Start, e.End)

		row := []string{
			fmt.Sprintf("%d", e.ID),
			projectName,
			clientName,
			e.Date.Format("2006-01-02"),
			e.Start,
			e.End,
			fmt.Sprintf("%d", minutes),
			strconv.FormatBool(e.Billable),
			strconv.FormatBool(e.Invoiced),
			e.Description,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
