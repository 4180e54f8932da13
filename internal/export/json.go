package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/progsightdimitri-maker/timesheet/internal/engine"
	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID          int64   `json:"id"`
	Project     string  `json:"project"`
	ProjectID   int64   `json:"project_id"`
	Client      string  `json:"client,omitempty"`
	Date        string  `json:"date"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Minutes     int     `json:"minutes"`
	Hours       float64 `json:"hours"`
	Billable    bool    `json:"billable"`
	Invoiced    bool    `json:"invoiced"`
	Description string  `json:"description,omitempty"`
}

func ToJSON(entries []model.TimeEntry, projects map[int64]*model.Project, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
	}

	for _, e := range entries {
		projectName, clientName := "Unknown", ""
		if p, ok := projects[e.ProjectID]; ok {
			projectName = p.Name
			clientName = p.Client
		}
		minutes := engine.DurationMinutes(e.Start, e.End)

		export.Entries = append(export.Entries, jsonEntry{
			ID:          e.ID,
			Project:     projectName,
			ProjectID:   e.ProjectID,
			Client:      clientName,
			Date:        e.Date.Format("2006-01-02"),
			Start:       e.Start,
			End:         e.End,
			Minutes:     minutes,
			Hours:       engine.Hours(minutes),
			Billable:    e.Billable,
			Invoiced:    e.Invoiced,
			Description: e.Description,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
