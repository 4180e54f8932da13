package store

import (
	"fmt"
	"time"

	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

func (s *Store) CreateProject(name, client, color string, hourlyRate float64) (*model.Project, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO projects (name, client, color, hourly_rate, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		name, client, color, hourlyRate, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetProject(id)
}

func (s *Store) GetProject(id int64) (*model.Project, error) {
	p := &model.Project{}
	var createdAt, updatedAt string
	var active int
	err := s.db.QueryRow(
		`SELECT id, name, client, color, active, hourly_rate, created_at, updated_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Client, &p.Color, &active, &p.HourlyRate, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	p.Active = active == 1
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return p, nil
}

func (s *Store) ListProjects(includeInactive bool) ([]model.Project, error) {
	query := `SELECT id, name, client, color, active, hourly_rate, created_at, updated_at FROM projects`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY client, name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		var createdAt, updatedAt string
		var active int
		if err := rows.Scan(&p.ID, &p.Name, &p.Client, &p.Color, &active, &p.HourlyRate, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.Active = active == 1
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject updates a project and keeps the denormalized client name on
// its cost items in sync.
func (s *Store) UpdateProject(id int64, name, client, color string, hourlyRate float64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE projects SET name = ?, client = ?, color = ?, hourly_rate = ?, updated_at = ? WHERE id = ?`,
		name, client, color, hourlyRate, now, id,
	)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`UPDATE cost_items SET client = ? WHERE project_id = ?`, client, id)
	return err
}

// DeactivateProject hides a project from selection UIs. Reporting still sees
// it: active is not a reporting filter.
func (s *Store) DeactivateProject(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE projects SET active = 0, updated_at = ? WHERE id = ?`, now, id,
	)
	return err
}
