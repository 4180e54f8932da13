package store

import (
	"fmt"
	"strings"

	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

// NormalizeClientName trims and collapses inner whitespace. The normalized
// name is the client's identity and the join key from projects and cost items.
func NormalizeClientName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

func (s *Store) CreateClient(name, color string) (*model.Client, error) {
	name = NormalizeClientName(name)
	if name == "" {
		return nil, fmt.Errorf("create client: empty name")
	}
	_, err := s.db.Exec(`INSERT INTO clients (name, color) VALUES (?, ?)`, name, color)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return &model.Client{Name: name, Color: color}, nil
}

func (s *Store) GetClient(name string) (*model.Client, error) {
	c := &model.Client{}
	err := s.db.QueryRow(`SELECT name, color FROM clients WHERE name = ?`, NormalizeClientName(name)).
		Scan(&c.Name, &c.Color)
	if err != nil {
		return nil, fmt.Errorf("get client %q: %w", name, err)
	}
	return c, nil
}

func (s *Store) ListClients() ([]model.Client, error) {
	rows, err := s.db.Query(`SELECT name, color FROM clients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.Name, &c.Color); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (s *Store) UpdateClientColor(name, color string) error {
	_, err := s.db.Exec(`UPDATE clients SET color = ? WHERE name = ?`, color, NormalizeClientName(name))
	return err
}

// DeleteClient removes a client and unassigns its projects.
func (s *Store) DeleteClient(name string) error {
	name = NormalizeClientName(name)
	if _, err := s.db.Exec(`UPDATE projects SET client = '' WHERE client = ?`, name); err != nil {
		return err
	}
	if _, err := s.db.Exec(`UPDATE cost_items SET client = '' WHERE client = ?`, name); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM clients WHERE name = ?`, name)
	return err
}
