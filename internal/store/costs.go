package store

import (
	"fmt"
	"time"

	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

// CreateCostItem inserts a cost item. The client name is denormalized from
// the referenced project at write time.
func (s *Store) CreateCostItem(c model.CostItem) (*model.CostItem, error) {
	if c.Price < 0 {
		return nil, fmt.Errorf("insert cost item: negative price %v", c.Price)
	}
	p, err := s.GetProject(c.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("insert cost item: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO cost_items (category, name, price, project_id, client, date, invoiced)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(c.Category), c.Name, c.Price, c.ProjectID, p.Client,
		c.Date.Format(dateFormat), boolInt(c.Invoiced),
	)
	if err != nil {
		return nil, fmt.Errorf("insert cost item: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetCostItem(id)
}

func (s *Store) GetCostItem(id int64) (*model.CostItem, error) {
	c := &model.CostItem{}
	var category, dateStr string
	var invoiced int
	err := s.db.QueryRow(
		`SELECT id, category, name, price, project_id, client, date, invoiced FROM cost_items WHERE id = ?`, id,
	).Scan(&c.ID, &category, &c.Name, &c.Price, &c.ProjectID, &c.Client, &dateStr, &invoiced)
	if err != nil {
		return nil, fmt.Errorf("get cost item %d: %w", id, err)
	}
	c.Category = model.CostCategory(category)
	c.Invoiced = invoiced == 1
	c.Date, _ = time.Parse(dateFormat, dateStr)
	return c, nil
}

// ListCostItems returns cost items, optionally narrowed to one category.
// An empty category means all.
func (s *Store) ListCostItems(category model.CostCategory) ([]model.CostItem, error) {
	query := `SELECT id, category, name, price, project_id, client, date, invoiced FROM cost_items`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cost items: %w", err)
	}
	defer rows.Close()

	var items []model.CostItem
	for rows.Next() {
		var c model.CostItem
		var cat, dateStr string
		var invoiced int
		if err := rows.Scan(&c.ID, &cat, &c.Name, &c.Price, &c.ProjectID, &c.Client, &dateStr, &invoiced); err != nil {
			return nil, err
		}
		c.Category = model.CostCategory(cat)
		c.Invoiced = invoiced == 1
		c.Date, _ = time.Parse(dateFormat, dateStr)
		items = append(items, c)
	}
	return items, rows.Err()
}

func (s *Store) UpdateCostItem(c model.CostItem) error {
	if c.Price < 0 {
		return fmt.Errorf("update cost item: negative price %v", c.Price)
	}
	p, err := s.GetProject(c.ProjectID)
	if err != nil {
		return fmt.Errorf("update cost item: %w", err)
	}
	_, err = s.db.Exec(
		`UPDATE cost_items SET category = ?, name = ?, price = ?, project_id = ?, client = ?, date = ?, invoiced = ?
		 WHERE id = ?`,
		string(c.Category), c.Name, c.Price, c.ProjectID, p.Client,
		c.Date.Format(dateFormat), boolInt(c.Invoiced), c.ID,
	)
	return err
}

func (s *Store) DeleteCostItem(id int64) error {
	_, err := s.db.Exec(`DELETE FROM cost_items WHERE id = ?`, id)
	return err
}
