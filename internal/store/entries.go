package store

import (
	"fmt"
	"time"

	"github.com/progsightdimitri-maker/timesheet/internal/model"
)

const dateFormat = "2006-01-02"

// EntryFilter is used to filter time entries in queries.
type EntryFilter struct {
	ProjectID *int64
	Year      *int
	Invoiced  *bool
	Limit     int
}

// CreateEntry inserts a worked slot. Invoiced is forced off for non-billable
// entries: invoiced implies billable.
func (s *Store) CreateEntry(e model.TimeEntry) (*model.TimeEntry, error) {
	if !e.Billable {
		e.Invoiced = false
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO time_entries (project_id, date, start_time, end_time, description, billable, invoiced, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ProjectID, e.Date.Format(dateFormat), e.Start, e.End, e.Description,
		boolInt(e.Billable), boolInt(e.Invoiced), now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetEntry(id)
}

func (s *Store) GetEntry(id int64) (*model.TimeEntry, error) {
	row := s.db.QueryRow(
		`SELECT id, project_id, date, start_time, end_time, description, billable, invoiced, created_at
		 FROM time_entries WHERE id = ?`, id,
	)
	e, err := scanEntry(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("get entry %d: %w", id, err)
	}
	return e, nil
}

// UpdateEntry replaces the editable fields of an entry.
func (s *Store) UpdateEntry(e model.TimeEntry) error {
	if !e.Billable {
		e.Invoiced = false
	}
	_, err := s.db.Exec(
		`UPDATE time_entries SET project_id = ?, date = ?, start_time = ?, end_time = ?,
		 description = ?, billable = ?, invoiced = ? WHERE id = ?`,
		e.ProjectID, e.Date.Format(dateFormat), e.Start, e.End, e.Description,
		boolInt(e.Billable), boolInt(e.Invoiced), e.ID,
	)
	return err
}

func (s *Store) DeleteEntry(id int64) error {
	_, err := s.db.Exec(`DELETE FROM time_entries WHERE id = ?`, id)
	return err
}

// SetEntryInvoiced flips the invoiced flag. Marking a non-billable entry
// invoiced is refused by leaving it untouched.
func (s *Store) SetEntryInvoiced(id int64, invoiced bool) error {
	_, err := s.db.Exec(
		`UPDATE time_entries SET invoiced = ? WHERE id = ? AND (billable = 1 OR ? = 0)`,
		boolInt(invoiced), id, boolInt(invoiced),
	)
	return err
}

func (s *Store) ListEntries(f EntryFilter) ([]model.TimeEntry, error) {
	query := `SELECT id, project_id, date, start_time, end_time, description, billable, invoiced, created_at
	          FROM time_entries WHERE 1=1`
	var args []any

	if f.ProjectID != nil {
		query += ` AND project_id = ?`
		args = append(args, *f.ProjectID)
	}
	if f.Year != nil {
		query += ` AND date >= ? AND date <= ?`
		args = append(args, fmt.Sprintf("%04d-01-01", *f.Year), fmt.Sprintf("%04d-12-31", *f.Year))
	}
	if f.Invoiced != nil {
		query += ` AND invoiced = ?`
		args = append(args, boolInt(*f.Invoiced))
	}
	query += ` ORDER BY date DESC, start_time DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []model.TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func scanEntry(scan func(...any) error) (*model.TimeEntry, error) {
	e := &model.TimeEntry{}
	var dateStr, createdAt string
	var billable, invoiced int
	if err := scan(&e.ID, &e.ProjectID, &dateStr, &e.Start, &e.End, &e.Description, &billable, &invoiced, &createdAt); err != nil {
		return nil, err
	}
	e.Billable = billable == 1
	e.Invoiced = invoiced == 1
	e.Date, _ = time.Parse(dateFormat, dateStr)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
