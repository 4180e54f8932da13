package tui

import (
	"time"

	"github.com/progsightdimitri-maker/timesheet/internal/model"
	"github.com/progsightdimitri-maker/timesheet/internal/store"
)

// timerModel tracks a live session. Nothing is written until stop, which
// records a time entry with the wall-clock start and end.
type timerModel struct {
	store *store.Store

	active    bool
	startTime time.Time

	projectID   int64
	projectName string
}

func newTimerModel(s *store.Store) timerModel {
	return timerModel{store: s}
}

func (t *timerModel) start(projectID int64, projectName string) {
	t.active = true
	t.startTime = time.Now()
	t.projectID = projectID
	t.projectName = projectName
}

func (t *timerModel) stop() (*model.TimeEntry, error) {
	if !t.active {
		return nil, nil
	}
	now := time.Now()
	entry, err := t.store.CreateEntry(model.TimeEntry{
		ProjectID: t.projectID,
		Date:      t.startTime,
		Start:     t.startTime.Format("15:04"),
		End:       now.Format("15:04"),
		Billable:  true,
	})
	if err != nil {
		return nil, err
	}
	t.active = false
	return entry, nil
}

func (t *timerModel) cancel() {
	t.active = false
}

func (t timerModel) running() bool {
	return t.active
}

func (t timerModel) currentElapsed() time.Duration {
	if !t.active {
		return 0
	}
	return time.Since(t.startTime)
}
