package store

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"axiapac.com/attendance/attendance"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Journal writes every transition attempt to the punch_logs table.
type Journal struct {
	db  *gorm.DB
	loc *time.Location
}

// NewJournal creates a journal; loc decides which calendar day a punch belongs to.
func NewJournal(db *gorm.DB, loc *time.Location) *Journal {
	if loc == nil {
		loc = time.UTC
	}
	return &Journal{db: db, loc: loc}
}

func (j *Journal) Migrate() error {
	return j.db.AutoMigrate(&PunchLog{})
}

func (j *Journal) OnTransition(ctx context.Context, ev attendance.Event) {
	row := NewPunchLog(ev, j.loc)
	if err := j.db.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("journal: failed to record %s for employee %d: %v", row.Kind, row.EmployeeID, err)
	}
}

// ForDate returns the day's punches ordered by time.
func (j *Journal) ForDate(ctx context.Context, date string) ([]PunchLog, error) {
	var rows []PunchLog
	err := j.db.WithContext(ctx).
		Where("date = ?", date).
		Order("employee_id, timestamp").
		Find(&rows).Error
	return rows, err
}

func NewPunchLog(ev attendance.Event, loc *time.Location) PunchLog {
	if loc == nil {
		loc = time.UTC
	}
	at := ev.At.In(loc)
	row := PunchLog{
		ID:          uuid.NewString(),
		EmployeeID:  ev.EmployeeID,
		Date:        at.Format("2006-01-02"),
		Kind:        ev.Action.String(),
		Timestamp:   at.Format(time.RFC3339),
		StateBefore: ev.Before.State.String(),
		StateAfter:  ev.After.State.String(),
		Status:      StatusOK,
	}

	if ev.Record != nil {
		row.SessionID = ev.Record.SessionID()
		row.BreakID = ev.Record.BreakID
	}

	if ev.Location != nil {
		if b, err := json.Marshal(ev.Location); err == nil {
			row.Location = b
		}
		row.MapLink = ev.Location.MapLink
		row.Address = ev.Location.Address
	}

	if ev.Err != nil {
		row.Status = StatusFailed
		row.Error = ev.Err.Error()
	}
	return row
}
