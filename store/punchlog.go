package store

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// PunchLog is one punch or break attempt, successful or not.
type PunchLog struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	EmployeeID  int64  `gorm:"index:idx_punch_employee_date" json:"employeeId"`
	Date        string `gorm:"size:10;index:idx_punch_employee_date" json:"date"` // yyyy-MM-dd
	Kind        string `gorm:"size:16" json:"kind"`
	Timestamp   string `json:"timestamp"` // RFC3339
	SessionID   int64  `json:"sessionId"`
	BreakID     int64  `json:"breakId"`
	StateBefore string `gorm:"size:16" json:"stateBefore"`
	StateAfter  string `gorm:"size:16" json:"stateAfter"`

	Location datatypes.JSON `json:"location"`
	MapLink  string         `json:"mapLink"`
	Address  *string        `json:"address"`

	Status string `gorm:"size:8" json:"status"`
	Error  string `gorm:"type:text" json:"error"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create"`
}

func (PunchLog) TableName() string {
	return "punch_logs"
}
