package report

import (
	"fmt"
	"sort"
	"strconv"

	"axiapac.com/attendance/store"
	"axiapac.com/attendance/utils"
	"github.com/xuri/excelize/v2"
)

const (
	PunchSheet   = "Punches"
	SummarySheet = "Summary"
)

var punchHeader = []string{"Employee", "Action", "Time", "Before", "After", "Session", "Break", "Address", "Map", "Status", "Error"}

// BuildDailyReport writes one row per punch attempt plus a per-employee summary.
func BuildDailyReport(date string, rows []store.PunchLog) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", PunchSheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(PunchSheet, "A1", &punchHeader); err != nil {
		return nil, err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			r.EmployeeID, r.Kind, displayTime(r.Timestamp), r.StateBefore, r.StateAfter,
			r.SessionID, r.BreakID, utils.Format(r.Address), r.MapLink, r.Status, r.Error,
		}
		if err := f.SetSheetRow(PunchSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	if err := writeSummary(f, date, rows); err != nil {
		return nil, err
	}
	return f, nil
}

type summary struct {
	employeeID int64
	firstIn    string
	lastOut    string
	breaks     int
	failures   int
}

func writeSummary(f *excelize.File, date string, rows []store.PunchLog) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	if err := f.SetCellValue(SummarySheet, "A1", "Date"); err != nil {
		return err
	}
	if err := f.SetCellValue(SummarySheet, "B1", date); err != nil {
		return err
	}
	header := []string{"Employee", "First punch in", "Last punch out", "Breaks", "Failed attempts"}
	if err := f.SetSheetRow(SummarySheet, "A3", &header); err != nil {
		return err
	}

	groups := utils.GroupBy(rows, func(r store.PunchLog) int64 { return r.EmployeeID })
	ids := make([]int64, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for i, id := range ids {
		s := summarize(id, groups[id])
		values := []interface{}{s.employeeID, displayTime(s.firstIn), displayTime(s.lastOut), s.breaks, s.failures}
		if err := f.SetSheetRow(SummarySheet, "A"+strconv.Itoa(i+4), &values); err != nil {
			return err
		}
	}
	return nil
}

func summarize(employeeID int64, rows []store.PunchLog) summary {
	s := summary{employeeID: employeeID}
	ok := utils.Filter(rows, func(r store.PunchLog) bool { return r.Status == store.StatusOK })
	s.failures = len(rows) - len(ok)
	for _, r := range ok {
		switch r.Kind {
		case "punch_in":
			if s.firstIn == "" {
				s.firstIn = r.Timestamp
			}
		case "punch_out":
			s.lastOut = r.Timestamp
		case "break_in":
			s.breaks++
		}
	}
	return s
}

// displayTime shows the wall clock time the punch was recorded in.
func displayTime(ts string) string {
	if ts == "" {
		return ""
	}
	t, err := utils.ParseISOTime(ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04:05")
}

func FileName(date string) string {
	return fmt.Sprintf("attendance-%s.xlsx", date)
}
