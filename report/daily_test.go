package report

import (
	"bytes"
	"testing"

	"axiapac.com/attendance/store"
	"axiapac.com/attendance/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildDailyReport(t *testing.T) {
	rows := []store.PunchLog{
		{EmployeeID: 7, Kind: "punch_in", Timestamp: "2025-10-13T08:58:00+10:00", StateBefore: "idle", StateAfter: "working", Status: store.StatusOK, Address: utils.Ptr("Site A")},
		{EmployeeID: 7, Kind: "break_in", Timestamp: "2025-10-13T12:00:00+10:00", Status: store.StatusOK},
		{EmployeeID: 7, Kind: "break_out", Timestamp: "2025-10-13T12:30:00+10:00", Status: store.StatusOK},
		{EmployeeID: 7, Kind: "punch_out", Timestamp: "2025-10-13T17:02:00+10:00", Status: store.StatusOK},
		{EmployeeID: 3, Kind: "punch_in", Timestamp: "2025-10-13T07:00:00+10:00", Status: store.StatusFailed, Error: "location required: location permission denied"},
	}

	f, err := BuildDailyReport("2025-10-13", rows)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	back, err := excelize.OpenReader(&buf)
	require.NoError(t, err)

	punches, err := back.GetRows(PunchSheet)
	require.NoError(t, err)
	require.Len(t, punches, 6)
	assert.Equal(t, "Employee", punches[0][0])
	assert.Equal(t, []string{"7", "punch_in", "08:58:00", "idle", "working", "0", "0", "Site A", "", "ok"}, punches[1])

	summary, err := back.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-13", summary[0][1])
	// sorted by employee id
	assert.Equal(t, []string{"3", "", "", "0", "1"}, summary[3])
	assert.Equal(t, []string{"7", "08:58:00", "17:02:00", "1", "0"}, summary[4])
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "attendance-2025-10-13.xlsx", FileName("2025-10-13"))
}
