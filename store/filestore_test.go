package store

import (
	"testing"
	"time"

	"axiapac.com/attendance/attendance"
	"axiapac.com/attendance/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Load(42)
	assert.ErrorIs(t, err, ErrNotFound)

	rec := &attendance.Record{AttributeID: utils.Ptr(int64(7)), BreakID: 55, InTime: utils.Ptr("2025-10-13T09:00:00Z")}
	state, err := attendance.Resolve(rec)
	require.NoError(t, err)

	snap := attendance.Snapshot{
		EmployeeID: 42,
		Record:     rec,
		State:      state,
		SavedAt:    time.Date(2025, 10, 13, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, fs.Save(snap))

	loaded, err := fs.Load(42)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
	assert.Equal(t, attendance.OnBreak, loaded.State.State)

	require.NoError(t, fs.Delete(42))
	require.NoError(t, fs.Delete(42))
	_, err = fs.Load(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreIdleSnapshot(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Save(attendance.Snapshot{EmployeeID: 1, State: attendance.UIState{State: attendance.Idle, CanPunchIn: true}}))
	loaded, err := fs.Load(1)
	require.NoError(t, err)
	assert.Nil(t, loaded.Record)
	assert.True(t, loaded.State.CanPunchIn)
}
