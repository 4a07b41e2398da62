package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"axiapac.com/attendance/attendance"
	"axiapac.com/attendance/attendanceapi/v1/common"
	"axiapac.com/attendance/location"
	"axiapac.com/attendance/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(NewAttendanceClient(srv.URL, "token-123"))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

var at = time.Date(2025, 10, 13, 9, 0, 0, 0, time.FixedZone("AEST", 10*3600))

func TestPunchIn(t *testing.T) {
	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/attendance/punch-in", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body PunchInDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(42), body.EmployeeID)
		assert.Equal(t, "2025-10-13T09:00:00+10:00", body.Timestamp)
		require.NotNil(t, body.Location)
		assert.Equal(t, "https://www.google.com/maps?q=1,2", body.Location.MapLink)

		writeJSON(w, common.StatusAPIResponse[*AttendanceRecordDTO]{
			Status: true,
			Data:   &AttendanceRecordDTO{AttributeID: utils.Ptr(int64(7)), InTime: utils.Ptr("09:00")},
		})
	})

	rec, err := svc.PunchIn(context.Background(), 42, at, &location.Info{Latitude: 1, Longitude: 2, MapLink: location.MapLink(1, 2)})
	require.NoError(t, err)
	assert.Equal(t, int64(7), rec.SessionID())
	assert.Equal(t, "09:00", *rec.InTime)
	assert.Nil(t, rec.OutTime)
}

func TestPunchOut(t *testing.T) {
	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/attendance/punch-out", r.URL.Path)
		var body PunchOutDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(7), body.AttributeID)
		assert.Nil(t, body.Location)

		writeJSON(w, common.StatusAPIResponse[*AttendanceRecordDTO]{
			Status: true,
			Data:   &AttendanceRecordDTO{AttributeID: utils.Ptr(int64(7)), InTime: utils.Ptr("09:00"), OutTime: utils.Ptr("18:00")},
		})
	})

	rec, err := svc.PunchOut(context.Background(), 42, at, 7, nil)
	require.NoError(t, err)
	st, err := attendance.Resolve(rec)
	require.NoError(t, err)
	assert.Equal(t, attendance.Completed, st.State)
}

func TestBreakInOut(t *testing.T) {
	var bodies []map[string]any
	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/attendance/break", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		writeJSON(w, map[string]any{"status": true, "data": map[string]any{"attributeId": 7, "breakId": 55, "inTime": "09:00"}})
	})

	rec, err := svc.BreakInOut(context.Background(), 7, 0, "lunch", at)
	require.NoError(t, err)
	assert.Equal(t, int64(55), rec.BreakID)

	_, err = svc.BreakInOut(context.Background(), 7, 55, "lunch", at)
	require.NoError(t, err)

	require.Len(t, bodies, 2)
	_, hasBreak := bodies[0]["breakId"]
	assert.False(t, hasBreak)
	assert.Equal(t, "lunch", bodies[0]["breakType"])
	assert.Equal(t, float64(55), bodies[1]["breakId"])
}

func TestGetStatus(t *testing.T) {
	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		if r.URL.Query().Get("attributeId") == "" {
			writeJSON(w, map[string]any{"status": true, "data": nil})
			return
		}
		assert.Equal(t, "7", r.URL.Query().Get("attributeId"))
		writeJSON(w, map[string]any{"status": true, "data": map[string]any{"attributeId": 7, "breakId": nil, "inTime": "09:00", "outTime": nil}})
	})

	rec, err := svc.GetStatus(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, rec)

	rec, err = svc.GetStatus(context.Background(), utils.Ptr(int64(7)))
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.BreakID)
}

func TestBackendFailure(t *testing.T) {
	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"status": false, "error": "Employee already punched in"})
	})

	_, err := svc.PunchIn(context.Background(), 42, at, nil)
	var be *common.BackendError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "Employee already punched in", be.Message)
}

func TestHTTPFailure(t *testing.T) {
	svc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := svc.GetStatus(context.Background(), nil)
	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadGateway, he.StatusCode)
	assert.Contains(t, he.Error(), "GET /api/v1/attendance/status failed with status code 502")
}
