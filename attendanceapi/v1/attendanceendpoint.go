package v1

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"axiapac.com/attendance/attendanceapi/v1/common"
)

type AttendanceRecordDTO struct {
	AttributeID *int64  `json:"attributeId"`
	BreakID     int64   `json:"breakId"`
	InTime      *string `json:"inTime"`
	OutTime     *string `json:"outTime"`
}

type PunchInDTO struct {
	EmployeeID int64               `json:"employeeId"`
	Timestamp  string              `json:"timestamp"` // RFC3339
	Location   *common.LocationDTO `json:"locationInfo,omitempty"`
}

type PunchOutDTO struct {
	EmployeeID  int64               `json:"employeeId"`
	Timestamp   string              `json:"timestamp"`
	AttributeID int64               `json:"attributeId"`
	Location    *common.LocationDTO `json:"locationInfo,omitempty"`
}

type BreakDTO struct {
	AttributeID int64  `json:"attributeId"`
	BreakID     *int64 `json:"breakId,omitempty"` // set when closing a break
	BreakType   string `json:"breakType"`
	Timestamp   string `json:"timestamp"`
}

type AttendanceEndpoint struct {
	transport *Transport
}

type recordResponse = common.StatusAPIResponse[*AttendanceRecordDTO]

func (this *AttendanceEndpoint) Status(ctx context.Context, attributeID *int64) (*recordResponse, error) {
	var query map[string]string
	if attributeID != nil {
		query = map[string]string{"attributeId": strconv.FormatInt(*attributeID, 10)}
	}
	resp, err := this.transport.Get(ctx, "/api/v1/attendance/status", query)
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp)
}

func (this *AttendanceEndpoint) PunchIn(ctx context.Context, dto *PunchInDTO) (*recordResponse, error) {
	resp, err := this.transport.Post(ctx, "/api/v1/attendance/punch-in", dto, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp)
}

func (this *AttendanceEndpoint) PunchOut(ctx context.Context, dto *PunchOutDTO) (*recordResponse, error) {
	resp, err := this.transport.Post(ctx, "/api/v1/attendance/punch-out", dto, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp)
}

func (this *AttendanceEndpoint) Break(ctx context.Context, dto *BreakDTO) (*recordResponse, error) {
	resp, err := this.transport.Post(ctx, "/api/v1/attendance/break", dto, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp)
}

func decodeRecord(resp *Response) (*recordResponse, error) {
	var result recordResponse
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
