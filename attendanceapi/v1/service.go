package v1

import (
	"context"
	"time"

	"axiapac.com/attendance/attendance"
	"axiapac.com/attendance/attendanceapi/v1/common"
	"axiapac.com/attendance/location"
)

// Service adapts the attendance endpoint to attendance.Service.
type Service struct {
	client *AttendanceClient
}

func NewService(client *AttendanceClient) *Service {
	return &Service{client: client}
}

func (s *Service) GetStatus(ctx context.Context, attributeID *int64) (*attendance.Record, error) {
	return toRecord(s.client.Attendance.Status(ctx, attributeID))
}

func (s *Service) PunchIn(ctx context.Context, employeeID int64, at time.Time, loc *location.Info) (*attendance.Record, error) {
	return toRecord(s.client.Attendance.PunchIn(ctx, &PunchInDTO{
		EmployeeID: employeeID,
		Timestamp:  formatTimestamp(at),
		Location:   toLocationDTO(loc),
	}))
}

func (s *Service) PunchOut(ctx context.Context, employeeID int64, at time.Time, sessionID int64, loc *location.Info) (*attendance.Record, error) {
	return toRecord(s.client.Attendance.PunchOut(ctx, &PunchOutDTO{
		EmployeeID:  employeeID,
		Timestamp:   formatTimestamp(at),
		AttributeID: sessionID,
		Location:    toLocationDTO(loc),
	}))
}

func (s *Service) BreakInOut(ctx context.Context, sessionID int64, breakSessionID int64, breakType string, at time.Time) (*attendance.Record, error) {
	dto := &BreakDTO{
		AttributeID: sessionID,
		BreakType:   breakType,
		Timestamp:   formatTimestamp(at),
	}
	if breakSessionID > 0 {
		dto.BreakID = &breakSessionID
	}
	return toRecord(s.client.Attendance.Break(ctx, dto))
}

func toRecord(res *recordResponse, err error) (*attendance.Record, error) {
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	if res.Data == nil {
		return nil, nil
	}
	return &attendance.Record{
		AttributeID: res.Data.AttributeID,
		BreakID:     res.Data.BreakID,
		InTime:      res.Data.InTime,
		OutTime:     res.Data.OutTime,
	}, nil
}

func toLocationDTO(loc *location.Info) *common.LocationDTO {
	if loc == nil {
		return nil
	}
	return &common.LocationDTO{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Accuracy:  loc.Accuracy,
		Address:   loc.Address,
		MapLink:   loc.MapLink,
	}
}
