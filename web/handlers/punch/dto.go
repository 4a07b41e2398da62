package punch

import (
	"axiapac.com/attendance/attendance"
	"axiapac.com/attendance/location"
)

type AttendanceStateDTO struct {
	EmployeeID int64              `json:"employeeId"`
	State      attendance.UIState `json:"state"`
	Record     *attendance.Record `json:"record"`
}

// LocationDTO is what the browser managed to read from its geolocation API.
type LocationDTO struct {
	Permission string   `json:"permission" binding:"omitempty,oneof=granted denied prompt"`
	Latitude   *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude  *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Accuracy   *float64 `json:"accuracy" binding:"omitempty,gte=0"`
}

func (d LocationDTO) empty() bool {
	return d.Permission == "" && d.Latitude == nil && d.Longitude == nil
}

func (d LocationDTO) provider() location.Provider {
	p := &location.ReportedProvider{Permission: location.Permission(d.Permission)}
	if d.Latitude != nil && d.Longitude != nil {
		p.Position = &location.Coordinates{Latitude: *d.Latitude, Longitude: *d.Longitude}
		if d.Accuracy != nil {
			p.Position.Accuracy = *d.Accuracy
		}
	}
	return p
}

var actions = map[string]attendance.Action{
	"punch-in":  attendance.PunchIn,
	"punch-out": attendance.PunchOut,
	"break-in":  attendance.BreakIn,
	"break-out": attendance.BreakOut,
}
