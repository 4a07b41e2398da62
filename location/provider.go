package location

import (
	"context"
)

// StaticProvider reports a fixed position, used by kiosk devices that do not
// move and have no positioning hardware.
type StaticProvider struct {
	Position Coordinates
}

func (p *StaticProvider) RequestPermission(ctx context.Context) (Permission, error) {
	return Granted, nil
}

func (p *StaticProvider) CurrentPosition(ctx context.Context) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}
	return p.Position, nil
}

// ReportedProvider replays what the browser sent along with the request.
// A nil Position means the browser could not or would not share one.
type ReportedProvider struct {
	Permission Permission
	Position   *Coordinates
}

func (p *ReportedProvider) RequestPermission(ctx context.Context) (Permission, error) {
	switch p.Permission {
	case Denied:
		return Denied, nil
	case "", Granted:
		return Granted, nil
	}
	return Prompt, nil
}

func (p *ReportedProvider) CurrentPosition(ctx context.Context) (Coordinates, error) {
	if p.Position == nil {
		if p.Permission == Prompt {
			return Coordinates{}, ErrPermissionDenied
		}
		return Coordinates{}, ErrUnavailable
	}
	if !valid(*p.Position) {
		return Coordinates{}, ErrUnavailable
	}
	return *p.Position, nil
}

func valid(c Coordinates) bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180 &&
		c.Accuracy >= 0
}
