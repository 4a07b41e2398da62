package location

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"
)

// DefaultTimeout bounds a whole acquisition: permission, position and address.
const DefaultTimeout = 10 * time.Second

var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrTimeout          = errors.New("location request timed out")
	ErrUnavailable      = errors.New("location unavailable")
)

type Permission string

const (
	Granted Permission = "granted"
	Denied  Permission = "denied"
	Prompt  Permission = "prompt"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Accuracy  float64 `json:"accuracy" yaml:"accuracy"`
}

// Info is a single location reading attached to a punch.
type Info struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Address   *string `json:"address"`
	MapLink   string  `json:"mapLink"`
}

type Provider interface {
	RequestPermission(ctx context.Context) (Permission, error)
	CurrentPosition(ctx context.Context) (Coordinates, error)
}

type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}

// Releaser is implemented by providers that hold a resource between
// permission and position reads.
type Releaser interface {
	Release()
}

func MapLink(lat, lng float64) string {
	return "https://www.google.com/maps?q=" +
		strconv.FormatFloat(lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(lng, 'f', -1, 64)
}

// Acquirer takes one location reading per call.
type Acquirer struct {
	Provider Provider // optional when every call carries one in its context
	Geocoder Geocoder // optional
	Timeout  time.Duration
}

func NewAcquirer(provider Provider, geocoder Geocoder) *Acquirer {
	return &Acquirer{Provider: provider, Geocoder: geocoder, Timeout: DefaultTimeout}
}

// Locate requests permission, reads the position and looks up the address.
// A failed address lookup is not an error: the reading is returned without it.
func (a *Acquirer) Locate(ctx context.Context) (*Info, error) {
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	provider := a.Provider
	if p, ok := FromContext(ctx); ok {
		provider = p
	}
	if provider == nil {
		return nil, ErrUnavailable
	}
	if r, ok := provider.(Releaser); ok {
		defer r.Release()
	}

	perm, err := provider.RequestPermission(ctx)
	if err != nil {
		return nil, translate(ctx, fmt.Errorf("request permission: %w", err))
	}
	if perm == Denied {
		return nil, ErrPermissionDenied
	}

	pos, err := provider.CurrentPosition(ctx)
	if err != nil {
		return nil, translate(ctx, fmt.Errorf("current position: %w", err))
	}

	info := &Info{
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		Accuracy:  pos.Accuracy,
		MapLink:   MapLink(pos.Latitude, pos.Longitude),
	}

	if a.Geocoder != nil {
		address, err := a.Geocoder.ReverseGeocode(ctx, pos.Latitude, pos.Longitude)
		if err != nil {
			log.Printf("location: address lookup failed: %v", err)
		} else if address != "" {
			info.Address = &address
		}
	}

	return info, nil
}

func translate(ctx context.Context, err error) error {
	if errors.Is(err, ErrPermissionDenied) {
		return err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
