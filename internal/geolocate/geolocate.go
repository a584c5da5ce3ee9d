package geolocate

import (
	"context"
	"log"
	"time"

	"github.com/jonboulle/clockwork"

	"shoreSquadAPI/internal/types/geo"
)

// Locator resolves an IP address to a coordinate.
type Locator interface {
	Locate(ctx context.Context, ip string) (geo.Coordinate, error)
}

// DefaultTimeout bounds a locate attempt the same way the client's
// positioning prompt did before it gave up.
const DefaultTimeout = 10 * time.Second

// Resolver wraps a Locator with the fallback contract: any failure, however
// caused, degrades to the default coordinate instead of an error. A nil or
// disabled Locator degrades immediately.
type Resolver struct {
	locator Locator
	timeout time.Duration
	clock   clockwork.Clock
}

func NewResolver(locator Locator, timeout time.Duration, clock clockwork.Clock) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Resolver{locator: locator, timeout: timeout, clock: clock}
}

// Resolve returns the caller's coordinate, or the default when the locator
// is absent, errors out, or runs past the timeout. Resolve never fails.
func (r *Resolver) Resolve(ctx context.Context, ip string) geo.Coordinate {
	if r.locator == nil || ip == "" {
		return geo.DefaultCoordinate
	}

	ctx, cancel := clockwork.WithTimeout(ctx, r.clock, r.timeout)
	defer cancel()

	coord, err := r.locator.Locate(ctx, ip)
	if err != nil {
		log.Printf("WARN: geolocate %s failed, using default: %v", ip, err)
		return geo.DefaultCoordinate
	}
	if coord.IsZero() {
		return geo.DefaultCoordinate
	}
	return coord
}
