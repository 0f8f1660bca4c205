package location

import (
	"context"
	"rapid-response-sim/internal/domain"
	"rapid-response-sim/internal/ports"
)

// StaticProvider always reports the same position, like a device with a
// fixed GPS reading.
type StaticProvider struct {
	coord domain.Coordinate
}

var _ ports.LocationProvider = (*StaticProvider)(nil)

func NewStaticProvider(coord domain.Coordinate) *StaticProvider {
	return &StaticProvider{coord: coord}
}

func (p *StaticProvider) Locate(ctx context.Context) (domain.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinate{}, err
	}
	return p.coord, nil
}

// UnavailableProvider models a device without location support.
type UnavailableProvider struct{}

var _ ports.LocationProvider = UnavailableProvider{}

func (UnavailableProvider) Locate(context.Context) (domain.Coordinate, error) {
	return domain.Coordinate{}, domain.ErrLocationUnsupported
}
