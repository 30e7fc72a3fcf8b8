package geoip

import (
	"context"

	"petasare/internal/domain"
)

// Static always answers with a configured position.
type Static struct{ At domain.Coords }

func (s Static) Locate(ctx context.Context) (domain.Coords, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coords{}, err
	}
	return s.At, nil
}

// Unsupported is used when no lookup source is configured; clients are
// expected to report their own position instead.
type Unsupported struct{}

func (Unsupported) Locate(context.Context) (domain.Coords, error) {
	return domain.Coords{}, domain.ErrLocationUnsupported
}
