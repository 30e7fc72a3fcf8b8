package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"petasare/internal/adapters/observability"
	"petasare/internal/domain"
)

const defaultLocateTimeout = 10 * time.Second

// LocationProvider holds the user's current position for the process
// lifetime. It is nil until a lookup succeeds or the client reports one.
//
// Overlapping Request calls share one lookup. A lookup only stores its
// result if nothing newer was written while it ran.
type LocationProvider struct {
	geo      domain.Geolocator
	notifier domain.Notifier
	timeout  time.Duration

	group singleflight.Group

	mu  sync.RWMutex
	cur *domain.Coords
	gen uint64
}

func NewLocationProvider(g domain.Geolocator, n domain.Notifier, timeout time.Duration) *LocationProvider {
	if timeout <= 0 {
		timeout = defaultLocateTimeout
	}
	return &LocationProvider{geo: g, notifier: n, timeout: timeout}
}

// Current returns a copy of the stored position, or nil.
func (p *LocationProvider) Current() *domain.Coords {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.cur == nil {
		return nil
	}
	c := *p.cur
	return &c
}

// Request performs a one-shot lookup. On failure the stored position is
// left untouched and a failure notification is posted.
func (p *LocationProvider) Request(ctx context.Context) (domain.Coords, error) {
	ch := p.group.DoChan("locate", func() (any, error) {
		return p.locate(ctx)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return domain.Coords{}, res.Err
		}
		return res.Val.(domain.Coords), nil
	case <-ctx.Done():
		return domain.Coords{}, ctx.Err()
	}
}

// the lookup outlives the first caller's cancellation; p.timeout bounds it
func (p *LocationProvider) locate(parent context.Context) (domain.Coords, error) {
	reqID := uuid.NewString()
	l := log.With().Str("location_request", reqID).Logger()

	p.mu.RLock()
	startGen := p.gen
	p.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), p.timeout)
	defer cancel()

	start := time.Now()
	c, err := p.geo.Locate(ctx)
	if err == nil && !c.Valid() {
		err = fmt.Errorf("%w: %v,%v", domain.ErrInvalidLocation, c.Lat, c.Lng)
	}
	if err != nil {
		err = classifyLocationErr(ctx, err)
		observability.ObserveLocation(locationOutcome(err))
		l.Warn().Err(err).Dur("took", time.Since(start)).Msg("location lookup failed")
		p.notify(ctx, domain.Notification{
			ID:     reqID,
			Level:  domain.NotifyError,
			Title:  "Gagal mendapatkan lokasi",
			Detail: LocationFailureReason(err),
		})
		return domain.Coords{}, err
	}

	p.mu.Lock()
	if p.gen == startGen {
		p.cur = &c
		p.gen++
	} else {
		l.Debug().Msg("lookup superseded by a newer position")
		c = *p.cur
	}
	p.mu.Unlock()

	observability.ObserveLocation("ok")
	l.Info().Float64("lat", c.Lat).Float64("lng", c.Lng).Dur("took", time.Since(start)).Msg("location resolved")
	p.notify(ctx, domain.Notification{ID: reqID, Level: domain.NotifySuccess, Title: "Lokasi berhasil ditemukan"})
	return c, nil
}

// Report stores a position the client resolved itself.
func (p *LocationProvider) Report(ctx context.Context, c domain.Coords) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %v,%v", domain.ErrInvalidLocation, c.Lat, c.Lng)
	}
	p.mu.Lock()
	p.cur = &c
	p.gen++
	p.mu.Unlock()

	observability.ObserveLocation("reported")
	p.notify(ctx, domain.Notification{ID: uuid.NewString(), Level: domain.NotifySuccess, Title: "Lokasi berhasil ditemukan"})
	return nil
}

func (p *LocationProvider) notify(ctx context.Context, n domain.Notification) {
	if p.notifier == nil {
		return
	}
	n.Created = time.Now().UTC()
	p.notifier.Notify(ctx, n)
}

func classifyLocationErr(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrLocationDenied),
		errors.Is(err, domain.ErrLocationUnsupported),
		errors.Is(err, domain.ErrLocationTimeout),
		errors.Is(err, domain.ErrInvalidLocation):
		return err
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domain.ErrLocationTimeout, err)
	default:
		return err
	}
}

func locationOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrLocationDenied):
		return "denied"
	case errors.Is(err, domain.ErrLocationUnsupported):
		return "unsupported"
	case errors.Is(err, domain.ErrLocationTimeout):
		return "timeout"
	default:
		return "error"
	}
}

// LocationFailureReason is the user-facing text for a failed lookup.
func LocationFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrLocationDenied):
		return "Izin lokasi ditolak."
	case errors.Is(err, domain.ErrLocationUnsupported):
		return "Geolokasi tidak didukung."
	case errors.Is(err, domain.ErrLocationTimeout):
		return "Waktu permintaan lokasi habis."
	default:
		return "Lokasi tidak tersedia."
	}
}
