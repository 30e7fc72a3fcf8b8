package app_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"petasare/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	hotel   domain.Hotel
	page    domain.ReviewsPage
	err     error
	gets    int
	upserts []domain.Hotel
	reviews map[int64][]domain.Review
}

func (f *fakeRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return []domain.Hotel{f.hotel}, f.err
}
func (f *fakeRepo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	f.gets++
	if f.err != nil {
		return domain.Hotel{}, f.err
	}
	return f.hotel, nil
}
func (f *fakeRepo) ListReviews(ctx context.Context, id int64, pg domain.PageQuery) (domain.ReviewsPage, error) {
	if f.err != nil {
		return domain.ReviewsPage{}, f.err
	}
	return f.page, nil
}
func (f *fakeRepo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, h)
	return nil
}
func (f *fakeRepo) UpsertReviews(ctx context.Context, hotelID int64, rs []domain.Review) error {
	if f.reviews == nil {
		f.reviews = map[int64][]domain.Review{}
	}
	f.reviews[hotelID] = rs
	return nil
}

type fakeCache struct {
	store   map[string]any
	deleted []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Hotel:
		*d = v.(domain.Hotel)
	case *domain.ReviewsPage:
		*d = v.(domain.ReviewsPage)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.deleted = append(c.deleted, key)
	return nil
}

// memKV is an in-memory KVStore; failPut makes every write fail.
type memKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	failPut bool
	puts    int
}

var errDiskFull = errors.New("disk full")

func (m *memKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}
func (m *memKV) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return errDiskFull
	}
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = append([]byte(nil), value...)
	m.puts++
	return nil
}

// geoFunc adapts a function to domain.Geolocator.
type geoFunc func(ctx context.Context) (domain.Coords, error)

func (f geoFunc) Locate(ctx context.Context) (domain.Coords, error) { return f(ctx) }

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n domain.Notification) {
	r.mu.Lock()
	r.sent = append(r.sent, n)
	r.mu.Unlock()
}

func (r *recordingNotifier) all() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification(nil), r.sent...)
}

// ---- fixtures ----

func hotel(id int64, name string, cat domain.Category, price int64, rating float64, lat, lng float64, facilities ...string) domain.Hotel {
	return domain.Hotel{
		ID: id, Name: name, Category: cat, Price: price, Rating: rating,
		Coords: domain.Coords{Lat: lat, Lng: lng}, Facilities: facilities,
	}
}

// kmNorth offsets a latitude by roughly km kilometres.
func kmNorth(lat, km float64) float64 { return lat + km/111.195 }

func ids(hs []domain.Hotel) []int64 {
	out := make([]int64, len(hs))
	for i, h := range hs {
		out[i] = h.ID
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
