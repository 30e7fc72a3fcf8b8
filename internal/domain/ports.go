package domain

import (
	"context"
	"time"
)

// HotelRepository is the read side of the dataset.
type HotelRepository interface {
	ListHotels(ctx context.Context) ([]Hotel, error)
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	ListReviews(ctx context.Context, id int64, pg PageQuery) (ReviewsPage, error)
}

// HotelWriter is only used by the seeder.
type HotelWriter interface {
	UpsertHotel(ctx context.Context, h Hotel) error
	UpsertReviews(ctx context.Context, hotelID int64, rs []Review) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// KVStore is durable per-device storage. Get returns ErrNotFound for absent keys.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Geolocator performs one position lookup.
type Geolocator interface {
	Locate(ctx context.Context) (Coords, error)
}

type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyError   NotificationLevel = "error"
)

type Notification struct {
	ID      string            `json:"id"`
	Level   NotificationLevel `json:"level"`
	Title   string            `json:"title"`
	Detail  string            `json:"detail,omitempty"`
	Created time.Time         `json:"created_at"`
}

// Notifier delivers transient user-visible messages (toasts).
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
