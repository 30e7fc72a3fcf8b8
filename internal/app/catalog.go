package app

import (
	"context"
	"fmt"
	"sort"

	"petasare/internal/domain"
)

// Catalog is the hotel dataset, loaded once and read-only afterwards.
// It also serves as the HotelRepository when no database is configured.
type Catalog struct {
	hotels []domain.Hotel
	byID   map[int64]int
}

func NewCatalog(hotels []domain.Hotel) (*Catalog, error) {
	c := &Catalog{
		hotels: make([]domain.Hotel, len(hotels)),
		byID:   make(map[int64]int, len(hotels)),
	}
	copy(c.hotels, hotels)
	for i, h := range c.hotels {
		if _, dup := c.byID[h.ID]; dup {
			return nil, fmt.Errorf("hotel %d: %w", h.ID, domain.ErrDuplicateHotel)
		}
		c.byID[h.ID] = i
	}
	return c, nil
}

// LoadCatalog snapshots every hotel from repo.
func LoadCatalog(ctx context.Context, repo domain.HotelRepository) (*Catalog, error) {
	hs, err := repo.ListHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("load hotels: %w", err)
	}
	return NewCatalog(hs)
}

// Hotels returns the dataset in its original order. Callers must not modify it.
func (c *Catalog) Hotels() []domain.Hotel { return c.hotels }

func (c *Catalog) Len() int { return len(c.hotels) }

func (c *Catalog) Lookup(id int64) (domain.Hotel, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Hotel{}, false
	}
	return c.hotels[i], true
}

func (c *Catalog) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	out := make([]domain.Hotel, len(c.hotels))
	copy(out, c.hotels)
	return out, nil
}

func (c *Catalog) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, ok := c.Lookup(id)
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

// ListReviews returns the newest reviews first.
func (c *Catalog) ListReviews(ctx context.Context, id int64, pg domain.PageQuery) (domain.ReviewsPage, error) {
	h, ok := c.Lookup(id)
	if !ok {
		return domain.ReviewsPage{}, domain.ErrNotFound
	}
	items := make([]domain.Review, len(h.Reviews))
	copy(items, h.Reviews)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	if pg.Limit > 0 && len(items) > pg.Limit {
		items = items[:pg.Limit]
	}
	return domain.ReviewsPage{Items: items}, nil
}
