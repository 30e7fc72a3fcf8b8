// Package fixture serves the bundled hotel dataset.
package fixture

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"petasare/internal/domain"
)

//go:embed hotels.json
var bundled []byte

// Source is a HotelRepository over a raw JSON array of hotel records.
// Records that cannot be mapped are skipped and logged.
type Source struct {
	hotels []domain.Hotel
}

// Bundled returns the dataset compiled into the binary.
func Bundled() (*Source, error) { return Parse(bundled) }

// Open reads a dataset file from disk.
func Open(path string) (*Source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

func Parse(raw []byte) (*Source, error) {
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode hotel fixture: %w", err)
	}
	s := &Source{hotels: make([]domain.Hotel, 0, len(records))}
	for i, rec := range records {
		h, err := mapHotel(rec)
		if err != nil {
			log.Warn().Int("index", i).Err(err).Msg("skipping hotel record")
			continue
		}
		s.hotels = append(s.hotels, h)
	}
	log.Debug().Int("hotels", len(s.hotels)).Int("records", len(records)).Msg("fixture parsed")
	return s, nil
}

func (s *Source) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	out := make([]domain.Hotel, len(s.hotels))
	copy(out, s.hotels)
	return out, nil
}

func (s *Source) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	for _, h := range s.hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}

func (s *Source) ListReviews(ctx context.Context, id int64, pg domain.PageQuery) (domain.ReviewsPage, error) {
	h, err := s.GetHotel(ctx, id)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	items := h.Reviews
	if pg.Limit > 0 && len(items) > pg.Limit {
		items = items[:pg.Limit]
	}
	return domain.ReviewsPage{Items: append([]domain.Review(nil), items...)}, nil
}
