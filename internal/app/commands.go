package app

import (
	"context"
	"fmt"

	"petasare/internal/domain"
)

// reviewLimits are the page sizes the API caches; seeding evicts all of them.
var reviewLimits = []int{20, 50, 100, 200}

// SeedService copies fixture hotels into a writable store.
type SeedService struct {
	repo  domain.HotelWriter
	cache domain.Cache
}

func NewSeedService(r domain.HotelWriter, cache domain.Cache) *SeedService {
	return &SeedService{repo: r, cache: cache}
}

func (s *SeedService) SeedHotel(ctx context.Context, h domain.Hotel) error {
	// parent row first, reviews reference it
	if err := s.repo.UpsertHotel(ctx, h); err != nil {
		return fmt.Errorf("upsert hotel %d: %w", h.ID, err)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelKey(h.ID))
	}

	// replaces stored reviews even when the fixture has none
	if err := s.repo.UpsertReviews(ctx, h.ID, h.Reviews); err != nil {
		return fmt.Errorf("upsert reviews for %d: %w", h.ID, err)
	}
	if s.cache != nil {
		s.invalidateReviews(ctx, h.ID)
	}
	return nil
}

func (s *SeedService) invalidateReviews(ctx context.Context, id int64) {
	for _, lim := range reviewLimits {
		_ = s.cache.Del(ctx, reviewsKey(id, lim))
	}
}
