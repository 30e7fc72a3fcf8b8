package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"petasare/internal/domain"
)

// QueryService is the detail-view read path: one hotel, or its reviews.
type QueryService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func hotelKey(id int64) string { return fmt.Sprintf("hotel:%d", id) }

func reviewsKey(id int64, limit int) string { return fmt.Sprintf("reviews:%d:%d", id, limit) }

func (s *QueryService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	key := hotelKey(id)
	var h domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}

func (s *QueryService) ListReviews(ctx context.Context, id int64, pg domain.PageQuery) (domain.ReviewsPage, error) {
	key := reviewsKey(id, pg.Limit)
	var out domain.ReviewsPage
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}

	rs, err := s.repo.ListReviews(ctx, id, pg)
	if err != nil {
		return domain.ReviewsPage{}, err
	}

	// copy so later changes to the repo's slice cannot reach the cached value
	copyRS := deepCopyReviewsPage(rs)

	if s.cache != nil {
		if b, _ := json.Marshal(copyRS); len(b) < 1_000_000 {
			_ = s.cache.Set(ctx, key, copyRS, int(s.cacheTTL.Seconds()))
		}
	}
	return copyRS, nil
}

func deepCopyReviewsPage(in domain.ReviewsPage) domain.ReviewsPage {
	out := domain.ReviewsPage{Items: make([]domain.Review, len(in.Items))}
	copy(out.Items, in.Items)
	return out
}
