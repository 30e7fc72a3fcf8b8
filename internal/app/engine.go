package app

import (
	"sort"
	"strings"

	"petasare/internal/domain"
	"petasare/internal/geo"
)

// Input is everything the list view derives its hotels from.
type Input struct {
	Filters       domain.Filters
	Query         string
	Bookmarks     map[int64]struct{}
	BookmarksOnly bool
	Location      *domain.Coords
}

// Select returns the hotels that pass every active predicate. With a known
// location the result is ordered nearest first (stable); otherwise dataset
// order is kept. hotels is never modified.
func Select(hotels []domain.Hotel, in Input) []domain.Hotel {
	query := strings.ToLower(in.Query)

	type candidate struct {
		hotel domain.Hotel
		km    float64
	}
	kept := make([]candidate, 0, len(hotels))
	for _, h := range hotels {
		km, ok := passes(h, in, query)
		if !ok {
			continue
		}
		kept = append(kept, candidate{hotel: h, km: km})
	}

	if in.Location != nil {
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].km < kept[j].km })
	}

	out := make([]domain.Hotel, len(kept))
	for i, c := range kept {
		out[i] = c.hotel
	}
	return out
}

// passes evaluates the predicates in order and stops at the first failure.
// The distance from the user is returned so sorting does not recompute it.
func passes(h domain.Hotel, in Input, lowerQuery string) (float64, bool) {
	if lowerQuery != "" && !strings.Contains(strings.ToLower(h.Name), lowerQuery) {
		return 0, false
	}
	if in.Filters.Category != domain.CategoryAll && h.Category != in.Filters.Category {
		return 0, false
	}
	for _, tag := range in.Filters.Facilities {
		if !h.HasFacility(tag) {
			return 0, false
		}
	}
	if !in.Filters.Price.Allows(h.Price) {
		return 0, false
	}
	if !in.Filters.Rating.Allows(h.Rating) {
		return 0, false
	}
	if in.BookmarksOnly {
		if _, ok := in.Bookmarks[h.ID]; !ok {
			return 0, false
		}
	}

	var km float64
	if in.Location != nil {
		km = geo.DistanceKm(in.Location.Lat, in.Location.Lng, h.Coords.Lat, h.Coords.Lng)
	}
	if in.Filters.Distance.Active() {
		// no reference point, nothing can be in range
		if in.Location == nil {
			return 0, false
		}
		if !in.Filters.Distance.Allows(km) {
			return 0, false
		}
	}
	return km, true
}
