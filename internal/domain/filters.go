package domain

import (
	"fmt"
	"strings"
)

// Filters is the page-level filter state. The zero value filters nothing.
type Filters struct {
	Category   Category
	Facilities []string // AND-combined
	Price      PriceCeiling
	Rating     RatingFloor
	Distance   DistanceRange
}

func DefaultFilters() Filters { return Filters{} }

// RawFilters holds filter values as they arrive from a request.
type RawFilters struct {
	Category   string
	Facilities []string
	Price      string
	Rating     string
	Distance   string
}

// ParseFilters maps raw values onto buckets. Dimensions whose value is not
// recognized fall back to "all" and are listed in ignored.
func ParseFilters(raw RawFilters) (f Filters, ignored []string) {
	var ok bool
	if raw.Category != "" {
		if f.Category, ok = ParseCategory(raw.Category); !ok {
			ignored = append(ignored, "category="+raw.Category)
		}
	}
	if raw.Price != "" {
		if f.Price, ok = ParsePriceCeiling(raw.Price); !ok {
			ignored = append(ignored, "price="+raw.Price)
		}
	}
	if raw.Rating != "" {
		if f.Rating, ok = ParseRatingFloor(raw.Rating); !ok {
			ignored = append(ignored, "rating="+raw.Rating)
		}
	}
	if raw.Distance != "" {
		if f.Distance, ok = ParseDistanceRange(raw.Distance); !ok {
			ignored = append(ignored, "distance="+raw.Distance)
		}
	}
	seen := make(map[string]struct{}, len(raw.Facilities))
	for _, tag := range raw.Facilities {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		f.Facilities = append(f.Facilities, tag)
	}
	return f, ignored
}

type FilterKind string

const (
	KindSearch    FilterKind = "search"
	KindBookmarks FilterKind = "bookmarks"
	KindCategory  FilterKind = "category"
	KindFacility  FilterKind = "facility"
	KindPrice     FilterKind = "price"
	KindRating    FilterKind = "rating"
	KindDistance  FilterKind = "distance"
)

// Chip is one removable "active filter" tag.
type Chip struct {
	Kind  FilterKind `json:"kind"`
	Value string     `json:"value,omitempty"`
	Label string     `json:"label"`
}

// ActiveFilters lists the chips for every non-default input, facilities last.
func ActiveFilters(f Filters, query string, bookmarksOnly bool) []Chip {
	var out []Chip
	if query != "" {
		out = append(out, Chip{Kind: KindSearch, Value: query, Label: fmt.Sprintf("Cari: %q", query)})
	}
	if bookmarksOnly {
		out = append(out, Chip{Kind: KindBookmarks, Label: "Daftar Bookmark"})
	}
	if f.Category != CategoryAll {
		out = append(out, Chip{Kind: KindCategory, Value: f.Category.String(), Label: "Kategori: " + f.Category.Label()})
	}
	if f.Price != PriceAll {
		out = append(out, Chip{Kind: KindPrice, Value: f.Price.String(), Label: "Harga: " + f.Price.Label()})
	}
	if f.Rating != RatingAll {
		out = append(out, Chip{Kind: KindRating, Value: f.Rating.String(), Label: "Rating: " + f.Rating.Label()})
	}
	if f.Distance != DistanceAll {
		out = append(out, Chip{Kind: KindDistance, Value: f.Distance.String(), Label: "Jarak: " + f.Distance.Label()})
	}
	for _, tag := range f.Facilities {
		out = append(out, Chip{Kind: KindFacility, Value: tag, Label: tag})
	}
	return out
}

// Without returns a copy of f with one filter dimension reset. For
// KindFacility only the named tag is dropped. Search and bookmark chips are
// owned by the caller and leave f unchanged.
func (f Filters) Without(kind FilterKind, value string) Filters {
	out := f
	out.Facilities = append([]string(nil), f.Facilities...)
	switch kind {
	case KindCategory:
		out.Category = CategoryAll
	case KindPrice:
		out.Price = PriceAll
	case KindRating:
		out.Rating = RatingAll
	case KindDistance:
		out.Distance = DistanceAll
	case KindFacility:
		kept := out.Facilities[:0]
		for _, tag := range out.Facilities {
			if tag != value {
				kept = append(kept, tag)
			}
		}
		out.Facilities = kept
	}
	return out
}

// Bounds is a map viewport; containment is inclusive on every edge.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

func (b Bounds) Contains(c Coords) bool {
	return c.Lat >= b.South && c.Lat <= b.North && c.Lng >= b.West && c.Lng <= b.East
}
