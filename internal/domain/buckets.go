package domain

import (
	"fmt"
	"strings"
)

// Every bucket type below has an "all" zero value. Parse functions report
// ok=false for unrecognized input and return the "all" value, so an unknown
// bucket never filters anything.

type Category int

const (
	CategoryAll Category = iota
	Star1
	Star2
	Star3
	Star4
	Star5
)

var categoryWire = [...]string{"all", "HOTEL BINTANG 1", "HOTEL BINTANG 2", "HOTEL BINTANG 3", "HOTEL BINTANG 4", "HOTEL BINTANG 5"}

func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for i, w := range categoryWire {
		if strings.EqualFold(s, w) {
			return Category(i), true
		}
	}
	return CategoryAll, false
}

func (c Category) String() string {
	if c < CategoryAll || c > Star5 {
		return categoryWire[CategoryAll]
	}
	return categoryWire[c]
}

func (c Category) Label() string {
	switch c {
	case Star1, Star2, Star3, Star4, Star5:
		return fmt.Sprintf("Bintang %d", int(c))
	default:
		return "Semua Bintang"
	}
}

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText is strict: hotel records must carry a real tier.
func (c *Category) UnmarshalText(b []byte) error {
	v, ok := ParseCategory(string(b))
	if !ok || v == CategoryAll {
		return fmt.Errorf("unknown hotel category %q", string(b))
	}
	*c = v
	return nil
}

type PriceCeiling int

const (
	PriceAll PriceCeiling = iota
	PriceUpTo200K
	PriceUpTo400K
	PriceUpTo600K
	PriceUpTo800K
	PriceUpTo1M
	PriceOver1M
)

// PriceTopThreshold is the boundary of the highest ceiling bucket.
const PriceTopThreshold int64 = 1_000_000

var priceBuckets = [...]struct {
	wire  string
	max   int64
	label string
}{
	{"all", 0, "Semua Harga"},
	{"200000", 200_000, "<= Rp 200.000"},
	{"400000", 400_000, "<= Rp 400.000"},
	{"600000", 600_000, "<= Rp 600.000"},
	{"800000", 800_000, "<= Rp 800.000"},
	{"1000000", 1_000_000, "<= Rp 1.000.000"},
	{"over1000000", PriceTopThreshold, "> Rp 1.000.000"},
}

func ParsePriceCeiling(s string) (PriceCeiling, bool) {
	s = strings.TrimSpace(s)
	for i, b := range priceBuckets {
		if s == b.wire {
			return PriceCeiling(i), true
		}
	}
	return PriceAll, false
}

func (p PriceCeiling) valid() bool { return p >= PriceAll && p <= PriceOver1M }

func (p PriceCeiling) String() string {
	if !p.valid() {
		return priceBuckets[PriceAll].wire
	}
	return priceBuckets[p].wire
}

func (p PriceCeiling) Label() string {
	if !p.valid() {
		return priceBuckets[PriceAll].label
	}
	return priceBuckets[p].label
}

// Allows reports whether price passes the bucket.
func (p PriceCeiling) Allows(price int64) bool {
	switch {
	case p == PriceOver1M:
		return price > PriceTopThreshold
	case p > PriceAll && p < PriceOver1M:
		return price <= priceBuckets[p].max
	default:
		return true
	}
}

type RatingFloor int

const (
	RatingAll RatingFloor = iota
	RatingFrom45
	RatingFrom40
	RatingFrom35
	RatingFrom30
	RatingUnder3
)

var ratingBuckets = [...]struct {
	wire  string
	min   float64
	label string
}{
	{"all", 0, "Semua Rating"},
	{"4.5", 4.5, "4.5+"},
	{"4", 4.0, "4.0+"},
	{"3.5", 3.5, "3.5+"},
	{"3", 3.0, "3.0+"},
	{"under3", 3.0, "< 3.0"},
}

func ParseRatingFloor(s string) (RatingFloor, bool) {
	s = strings.TrimSpace(s)
	for i, b := range ratingBuckets {
		if s == b.wire {
			return RatingFloor(i), true
		}
	}
	// "4.0" and "3.0" are common spellings of the same buckets.
	switch s {
	case "4.0":
		return RatingFrom40, true
	case "3.0":
		return RatingFrom30, true
	}
	return RatingAll, false
}

func (r RatingFloor) valid() bool { return r >= RatingAll && r <= RatingUnder3 }

func (r RatingFloor) String() string {
	if !r.valid() {
		return ratingBuckets[RatingAll].wire
	}
	return ratingBuckets[r].wire
}

func (r RatingFloor) Label() string {
	if !r.valid() {
		return ratingBuckets[RatingAll].label
	}
	return ratingBuckets[r].label
}

func (r RatingFloor) Allows(rating float64) bool {
	switch {
	case r == RatingUnder3:
		return rating < ratingBuckets[RatingUnder3].min
	case r > RatingAll && r < RatingUnder3:
		return rating >= ratingBuckets[r].min
	default:
		return true
	}
}

type DistanceRange int

const (
	DistanceAll DistanceRange = iota
	Within2Km
	Within4Km
	Within6Km
	Within8Km
	Within10Km
	Beyond10Km
)

var distanceBuckets = [...]struct {
	wire  string
	km    float64
	label string
}{
	{"all", 0, "Jarak Terdekat"},
	{"lt2km", 2, "<= 2 km"},
	{"lt4km", 4, "<= 4 km"},
	{"lt6km", 6, "<= 6 km"},
	{"lt8km", 8, "<= 8 km"},
	{"lt10km", 10, "<= 10 km"},
	{"gt10km", 10, "> 10 km"},
}

func ParseDistanceRange(s string) (DistanceRange, bool) {
	s = strings.TrimSpace(s)
	for i, b := range distanceBuckets {
		if s == b.wire {
			return DistanceRange(i), true
		}
	}
	return DistanceAll, false
}

func (d DistanceRange) valid() bool { return d >= DistanceAll && d <= Beyond10Km }

func (d DistanceRange) String() string {
	if !d.valid() {
		return distanceBuckets[DistanceAll].wire
	}
	return distanceBuckets[d].wire
}

func (d DistanceRange) Label() string {
	if !d.valid() {
		return distanceBuckets[DistanceAll].label
	}
	return distanceBuckets[d].label
}

// BoundaryKm is the bucket's boundary; 0 for DistanceAll.
func (d DistanceRange) BoundaryKm() float64 {
	if !d.valid() {
		return 0
	}
	return distanceBuckets[d].km
}

// Active reports whether the bucket needs a reference point to evaluate.
func (d DistanceRange) Active() bool { return d.valid() && d != DistanceAll }

// Allows applies the bucket to a computed distance: "lt" buckets are
// inclusive, gt10km is exclusive.
func (d DistanceRange) Allows(km float64) bool {
	switch {
	case d == Beyond10Km:
		return km > distanceBuckets[Beyond10Km].km
	case d.Active():
		return km <= distanceBuckets[d].km
	default:
		return true
	}
}
