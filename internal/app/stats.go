package app

import (
	"math"

	"petasare/internal/domain"
)

// Bucket is one bar of a distribution chart.
type Bucket struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type priceRange struct {
	key, label string
	min, max   int64
}

var priceRanges = []priceRange{
	{"range1", "<= Rp 200.000", 0, 200_000},
	{"range2", "Rp 200.001 - Rp 400.000", 200_001, 400_000},
	{"range3", "Rp 400.001 - Rp 600.000", 400_001, 600_000},
	{"range4", "Rp 600.001 - Rp 800.000", 600_001, 800_000},
	{"range5", "Rp 800.001 - Rp 1.000.000", 800_001, 1_000_000},
	{"range6", "> Rp 1.000.000", 1_000_001, math.MaxInt64},
}

type ratingRange struct {
	key      string
	min, max float64
}

// gaps between ranges (e.g. 3.55) are not counted anywhere
var ratingRanges = []ratingRange{
	{"3.0-3.5", 3.0, 3.5},
	{"3.6-4.0", 3.6, 4.0},
	{"4.1-4.5", 4.1, 4.5},
	{"4.6-5.0", 4.6, 5.0},
}

// PriceDistribution counts hotels per price range, first match wins.
func PriceDistribution(hotels []domain.Hotel) []Bucket {
	out := make([]Bucket, len(priceRanges))
	for i, r := range priceRanges {
		out[i] = Bucket{Key: r.key, Label: r.label}
	}
	for _, h := range hotels {
		for i, r := range priceRanges {
			if h.Price >= r.min && h.Price <= r.max {
				out[i].Count++
				break
			}
		}
	}
	return out
}

// RatingDistribution counts hotels per rating range, first match wins.
func RatingDistribution(hotels []domain.Hotel) []Bucket {
	out := make([]Bucket, len(ratingRanges))
	for i, r := range ratingRanges {
		out[i] = Bucket{Key: r.key, Label: r.key}
	}
	for _, h := range hotels {
		for i, r := range ratingRanges {
			if h.Rating >= r.min && h.Rating <= r.max {
				out[i].Count++
				break
			}
		}
	}
	return out
}
