package app_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petasare/internal/app"
	"petasare/internal/domain"
	"petasare/internal/geo"
)

func TestSelect_HarmoniScenario(t *testing.T) {
	hs := []domain.Hotel{
		hotel(1, "Hotel Harmoni", domain.Star4, 150000, 4.6, -6.92, 107.61, "Wi-Fi gratis"),
		hotel(2, "Grand Preanger", domain.Star5, 1450000, 4.7, -6.921, 107.61, "Wi-Fi gratis"),
	}
	in := app.Input{
		Query: "harmoni",
		Filters: domain.Filters{
			Price:  domain.PriceUpTo200K,
			Rating: domain.RatingFrom45,
		},
	}
	assert.Equal(t, []int64{1}, ids(app.Select(hs, in)))

	in.Filters.Category = domain.Star5
	assert.Empty(t, app.Select(hs, in))
}

func TestSelect_DistanceWithoutLocationIsEmpty(t *testing.T) {
	hs := []domain.Hotel{
		hotel(1, "A", domain.Star1, 100000, 3.0, -6.9, 107.6),
		hotel(2, "B", domain.Star2, 200000, 4.0, -6.8, 107.5),
	}
	for _, d := range []domain.DistanceRange{domain.Within2Km, domain.Within10Km, domain.Beyond10Km} {
		got := app.Select(hs, app.Input{Filters: domain.Filters{Distance: d}})
		assert.Empty(t, got, d.String())
	}
}

func TestSelect_DistanceBucketsAndNearestFirst(t *testing.T) {
	user := domain.Coords{Lat: -6.9, Lng: 107.6}
	far := hotel(1, "Far", domain.Star3, 300000, 4.0, kmNorth(user.Lat, 3.0), user.Lng)
	near := hotel(2, "Near", domain.Star3, 300000, 4.0, kmNorth(user.Lat, 1.5), user.Lng)
	hs := []domain.Hotel{far, near}

	got := app.Select(hs, app.Input{Location: &user, Filters: domain.Filters{Distance: domain.Within2Km}})
	assert.Equal(t, []int64{2}, ids(got))

	got = app.Select(hs, app.Input{Location: &user})
	assert.Equal(t, []int64{2, 1}, ids(got), "nearest first")

	got = app.Select(hs, app.Input{})
	assert.Equal(t, []int64{1, 2}, ids(got), "dataset order without location")
}

func TestSelect_StableOnTies(t *testing.T) {
	user := domain.Coords{Lat: -6.9, Lng: 107.6}
	lat := kmNorth(user.Lat, 1)
	hs := []domain.Hotel{
		hotel(5, "E", domain.Star1, 1, 1, lat, user.Lng),
		hotel(3, "C", domain.Star1, 1, 1, lat, user.Lng),
		hotel(4, "D", domain.Star1, 1, 1, user.Lat, user.Lng),
		hotel(1, "A", domain.Star1, 1, 1, lat, user.Lng),
	}
	got := app.Select(hs, app.Input{Location: &user})
	assert.Equal(t, []int64{4, 5, 3, 1}, ids(got))
}

func TestSelect_BucketEdges(t *testing.T) {
	hs := []domain.Hotel{
		hotel(1, "Exactly1M", domain.Star3, 1_000_000, 3.0, 0, 0),
		hotel(2, "Above1M", domain.Star3, 1_000_001, 2.99, 0, 0),
		hotel(3, "Exactly200K", domain.Star3, 200_000, 4.5, 0, 0),
	}
	cases := []struct {
		name string
		f    domain.Filters
		want []int64
	}{
		{"over1000000 excludes exactly 1M", domain.Filters{Price: domain.PriceOver1M}, []int64{2}},
		{"1000000 ceiling inclusive", domain.Filters{Price: domain.PriceUpTo1M}, []int64{1, 3}},
		{"200000 ceiling inclusive", domain.Filters{Price: domain.PriceUpTo200K}, []int64{3}},
		{"under3 excludes 3.0", domain.Filters{Rating: domain.RatingUnder3}, []int64{2}},
		{"floor 3 includes 3.0", domain.Filters{Rating: domain.RatingFrom30}, []int64{1, 3}},
		{"floor 4.5 inclusive", domain.Filters{Rating: domain.RatingFrom45}, []int64{3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(app.Select(hs, app.Input{Filters: tc.f})))
		})
	}
}

func TestSelect_FacilitiesAreConjunctive(t *testing.T) {
	hs := []domain.Hotel{
		hotel(1, "Both", domain.Star3, 1, 4, 0, 0, "WiFi", "Parkir"),
		hotel(2, "WiFi only", domain.Star3, 1, 4, 0, 0, "WiFi"),
	}
	got := app.Select(hs, app.Input{Filters: domain.Filters{Facilities: []string{"WiFi", "Parkir"}}})
	assert.Equal(t, []int64{1}, ids(got))
}

func TestSelect_BookmarksOnly(t *testing.T) {
	hs := []domain.Hotel{
		hotel(1, "A", domain.Star3, 1, 4, 0, 0),
		hotel(2, "B", domain.Star3, 1, 4, 0, 0),
	}
	marks := map[int64]struct{}{2: {}}
	assert.Equal(t, []int64{2}, ids(app.Select(hs, app.Input{BookmarksOnly: true, Bookmarks: marks})))
	assert.Equal(t, []int64{1, 2}, ids(app.Select(hs, app.Input{Bookmarks: marks})), "set ignored unless bookmarks-only")
	assert.Empty(t, app.Select(hs, app.Input{BookmarksOnly: true}))
}

func TestSelect_UnknownBucketFiltersNothing(t *testing.T) {
	hs := []domain.Hotel{hotel(1, "A", domain.Star3, 5_000_000, 1.0, 0, 0)}
	f, ignored := domain.ParseFilters(domain.RawFilters{Price: "12345", Rating: "9", Category: "HOTEL BINTANG 7"})
	require.Len(t, ignored, 3)
	assert.Equal(t, []int64{1}, ids(app.Select(hs, app.Input{Filters: f})))
}

func TestSelect_DoesNotMutateInput(t *testing.T) {
	user := domain.Coords{Lat: -6.9, Lng: 107.6}
	hs := []domain.Hotel{
		hotel(1, "Far", domain.Star3, 1, 4, kmNorth(user.Lat, 5), user.Lng),
		hotel(2, "Near", domain.Star3, 1, 4, kmNorth(user.Lat, 1), user.Lng),
	}
	before := ids(hs)
	_ = app.Select(hs, app.Input{Location: &user})
	assert.Equal(t, before, ids(hs))
}

// ---- property tests ----

// satisfies restates every predicate directly, independent of the engine.
func satisfies(h domain.Hotel, in app.Input) bool {
	if in.Query != "" && !strings.Contains(strings.ToLower(h.Name), strings.ToLower(in.Query)) {
		return false
	}
	if in.Filters.Category != domain.CategoryAll && in.Filters.Category != h.Category {
		return false
	}
	for _, f := range in.Filters.Facilities {
		if !h.HasFacility(f) {
			return false
		}
	}
	switch in.Filters.Price {
	case domain.PriceAll:
	case domain.PriceOver1M:
		if h.Price <= 1_000_000 {
			return false
		}
	default:
		ceilings := map[domain.PriceCeiling]int64{
			domain.PriceUpTo200K: 200000, domain.PriceUpTo400K: 400000, domain.PriceUpTo600K: 600000,
			domain.PriceUpTo800K: 800000, domain.PriceUpTo1M: 1000000,
		}
		if h.Price > ceilings[in.Filters.Price] {
			return false
		}
	}
	switch in.Filters.Rating {
	case domain.RatingAll:
	case domain.RatingUnder3:
		if h.Rating >= 3 {
			return false
		}
	default:
		floors := map[domain.RatingFloor]float64{
			domain.RatingFrom45: 4.5, domain.RatingFrom40: 4, domain.RatingFrom35: 3.5, domain.RatingFrom30: 3,
		}
		if h.Rating < floors[in.Filters.Rating] {
			return false
		}
	}
	if in.BookmarksOnly {
		if _, ok := in.Bookmarks[h.ID]; !ok {
			return false
		}
	}
	if in.Filters.Distance != domain.DistanceAll {
		if in.Location == nil {
			return false
		}
		km := geo.DistanceKm(in.Location.Lat, in.Location.Lng, h.Coords.Lat, h.Coords.Lng)
		if in.Filters.Distance == domain.Beyond10Km {
			return km > 10
		}
		return km <= in.Filters.Distance.BoundaryKm()
	}
	return true
}

func randomDataset(r *rand.Rand, n int) []domain.Hotel {
	names := []string{"Harmoni", "Preanger", "Braga", "Dago", "Pasteur", "Lembang", "Setiabudi"}
	facilities := []string{"WiFi", "Parkir", "Restoran", "Kolam Renang", "Spa"}
	prices := []int64{120000, 200000, 200001, 400000, 560000, 800000, 1000000, 1000001, 2100000}
	ratings := []float64{2.5, 2.99, 3.0, 3.4, 3.5, 3.9, 4.0, 4.4, 4.5, 4.8}
	out := make([]domain.Hotel, n)
	for i := range out {
		var fac []string
		for _, f := range facilities {
			if r.Intn(2) == 0 {
				fac = append(fac, f)
			}
		}
		out[i] = hotel(int64(i+1),
			"Hotel "+names[r.Intn(len(names))],
			domain.Category(1+r.Intn(5)),
			prices[r.Intn(len(prices))],
			ratings[r.Intn(len(ratings))],
			-6.9+(r.Float64()-0.5)*0.3, 107.6+(r.Float64()-0.5)*0.3,
			fac...)
	}
	return out
}

func randomInput(r *rand.Rand, n int) app.Input {
	queries := []string{"", "", "harmoni", "HOTEL", "ag", "zzz"}
	facilities := []string{"WiFi", "Parkir", "Restoran", "Kolam Renang", "Spa"}
	in := app.Input{
		Query: queries[r.Intn(len(queries))],
		Filters: domain.Filters{
			Category: domain.Category(r.Intn(6)),
			Price:    domain.PriceCeiling(r.Intn(7)),
			Rating:   domain.RatingFloor(r.Intn(6)),
			Distance: domain.DistanceRange(r.Intn(7)),
		},
		BookmarksOnly: r.Intn(4) == 0,
		Bookmarks:     map[int64]struct{}{},
	}
	for _, f := range facilities {
		if r.Intn(5) == 0 {
			in.Filters.Facilities = append(in.Filters.Facilities, f)
		}
	}
	for i := 1; i <= n; i++ {
		if r.Intn(3) == 0 {
			in.Bookmarks[int64(i)] = struct{}{}
		}
	}
	if r.Intn(3) != 0 {
		in.Location = &domain.Coords{Lat: -6.9 + (r.Float64()-0.5)*0.2, Lng: 107.6 + (r.Float64()-0.5)*0.2}
	}
	return in
}

func TestSelect_ConjunctionLaw(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	hs := randomDataset(r, 60)

	for i := 0; i < 500; i++ {
		in := randomInput(r, len(hs))
		got := app.Select(hs, in)

		inResult := map[int64]bool{}
		for _, h := range got {
			inResult[h.ID] = true
		}
		for _, h := range hs {
			if satisfies(h, in) != inResult[h.ID] {
				t.Fatalf("iteration %d: hotel %d membership mismatch (want %v) for %+v", i, h.ID, satisfies(h, in), in)
			}
		}

		if in.Location != nil {
			for j := 1; j < len(got); j++ {
				a := geo.DistanceKm(in.Location.Lat, in.Location.Lng, got[j-1].Coords.Lat, got[j-1].Coords.Lng)
				b := geo.DistanceKm(in.Location.Lat, in.Location.Lng, got[j].Coords.Lat, got[j].Coords.Lng)
				if a > b {
					t.Fatalf("iteration %d: not sorted nearest first at %d", i, j)
				}
			}
		}
	}
}

func TestSelect_Idempotent(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	hs := randomDataset(r, 40)
	for i := 0; i < 100; i++ {
		in := randomInput(r, len(hs))
		assert.Equal(t, ids(app.Select(hs, in)), ids(app.Select(hs, in)))
	}
}
