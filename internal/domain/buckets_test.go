package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("HOTEL BINTANG 4")
	assert.True(t, ok)
	assert.Equal(t, Star4, c)

	c, ok = ParseCategory(" hotel bintang 2 ")
	assert.True(t, ok)
	assert.Equal(t, Star2, c)

	c, ok = ParseCategory("HOTEL BINTANG 6")
	assert.False(t, ok)
	assert.Equal(t, CategoryAll, c)
}

func TestLabelsAreTotal(t *testing.T) {
	// out-of-range values fall back to the "all" label instead of panicking
	assert.Equal(t, "Semua Bintang", Category(42).Label())
	assert.Equal(t, "Semua Harga", PriceCeiling(-1).Label())
	assert.Equal(t, "Semua Rating", RatingFloor(99).Label())
	assert.Equal(t, "Jarak Terdekat", DistanceRange(99).Label())

	assert.Equal(t, "Bintang 5", Star5.Label())
	assert.Equal(t, "> Rp 1.000.000", PriceOver1M.Label())
	assert.Equal(t, "< 3.0", RatingUnder3.Label())
	assert.Equal(t, "> 10 km", Beyond10Km.Label())
}

func TestWireRoundTrip(t *testing.T) {
	for p := PriceAll; p <= PriceOver1M; p++ {
		got, ok := ParsePriceCeiling(p.String())
		assert.True(t, ok, p.String())
		assert.Equal(t, p, got)
	}
	for r := RatingAll; r <= RatingUnder3; r++ {
		got, ok := ParseRatingFloor(r.String())
		assert.True(t, ok, r.String())
		assert.Equal(t, r, got)
	}
	for d := DistanceAll; d <= Beyond10Km; d++ {
		got, ok := ParseDistanceRange(d.String())
		assert.True(t, ok, d.String())
		assert.Equal(t, d, got)
	}
}

func TestParseRatingFloor_Aliases(t *testing.T) {
	r, ok := ParseRatingFloor("4.0")
	assert.True(t, ok)
	assert.Equal(t, RatingFrom40, r)
	r, ok = ParseRatingFloor("3.0")
	assert.True(t, ok)
	assert.Equal(t, RatingFrom30, r)
}

func TestPriceAllows(t *testing.T) {
	assert.True(t, PriceAll.Allows(9_999_999))
	assert.True(t, PriceUpTo400K.Allows(400_000))
	assert.False(t, PriceUpTo400K.Allows(400_001))
	assert.False(t, PriceOver1M.Allows(1_000_000))
	assert.True(t, PriceOver1M.Allows(1_000_001))
}

func TestRatingAllows(t *testing.T) {
	assert.True(t, RatingFrom35.Allows(3.5))
	assert.False(t, RatingFrom35.Allows(3.49))
	assert.True(t, RatingUnder3.Allows(2.99))
	assert.False(t, RatingUnder3.Allows(3.0))
}

func TestDistanceAllows(t *testing.T) {
	assert.False(t, DistanceAll.Active())
	assert.True(t, Within2Km.Allows(2.0))
	assert.False(t, Within2Km.Allows(2.0001))
	assert.False(t, Beyond10Km.Allows(10.0))
	assert.True(t, Beyond10Km.Allows(10.0001))
	assert.Equal(t, 10.0, Beyond10Km.BoundaryKm())
	assert.Equal(t, 0.0, DistanceAll.BoundaryKm())
}

func TestCategoryJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		C Category `json:"c"`
	}{Star3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"HOTEL BINTANG 3"}`, string(b))

	var v struct {
		C Category `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"c":"HOTEL BINTANG 1"}`), &v))
	assert.Equal(t, Star1, v.C)
	assert.Error(t, json.Unmarshal([]byte(`{"c":"all"}`), &v))
}
