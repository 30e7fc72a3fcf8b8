package fixture

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"petasare/internal/domain"
)

/********** alias registries (single source of truth) **********/

// The fixture was authored in Indonesian; English keys are accepted too.
var hotelAliases = map[string][]string{
	"id":        {"id", "hotel_id"},
	"name":      {"nama", "name"},
	"category":  {"kategori", "category"},
	"price":     {"harga", "price"},
	"rating":    {"rating"},
	"address":   {"alamat", "address"},
	"lat":       {"lat", "latitude", "coords.lat"},
	"lng":       {"lng", "lon", "longitude", "coords.lng"},
	"contact":   {"kontak", "contact", "telepon", "phone"},
	"image":     {"gambar", "image"},
	"traveloka": {"traveloka", "links.traveloka"},
	"agoda":     {"agoda", "links.agoda"},
	"map":       {"peta", "mapLink", "links.map"},
}

var reviewAliases = map[string][]string{
	"user":    {"user", "nama", "author", "name"},
	"comment": {"comment", "komentar", "text", "review"},
	"rating":  {"rating", "score"},
	"date":    {"date", "tanggal", "created_at"},
}

var reviewDateLayouts = []string{time.RFC3339, "2006-01-02", "02/01/2006"}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// firstStr: first non-empty string for a named alias set.
func firstStr(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// firstFloat: number from the alias paths (float64/int/string like "4,5").
func firstFloat(m map[string]any, aliases map[string][]string, key string) (float64, bool) {
	for _, k := range aliases[key] {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// firstInt64: integer from the alias paths; prices like "150.000" drop the
// thousands separators.
func firstInt64(m map[string]any, aliases map[string][]string, key string) (int64, bool) {
	for _, k := range aliases[key] {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return int64(v), true
		case int:
			return int64(v), true
		case int64:
			return v, true
		case string:
			s := strings.NewReplacer(".", "", " ", "", "Rp", "").Replace(strings.TrimSpace(v))
			if s == "" {
				continue
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// stringSlice accepts []any of strings or of {name: ...} objects, deduplicated.
func stringSlice(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		raw, ok := lookupAny(m, k).([]any)
		if !ok {
			continue
		}
		seen := make(map[string]struct{}, len(raw))
		out := make([]string, 0, len(raw))
		for _, it := range raw {
			var s string
			switch t := it.(type) {
			case string:
				s = strings.TrimSpace(t)
			case map[string]any:
				s = lookupStr(t, "name")
			}
			if s == "" {
				continue
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
		return out
	}
	return nil
}

/********** hotel mapper **********/

func mapHotel(p map[string]any) (domain.Hotel, error) {
	id, ok := firstInt64(p, hotelAliases, "id")
	if !ok {
		return domain.Hotel{}, fmt.Errorf("missing id")
	}
	name := firstStr(p, hotelAliases, "name")
	if name == "" {
		return domain.Hotel{}, fmt.Errorf("hotel %d: missing name", id)
	}
	cat, ok := domain.ParseCategory(firstStr(p, hotelAliases, "category"))
	if !ok || cat == domain.CategoryAll {
		return domain.Hotel{}, fmt.Errorf("hotel %d: unknown category %q", id, firstStr(p, hotelAliases, "category"))
	}
	lat, okLat := firstFloat(p, hotelAliases, "lat")
	lng, okLng := firstFloat(p, hotelAliases, "lng")
	coords := domain.Coords{Lat: lat, Lng: lng}
	if !okLat || !okLng || !coords.Valid() {
		return domain.Hotel{}, fmt.Errorf("hotel %d: missing or invalid coordinates", id)
	}

	price, _ := firstInt64(p, hotelAliases, "price")
	rating, _ := firstFloat(p, hotelAliases, "rating")

	return domain.Hotel{
		ID:         id,
		Name:       name,
		Category:   cat,
		Price:      price,
		Rating:     rating,
		Facilities: stringSlice(p, "fasilitas", "facilities"),
		Address:    firstStr(p, hotelAliases, "address"),
		Coords:     coords,
		Contact:    firstStr(p, hotelAliases, "contact"),
		Image:      firstStr(p, hotelAliases, "image"),
		Links: domain.BookingLinks{
			Traveloka: firstStr(p, hotelAliases, "traveloka"),
			Agoda:     firstStr(p, hotelAliases, "agoda"),
			Map:       firstStr(p, hotelAliases, "map"),
		},
		Reviews: mapReviews(id, p),
	}, nil
}

/********** reviews mapper **********/

func mapReviews(hotelID int64, p map[string]any) []domain.Review {
	raw, _ := lookupAny(p, "reviews").([]any)
	out := make([]domain.Review, 0, len(raw))
	for _, it := range raw {
		r, ok := it.(map[string]any)
		if !ok {
			continue
		}
		rv := domain.Review{
			HotelID: hotelID,
			User:    firstStr(r, reviewAliases, "user"),
			Comment: firstStr(r, reviewAliases, "comment"),
		}
		if n, ok := firstInt64(r, reviewAliases, "rating"); ok && n > 0 {
			rv.Rating = clampStars(n)
		}
		if d := firstStr(r, reviewAliases, "date"); d != "" {
			for _, layout := range reviewDateLayouts {
				if t, err := time.Parse(layout, d); err == nil {
					rv.Date = t.UTC()
					break
				}
			}
		}
		if rv.Comment == "" && rv.Rating == 0 {
			continue
		}
		out = append(out, rv)
	}
	return out
}

func clampStars(n int64) int {
	if n > 5 {
		return 5
	}
	return int(n)
}
