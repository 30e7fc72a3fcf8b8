package geo

import "petasare/internal/domain"

// RestrictToBounds returns the hotels whose coordinates lie inside b.
// A nil b means the map has not reported a viewport yet; hotels is then
// returned unchanged.
func RestrictToBounds(hotels []domain.Hotel, b *domain.Bounds) []domain.Hotel {
	if b == nil {
		return hotels
	}
	out := make([]domain.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if b.Contains(h.Coords) {
			out = append(out, h)
		}
	}
	return out
}

// Radius is the circle drawn around the user for an active distance filter.
type Radius struct {
	Center domain.Coords `json:"center"`
	Meters float64       `json:"meters"`
	Color  string        `json:"color"`
}

var radiusColors = map[domain.DistanceRange]string{
	domain.Within2Km:  "#4ade80",
	domain.Within4Km:  "#38bdf8",
	domain.Within6Km:  "#fbbf24",
	domain.Within8Km:  "#f87171",
	domain.Within10Km: "#c084fc",
	domain.Beyond10Km: "#94a3b8",
}

// RadiusFor returns the overlay for d around user, or nil when there is
// nothing to draw (no location, or no distance filter). gt10km draws its
// 10 km boundary.
func RadiusFor(d domain.DistanceRange, user *domain.Coords) *Radius {
	if user == nil || !d.Active() {
		return nil
	}
	return &Radius{
		Center: *user,
		Meters: d.BoundaryKm() * 1000,
		Color:  radiusColors[d],
	}
}
