package domain

type Hotel struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	Category   Category     `json:"category"`
	Price      int64        `json:"price"` // IDR, whole units
	Rating     float64      `json:"rating"`
	Facilities []string     `json:"facilities"`
	Address    string       `json:"address"`
	Coords     Coords       `json:"coords"`
	Contact    string       `json:"contact,omitempty"`
	Image      string       `json:"image,omitempty"`
	Links      BookingLinks `json:"links"`
	Reviews    []Review     `json:"reviews,omitempty"`
}

// HasFacility reports whether tag is in the hotel's facility set (exact match).
func (h Hotel) HasFacility(tag string) bool {
	for _, f := range h.Facilities {
		if f == tag {
			return true
		}
	}
	return false
}

type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether c is a WGS84 position.
func (c Coords) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// BookingLinks are opaque outbound URLs; the service never calls them.
type BookingLinks struct {
	Traveloka string `json:"traveloka,omitempty"`
	Agoda     string `json:"agoda,omitempty"`
	Map       string `json:"map,omitempty"`
}
