package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"petasare/internal/app"
	"petasare/internal/domain"
	"petasare/internal/geo"
)

type Handlers struct {
	Selector  *app.Selector
	Q         *app.QueryService
	Bookmarks *app.BookmarkStore
	Location  *app.LocationProvider
	Inbox     *app.Inbox
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/hotels", h.listHotels)
		r.Get("/hotels/{id}", h.getHotel)
		r.Get("/hotels/{id}/reviews", h.listReviews)
		r.Get("/map", h.mapView)
		r.Get("/stats", h.stats)

		r.Group(func(r chi.Router) {
			r.Use(NoStore)

			r.Get("/bookmarks", h.listBookmarks)
			r.Post("/bookmarks/{id}/toggle", h.toggleBookmark)

			r.Get("/location", h.getLocation)
			r.Post("/location/request", h.requestLocation)
			r.Put("/location", h.reportLocation)

			r.Get("/notifications", h.drainNotifications)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeWithETag answers 304 when the client already holds this version.
func writeWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// ---- view state from query parameters ----

type viewState struct {
	input   app.Input
	ignored []string
}

func (h *Handlers) readView(r *http.Request) viewState {
	q := r.URL.Query()
	raw := domain.RawFilters{
		Category:   q.Get("category"),
		Facilities: q["facility"],
		Price:      q.Get("price"),
		Rating:     q.Get("rating"),
		Distance:   q.Get("distance"),
	}
	f, ignored := domain.ParseFilters(raw)
	if len(ignored) > 0 {
		log.Debug().Strs("ignored", ignored).Msg("unrecognized filter values")
	}
	in := app.Input{
		Filters:       f,
		Query:         strings.TrimSpace(q.Get("q")),
		BookmarksOnly: truthy(q.Get("bookmarked")),
		Bookmarks:     h.Bookmarks.Snapshot(),
		Location:      h.Location.Current(),
	}
	return viewState{input: in, ignored: ignored}
}

func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// parseBBox reads "south,west,north,east".
func parseBBox(s string) (*domain.Bounds, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, errors.New("bbox must be south,west,north,east")
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.New("bbox values must be numbers")
		}
		v[i] = f
	}
	b := &domain.Bounds{South: v[0], West: v[1], North: v[2], East: v[3]}
	if b.South > b.North || b.West > b.East {
		return nil, errors.New("bbox south/west must not exceed north/east")
	}
	return b, nil
}

// ---- response shapes ----

type hotelCard struct {
	domain.Hotel
	DistanceKm *float64 `json:"distance_km,omitempty"`
	Bookmarked bool     `json:"bookmarked"`
}

func (h *Handlers) card(hotel domain.Hotel, loc *domain.Coords) hotelCard {
	c := hotelCard{Hotel: hotel, Bookmarked: h.Bookmarks.Contains(hotel.ID)}
	if loc != nil {
		km := geo.DistanceKm(loc.Lat, loc.Lng, hotel.Coords.Lat, hotel.Coords.Lng)
		c.DistanceKm = &km
	}
	return c
}

// chipView carries the query string that reproduces the view without it.
type chipView struct {
	domain.Chip
	Remove string `json:"remove"`
}

func chipsFor(in app.Input) []chipView {
	chips := domain.ActiveFilters(in.Filters, in.Query, in.BookmarksOnly)
	out := make([]chipView, 0, len(chips))
	for _, c := range chips {
		next := in
		switch c.Kind {
		case domain.KindSearch:
			next.Query = ""
		case domain.KindBookmarks:
			next.BookmarksOnly = false
		default:
			next.Filters = in.Filters.Without(c.Kind, c.Value)
		}
		out = append(out, chipView{Chip: c, Remove: viewQuery(next)})
	}
	return out
}

// viewQuery is the inverse of readView for the filter parameters.
func viewQuery(in app.Input) string {
	q := url.Values{}
	if in.Query != "" {
		q.Set("q", in.Query)
	}
	f := in.Filters
	if f.Category != domain.CategoryAll {
		q.Set("category", f.Category.String())
	}
	for _, tag := range f.Facilities {
		q.Add("facility", tag)
	}
	if f.Price != domain.PriceAll {
		q.Set("price", f.Price.String())
	}
	if f.Rating != domain.RatingAll {
		q.Set("rating", f.Rating.String())
	}
	if f.Distance != domain.DistanceAll {
		q.Set("distance", f.Distance.String())
	}
	if in.BookmarksOnly {
		q.Set("bookmarked", "1")
	}
	return q.Encode()
}

type listResponse struct {
	Items         []hotelCard    `json:"items"`
	Count         int            `json:"count"`
	ActiveFilters []chipView     `json:"active_filters"`
	Location      *domain.Coords `json:"location"`
	Ignored       []string       `json:"ignored,omitempty"`
	Notice        string         `json:"notice,omitempty"`
}

type marker struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    domain.Category `json:"category"`
	Price       int64           `json:"price"`
	Rating      float64         `json:"rating"`
	Coords      domain.Coords   `json:"coords"`
	Highlighted bool            `json:"highlighted"`
	Bookmarked  bool            `json:"bookmarked"`
}

type mapResponse struct {
	Markers  []marker       `json:"markers"`
	Count    int            `json:"count"`
	Radius   *geo.Radius    `json:"radius"`
	Location *domain.Coords `json:"location"`
	Ignored  []string       `json:"ignored,omitempty"`
}

// ---- handlers ----

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	v := h.readView(r)
	hs := h.Selector.Select(v.input)

	items := make([]hotelCard, 0, len(hs))
	for _, hotel := range hs {
		hotel.Reviews = nil // detail view only
		items = append(items, h.card(hotel, v.input.Location))
	}
	resp := listResponse{
		Items:         items,
		Count:         len(items),
		ActiveFilters: chipsFor(v.input),
		Location:      v.input.Location,
		Ignored:       v.ignored,
	}
	if v.input.Filters.Distance.Active() && v.input.Location == nil {
		resp.Notice = "Aktifkan lokasi untuk menggunakan filter jarak."
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) mapView(w http.ResponseWriter, r *http.Request) {
	bounds, err := parseBBox(r.URL.Query().Get("bbox"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid bbox", err.Error())
		return
	}
	var highlight int64
	if s := r.URL.Query().Get("highlight"); s != "" {
		if highlight, err = strconv.ParseInt(s, 10, 64); err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid highlight", "highlight must be a hotel id")
			return
		}
	}

	v := h.readView(r)
	visible := geo.RestrictToBounds(h.Selector.Select(v.input), bounds)

	markers := make([]marker, 0, len(visible))
	for _, hotel := range visible {
		markers = append(markers, marker{
			ID:          hotel.ID,
			Name:        hotel.Name,
			Category:    hotel.Category,
			Price:       hotel.Price,
			Rating:      hotel.Rating,
			Coords:      hotel.Coords,
			Highlighted: highlight != 0 && hotel.ID == highlight,
			Bookmarked:  h.Bookmarks.Contains(hotel.ID),
		})
	}
	writeJSON(w, http.StatusOK, mapResponse{
		Markers:  markers,
		Count:    len(markers),
		Radius:   geo.RadiusFor(v.input.Filters.Distance, v.input.Location),
		Location: v.input.Location,
		Ignored:  v.ignored,
	})
}

func (h *Handlers) stats(w http.ResponseWriter, r *http.Request) {
	v := h.readView(r)
	hs := h.Selector.Select(v.input)
	writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(hs),
		"price":  app.PriceDistribution(hs),
		"rating": app.RatingDistribution(hs),
	})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	hotel, err := h.Q.GetHotel(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("get hotel failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	writeWithETag(w, r, h.card(hotel, h.Location.Current()))
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}

	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	out, err := h.Q.ListReviews(r.Context(), id, domain.PageQuery{Limit: limit})
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("list reviews failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	writeWithETag(w, r, out)
}

func (h *Handlers) listBookmarks(w http.ResponseWriter, r *http.Request) {
	ids := h.Bookmarks.IDs()
	loc := h.Location.Current()
	hotels := make([]hotelCard, 0, len(ids))
	for _, id := range ids {
		if hotel, ok := h.Selector.Catalog().Lookup(id); ok {
			hotel.Reviews = nil
			hotels = append(hotels, h.card(hotel, loc))
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ids": ids, "hotels": hotels})
}

func (h *Handlers) toggleBookmark(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if _, ok := h.Selector.Catalog().Lookup(id); !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	on, err := h.Bookmarks.Toggle(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("bookmark toggle failed")
		writeProblem(w, http.StatusServiceUnavailable, "Bookmark Not Saved", "bookmark storage is unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "bookmarked": on})
}

func (h *Handlers) getLocation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"location": h.Location.Current()})
}

func (h *Handlers) requestLocation(w http.ResponseWriter, r *http.Request) {
	c, err := h.Location.Request(r.Context())
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, domain.ErrLocationDenied):
			status = http.StatusForbidden
		case errors.Is(err, domain.ErrLocationUnsupported):
			status = http.StatusNotImplemented
		case errors.Is(err, domain.ErrLocationTimeout):
			status = http.StatusGatewayTimeout
		}
		writeProblem(w, status, "Gagal mendapatkan lokasi", app.LocationFailureReason(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"location": c})
}

func (h *Handlers) reportLocation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10))
	if err := dec.Decode(&body); err != nil || body.Lat == nil || body.Lng == nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", `expected {"lat":..,"lng":..}`)
		return
	}
	c := domain.Coords{Lat: *body.Lat, Lng: *body.Lng}
	if err := h.Location.Report(r.Context(), c); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid location", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"location": c})
}

func (h *Handlers) drainNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": h.Inbox.Drain()})
}
