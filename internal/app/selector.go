package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"petasare/internal/adapters/observability"
	"petasare/internal/domain"
)

// Selector memoizes Select over a fixed catalog, keyed on the inputs.
type Selector struct {
	catalog *Catalog
	memo    *lru.Cache[string, []domain.Hotel]
}

func NewSelector(c *Catalog, size int) (*Selector, error) {
	if size <= 0 {
		size = 128
	}
	memo, err := lru.New[string, []domain.Hotel](size)
	if err != nil {
		return nil, fmt.Errorf("selection memo: %w", err)
	}
	return &Selector{catalog: c, memo: memo}, nil
}

// Select returns the same hotels as Select(catalog.Hotels(), in). The
// returned slice is the caller's to keep.
func (s *Selector) Select(in Input) []domain.Hotel {
	key := memoKey(in)
	if hs, ok := s.memo.Get(key); ok {
		observability.ObserveSelection("hit")
		return append([]domain.Hotel(nil), hs...)
	}
	observability.ObserveSelection("miss")
	hs := Select(s.catalog.Hotels(), in)
	s.memo.Add(key, hs)
	return append([]domain.Hotel(nil), hs...)
}

func (s *Selector) Catalog() *Catalog { return s.catalog }

// memoKey is canonical: facility order and query case do not change the
// result, and the bookmark set only matters in bookmarks-only mode.
func memoKey(in Input) string {
	var b strings.Builder
	f := in.Filters
	fmt.Fprintf(&b, "c=%d|p=%d|r=%d|d=%d|", f.Category, f.Price, f.Rating, f.Distance)

	tags := append([]string(nil), f.Facilities...)
	sort.Strings(tags)
	b.WriteString("f=")
	for _, t := range tags {
		b.WriteString(strconv.Quote(t))
		b.WriteByte(',')
	}

	b.WriteString("|q=")
	b.WriteString(strconv.Quote(strings.ToLower(in.Query)))

	if in.BookmarksOnly {
		ids := make([]int64, 0, len(in.Bookmarks))
		for id := range in.Bookmarks {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		b.WriteString("|b=")
		for _, id := range ids {
			b.WriteString(strconv.FormatInt(id, 10))
			b.WriteByte(',')
		}
	}

	b.WriteString("|l=")
	if in.Location != nil {
		b.WriteString(strconv.FormatFloat(in.Location.Lat, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(in.Location.Lng, 'g', -1, 64))
	}
	return b.String()
}
