package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"petasare/internal/adapters/observability"
	"petasare/internal/domain"
)

// BookmarksKey is the storage key holding the JSON array of bookmarked ids.
const BookmarksKey = "hotelBookmarks"

// BookmarkStore is the process-wide bookmark set, written through to a
// KVStore on every toggle.
type BookmarkStore struct {
	kv domain.KVStore

	mu  sync.RWMutex
	ids map[int64]struct{}
}

func NewBookmarkStore(kv domain.KVStore) *BookmarkStore {
	return &BookmarkStore{kv: kv, ids: map[int64]struct{}{}}
}

// Load replaces the in-memory set with the persisted one. Absent or
// malformed data yields an empty set; only storage failures are returned.
func (s *BookmarkStore) Load(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, BookmarksKey)
	if errors.Is(err, domain.ErrNotFound) {
		s.replace(map[int64]struct{}{})
		return nil
	}
	if err != nil {
		s.replace(map[int64]struct{}{})
		return fmt.Errorf("read bookmarks: %w", err)
	}

	ids, perr := decodeBookmarks(raw)
	if perr != nil {
		log.Warn().Err(perr).Int("bytes", len(raw)).Msg("discarding malformed bookmarks")
		ids = map[int64]struct{}{}
	}
	s.replace(ids)
	log.Debug().Int("count", len(ids)).Msg("bookmarks loaded")
	return nil
}

func (s *BookmarkStore) replace(ids map[int64]struct{}) {
	s.mu.Lock()
	s.ids = ids
	s.mu.Unlock()
}

// Toggle flips id and persists the resulting set. When the write fails the
// in-memory set is left as it was, so memory and storage never diverge.
func (s *BookmarkStore) Toggle(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[int64]struct{}, len(s.ids)+1)
	for k := range s.ids {
		next[k] = struct{}{}
	}
	_, had := next[id]
	if had {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}

	raw, err := json.Marshal(sortedIDs(next))
	if err != nil {
		return had, err
	}
	if err := s.kv.Put(ctx, BookmarksKey, raw); err != nil {
		return had, fmt.Errorf("persist bookmarks: %w", err)
	}
	s.ids = next
	observability.ObserveBookmarkToggle(!had)
	return !had, nil
}

func (s *BookmarkStore) Contains(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// IDs returns the bookmarked ids in ascending order.
func (s *BookmarkStore) IDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedIDs(s.ids)
}

// Snapshot copies the set for use as engine input.
func (s *BookmarkStore) Snapshot() map[int64]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]struct{}, len(s.ids))
	for k := range s.ids {
		out[k] = struct{}{}
	}
	return out
}

// decodeBookmarks accepts only a JSON array of integers. null counts as empty.
func decodeBookmarks(raw []byte) (map[int64]struct{}, error) {
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	out := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

func sortedIDs(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
