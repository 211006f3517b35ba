// Package store holds the raw normalized inbox items for a session.
package store

import "github.com/echodeck/echodeck/internal/model"

// ItemStore is the flat list of inbox items for one session, with O(1)
// lookup by id. The store is replaced wholesale on each refresh; items are
// never mutated in place.
type ItemStore struct {
	items []model.InboxItem
	byID  map[string]int
}

// New creates a store over the given items. Later duplicates of an id win
// the index slot, matching last-write semantics of a refresh union.
func New(items []model.InboxItem) *ItemStore {
	s := &ItemStore{
		items: items,
		byID:  make(map[string]int, len(items)),
	}
	for i, item := range items {
		s.byID[item.ID] = i
	}
	return s
}

// Empty returns a store with no items.
func Empty() *ItemStore {
	return New(nil)
}

// Get returns the item with the given id.
func (s *ItemStore) Get(id string) (model.InboxItem, bool) {
	i, ok := s.byID[id]
	if !ok {
		return model.InboxItem{}, false
	}
	return s.items[i], true
}

// Items returns all items in insertion order. The returned slice is shared;
// callers must not mutate it.
func (s *ItemStore) Items() []model.InboxItem {
	return s.items
}

// Len returns the number of items held.
func (s *ItemStore) Len() int {
	return len(s.items)
}
