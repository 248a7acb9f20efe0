package cart

import (
	"sort"
	"sync"

	"github.com/dwelter/storefront-cli/internal/domain"
)

// Store is the in-memory cart. Entries are keyed by the composite
// category/id key, so same-named items from different categories never
// collide. All mutations go through Add/Remove/Clear; subscribers are
// notified after every mutation.
type Store struct {
	mu          sync.Mutex
	entries     map[domain.ItemKey]domain.CartEntry
	subscribers []func()
}

// NewStore creates an empty cart.
func NewStore() *Store {
	return &Store{entries: map[domain.ItemKey]domain.CartEntry{}}
}

// Subscribe registers a callback invoked after every cart mutation.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Add inserts an item with quantity 1 or increments an existing entry. The
// stored snapshot is refreshed to the item just added, so price and image
// always reflect the latest catalog state.
func (s *Store) Add(item domain.MenuItem) {
	s.mu.Lock()
	key := item.Key()
	entry := s.entries[key]
	s.entries[key] = domain.CartEntry{MenuItem: item, Quantity: entry.Quantity + 1}
	s.mu.Unlock()
	s.notify()
}

// Remove decrements an entry's quantity, deleting it entirely at quantity 1.
// Removing an absent key is a no-op.
func (s *Store) Remove(key domain.ItemKey) {
	s.mu.Lock()
	entry, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		return
	}
	if entry.Quantity > 1 {
		entry.Quantity--
		s.entries[key] = entry
	} else {
		delete(s.entries, key)
	}
	s.mu.Unlock()
	s.notify()
}

// Clear empties the cart, used after a successful order submission.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = map[domain.ItemKey]domain.CartEntry{}
	s.mu.Unlock()
	s.notify()
}

// Entries returns the cart content ordered by key for stable display.
func (s *Store) Entries() []domain.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]domain.CartEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key().String() < entries[j].Key().String()
	})
	return entries
}

// Snapshot returns the cart keyed by the composite string key, the shape
// embedded in submitted orders.
func (s *Store) Snapshot() map[string]domain.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make(map[string]domain.CartEntry, len(s.entries))
	for key, entry := range s.entries {
		snapshot[key.String()] = entry
	}
	return snapshot
}

// Count returns the total quantity across all entries.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, entry := range s.entries {
		total += entry.Quantity
	}
	return total
}

// Len returns the number of distinct entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Total recomputes the cart total from the stored price strings and renders
// it with two decimal places. It is never cached: repeated Add calls may
// have refreshed item prices. A malformed price string surfaces as a
// corrupted-catalog error.
func (s *Store) Total() (string, error) {
	total := 0.0
	for _, entry := range s.Entries() {
		line, err := entry.LineTotal()
		if err != nil {
			return "", err
		}
		total += line
	}
	return domain.FormatAmount(total), nil
}

func (s *Store) notify() {
	s.mu.Lock()
	subscribers := make([]func(), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()
	for _, fn := range subscribers {
		fn()
	}
}
