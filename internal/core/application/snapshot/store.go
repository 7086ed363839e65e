// Package snapshot holds the in-memory view of the persisted collections.
//
// The store is replaced wholesale whenever storage reports a change; it is
// never patched incrementally. Readers receive deep copies, so the pure
// domain services can work on them without locking.
package snapshot

import (
	"slices"
	"sync"
	"time"

	"scantrack/internal/core/domain/model/operator"
	"scantrack/internal/core/domain/model/order"
)

// Snapshot is one consistent view of orders and operators.
type Snapshot struct {
	Orders    []*order.Order
	Operators []operator.Operator
	Version   uint64
	LoadedAt  time.Time
}

// Store is the single owner of the current Snapshot.
type Store struct {
	mu      sync.RWMutex
	current Snapshot
	loaded  bool

	subMu  sync.Mutex
	nextID int
	subs   map[int]chan uint64
}

func NewStore() *Store {
	return &Store{subs: make(map[int]chan uint64)}
}

// Current returns a deep copy of the latest snapshot.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Orders:    cloneOrders(s.current.Orders),
		Operators: slices.Clone(s.current.Operators),
		Version:   s.current.Version,
		LoadedAt:  s.current.LoadedAt,
	}
}

// Loaded reports whether at least one full load has happened.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// ReplaceOrders swaps the order collection and notifies subscribers.
func (s *Store) ReplaceOrders(orders []*order.Order, at time.Time) uint64 {
	s.mu.Lock()
	s.current.Orders = cloneOrders(orders)
	v := s.bump(at)
	s.mu.Unlock()

	s.notify(v)
	return v
}

// ReplaceOperators swaps the operator roster and notifies subscribers.
func (s *Store) ReplaceOperators(operators []operator.Operator, at time.Time) uint64 {
	s.mu.Lock()
	s.current.Operators = slices.Clone(operators)
	v := s.bump(at)
	s.mu.Unlock()

	s.notify(v)
	return v
}

// Replace swaps both collections at once.
func (s *Store) Replace(orders []*order.Order, operators []operator.Operator, at time.Time) uint64 {
	s.mu.Lock()
	s.current.Orders = cloneOrders(orders)
	s.current.Operators = slices.Clone(operators)
	s.loaded = true
	v := s.bump(at)
	s.mu.Unlock()

	s.notify(v)
	return v
}

// must hold s.mu
func (s *Store) bump(at time.Time) uint64 {
	s.current.Version++
	s.current.LoadedAt = at
	return s.current.Version
}

// Subscribe returns a channel receiving the version of every replacement.
// Slow subscribers miss intermediate versions. Call cancel to unsubscribe.
func (s *Store) Subscribe() (<-chan uint64, func()) {
	ch := make(chan uint64, 1)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (s *Store) notify(version uint64) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- version:
		default:
		}
	}
}

func cloneOrders(orders []*order.Order) []*order.Order {
	out := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Clone())
	}
	return out
}
