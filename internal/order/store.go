// Package order owns all per-user order state. Nothing outside this package
// and the domain types it hands out may mutate order contents.
package order

import (
	"errors"
	"sync"

	"food-assistant/internal/domain"
)

// ErrEmptyOrder is returned by Checkout when the user has no order lines.
var ErrEmptyOrder = errors.New("order is empty")

// Store maps user ids to their orders. Orders are created lazily on first
// access and live for the process lifetime.
type Store struct {
	mu     sync.RWMutex
	orders map[int64]*domain.UserOrder

	userLocks sync.Map // user id -> *sync.Mutex
}

func NewStore() *Store {
	return &Store{orders: make(map[int64]*domain.UserOrder)}
}

// Get returns the user's order, creating an empty one on first access.
func (s *Store) Get(userID int64) *domain.UserOrder {
	s.mu.RLock()
	o, ok := s.orders[userID]
	s.mu.RUnlock()
	if ok {
		return o
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[userID]; ok {
		return o
	}
	o = domain.NewUserOrder(userID)
	s.orders[userID] = o
	return o
}

// LockUser serializes turns for one user id and returns the unlock function.
// Turns for different users proceed in parallel.
func (s *Store) LockUser(userID int64) func() {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Checkout builds a receipt for the user's order without mutating it.
func (s *Store) Checkout(userID int64) (domain.Receipt, error) {
	s.mu.RLock()
	o, ok := s.orders[userID]
	s.mu.RUnlock()
	if !ok {
		return domain.Receipt{}, ErrEmptyOrder
	}

	lines := o.Lines()
	if len(lines) == 0 {
		return domain.Receipt{}, ErrEmptyOrder
	}

	receipt := domain.Receipt{Lines: make([]domain.ReceiptLine, len(lines))}
	for i, l := range lines {
		receipt.Lines[i] = domain.ReceiptLine{Name: l.Name, Price: l.Price}
		receipt.Total += l.Price
	}
	return receipt, nil
}
