package order_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"food-assistant/internal/domain"
	"food-assistant/internal/order"
)

func TestStore_GetCreatesOnce(t *testing.T) {
	s := order.NewStore()

	first := s.Get(42)
	second := s.Get(42)

	if first != second {
		t.Error("Get returned different orders for the same user")
	}
	if first.UserID != 42 {
		t.Errorf("user id: got %d, want 42", first.UserID)
	}
}

func TestStore_CheckoutEmpty(t *testing.T) {
	s := order.NewStore()

	if _, err := s.Checkout(1); !errors.Is(err, order.ErrEmptyOrder) {
		t.Errorf("unknown user: got %v, want ErrEmptyOrder", err)
	}

	s.Get(2)
	if _, err := s.Checkout(2); !errors.Is(err, order.ErrEmptyOrder) {
		t.Errorf("user with empty order: got %v, want ErrEmptyOrder", err)
	}
}

func TestStore_CheckoutTotalsAndOrder(t *testing.T) {
	s := order.NewStore()
	o := s.Get(1)
	o.AddLine(domain.Dish{Name: "Суші з лососем", Price: 200})
	o.AddLine(domain.Dish{Name: "Салат Цезар", Price: 120})

	receipt, err := s.Checkout(1)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if receipt.Total != 320 {
		t.Errorf("total: got %d, want 320", receipt.Total)
	}
	if len(receipt.Lines) != 2 || receipt.Lines[0].Name != "Суші з лососем" || receipt.Lines[1].Name != "Салат Цезар" {
		t.Errorf("lines out of order: %v", receipt.Lines)
	}
}

func TestStore_CheckoutDoesNotMutate(t *testing.T) {
	s := order.NewStore()
	o := s.Get(1)
	o.AddLine(domain.Dish{Name: "Піца 'Маргарита'", Ingredients: []string{"томат"}, Price: 150})

	first, err := s.Checkout(1)
	if err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	second, err := s.Checkout(1)
	if err != nil {
		t.Fatalf("second checkout: %v", err)
	}

	if first.Total != second.Total || len(first.Lines) != len(second.Lines) {
		t.Errorf("checkout mutated the order: %v vs %v", first, second)
	}
}

func TestStore_UsersIsolated(t *testing.T) {
	s := order.NewStore()
	s.Get(1).AddLine(domain.Dish{Name: "Паста Карбонара", Ingredients: []string{"бекон"}, Price: 180})
	s.Get(1).ExcludeIngredient("бекон")

	s.Get(2).AddLine(domain.Dish{Name: "Паста Карбонара", Ingredients: []string{"бекон"}, Price: 180})

	if got := s.Get(2).Lines()[0].Ingredients; len(got) != 1 {
		t.Errorf("exclusion leaked across users: %v", got)
	}
}

func TestStore_LockUserSerializes(t *testing.T) {
	s := order.NewStore()

	unlock := s.LockUser(7)

	acquired := make(chan struct{})
	go func() {
		defer s.LockUser(7)()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock never acquired after unlock")
	}
}

func TestStore_ConcurrentGet(t *testing.T) {
	s := order.NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.Get(id % 5).AddLine(domain.Dish{Name: "Салат Цезар", Price: 120})
		}(int64(i))
	}
	wg.Wait()

	total := 0
	for id := int64(0); id < 5; id++ {
		total += len(s.Get(id).Lines())
	}
	if total != 50 {
		t.Errorf("lines after concurrent adds: got %d, want 50", total)
	}
}
