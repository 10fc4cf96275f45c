package domain

import (
	"strings"
	"sync"
	"time"
)

// OrderLine is a per-user copy of a catalog dish. Its ingredient set only
// shrinks (via exclusions), never grows.
type OrderLine struct {
	Name        string
	Ingredients []string
	Price       int64
}

// Turn records one utterance/reply exchange. History is collected but not
// replayed into later model calls; only the live order summary is.
type Turn struct {
	Utterance string
	Reply     string
	At        time.Time
}

// UserOrder holds one user's accumulated order lines and conversation
// history. All methods are safe for concurrent use.
type UserOrder struct {
	UserID int64

	mu      sync.Mutex
	lines   []OrderLine
	history []Turn
}

func NewUserOrder(userID int64) *UserOrder {
	return &UserOrder{UserID: userID}
}

// AddLine appends a copy of the dish to the order.
func (o *UserOrder) AddLine(d Dish) {
	c := d.Clone()
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, OrderLine{
		Name:        c.Name,
		Ingredients: c.Ingredients,
		Price:       c.Price,
	})
}

// ExcludeIngredient removes every ingredient matching name (case-insensitive,
// exact token) from every line in the order. Idempotent.
func (o *UserOrder) ExcludeIngredient(name string) {
	target := strings.ToLower(name)
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := range o.lines {
		kept := o.lines[i].Ingredients[:0]
		for _, ing := range o.lines[i].Ingredients {
			if strings.ToLower(ing) != target {
				kept = append(kept, ing)
			}
		}
		o.lines[i].Ingredients = kept
	}
}

// LineNames returns the dish names in insertion order.
func (o *UserOrder) LineNames() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	names := make([]string, len(o.lines))
	for i, l := range o.lines {
		names[i] = l.Name
	}
	return names
}

// Lines returns a deep-copy snapshot of the order lines.
func (o *UserOrder) Lines() []OrderLine {
	o.mu.Lock()
	defer o.mu.Unlock()
	lines := make([]OrderLine, len(o.lines))
	for i, l := range o.lines {
		ingredients := make([]string, len(l.Ingredients))
		copy(ingredients, l.Ingredients)
		lines[i] = OrderLine{Name: l.Name, Ingredients: ingredients, Price: l.Price}
	}
	return lines
}

// Record appends one turn to the conversation history.
func (o *UserOrder) Record(utterance, reply string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = append(o.history, Turn{Utterance: utterance, Reply: reply, At: time.Now()})
}

// History returns a snapshot of the recorded turns.
func (o *UserOrder) History() []Turn {
	o.mu.Lock()
	defer o.mu.Unlock()
	history := make([]Turn, len(o.history))
	copy(history, o.history)
	return history
}
