package domain

import (
	"fmt"
	"strings"
)

type ReceiptLine struct {
	Name  string
	Price int64
}

// Receipt is an immutable checkout summary: one line per order line, in
// insertion order, plus the arithmetic sum of prices.
type Receipt struct {
	Lines []ReceiptLine
	Total int64
}

func (r Receipt) String() string {
	var b strings.Builder
	b.WriteString("Ваш чек:\n")
	for _, l := range r.Lines {
		fmt.Fprintf(&b, "%s: %d грн\n", l.Name, l.Price)
	}
	fmt.Fprintf(&b, "Загальна сума: %d грн", r.Total)
	return b.String()
}
