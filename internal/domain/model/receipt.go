package model

import "time"

// Receipt is the frozen result of a checkout.
type Receipt struct {
	ID       string
	IssuedAt time.Time
	Lines    []CartLine
	Totals   Totals
}

// ItemCount returns the sum of quantities on the receipt.
func (r Receipt) ItemCount() int {
	n := 0
	for _, l := range r.Lines {
		n += l.Quantity
	}
	return n
}
