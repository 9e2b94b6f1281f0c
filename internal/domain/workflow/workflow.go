// Package workflow tracks the shipping state machine for an order. The only
// transition is pending -> shipped, guarded by a row lock so a double scan
// ships exactly once.
package workflow

import "time"

type Status string

const (
	StatusPending Status = "pending"
	StatusShipped Status = "shipped"
)

type State struct {
	ShopDomain string
	OrderID    string
	Status     Status
	ShippedAt  *time.Time
	UpdatedAt  time.Time
}

// CanShip reports whether the shipped transition is still open.
func (s *State) CanShip() bool {
	return s.Status == StatusPending
}
