package domain

import "time"

// Order is a checkout snapshot. It is never updated after creation.
type Order struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	CartID    int64      `json:"cart_id"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	CreatedAt time.Time  `json:"created_at"`
}

func (o *Order) Clone() *Order {
	cp := *o
	cp.Items = CloneItems(o.Items)
	return &cp
}
