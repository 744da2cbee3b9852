package domain

import "time"

type Cart struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
}

type CartItem struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// Clone returns a copy of the cart whose items do not share memory with c.
func (c *Cart) Clone() *Cart {
	cp := *c
	cp.Items = CloneItems(c.Items)
	return &cp
}

// CloneItems copies items into a fresh, never-nil slice.
func CloneItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}
