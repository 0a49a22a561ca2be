package community

import "time"

// Tip is a short money-saving note shared by a user, optionally tagged
// with the region it applies to.
type Tip struct {
	ID        int64
	UserID    int64
	Content   string
	Region    string
	CreatedAt time.Time
}

// PriceComparison is a crowd-sourced price observation for an item at a
// specific market.
type PriceComparison struct {
	ID        int64
	UserID    int64
	ItemName  string
	Price     float64
	Market    string
	Region    string
	CreatedAt time.Time
}
