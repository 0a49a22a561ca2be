package expense

import "time"

type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryOther         Category = "other"
)

type Expense struct {
	ID          int64
	AccountID   int64
	Amount      float64
	Description string
	Category    Category
	CreatedAt   time.Time
}
