package notification

import "time"

type Type string

const (
	TypeBill    Type = "bill"
	TypeBalance Type = "balance"
	TypePayment Type = "payment"
	TypeSystem  Type = "system"
)

// Notification is an in-app message for a user. MessageAm carries the
// Amharic rendering when one exists.
type Notification struct {
	ID        int64
	Type      Type
	Message   string
	MessageAm string
	Data      string
	IsRead    bool
	CreatedAt time.Time
}
