package payment

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Payment tracks one bill settlement through the external gateway.
// TransactionID is the reference shared with the gateway; the webhook
// uses it to find the payment again.
type Payment struct {
	ID            int64
	BillID        int64
	Amount        float64
	TransactionID string
	Status        Status
	CreatedAt     time.Time
}
