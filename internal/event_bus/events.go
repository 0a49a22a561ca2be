package event_bus

const (
	// PaymentCompleted fires when a gateway webhook confirms a bill payment.
	PaymentCompleted EventType = "payment.completed"
)

type PaymentCompletedData struct {
	UserID        int64
	BillID        int64
	BillerName    string
	Amount        float64
	TransactionID string
}
