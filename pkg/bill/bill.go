package bill

import "time"

type BillType string

const (
	TypeUtility   BillType = "utility"
	TypeLoan      BillType = "loan"
	TypeSchool    BillType = "school"
	TypeRent      BillType = "rent"
	TypeInsurance BillType = "insurance"
	TypeOther     BillType = "other"
)

type Recurrence string

const (
	RecurrenceNone      Recurrence = "none"
	RecurrenceDaily     Recurrence = "daily"
	RecurrenceWeekly    Recurrence = "weekly"
	RecurrenceMonthly   Recurrence = "monthly"
	RecurrenceQuarterly Recurrence = "quarterly"
	RecurrenceYearly    Recurrence = "yearly"
)

// Bill is a payment obligation. Loan bills carry the pricing terms used
// by the cash-flow projection; for all other types those fields are zero.
// A zero DueDate or LoanStartDate marks an absent or unparseable date.
type Bill struct {
	ID         int64
	Name       string
	Amount     float64
	DueDate    time.Time
	Type       BillType
	Recurrence Recurrence
	IsPaid     bool

	OriginalAmount  float64
	LoanStartDate   time.Time
	FacilitationFee float64
	InterestRate    float64
	PenaltyRate     float64

	CreatedAt time.Time
}

func (b Bill) IsLoan() bool {
	return b.Type == TypeLoan
}
