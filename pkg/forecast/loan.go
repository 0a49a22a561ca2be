package forecast

import (
	"time"

	"github.com/birrflow/birrflow/pkg/bill"
)

// LoanValuation is the amount owed on a loan at a given date, with the
// accrued components broken out.
type LoanValuation struct {
	Amount   float64
	Interest float64
	Penalty  float64
}

func loanPrincipal(b bill.Bill) float64 {
	if b.OriginalAmount != 0 {
		return b.OriginalAmount
	}
	return b.Amount
}

// ValueLoan computes what a loan bill costs when settled on the given
// date. The facilitation fee is a one-time deduction from the principal;
// interest accrues linearly per day from the loan start to the due date,
// and penalty accrues linearly per day past due. Both accrue on the raw
// principal, not the fee-adjusted amount, and neither compounds.
// Non-loan bills pass through at their nominal amount.
func ValueLoan(b bill.Bill, at time.Time) LoanValuation {
	if !b.IsLoan() {
		return LoanValuation{Amount: b.Amount}
	}

	principal := loanPrincipal(b)
	daysUntilDue := 0
	if !b.LoanStartDate.IsZero() && !b.DueDate.IsZero() {
		daysUntilDue = wholeDays(b.LoanStartDate, b.DueDate)
	}
	daysAfterDue := 0
	if !b.DueDate.IsZero() {
		if d := wholeDays(b.DueDate, at); d > 0 {
			daysAfterDue = d
		}
	}

	amountAfterFee := principal * (1 - b.FacilitationFee/100)
	interest := principal * (b.InterestRate / 100) * float64(daysUntilDue)
	penalty := 0.0
	if daysAfterDue > 0 {
		penalty = principal * (b.PenaltyRate / 100) * float64(daysAfterDue)
	}

	return LoanValuation{
		Amount:   amountAfterFee + interest + penalty,
		Interest: interest,
		Penalty:  penalty,
	}
}

// wholeDays counts calendar days from a to b, negative when b precedes a.
func wholeDays(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}

// dateOnly truncates to UTC midnight so day arithmetic ignores clock time.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
