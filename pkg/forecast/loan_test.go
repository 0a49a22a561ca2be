package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/birrflow/birrflow/pkg/bill"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestValueLoan(t *testing.T) {
	loan := bill.Bill{
		ID:              1,
		Name:            "Telebirr loan",
		Type:            bill.TypeLoan,
		Amount:          1000,
		OriginalAmount:  1000,
		FacilitationFee: 6,
		InterestRate:    0.66,
		PenaltyRate:     0.11,
		LoanStartDate:   date("2025-02-01"),
		DueDate:         date("2025-02-11"),
	}

	t.Run("should combine fee deduction and linear interest at the due date", func(t *testing.T) {
		// 1000*0.94 + 1000*0.0066*10
		v := ValueLoan(loan, date("2025-02-11"))

		assert.InDelta(t, 1006, v.Amount, 1e-9)
		assert.InDelta(t, 66, v.Interest, 1e-9)
		assert.Equal(t, 0.0, v.Penalty)
	})

	t.Run("should accrue penalty per day past due", func(t *testing.T) {
		// 5 days late adds 1000*0.0011*5
		v := ValueLoan(loan, date("2025-02-16"))

		assert.InDelta(t, 1011.5, v.Amount, 1e-9)
		assert.InDelta(t, 5.5, v.Penalty, 1e-9)
	})

	t.Run("should accrue interest and penalty on the raw principal, not the fee-adjusted amount", func(t *testing.T) {
		v := ValueLoan(loan, date("2025-02-16"))

		// interest 66 on 1000, never 66*0.94
		assert.InDelta(t, 66, v.Interest, 1e-9)
	})

	t.Run("should fall back to the nominal amount when no original principal is set", func(t *testing.T) {
		noOriginal := loan
		noOriginal.OriginalAmount = 0
		noOriginal.Amount = 500

		v := ValueLoan(noOriginal, date("2025-02-11"))

		assert.InDelta(t, 500*0.94+500*0.0066*10, v.Amount, 1e-9)
	})

	t.Run("should pass non-loan bills through unchanged", func(t *testing.T) {
		utility := bill.Bill{Name: "Water", Type: bill.TypeUtility, Amount: 350, DueDate: date("2025-02-11")}

		v := ValueLoan(utility, date("2025-03-01"))

		assert.Equal(t, 350.0, v.Amount)
		assert.Equal(t, 0.0, v.Interest)
		assert.Equal(t, 0.0, v.Penalty)
	})
}
