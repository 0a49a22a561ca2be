package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/birrflow/birrflow/pkg/bill"
	"github.com/birrflow/birrflow/pkg/income"
	"github.com/birrflow/birrflow/pkg/preferences"
)

func TestBillEvents(t *testing.T) {
	t.Run("should emit one negated event per unpaid in-range bill", func(t *testing.T) {
		bills := []bill.Bill{
			{ID: 1, Name: "Ethio Telecom", Type: bill.TypeUtility, Amount: 350, DueDate: date("2025-02-10")},
			{ID: 2, Name: "Paid rent", Type: bill.TypeRent, Amount: 5000, DueDate: date("2025-02-12"), IsPaid: true},
			{ID: 3, Name: "Out of range", Type: bill.TypeUtility, Amount: 100, DueDate: date("2025-03-20")},
		}

		events := BillEvents(bills, date("2025-02-01"), date("2025-02-28"))

		assert.Len(t, events, 1)
		assert.Equal(t, EventBill, events[0].Kind)
		assert.Equal(t, -350.0, events[0].Amount)
		assert.Equal(t, int64(1), events[0].Ref.SourceID)
		assert.Nil(t, events[0].Loan)
	})

	t.Run("should value loan bills at the due date and carry the loan terms", func(t *testing.T) {
		bills := []bill.Bill{{
			ID: 7, Name: "Telebirr loan", Type: bill.TypeLoan,
			OriginalAmount: 1000, FacilitationFee: 6, InterestRate: 0.66, PenaltyRate: 0.11,
			LoanStartDate: date("2025-02-01"), DueDate: date("2025-02-11"),
		}}

		events := BillEvents(bills, date("2025-02-01"), date("2025-02-28"))

		assert.Len(t, events, 1)
		assert.InDelta(t, -1006, events[0].Amount, 1e-9)
		assert.NotNil(t, events[0].Loan)
		assert.Equal(t, 1000.0, events[0].Loan.Principal)
	})

	t.Run("should skip bills without a due date", func(t *testing.T) {
		events := BillEvents([]bill.Bill{{ID: 1, Name: "No date", Amount: 10}}, date("2025-02-01"), date("2025-02-28"))

		assert.Empty(t, events)
	})
}

func TestLoanAccrualEvents(t *testing.T) {
	loan := bill.Bill{
		ID: 5, Name: "Loan", Type: bill.TypeLoan,
		OriginalAmount: 1000, InterestRate: 0.66, PenaltyRate: 0.11,
		LoanStartDate: date("2025-02-01"), DueDate: date("2025-02-06"),
	}

	t.Run("should emit daily interest through the due date and penalty after it", func(t *testing.T) {
		events := LoanAccrualEvents([]bill.Bill{loan}, date("2025-02-01"), date("2025-02-11"))

		var interest, penalty []Event
		for _, e := range events {
			switch e.Kind {
			case EventInterest:
				interest = append(interest, e)
			case EventPenalty:
				penalty = append(penalty, e)
			}
		}

		// Feb 1 through Feb 6 inclusive
		assert.Len(t, interest, 6)
		assert.InDelta(t, -6.6, interest[0].Amount, 1e-9)
		// Feb 7 through Feb 11
		assert.Len(t, penalty, 5)
		assert.InDelta(t, -1.1, penalty[0].Amount, 1e-9)
		assert.Equal(t, date("2025-02-07"), penalty[0].Date)
	})

	t.Run("should clamp interest to the window start", func(t *testing.T) {
		events := LoanAccrualEvents([]bill.Bill{loan}, date("2025-02-04"), date("2025-02-06"))

		// Feb 4, 5, 6 only
		assert.Len(t, events, 3)
		for _, e := range events {
			assert.Equal(t, EventInterest, e.Kind)
		}
	})

	t.Run("should emit no penalty when the due date is on or past the window end", func(t *testing.T) {
		events := LoanAccrualEvents([]bill.Bill{loan}, date("2025-02-01"), date("2025-02-06"))

		for _, e := range events {
			assert.NotEqual(t, EventPenalty, e.Kind)
		}
	})

	t.Run("should give each accrual event a distinct ref within the run", func(t *testing.T) {
		events := LoanAccrualEvents([]bill.Bill{loan}, date("2025-02-01"), date("2025-02-11"))

		seen := map[EventRef]bool{}
		for _, e := range events {
			assert.False(t, seen[e.Ref], "duplicate ref %+v", e.Ref)
			seen[e.Ref] = true
		}
	})
}

func TestIncomeEvents(t *testing.T) {
	t.Run("should land a weekly income three times over a fourteen-day window", func(t *testing.T) {
		sources := []income.Source{{ID: 1, Name: "Salary", Amount: 500, Frequency: income.FrequencyWeekly, NextPayDate: date("2025-02-01")}}

		events := IncomeEvents(sources, date("2025-02-01"), date("2025-02-15"))

		assert.Len(t, events, 3)
		assert.Equal(t, date("2025-02-01"), events[0].Date)
		assert.Equal(t, date("2025-02-08"), events[1].Date)
		assert.Equal(t, date("2025-02-15"), events[2].Date)
		assert.Equal(t, 500.0, events[0].Amount)
	})

	t.Run("should fall back to the day after the window start when the pay date is missing", func(t *testing.T) {
		sources := []income.Source{{ID: 2, Name: "Side gig", Amount: 200, Frequency: income.FrequencyMonthly}}

		events := IncomeEvents(sources, date("2025-02-01"), date("2025-02-28"))

		assert.Len(t, events, 1)
		assert.Equal(t, date("2025-02-02"), events[0].Date)
	})

	t.Run("should generate nothing for an unrecognized frequency", func(t *testing.T) {
		sources := []income.Source{{ID: 3, Name: "Odd", Amount: 100, Frequency: "fortnightly", NextPayDate: date("2025-02-05")}}

		events := IncomeEvents(sources, date("2025-02-01"), date("2025-02-28"))

		assert.Empty(t, events)
	})

	t.Run("should advance a stale pay date into the window", func(t *testing.T) {
		sources := []income.Source{{ID: 4, Name: "Salary", Amount: 500, Frequency: income.FrequencyMonthly, NextPayDate: date("2024-11-28")}}

		events := IncomeEvents(sources, date("2025-02-01"), date("2025-03-10"))

		// Dec 28 and Jan 28 precede the window; Mar 28 is past its end
		assert.Len(t, events, 1)
		assert.Equal(t, date("2025-02-28"), events[0].Date)
	})
}

func TestRecurringExpenseEvents(t *testing.T) {
	prefs := preferences.Preferences{
		RecurringExpenses: []preferences.RecurringExpense{
			{Name: "Rent", Amount: 5000, DayOfMonth: 5, Enabled: true},
			{Name: "Internet", Amount: 1000, DayOfMonth: 15, Enabled: true},
			{Name: "Disabled", Amount: 99, DayOfMonth: 20, Enabled: false},
		},
	}

	t.Run("should start in the window's month and roll past occurrences forward", func(t *testing.T) {
		events := RecurringExpenseEvents(prefs, date("2025-02-10"), date("2025-04-10"))

		var rent, internet []Event
		for _, e := range events {
			switch e.Name {
			case "Rent":
				rent = append(rent, e)
			case "Internet":
				internet = append(internet, e)
			default:
				t.Fatalf("unexpected event %q", e.Name)
			}
		}

		// Feb 5 already passed, so Mar 5 and Apr 5
		assert.Len(t, rent, 2)
		assert.Equal(t, date("2025-03-05"), rent[0].Date)
		assert.Equal(t, -5000.0, rent[0].Amount)
		// Feb 15 and Mar 15; Apr 15 is past the end
		assert.Len(t, internet, 2)
		assert.Equal(t, date("2025-02-15"), internet[0].Date)
	})

	t.Run("should land a day past the month's length on the last day", func(t *testing.T) {
		short := preferences.Preferences{
			RecurringExpenses: []preferences.RecurringExpense{{Name: "Payday treat", Amount: 300, DayOfMonth: 31, Enabled: true}},
		}

		events := RecurringExpenseEvents(short, date("2025-01-01"), date("2025-04-30"))

		assert.Len(t, events, 4)
		assert.Equal(t, date("2025-01-31"), events[0].Date)
		assert.Equal(t, date("2025-02-28"), events[1].Date)
		assert.Equal(t, date("2025-03-31"), events[2].Date)
		assert.Equal(t, date("2025-04-30"), events[3].Date)
	})

	t.Run("should tag synthesized expenses with negative source ids", func(t *testing.T) {
		events := RecurringExpenseEvents(prefs, date("2025-02-01"), date("2025-02-28"))

		for _, e := range events {
			assert.Negative(t, e.Ref.SourceID)
		}
	})
}

func TestGenerateEvents(t *testing.T) {
	t.Run("should merge all generators into one date-sorted stream", func(t *testing.T) {
		bills := []bill.Bill{{ID: 1, Name: "Water", Type: bill.TypeUtility, Amount: 100, DueDate: date("2025-02-20")}}
		sources := []income.Source{{ID: 1, Name: "Salary", Amount: 500, Frequency: income.FrequencyWeekly, NextPayDate: date("2025-02-03")}}
		prefs := preferences.Preferences{
			RecurringExpenses: []preferences.RecurringExpense{{Name: "Rent", Amount: 5000, DayOfMonth: 10, Enabled: true}},
		}

		events := GenerateEvents(bills, sources, prefs, date("2025-02-01"), date("2025-02-28"))

		assert.NotEmpty(t, events)
		for i := 1; i < len(events); i++ {
			assert.False(t, events[i].Date.Before(events[i-1].Date), "events out of order at %d", i)
		}
	})
}
