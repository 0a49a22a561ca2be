package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/birrflow/birrflow/pkg/account"
	"github.com/birrflow/birrflow/pkg/preferences"
)

// flatPrefs has no recurring expenses, no significant dates and no
// inflation, so only explicitly passed events move balances.
func flatPrefs() preferences.Preferences {
	return preferences.Preferences{
		Multipliers: preferences.Multipliers{MonthEnd: 1.3, SignificantDate: 1.5, Regular: 1},
	}
}

func TestProject_LengthInvariant(t *testing.T) {
	t.Run("should return one entry per calendar day, dates increasing by one", func(t *testing.T) {
		accounts := []account.Account{{ID: 1, Name: "Main", Balance: 1000}}

		days, err := Project(date("2025-02-01"), date("2025-03-02"), accounts, nil, flatPrefs(), 0)

		assert.NoError(t, err)
		assert.Len(t, days, 30)
		for i := 1; i < len(days); i++ {
			assert.Equal(t, days[i-1].Date.AddDate(0, 0, 1), days[i].Date)
		}
	})

	t.Run("should return a single opening day for a zero-length range", func(t *testing.T) {
		days, err := Project(date("2025-02-01"), date("2025-02-01"), nil, nil, flatPrefs(), 0)

		assert.NoError(t, err)
		assert.Len(t, days, 1)
	})
}

func TestProject_DayZero(t *testing.T) {
	t.Run("should open with the exact balance sum and no events, even when events fall on the start date", func(t *testing.T) {
		accounts := []account.Account{
			{ID: 1, Name: "Main", Balance: 1000},
			{ID: 2, Name: "Savings", Balance: 2000},
		}
		events := []Event{{Date: date("2025-02-01"), Kind: EventIncome, Amount: 500, Name: "Salary"}}
		prefs := flatPrefs()
		prefs.InflationRate = 0.13

		days, err := Project(date("2025-02-01"), date("2025-02-03"), accounts, events, prefs, 0)

		assert.NoError(t, err)
		assert.Equal(t, 3000.0, days[0].TotalBalance)
		assert.Empty(t, days[0].Events)
		// the start-date income never lands on any later day either
		for _, d := range days[1:] {
			for _, e := range d.Events {
				assert.NotEqual(t, "Salary", e.Name)
			}
		}
	})
}

func TestProject_PrimaryAccountOnly(t *testing.T) {
	t.Run("should apply events to the first account only, others change by inflation alone", func(t *testing.T) {
		// the first account is foreign, so it skips inflation; any drift
		// in the aggregate beyond its credited income would mean events
		// leaked into the second account
		accounts := []account.Account{
			{ID: 1, Name: "USD wallet", Balance: 1000},
			{ID: 2, Name: "Birr savings", Balance: 2000},
		}
		events := []Event{{Date: date("2025-02-02"), Kind: EventIncome, Amount: 100, Name: "Salary", Ref: EventRef{Kind: EventIncome, SourceID: 1}}}
		prefs := flatPrefs()
		prefs.InflationRate = 0.365 // daily decay factor 0.999 exactly

		days, err := Project(date("2025-02-01"), date("2025-02-04"), accounts, events, prefs, 0)

		assert.NoError(t, err)
		decay := 1 - 0.365/365
		assert.InDelta(t, 1100+2000*decay, days[1].TotalBalance, 1e-9)
		assert.InDelta(t, 1100+2000*decay*decay, days[2].TotalBalance, 1e-9)
		assert.InDelta(t, 1100+2000*decay*decay*decay, days[3].TotalBalance, 1e-9)
	})
}

func TestProject_TransactionFees(t *testing.T) {
	accounts := []account.Account{{ID: 1, Name: "Main", Balance: 1000}}

	t.Run("should charge no fee on a debit of exactly the threshold", func(t *testing.T) {
		events := []Event{{Date: date("2025-02-02"), Kind: EventBill, Amount: -100, Name: "Water", Ref: EventRef{Kind: EventBill, SourceID: 1}}}

		days, err := Project(date("2025-02-01"), date("2025-02-02"), accounts, events, flatPrefs(), 0)

		assert.NoError(t, err)
		assert.Len(t, days[1].Events, 1)
		assert.InDelta(t, 900, days[1].TotalBalance, 1e-9)
	})

	t.Run("should charge a flat fee on a debit just over the threshold", func(t *testing.T) {
		events := []Event{{Date: date("2025-02-02"), Kind: EventBill, Amount: -100.01, Name: "Water", Ref: EventRef{Kind: EventBill, SourceID: 1}}}

		days, err := Project(date("2025-02-01"), date("2025-02-02"), accounts, events, flatPrefs(), 0)

		assert.NoError(t, err)
		assert.Len(t, days[1].Events, 2)
		assert.Equal(t, EventFee, days[1].Events[1].Kind)
		assert.Equal(t, -2.0, days[1].Events[1].Amount)
		assert.InDelta(t, 1000-100.01-2, days[1].TotalBalance, 1e-9)
	})

	t.Run("should not charge fees on credits", func(t *testing.T) {
		events := []Event{{Date: date("2025-02-02"), Kind: EventIncome, Amount: 5000, Name: "Salary", Ref: EventRef{Kind: EventIncome, SourceID: 1}}}

		days, err := Project(date("2025-02-01"), date("2025-02-02"), accounts, events, flatPrefs(), 0)

		assert.NoError(t, err)
		assert.Len(t, days[1].Events, 1)
	})
}

func TestProject_RefUniqueness(t *testing.T) {
	accounts := []account.Account{{ID: 1, Name: "Main", Balance: 10000}}

	t.Run("should keep refs distinct when the buffer and a holiday land on one day", func(t *testing.T) {
		// Jan 7 (Ethiopian Christmas) synthesizes both a scaled buffer
		// expense and an extra-spending expense
		days, err := Project(date("2025-01-06"), date("2025-01-08"), accounts, nil, preferences.DefaultPreferences(), 50)

		assert.NoError(t, err)
		assert.Len(t, days[1].Events, 2)
		seen := map[EventRef]string{}
		for _, day := range days {
			for _, e := range day.Events {
				prev, dup := seen[e.Ref]
				assert.Falsef(t, dup, "ref %+v used by both %q and %q", e.Ref, prev, e.Name)
				seen[e.Ref] = e.Name
			}
		}
	})

	t.Run("should number fee refs so same-source fees on one day stay distinct", func(t *testing.T) {
		// a loan due on its start date lands the bill event and an
		// interest event together, both large enough to attract a fee
		events := []Event{
			{Date: date("2025-02-02"), Kind: EventBill, Amount: -1006, Name: "CBE loan", Ref: EventRef{Kind: EventBill, SourceID: 7}},
			{Date: date("2025-02-02"), Kind: EventInterest, Amount: -150, Name: "CBE loan interest", Ref: EventRef{Kind: EventInterest, SourceID: 7}},
		}

		days, err := Project(date("2025-02-01"), date("2025-02-02"), accounts, events, flatPrefs(), 0)

		assert.NoError(t, err)
		var feeRefs []EventRef
		for _, e := range days[1].Events {
			if e.Kind == EventFee {
				feeRefs = append(feeRefs, e.Ref)
			}
		}
		assert.Len(t, feeRefs, 2)
		assert.NotEqual(t, feeRefs[0], feeRefs[1])
	})
}

func TestProject_DailyBuffer(t *testing.T) {
	accounts := []account.Account{{ID: 1, Name: "Main", Balance: 10000}}

	t.Run("should scale the buffer by the month-end multiplier from day 25", func(t *testing.T) {
		days, err := Project(date("2025-02-23"), date("2025-02-26"), accounts, nil, flatPrefs(), 100)

		assert.NoError(t, err)
		// Feb 24 is a regular day, Feb 25 and 26 are month-end
		assert.InDelta(t, -100, days[1].Events[0].Amount, 1e-9)
		assert.InDelta(t, -130, days[2].Events[0].Amount, 1e-9)
		assert.InDelta(t, -130, days[3].Events[0].Amount, 1e-9)
	})

	t.Run("should let the significant-date multiplier win over month-end", func(t *testing.T) {
		prefs := flatPrefs()
		prefs.SignificantDates = []preferences.SignificantDate{
			{Name: "Meskel", MonthDay: "02-26", ExtraSpending: 500, Enabled: true},
		}

		days, err := Project(date("2025-02-25"), date("2025-02-26"), accounts, nil, prefs, 100)

		assert.NoError(t, err)
		assert.Len(t, days[1].Events, 2)
		assert.InDelta(t, -150, days[1].Events[0].Amount, 1e-9)
		assert.Equal(t, -500.0, days[1].Events[1].Amount)
		assert.Equal(t, "Meskel", days[1].Events[1].Name)
	})

	t.Run("should synthesize no buffer events when the buffer is zero", func(t *testing.T) {
		days, err := Project(date("2025-02-01"), date("2025-02-03"), accounts, nil, flatPrefs(), 0)

		assert.NoError(t, err)
		for _, d := range days {
			assert.Empty(t, d.Events)
		}
	})

	t.Run("should not charge transaction fees on synthesized buffer spending", func(t *testing.T) {
		days, err := Project(date("2025-02-01"), date("2025-02-02"), accounts, nil, flatPrefs(), 400)

		assert.NoError(t, err)
		// just the buffer expense, no fee despite exceeding the threshold
		assert.Len(t, days[1].Events, 1)
		assert.Equal(t, EventExpense, days[1].Events[0].Kind)
	})
}

func TestProject_Inflation(t *testing.T) {
	t.Run("should decay non-foreign accounts daily", func(t *testing.T) {
		accounts := []account.Account{{ID: 1, Name: "Main", Balance: 1000}}
		prefs := flatPrefs()
		prefs.InflationRate = 0.13

		days, err := Project(date("2025-02-01"), date("2025-02-03"), accounts, nil, prefs, 0)

		assert.NoError(t, err)
		decay := 1 - 0.13/365
		assert.InDelta(t, 1000*decay, days[1].TotalBalance, 1e-9)
		assert.InDelta(t, 1000*decay*decay, days[2].TotalBalance, 1e-9)
	})

	t.Run("should skip accounts held in a foreign currency", func(t *testing.T) {
		accounts := []account.Account{{ID: 1, Name: "My USD Account", Balance: 1000}}
		prefs := flatPrefs()
		prefs.InflationRate = 0.13

		days, err := Project(date("2025-02-01"), date("2025-02-05"), accounts, nil, prefs, 0)

		assert.NoError(t, err)
		for _, d := range days {
			assert.Equal(t, 1000.0, d.TotalBalance)
		}
	})

	t.Run("should trust an explicit currency over the account name", func(t *testing.T) {
		accounts := []account.Account{{ID: 1, Name: "My USD Account", Currency: "ETB", Balance: 1000}}
		prefs := flatPrefs()
		prefs.InflationRate = 0.13

		days, err := Project(date("2025-02-01"), date("2025-02-02"), accounts, nil, prefs, 0)

		assert.NoError(t, err)
		assert.InDelta(t, 1000*(1-0.13/365), days[1].TotalBalance, 1e-9)
	})
}

func TestProject_Validation(t *testing.T) {
	t.Run("should reject an inverted date range", func(t *testing.T) {
		_, err := Project(date("2025-02-10"), date("2025-02-01"), nil, nil, flatPrefs(), 0)

		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("should reject a non-finite spending buffer", func(t *testing.T) {
		_, err := Project(date("2025-02-01"), date("2025-02-10"), nil, nil, flatPrefs(), math.NaN())
		assert.Error(t, err)

		_, err = Project(date("2025-02-01"), date("2025-02-10"), nil, nil, flatPrefs(), math.Inf(1))
		assert.Error(t, err)
	})

	t.Run("should reject a non-finite account balance", func(t *testing.T) {
		accounts := []account.Account{{ID: 1, Name: "Main", Balance: math.NaN()}}

		_, err := Project(date("2025-02-01"), date("2025-02-10"), accounts, nil, flatPrefs(), 0)

		assert.Error(t, err)
	})
}

func TestProject_GeneratedExpenseFees(t *testing.T) {
	t.Run("should charge fees on recurring local expenses over the threshold", func(t *testing.T) {
		accounts := []account.Account{{ID: 1, Name: "Main", Balance: 10000}}
		prefs := flatPrefs()
		prefs.RecurringExpenses = []preferences.RecurringExpense{
			{Name: "House Rent", Amount: 5000, DayOfMonth: 2, Enabled: true},
		}
		events := RecurringExpenseEvents(prefs, date("2025-02-01"), date("2025-02-03"))

		days, err := Project(date("2025-02-01"), date("2025-02-03"), accounts, events, prefs, 0)

		assert.NoError(t, err)
		assert.Len(t, days[1].Events, 2)
		assert.Equal(t, EventExpense, days[1].Events[0].Kind)
		assert.Equal(t, EventFee, days[1].Events[1].Kind)
		assert.InDelta(t, 10000-5000-2, days[1].TotalBalance, 1e-9)
	})
}
