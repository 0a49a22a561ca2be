package forecast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/birrflow/birrflow/internal/config"
	"github.com/birrflow/birrflow/internal/utils"
	"github.com/birrflow/birrflow/pkg/account"
	"github.com/birrflow/birrflow/pkg/bill"
	"github.com/birrflow/birrflow/pkg/expense"
	"github.com/birrflow/birrflow/pkg/income"
	"github.com/birrflow/birrflow/pkg/preferences"
	"github.com/birrflow/birrflow/pkg/user"
)

type serviceFixture struct {
	accounts *account.StubRepo
	bills    *bill.StubRepo
	income   *income.StubRepo
	prefs    *preferences.StubRepo
	expenses *expense.StubRepo
	clock    *utils.MockClock
	service  Service
}

func setupService(t *testing.T) *serviceFixture {
	f := &serviceFixture{
		accounts: account.NewStubRepo(),
		bills:    bill.NewStubRepo(),
		income:   income.NewStubRepo(),
		prefs:    preferences.NewStubRepo(),
		expenses: expense.NewStubRepo(),
		clock:    &utils.MockClock{FixedNow: date("2025-02-01")},
	}
	f.service = NewService(
		account.NewService(f.accounts),
		bill.NewService(f.bills),
		income.NewService(f.income),
		preferences.NewService(f.prefs),
		expense.NewService(f.expenses),
		f.clock,
		config.Forecast{DefaultDays: 30, MaxDays: 3650},
	)
	t.Cleanup(func() {
		f.accounts.Cleanup()
		f.bills.Cleanup()
		f.income.Cleanup()
		f.prefs.Cleanup()
		f.expenses.Cleanup()
	})
	return f
}

func TestServiceImpl_Forecast(t *testing.T) {
	ctx := user.WithId(context.Background(), 1)

	t.Run("should project the default horizon from today", func(t *testing.T) {
		f := setupService(t)
		_, err := f.accounts.Store(ctx, 1, account.Account{Name: "Main", Balance: 5000})
		assert.NoError(t, err)
		// the default preferences bundle applies, so save a quiet one
		// to keep the expectations simple
		_, err = preferences.NewService(f.prefs).SavePreferences(ctx, preferences.Preferences{
			Multipliers: preferences.Multipliers{Regular: 1},
		})
		assert.NoError(t, err)

		days, err := f.service.Forecast(ctx, 0)

		assert.NoError(t, err)
		assert.Len(t, days, 31)
		assert.Equal(t, date("2025-02-01"), days[0].Date)
		assert.Equal(t, 5000.0, days[0].TotalBalance)
		assert.Empty(t, days[0].Events)
	})

	t.Run("should reject a horizon past the configured maximum", func(t *testing.T) {
		f := setupService(t)

		_, err := f.service.Forecast(ctx, 4000)

		assert.ErrorIs(t, err, ErrRangeTooLarge)
	})

	t.Run("should only project unpaid bills", func(t *testing.T) {
		f := setupService(t)
		_, err := f.accounts.Store(ctx, 1, account.Account{Name: "Main", Balance: 5000})
		assert.NoError(t, err)
		_, err = preferences.NewService(f.prefs).SavePreferences(ctx, preferences.Preferences{
			Multipliers: preferences.Multipliers{Regular: 1},
		})
		assert.NoError(t, err)
		_, err = f.bills.Store(ctx, 1, bill.Bill{Name: "Paid", Amount: 200, DueDate: date("2025-02-05"), IsPaid: true})
		assert.NoError(t, err)
		_, err = f.bills.Store(ctx, 1, bill.Bill{Name: "Unpaid", Amount: 300, DueDate: date("2025-02-05")})
		assert.NoError(t, err)

		days, err := f.service.Forecast(ctx, 7)

		assert.NoError(t, err)
		var names []string
		for _, d := range days {
			for _, e := range d.Events {
				if e.Kind == EventBill {
					names = append(names, e.Name)
				}
			}
		}
		assert.Equal(t, []string{"Unpaid"}, names)
	})

	t.Run("should apply the historical spending buffer", func(t *testing.T) {
		f := setupService(t)
		_, err := f.accounts.Store(ctx, 1, account.Account{Name: "Main", Balance: 5000})
		assert.NoError(t, err)
		_, err = preferences.NewService(f.prefs).SavePreferences(ctx, preferences.Preferences{
			Multipliers: preferences.Multipliers{Regular: 1},
		})
		assert.NoError(t, err)
		f.expenses.DailyAverage = 50

		days, err := f.service.Forecast(ctx, 2)

		assert.NoError(t, err)
		assert.Len(t, days[1].Events, 1)
		assert.InDelta(t, -50, days[1].Events[0].Amount, 1e-9)
	})

	t.Run("should fail without an authenticated user", func(t *testing.T) {
		f := setupService(t)

		_, err := f.service.Forecast(context.Background(), 7)

		assert.Error(t, err)
	})
}
