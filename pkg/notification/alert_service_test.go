package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/birrflow/birrflow/internal/config"
	"github.com/birrflow/birrflow/internal/event_bus"
	"github.com/birrflow/birrflow/internal/utils"
	"github.com/birrflow/birrflow/pkg/account"
	"github.com/birrflow/birrflow/pkg/bill"
	"github.com/birrflow/birrflow/pkg/expense"
	"github.com/birrflow/birrflow/pkg/forecast"
	"github.com/birrflow/birrflow/pkg/income"
	"github.com/birrflow/birrflow/pkg/preferences"
	"github.com/birrflow/birrflow/pkg/user"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

type alertFixture struct {
	users    *user.StubRepo
	accounts *account.StubRepo
	bills    *bill.StubRepo
	prefs    *preferences.StubRepo
	cache    *forecast.StubCacheRepo
	repo     *StubRepo
	clock    *utils.MockClock
	alerts   *AlertService
}

func setupAlerts(t *testing.T) *alertFixture {
	f := &alertFixture{
		users:    user.NewStubRepo(),
		accounts: account.NewStubRepo(),
		bills:    bill.NewStubRepo(),
		prefs:    preferences.NewStubRepo(),
		cache:    forecast.NewStubCacheRepo(),
		repo:     NewStubRepo(),
		clock:    &utils.MockClock{FixedNow: date("2025-02-01")},
	}
	billService := bill.NewService(f.bills)
	expenses := expense.NewStubRepo()
	forecastService := forecast.NewService(
		account.NewService(f.accounts),
		billService,
		income.NewService(income.NewStubRepo()),
		preferences.NewService(f.prefs),
		expense.NewService(expenses),
		f.clock,
		config.Forecast{DefaultDays: 30, MaxDays: 3650},
	)
	f.alerts = NewAlertService(f.users, billService, forecastService, f.cache, f.repo, f.clock, config.Alerts{
		LookaheadDays:       7,
		LowBalanceThreshold: 100,
	})
	t.Cleanup(func() {
		f.users.Cleanup()
		f.accounts.Cleanup()
		f.bills.Cleanup()
		f.prefs.Cleanup()
		f.cache.Cleanup()
		f.repo.Cleanup()
	})
	return f
}

// quietPrefs disables recurring expenses, holidays and inflation so the
// projection only moves when the test says so.
func quietPrefs(t *testing.T, f *alertFixture, userId int64) {
	ctx := user.WithId(context.Background(), userId)
	_, err := preferences.NewService(f.prefs).SavePreferences(ctx, preferences.Preferences{
		Multipliers: preferences.Multipliers{Regular: 1},
	})
	assert.NoError(t, err)
}

func TestAlertService_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("should notify about bills due within three days", func(t *testing.T) {
		f := setupAlerts(t)
		userId, err := f.users.Store(ctx, user.User{Phone: "+251911000001"})
		assert.NoError(t, err)
		quietPrefs(t, f, userId)
		_, err = f.accounts.Store(ctx, userId, account.Account{Name: "Main", Balance: 100000})
		assert.NoError(t, err)
		_, err = f.bills.Store(ctx, userId, bill.Bill{Name: "Electricity", Amount: 500, DueDate: date("2025-02-03")})
		assert.NoError(t, err)
		_, err = f.bills.Store(ctx, userId, bill.Bill{Name: "Water", Amount: 100, DueDate: date("2025-02-02")})
		assert.NoError(t, err)
		_, err = f.bills.Store(ctx, userId, bill.Bill{Name: "Far away", Amount: 50, DueDate: date("2025-03-20")})
		assert.NoError(t, err)

		// when
		f.alerts.Run(ctx)

		// then
		notifications, err := f.repo.GetAll(ctx, userId)
		assert.NoError(t, err)
		var billAlerts []Notification
		for _, n := range notifications {
			if n.Type == TypeBill {
				billAlerts = append(billAlerts, n)
			}
		}
		assert.Len(t, billAlerts, 1)
		assert.Contains(t, billAlerts[0].Message, "Water")
		assert.Contains(t, billAlerts[0].Message, "Electricity")
		assert.NotContains(t, billAlerts[0].Message, "Far away")
	})

	t.Run("should cache the forecast and raise a low-balance alert under the threshold", func(t *testing.T) {
		f := setupAlerts(t)
		userId, err := f.users.Store(ctx, user.User{Phone: "+251911000002"})
		assert.NoError(t, err)
		quietPrefs(t, f, userId)
		_, err = f.accounts.Store(ctx, userId, account.Account{Name: "Main", Balance: 400})
		assert.NoError(t, err)
		// drops the projection to 400 - 350 = 50, under the threshold
		_, err = f.bills.Store(ctx, userId, bill.Bill{Name: "Rent share", Amount: 350, DueDate: date("2025-02-04")})
		assert.NoError(t, err)

		// when
		f.alerts.Run(ctx)

		// then
		cached, err := f.cache.GetCached(ctx, userId)
		assert.NoError(t, err)
		assert.Len(t, cached, 8)

		min, ok, err := f.cache.MinCachedBalance(ctx, userId)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.InDelta(t, 400-350-2, min, 1e-9)

		notifications, err := f.repo.GetAll(ctx, userId)
		assert.NoError(t, err)
		var balanceAlerts []Notification
		for _, n := range notifications {
			if n.Type == TypeBalance {
				balanceAlerts = append(balanceAlerts, n)
			}
		}
		assert.Len(t, balanceAlerts, 1)
		assert.Equal(t, "Low balance predicted: ETB 48.00 in the next 7 days", balanceAlerts[0].Message)
	})

	t.Run("should stay quiet when the projection never dips under the threshold", func(t *testing.T) {
		f := setupAlerts(t)
		userId, err := f.users.Store(ctx, user.User{Phone: "+251911000003"})
		assert.NoError(t, err)
		quietPrefs(t, f, userId)
		_, err = f.accounts.Store(ctx, userId, account.Account{Name: "Main", Balance: 50000})
		assert.NoError(t, err)

		f.alerts.Run(ctx)

		notifications, err := f.repo.GetAll(ctx, userId)
		assert.NoError(t, err)
		assert.Empty(t, notifications)
	})
}

func TestAlertService_Subscribe(t *testing.T) {
	t.Run("should turn a completed payment into a notification", func(t *testing.T) {
		f := setupAlerts(t)
		bus := event_bus.NewEventBus()
		f.alerts.Subscribe(bus)

		bus.Publish(event_bus.NewEvent(context.Background(), event_bus.PaymentCompleted, event_bus.PaymentCompletedData{
			UserID:        42,
			BillID:        7,
			BillerName:    "Ethio Telecom",
			Amount:        350,
			TransactionID: "tx-123",
		}))

		notifications, err := f.repo.GetAll(context.Background(), 42)
		assert.NoError(t, err)
		assert.Len(t, notifications, 1)
		assert.Equal(t, TypePayment, notifications[0].Type)
		assert.Contains(t, notifications[0].Message, "Ethio Telecom")
		assert.Contains(t, notifications[0].Message, "350.00")
	})
}
