package export

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/birrflow/birrflow/pkg/account"
	"github.com/birrflow/birrflow/pkg/bill"
	"github.com/birrflow/birrflow/pkg/forecast"
	"github.com/birrflow/birrflow/pkg/income"
	"github.com/birrflow/birrflow/pkg/user"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestServiceImpl_ExportFinancialData(t *testing.T) {
	ctx := user.WithId(context.Background(), 1)

	newFixture := func(t *testing.T) Service {
		accountRepo := account.NewStubRepo()
		billRepo := bill.NewStubRepo()
		incomeRepo := income.NewStubRepo()
		cache := forecast.NewStubCacheRepo()
		t.Cleanup(func() {
			accountRepo.Cleanup()
			billRepo.Cleanup()
			incomeRepo.Cleanup()
			cache.Cleanup()
		})
		service := NewService(
			account.NewService(accountRepo),
			bill.NewService(billRepo),
			income.NewService(incomeRepo),
			cache,
		)

		_, err := accountRepo.Store(ctx, 1, account.Account{Name: "CBE savings", Balance: 5000, Currency: "ETB"})
		assert.NoError(t, err)
		_, err = billRepo.Store(ctx, 1, bill.Bill{Name: "Electricity", Amount: 800, DueDate: date("2025-02-10")})
		assert.NoError(t, err)
		_, err = incomeRepo.Store(ctx, 1, income.Source{Name: "Salary", Amount: 15000, Frequency: income.FrequencyMonthly, NextPayDate: date("2025-02-28")})
		assert.NoError(t, err)
		assert.NoError(t, cache.Replace(ctx, 1, []forecast.Day{
			{Date: date("2025-02-01"), TotalBalance: 5000},
			{Date: date("2025-02-02"), TotalBalance: 4200},
		}))
		return service
	}

	t.Run("should bundle accounts, bills, income and the cached forecast", func(t *testing.T) {
		service := newFixture(t)

		// when
		bundle, err := service.ExportFinancialData(ctx)

		// then
		assert.NoError(t, err)
		assert.Len(t, bundle.Accounts, 1)
		assert.Equal(t, "CBE savings", bundle.Accounts[0].Name)
		assert.Len(t, bundle.Bills, 1)
		assert.Equal(t, "2025-02-10", bundle.Bills[0].DueDate)
		assert.Len(t, bundle.Income, 1)
		assert.Equal(t, "monthly", bundle.Income[0].Frequency)
		assert.Len(t, bundle.Forecast, 2)
		assert.Equal(t, 4200.0, bundle.Forecast[1].Balance)
	})

	t.Run("should not leak another user's data", func(t *testing.T) {
		service := newFixture(t)
		otherCtx := user.WithId(context.Background(), 2)

		bundle, err := service.ExportFinancialData(otherCtx)

		assert.NoError(t, err)
		assert.Empty(t, bundle.Accounts)
		assert.Empty(t, bundle.Bills)
		assert.Empty(t, bundle.Income)
		assert.Empty(t, bundle.Forecast)
	})

	t.Run("should require an authenticated user", func(t *testing.T) {
		service := newFixture(t)

		_, err := service.ExportFinancialData(context.Background())

		assert.Error(t, err)
	})
}
