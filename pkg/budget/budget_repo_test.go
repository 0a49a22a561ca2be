package budget

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/birrflow/birrflow/internal/test_utils"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestRepoImpl_MonthlySummary(t *testing.T) {
	t.Run("should aggregate income, spending and per-category usage", func(t *testing.T) {
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)
		ctx := context.Background()
		userId := test_utils.CreateTestUser(t, db, "+251911000020")

		foodId, err := repo.StoreCategory(ctx, userId, Category{Name: "Food", Type: CategoryExpense})
		assert.NoError(t, err)
		salaryId, err := repo.StoreCategory(ctx, userId, Category{Name: "Salary", Type: CategoryIncome})
		assert.NoError(t, err)
		_, err = repo.StoreBudget(ctx, userId, Budget{CategoryID: foodId, Amount: 4000, Period: PeriodMonthly, StartDate: date("2025-02-01"), IsActive: true})
		assert.NoError(t, err)

		_, err = repo.StoreTransaction(ctx, userId, Transaction{CategoryID: salaryId, Amount: 15000, Description: "February salary", Date: date("2025-02-05"), Type: CategoryIncome})
		assert.NoError(t, err)
		_, err = repo.StoreTransaction(ctx, userId, Transaction{CategoryID: foodId, Amount: 1200, Description: "groceries", Date: date("2025-02-10"), Type: CategoryExpense})
		assert.NoError(t, err)
		_, err = repo.StoreTransaction(ctx, userId, Transaction{CategoryID: foodId, Amount: 800, Description: "restaurant", Date: date("2025-02-20"), Type: CategoryExpense})
		assert.NoError(t, err)
		// outside February, must not count
		_, err = repo.StoreTransaction(ctx, userId, Transaction{CategoryID: foodId, Amount: 999, Description: "march groceries", Date: date("2025-03-02"), Type: CategoryExpense})
		assert.NoError(t, err)

		// when
		summary, err := repo.MonthlySummary(ctx, userId, date("2025-02-15"))

		// then
		assert.NoError(t, err)
		assert.Equal(t, 15000.0, summary.TotalIncome)
		assert.Equal(t, 2000.0, summary.TotalExpenses)
		assert.Equal(t, 13000.0, summary.Net)
		assert.Len(t, summary.ByCategory, 1)
		assert.Equal(t, "Food", summary.ByCategory[0].CategoryName)
		assert.Equal(t, 4000.0, summary.ByCategory[0].Budgeted)
		assert.Equal(t, 2000.0, summary.ByCategory[0].Spent)
		assert.Equal(t, 2000.0, summary.ByCategory[0].Remaining)
	})

	t.Run("should return an empty summary for a user with no activity", func(t *testing.T) {
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)
		userId := test_utils.CreateTestUser(t, db, "+251911000021")

		summary, err := repo.MonthlySummary(context.Background(), userId, date("2025-02-15"))

		assert.NoError(t, err)
		assert.Equal(t, 0.0, summary.TotalIncome)
		assert.Equal(t, 0.0, summary.TotalExpenses)
		assert.Empty(t, summary.ByCategory)
	})
}

func TestRepoImpl_GetTransactions(t *testing.T) {
	t.Run("should filter by date range", func(t *testing.T) {
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)
		ctx := context.Background()
		userId := test_utils.CreateTestUser(t, db, "+251911000022")
		catId, err := repo.StoreCategory(ctx, userId, Category{Name: "Transport", Type: CategoryExpense})
		assert.NoError(t, err)

		_, err = repo.StoreTransaction(ctx, userId, Transaction{CategoryID: catId, Amount: 50, Description: "taxi", Date: date("2025-02-10"), Type: CategoryExpense})
		assert.NoError(t, err)
		_, err = repo.StoreTransaction(ctx, userId, Transaction{CategoryID: catId, Amount: 60, Description: "bus", Date: date("2025-04-01"), Type: CategoryExpense})
		assert.NoError(t, err)

		txs, err := repo.GetTransactions(ctx, userId, date("2025-02-01"), date("2025-02-28"))

		assert.NoError(t, err)
		assert.Len(t, txs, 1)
		assert.Equal(t, "taxi", txs[0].Description)
	})
}
