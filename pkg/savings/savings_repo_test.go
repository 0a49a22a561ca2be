package savings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/birrflow/birrflow/internal/test_utils"
)

func TestRepoImpl_AddTransaction(t *testing.T) {
	t.Run("should record the contribution and bump the goal total", func(t *testing.T) {
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)
		ctx := context.Background()
		userId := test_utils.CreateTestUser(t, db, "+251911000010")
		goalId, err := repo.StoreGoal(ctx, userId, Goal{Name: "New fridge", TargetAmount: 30000})
		assert.NoError(t, err)

		// when
		tx, err := repo.AddTransaction(ctx, userId, goalId, 2500)
		assert.NoError(t, err)
		assert.Equal(t, 2500.0, tx.Amount)

		_, err = repo.AddTransaction(ctx, userId, goalId, 1500)
		assert.NoError(t, err)

		// then
		goal, err := repo.GetGoal(ctx, userId, goalId)
		assert.NoError(t, err)
		assert.Equal(t, 4000.0, goal.CurrentAmount)

		txs, err := repo.GetTransactions(ctx, userId, goalId)
		assert.NoError(t, err)
		assert.Len(t, txs, 2)
	})

	t.Run("should refuse contributions to another user's goal", func(t *testing.T) {
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)
		ctx := context.Background()
		owner := test_utils.CreateTestUser(t, db, "+251911000011")
		other := test_utils.CreateTestUser(t, db, "+251911000012")
		goalId, err := repo.StoreGoal(ctx, owner, Goal{Name: "School fees", TargetAmount: 10000})
		assert.NoError(t, err)

		_, err = repo.AddTransaction(ctx, other, goalId, 100)

		assert.Error(t, err)
		goal, err := repo.GetGoal(ctx, owner, goalId)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, goal.CurrentAmount)
	})
}

func TestGoal_Progress(t *testing.T) {
	assert.Equal(t, 0.5, Goal{TargetAmount: 1000, CurrentAmount: 500}.Progress())
	assert.Equal(t, 1.0, Goal{TargetAmount: 1000, CurrentAmount: 1500}.Progress())
	assert.Equal(t, 0.0, Goal{}.Progress())
}
