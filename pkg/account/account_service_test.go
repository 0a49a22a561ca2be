package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/birrflow/birrflow/pkg/user"
)

var (
	stubRepo *StubRepo
	service  Service
)

func setup(t *testing.T) func() {
	stubRepo = NewStubRepo()
	service = NewService(stubRepo)
	return func() {
		stubRepo.Cleanup()
	}
}

func userCtx(id int64) context.Context {
	return user.WithId(context.Background(), id)
}

func TestServiceImpl_CreateAccount(t *testing.T) {
	t.Run("should create an account and return it with an id", func(t *testing.T) {
		cleanup := setup(t)
		defer cleanup()
		ctx := userCtx(1)

		// when
		created, err := service.CreateAccount(ctx, Account{Name: "CBE Savings", Balance: 5000})

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "CBE Savings", created.Name)
		assert.Equal(t, 5000.0, created.Balance)
	})

	t.Run("should reject an account without a name", func(t *testing.T) {
		cleanup := setup(t)
		defer cleanup()

		_, err := service.CreateAccount(userCtx(1), Account{Balance: 100})

		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("should fail without a user in context", func(t *testing.T) {
		cleanup := setup(t)
		defer cleanup()

		_, err := service.CreateAccount(context.Background(), Account{Name: "CBE"})

		assert.Error(t, err)
	})
}

func TestServiceImpl_UpdateBalance(t *testing.T) {
	t.Run("should update the balance of an existing account", func(t *testing.T) {
		cleanup := setup(t)
		defer cleanup()
		ctx := userCtx(1)
		created, err := service.CreateAccount(ctx, Account{Name: "CBE Savings", Balance: 5000})
		assert.NoError(t, err)

		// when
		updated, err := service.UpdateBalance(ctx, created.ID, 7250.5)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 7250.5, updated.Balance)
	})

	t.Run("should not touch accounts of other users", func(t *testing.T) {
		cleanup := setup(t)
		defer cleanup()
		created, err := service.CreateAccount(userCtx(1), Account{Name: "CBE Savings", Balance: 5000})
		assert.NoError(t, err)

		_, err = service.UpdateBalance(userCtx(2), created.ID, 0)

		assert.Error(t, err)
		accounts, _ := service.GetAllAccounts(userCtx(1))
		assert.Equal(t, 5000.0, accounts[0].Balance)
	})
}

func TestAccount_IsForeignCurrency(t *testing.T) {
	t.Run("should trust an explicit currency over the name", func(t *testing.T) {
		assert.False(t, Account{Name: "USD stash", Currency: "ETB"}.IsForeignCurrency())
		assert.True(t, Account{Name: "Main", Currency: "USD"}.IsForeignCurrency())
		assert.False(t, Account{Name: "Main", Currency: "etb"}.IsForeignCurrency())
	})

	t.Run("should fall back to the account name when currency is unset", func(t *testing.T) {
		assert.True(t, Account{Name: "My USD Account"}.IsForeignCurrency())
		assert.False(t, Account{Name: "CBE Savings"}.IsForeignCurrency())
	})
}
