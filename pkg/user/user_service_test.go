package user

import (
	"context"
	"testing"

	"github.com/birrflow/birrflow/internal/auth"
	"github.com/birrflow/birrflow/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userRepoStub = NewStubRepo()

var service Service

func setup(t *testing.T) func() {
	tokens := auth.NewTokenIssuer(config.Auth{JWTSecret: "test_secret", TokenTTLHours: 1})
	service = NewService(userRepoStub, tokens, bcrypt.MinCost)
	return func() {
		t.Log("Teardown after test")
		userRepoStub.Cleanup()
	}
}

func TestServiceImpl_Register(t *testing.T) {
	t.Run("should register a user and issue a token", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		u, token, err := service.Register(context.Background(), "0912345678", "", "secret")

		// then
		require.NoError(t, err)
		assert.NotZero(t, u.ID)
		assert.Equal(t, "0912345678", u.Phone)
		assert.NotEmpty(t, token)
		assert.NotEqual(t, "secret", u.PasswordHash)
	})

	t.Run("should reject a duplicate identifier", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, _, err := service.Register(context.Background(), "0912345678", "", "secret")
		require.NoError(t, err)

		// when
		_, _, err = service.Register(context.Background(), "0912345678", "", "other")

		// then
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("should require phone or email", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, _, err := service.Register(context.Background(), "", "", "secret")
		assert.Error(t, err)
	})
}

func TestServiceImpl_Login(t *testing.T) {
	t.Run("should log in with correct credentials", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		registered, _, err := service.Register(context.Background(), "", "a@b.et", "secret")
		require.NoError(t, err)

		// when
		u, token, err := service.Login(context.Background(), "a@b.et", "secret")

		// then
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, _, err := service.Register(context.Background(), "", "a@b.et", "secret")
		require.NoError(t, err)

		// when
		_, _, err = service.Login(context.Background(), "a@b.et", "wrong")

		// then
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("should reject an unknown identifier", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, _, err := service.Login(context.Background(), "nobody@b.et", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestServiceImpl_ChangePassword(t *testing.T) {
	t.Run("should change password when current one matches", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		u, _, err := service.Register(context.Background(), "0911111111", "", "old")
		require.NoError(t, err)
		ctx := WithId(context.Background(), u.ID)

		// when
		err = service.ChangePassword(ctx, "old", "new")

		// then
		require.NoError(t, err)
		_, _, err = service.Login(context.Background(), "0911111111", "new")
		assert.NoError(t, err)
	})

	t.Run("should reject when current password is wrong", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		u, _, err := service.Register(context.Background(), "0911111111", "", "old")
		require.NoError(t, err)
		ctx := WithId(context.Background(), u.ID)

		err = service.ChangePassword(ctx, "bad", "new")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
