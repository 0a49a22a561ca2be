package income

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/birrflow/birrflow/pkg/user"
)

func TestServiceImpl_CreateSource(t *testing.T) {
	ctx := user.WithId(context.Background(), 1)

	setup := func(t *testing.T) (Service, *StubRepo) {
		repo := NewStubRepo()
		t.Cleanup(repo.Cleanup)
		return NewService(repo), repo
	}

	t.Run("should default the frequency to monthly", func(t *testing.T) {
		service, _ := setup(t)

		created, err := service.CreateSource(ctx, Source{Name: "Salary", Amount: 15000})

		assert.NoError(t, err)
		assert.Equal(t, FrequencyMonthly, created.Frequency)
	})

	t.Run("should keep an explicit frequency and pay date", func(t *testing.T) {
		service, _ := setup(t)
		payDate := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

		created, err := service.CreateSource(ctx, Source{Name: "Tutoring", Amount: 500, Frequency: FrequencyWeekly, NextPayDate: payDate})

		assert.NoError(t, err)
		assert.Equal(t, FrequencyWeekly, created.Frequency)
		assert.Equal(t, payDate, created.NextPayDate)
	})

	t.Run("should require a name", func(t *testing.T) {
		service, _ := setup(t)

		_, err := service.CreateSource(ctx, Source{Amount: 15000})

		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("should not list another user's sources", func(t *testing.T) {
		service, _ := setup(t)
		_, err := service.CreateSource(ctx, Source{Name: "Salary", Amount: 15000})
		assert.NoError(t, err)

		sources, err := service.GetAllSources(user.WithId(context.Background(), 2))

		assert.NoError(t, err)
		assert.Empty(t, sources)
	})
}
