package community

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/birrflow/birrflow/internal/test_utils"
)

func TestRepoImpl_Tips(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepo(db)
	ctx := context.Background()
	userId := test_utils.CreateTestUser(t, db, "+251911000001")

	t.Run("should filter tips by region", func(t *testing.T) {
		// given
		_, err := repo.StoreTip(ctx, userId, Tip{Content: "Buy teff at the Saturday market", Region: "Addis Ababa"})
		assert.NoError(t, err)
		_, err = repo.StoreTip(ctx, userId, Tip{Content: "Coffee co-op prices drop mid-month", Region: "Oromia"})
		assert.NoError(t, err)

		// when
		tips, err := repo.GetTips(ctx, "Addis Ababa")

		// then
		assert.NoError(t, err)
		assert.Len(t, tips, 1)
		assert.Equal(t, "Buy teff at the Saturday market", tips[0].Content)
	})

	t.Run("should cap the feed at fifty tips", func(t *testing.T) {
		// given
		for i := 0; i < 60; i++ {
			_, err := repo.StoreTip(ctx, userId, Tip{Content: fmt.Sprintf("tip %d", i)})
			assert.NoError(t, err)
		}

		// when
		tips, err := repo.GetTips(ctx, "")

		// then
		assert.NoError(t, err)
		assert.Len(t, tips, 50)
	})
}

func TestRepoImpl_Prices(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepo(db)
	ctx := context.Background()
	userId := test_utils.CreateTestUser(t, db, "+251911000002")

	// given
	_, err := repo.StorePrice(ctx, userId, PriceComparison{ItemName: "Teff (kg)", Price: 120, Market: "Merkato", Region: "Addis Ababa"})
	assert.NoError(t, err)
	_, err = repo.StorePrice(ctx, userId, PriceComparison{ItemName: "Teff (kg)", Price: 95, Market: "Adama market", Region: "Oromia"})
	assert.NoError(t, err)
	_, err = repo.StorePrice(ctx, userId, PriceComparison{ItemName: "Cooking oil (L)", Price: 250, Market: "Merkato", Region: "Addis Ababa"})
	assert.NoError(t, err)

	t.Run("should match items by substring", func(t *testing.T) {
		prices, err := repo.GetPrices(ctx, "Teff", "")

		assert.NoError(t, err)
		assert.Len(t, prices, 2)
	})

	t.Run("should combine item and region filters", func(t *testing.T) {
		prices, err := repo.GetPrices(ctx, "Teff", "Oromia")

		assert.NoError(t, err)
		assert.Len(t, prices, 1)
		assert.Equal(t, 95.0, prices[0].Price)
		assert.Equal(t, "Adama market", prices[0].Market)
	})

	t.Run("should return everything without filters", func(t *testing.T) {
		prices, err := repo.GetPrices(ctx, "", "")

		assert.NoError(t, err)
		assert.Len(t, prices, 3)
	})
}
