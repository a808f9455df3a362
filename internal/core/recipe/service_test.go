package recipe

import (
	"testing"

	"recipe-costing/internal/core/storage"
	"recipe-costing/internal/infrastructure/config"
	"recipe-costing/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo, err := NewRepository(storage.NewMemoryStore())
	require.NoError(t, err)
	return NewService(repo, config.CostingConfig{
		DefaultServings:          4,
		DefaultTargetFoodCostPct: 30.0,
	})
}

func TestServiceCreate_DefaultsApplied(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(common.Recipe{Name: "Pancakes"})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 4, created.Servings)
	assert.InDelta(t, 30.0, created.TargetFoodCostPercentage, 1e-9)
	assert.NotNil(t, created.Ingredients)
	assert.Empty(t, created.Ingredients)
}

func TestServiceCreate_QuantitiesStoredInBaseUnits(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(common.Recipe{
		Name: "Pancakes",
		Ingredients: []common.RecipeIngredient{
			{IngredientID: "ing-flour", Quantity: 0.5, Unit: "kg"},
			{IngredientID: "ing-milk", Quantity: 1, Unit: "l"},
			{IngredientID: "ing-egg", Quantity: 3, Unit: "piece"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 500.0, created.Ingredients[0].Quantity)
	assert.Equal(t, "g", created.Ingredients[0].Unit)
	assert.Equal(t, 1000.0, created.Ingredients[1].Quantity)
	assert.Equal(t, "ml", created.Ingredients[1].Unit)
	assert.Equal(t, 3.0, created.Ingredients[2].Quantity)
	assert.Equal(t, "piece", created.Ingredients[2].Unit)
}

func TestServiceUpdate_RoundTripIsStable(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(common.Recipe{
		Name: "Pancakes",
		Ingredients: []common.RecipeIngredient{
			{IngredientID: "ing-flour", Quantity: 0.5, Unit: "kg"},
		},
	})
	require.NoError(t, err)

	// 以讀回的實體原樣更新，不可再次換算數量
	updated, err := svc.Update(*created)
	require.NoError(t, err)
	assert.Equal(t, 500.0, updated.Ingredients[0].Quantity)
	assert.Equal(t, "g", updated.Ingredients[0].Unit)
}

func TestServiceCreate_Validation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(common.Recipe{Name: " "})
	assert.Error(t, err)

	_, err = svc.Create(common.Recipe{Name: "Soup", LaborCost: -1})
	assert.Error(t, err)

	_, err = svc.Create(common.Recipe{Name: "Soup", OverheadPercentage: -5})
	assert.Error(t, err)

	_, err = svc.Create(common.Recipe{
		Name: "Soup",
		Ingredients: []common.RecipeIngredient{
			{IngredientID: "ing-x", Quantity: -1, Unit: "g"},
		},
	})
	assert.Error(t, err)
}

func TestServiceCreate_OutOfRangeTargetFallsBack(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(common.Recipe{Name: "Soup", TargetFoodCostPercentage: 150})
	require.NoError(t, err)
	assert.InDelta(t, 30.0, created.TargetFoodCostPercentage, 1e-9)
}

func TestServiceDelete(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(common.Recipe{Name: "Soup"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))
	_, err = svc.Get(created.ID)
	assert.ErrorIs(t, err, common.ErrRecipeNotFound)

	assert.ErrorIs(t, svc.Delete("rec-missing"), common.ErrRecipeNotFound)
}
