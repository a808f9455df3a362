package costing

import (
	"testing"

	"recipe-costing/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapLookup 測試用的目錄查詢
type mapLookup map[string]common.Ingredient

func (m mapLookup) Get(id string) (*common.Ingredient, error) {
	if ing, ok := m[id]; ok {
		return &ing, nil
	}
	return nil, common.ErrIngredientNotFound
}

func TestComputeCostBreakdown_Scenario(t *testing.T) {
	// 1 kg 採購價 18000 → 每公克 18；250 g 用量、一人份、目標 30%
	lookup := mapLookup{
		"flour": {ID: "flour", Name: "Flour", CostPerBaseUnit: 18},
	}
	rec := &common.Recipe{
		Name:                     "Plain Bread",
		Servings:                 1,
		TargetFoodCostPercentage: 30,
		Ingredients: []common.RecipeIngredient{
			{IngredientID: "flour", Quantity: 250, Unit: "g"},
		},
	}

	b := ComputeCostBreakdown(rec, lookup, nil)

	assert.Equal(t, 4500.0, b.TotalIngredientCost)
	assert.Equal(t, 4500.0, b.TotalCost)
	assert.Equal(t, 4500.0, b.CostPerServing)
	assert.Equal(t, 15000.0, b.SuggestedPrice)
	assert.Nil(t, b.Margin)
}

func TestComputeCostBreakdown_LaborAndOverhead(t *testing.T) {
	lookup := mapLookup{
		"beef": {ID: "beef", CostPerBaseUnit: 2},
	}
	rec := &common.Recipe{
		Servings:                 4,
		LaborCost:                100,
		OverheadPercentage:       10,
		TargetFoodCostPercentage: 25,
		Ingredients: []common.RecipeIngredient{
			{IngredientID: "beef", Quantity: 500, Unit: "g"},
		},
	}

	b := ComputeCostBreakdown(rec, lookup, nil)

	assert.Equal(t, 1000.0, b.TotalIngredientCost)
	assert.Equal(t, 100.0, b.OverheadCost)
	assert.Equal(t, 1200.0, b.TotalCost)
	assert.Equal(t, 300.0, b.CostPerServing)
	assert.Equal(t, 250.0, b.IngredientCostPerServing)
	assert.Equal(t, 1000.0, b.SuggestedPrice)
}

func TestComputeCostBreakdown_MissingIngredientContributesZero(t *testing.T) {
	rec := &common.Recipe{
		Servings:                 2,
		TargetFoodCostPercentage: 30,
		Ingredients: []common.RecipeIngredient{
			{IngredientID: "deleted-long-ago", Quantity: 100, Unit: "g"},
		},
	}

	b := ComputeCostBreakdown(rec, mapLookup{}, nil)

	assert.Equal(t, 0.0, b.TotalIngredientCost)
	assert.Equal(t, 0.0, b.SuggestedPrice)
}

func TestComputeCostBreakdown_DegenerateInputs(t *testing.T) {
	lookup := mapLookup{
		"salt": {ID: "salt", CostPerBaseUnit: 1},
	}
	rec := &common.Recipe{
		Servings:                 0, // 份數為零 → 每份成本定義為 0
		TargetFoodCostPercentage: 0, // 目標為零 → 建議售價定義為 0
		Ingredients: []common.RecipeIngredient{
			{IngredientID: "salt", Quantity: 10, Unit: "g"},
		},
	}

	b := ComputeCostBreakdown(rec, lookup, nil)

	assert.Equal(t, 10.0, b.TotalIngredientCost)
	assert.Equal(t, 0.0, b.CostPerServing)
	assert.Equal(t, 0.0, b.SuggestedPrice)
}

func TestComputeCostBreakdown_OverheadMonotonic(t *testing.T) {
	lookup := mapLookup{
		"oil": {ID: "oil", CostPerBaseUnit: 3},
	}
	base := common.Recipe{
		Servings:                 2,
		TargetFoodCostPercentage: 30,
		Ingredients: []common.RecipeIngredient{
			{IngredientID: "oil", Quantity: 100, Unit: "ml"},
		},
	}

	prevOverhead := -1.0
	prevTotal := -1.0
	for _, pct := range []float64{0, 5, 10, 25, 50, 100} {
		rec := base
		rec.OverheadPercentage = pct
		b := ComputeCostBreakdown(&rec, lookup, nil)
		require.Greater(t, b.OverheadCost, prevOverhead)
		require.Greater(t, b.TotalCost, prevTotal)
		prevOverhead = b.OverheadCost
		prevTotal = b.TotalCost
	}
}

func TestComputeCostBreakdown_SuggestedPriceDecreasingInTarget(t *testing.T) {
	lookup := mapLookup{
		"rice": {ID: "rice", CostPerBaseUnit: 0.5},
	}
	base := common.Recipe{
		Servings: 1,
		Ingredients: []common.RecipeIngredient{
			{IngredientID: "rice", Quantity: 200, Unit: "g"},
		},
	}

	prev := 0.0
	for _, target := range []float64{100, 50, 30, 20, 10} {
		rec := base
		rec.TargetFoodCostPercentage = target
		b := ComputeCostBreakdown(&rec, lookup, nil)
		require.Greater(t, b.SuggestedPrice, prev)
		prev = b.SuggestedPrice
	}
}

func TestComputeCostBreakdown_Margin(t *testing.T) {
	lookup := mapLookup{
		"egg": {ID: "egg", CostPerBaseUnit: 5},
	}
	rec := &common.Recipe{
		Servings:                 1,
		TargetFoodCostPercentage: 30,
		Ingredients: []common.RecipeIngredient{
			{IngredientID: "egg", Quantity: 10, Unit: "piece"},
		},
	}

	actual := 100.0
	b := ComputeCostBreakdown(rec, lookup, &actual)

	require.NotNil(t, b.Margin)
	assert.InDelta(t, 50.0, *b.Margin, 1e-9)

	// 未提供實際售價時毛利為未定義
	b = ComputeCostBreakdown(rec, lookup, nil)
	assert.Nil(t, b.ActualPrice)
	assert.Nil(t, b.Margin)
}
