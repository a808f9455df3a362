package costing

import (
	"recipe-costing/internal/pkg/common"
)

// Lookup 成本計算所需的目錄讀取契約
type Lookup interface {
	Get(id string) (*common.Ingredient, error)
}

// ComputeCostBreakdown 計算食譜的完整成本拆解。
// 純函數：無副作用、無外部呼叫，對相同輸入必定回傳相同結果。
// 查無目錄對應的食材貢獻 0（容忍懸空引用，不視為致命錯誤）；
// 份數或目標百分比為零時對應欄位定義為 0，不拋出例外。
func ComputeCostBreakdown(rec *common.Recipe, lookup Lookup, actualPrice *float64) common.CostBreakdown {
	var totalIngredientCost float64
	for _, item := range rec.Ingredients {
		ing, err := lookup.Get(item.IngredientID)
		if err != nil || ing == nil {
			continue
		}
		totalIngredientCost += item.Quantity * ing.CostPerBaseUnit
	}

	overheadCost := totalIngredientCost * (rec.OverheadPercentage / 100)
	totalCost := totalIngredientCost + rec.LaborCost + overheadCost

	var costPerServing, ingredientCostPerServing float64
	if rec.Servings > 0 {
		costPerServing = totalCost / float64(rec.Servings)
		ingredientCostPerServing = totalIngredientCost / float64(rec.Servings)
	}

	// 食物成本率定價法：讓食材成本恰為售價的目標比例
	var suggestedPrice float64
	if rec.TargetFoodCostPercentage > 0 {
		suggestedPrice = ingredientCostPerServing / (rec.TargetFoodCostPercentage / 100)
	}

	breakdown := common.CostBreakdown{
		TotalIngredientCost:      totalIngredientCost,
		LaborCost:                rec.LaborCost,
		OverheadCost:             overheadCost,
		TotalCost:                totalCost,
		CostPerServing:           costPerServing,
		IngredientCostPerServing: ingredientCostPerServing,
		SuggestedPrice:           suggestedPrice,
	}

	if actualPrice != nil && *actualPrice > 0 {
		margin := (*actualPrice - totalCost) / *actualPrice * 100
		breakdown.ActualPrice = actualPrice
		breakdown.Margin = &margin
	}

	return breakdown
}
