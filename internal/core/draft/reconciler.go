package draft

import (
	"strings"

	"recipe-costing/internal/core/unit"
	"recipe-costing/internal/pkg/common"

	"go.uber.org/zap"
)

// Reconcile 將草稿調和進既有食譜，回傳合併後的食譜。
// 只讀取目錄，從不寫入；未匹配的建議被捨棄，僅能透過調試日誌觀察——
// 建立食材是目錄的顯式操作，不是調和的隱式副作用。
//
// 合併策略（fail-soft）：
//   - 名稱以不分大小寫的完全相等匹配，不做模糊比對
//   - 匹配的建議經單位換算成基礎單位數量後成為食譜食材行
//   - description、instructions、servings 僅在草稿提供有效值時覆寫
//   - 只有在至少一行匹配時才整批替換食材清單；
//     全數未匹配的草稿不會清空既有清單
func Reconcile(d *common.RecipeDraft, ingredients []common.Ingredient, rec common.Recipe) common.Recipe {
	if d.IsEmpty() {
		return rec
	}

	byName := make(map[string]common.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byName[strings.ToLower(strings.TrimSpace(ing.Name))] = ing
	}

	var lines []common.RecipeIngredient
	for _, sug := range d.Ingredients {
		ing, ok := byName[strings.ToLower(strings.TrimSpace(sug.Name))]
		if !ok {
			common.LogDebug("草稿食材未匹配目錄，已捨棄",
				zap.String("name", sug.Name),
				zap.String("unit", sug.Unit),
			)
			continue
		}

		qty, label := unit.Rebase(sug.Unit, sug.Quantity)
		lines = append(lines, common.RecipeIngredient{
			IngredientID: ing.ID,
			Quantity:     qty,
			Unit:         label,
		})
	}

	if d.Description != "" {
		rec.Description = d.Description
	}
	if d.Instructions != "" {
		rec.Instructions = d.Instructions
	}
	if d.Servings > 0 {
		rec.Servings = d.Servings
	}
	if len(lines) > 0 {
		rec.Ingredients = lines
	}

	return rec
}
