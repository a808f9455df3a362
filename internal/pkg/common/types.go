package common

import (
	"strings"
)

// PurchaseUnit 採購單位（封閉集合）
type PurchaseUnit string

const (
	UnitGram       PurchaseUnit = "gram"
	UnitKilogram   PurchaseUnit = "kilogram"
	UnitMilliliter PurchaseUnit = "milliliter"
	UnitLiter      PurchaseUnit = "liter"
	UnitPiece      PurchaseUnit = "piece"
	UnitOunce      PurchaseUnit = "ounce"
	UnitPound      PurchaseUnit = "pound"
)

// IngredientCategories 固定的食材分類集合，未匹配時保留原始字串
var IngredientCategories = []string{
	"produce",
	"meat",
	"seafood",
	"dairy",
	"grain",
	"spice",
	"oil",
	"condiment",
	"beverage",
	"other",
}

// NormalizeCategory 將分類字串對齊到固定集合，未匹配時原樣保留
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	for _, known := range IngredientCategories {
		if c == known {
			return known
		}
	}
	if c == "" {
		return "other"
	}
	return category
}

// Ingredient 食材
// cost_per_base_unit 為衍生欄位，永遠由採購欄位重新計算，不可獨立編輯
type Ingredient struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Category         string       `json:"category"`
	PurchaseUnit     PurchaseUnit `json:"purchase_unit"`
	PurchaseCost     float64      `json:"purchase_cost"`
	PurchaseQuantity float64      `json:"purchase_quantity"`
	CostPerBaseUnit  float64      `json:"cost_per_base_unit"`
}

// RecipeIngredient 食譜中的食材引用（非擁有關係）
// quantity 一律以被引用食材的基礎單位表示，unit 僅為顯示標籤
type RecipeIngredient struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
}

// Recipe 食譜
type Recipe struct {
	ID                       string             `json:"id"`
	Name                     string             `json:"name"`
	Description              string             `json:"description"`
	Servings                 int                `json:"servings"`
	Ingredients              []RecipeIngredient `json:"ingredients"`
	LaborCost                float64            `json:"labor_cost"`
	OverheadPercentage       float64            `json:"overhead_percentage"`
	TargetFoodCostPercentage float64            `json:"target_food_cost_percentage"`
	Instructions             string             `json:"instructions,omitempty"`
}

// CostBreakdown 成本拆解（純衍生投影，從不持久化）
type CostBreakdown struct {
	TotalIngredientCost      float64  `json:"total_ingredient_cost"`
	LaborCost                float64  `json:"labor_cost"`
	OverheadCost             float64  `json:"overhead_cost"`
	TotalCost                float64  `json:"total_cost"`
	CostPerServing           float64  `json:"cost_per_serving"`
	IngredientCostPerServing float64  `json:"ingredient_cost_per_serving"`
	SuggestedPrice           float64  `json:"suggested_price"`
	ActualPrice              *float64 `json:"actual_price,omitempty"`
	Margin                   *float64 `json:"margin,omitempty"`
}

// DraftIngredientSuggestion AI 草稿中的食材建議（僅供調和，從不直接持久化）
type DraftIngredientSuggestion struct {
	Name          string  `json:"name" validate:"required"`
	Quantity      float64 `json:"quantity" validate:"gte=0"`
	Unit          string  `json:"unit"`
	EstimatedCost float64 `json:"estimated_cost" validate:"gte=0"`
}

// RecipeDraft 生成式服務回傳的食譜草稿
type RecipeDraft struct {
	Description  string                      `json:"description"`
	Servings     int                         `json:"servings" validate:"gte=0"`
	Instructions string                      `json:"instructions"`
	Ingredients  []DraftIngredientSuggestion `json:"ingredients" validate:"dive"`
}

// IsEmpty 判斷草稿是否為空（外部服務失敗時的合法輸入）
func (d *RecipeDraft) IsEmpty() bool {
	if d == nil {
		return true
	}
	return d.Description == "" && d.Instructions == "" && d.Servings == 0 && len(d.Ingredients) == 0
}

// FormatIngredientNames 將食材名稱格式化為提示詞中的清單
func FormatIngredientNames(ingredients []Ingredient) string {
	var sb strings.Builder
	for _, ing := range ingredients {
		sb.WriteString("- ")
		sb.WriteString(ing.Name)
		sb.WriteString("\n")
	}
	return sb.String()
}
