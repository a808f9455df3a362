package unit

import (
	"strings"

	"recipe-costing/internal/pkg/common"
)

// 每個採購單位相對於其基礎單位的換算係數。
// 公斤/公升換算到公克/毫升；piece、ounce、pound 以自身為基礎單位，
// 不做跨量綱換算（oz/lb 不換算成公克）。
var factors = map[common.PurchaseUnit]float64{
	common.UnitGram:       1,
	common.UnitKilogram:   1000,
	common.UnitMilliliter: 1,
	common.UnitLiter:      1000,
	common.UnitPiece:      1,
	common.UnitOunce:      1,
	common.UnitPound:      1,
}

// 常見縮寫與複數形式對應到封閉單位集合
var tokenTable = map[string]common.PurchaseUnit{
	"g":           common.UnitGram,
	"gr":          common.UnitGram,
	"gram":        common.UnitGram,
	"grams":       common.UnitGram,
	"kg":          common.UnitKilogram,
	"kgs":         common.UnitKilogram,
	"kilo":        common.UnitKilogram,
	"kilos":       common.UnitKilogram,
	"kilogram":    common.UnitKilogram,
	"kilograms":   common.UnitKilogram,
	"ml":          common.UnitMilliliter,
	"mls":         common.UnitMilliliter,
	"milliliter":  common.UnitMilliliter,
	"milliliters": common.UnitMilliliter,
	"millilitre":  common.UnitMilliliter,
	"millilitres": common.UnitMilliliter,
	"l":           common.UnitLiter,
	"liter":       common.UnitLiter,
	"liters":      common.UnitLiter,
	"litre":       common.UnitLiter,
	"litres":      common.UnitLiter,
	"pc":          common.UnitPiece,
	"pcs":         common.UnitPiece,
	"piece":       common.UnitPiece,
	"pieces":      common.UnitPiece,
	"unit":        common.UnitPiece,
	"units":       common.UnitPiece,
	"each":        common.UnitPiece,
	"ea":          common.UnitPiece,
	"oz":          common.UnitOunce,
	"ounce":       common.UnitOunce,
	"ounces":      common.UnitOunce,
	"lb":          common.UnitPound,
	"lbs":         common.UnitPound,
	"pound":       common.UnitPound,
	"pounds":      common.UnitPound,
}

// Factor 回傳採購單位到基礎單位的換算係數，未知單位視為 1
func Factor(u common.PurchaseUnit) float64 {
	if f, ok := factors[u]; ok {
		return f
	}
	return 1
}

// Classify 將自由文字單位 token 對齊到封閉單位集合。
// 不分大小寫、容忍常見縮寫與複數，未匹配時一律回退到 piece——
// 這是刻意的預設值，讓資料在輸入過程中保持可用。
func Classify(token string) common.PurchaseUnit {
	t := strings.ToLower(strings.TrimSpace(token))
	if u, ok := tokenTable[t]; ok {
		return u
	}
	return common.UnitPiece
}

// CostPerBaseUnit 計算每基礎單位成本：cost / (quantity * factor)。
// quantity * factor 為 0 時定義結果為 0，不視為除法錯誤。
func CostPerBaseUnit(u common.PurchaseUnit, cost, quantity float64) float64 {
	denom := quantity * Factor(u)
	if denom == 0 {
		return 0
	}
	return cost / denom
}

// BaseQuantity 將以任意單位 token 表示的數量換算成基礎單位數量。
// "kg" 乘以 1000（公斤→公克）、"l" 乘以 1000（公升→毫升），其餘原樣通過。
func BaseQuantity(token string, quantity float64) float64 {
	return quantity * Factor(Classify(token))
}

// Rebase 將數量換算成基礎單位並回傳對應的顯示標籤。
// 係數不為 1 的單位（kg、l）換算後改標為基礎單位（g、ml），
// 讓儲存的數量自我描述且重複寫入不會二次換算；
// 係數為 1 的 token 保留原始標籤。
func Rebase(token string, quantity float64) (float64, string) {
	u := Classify(token)
	if Factor(u) == 1 {
		label := strings.TrimSpace(token)
		if label == "" {
			label = string(common.UnitPiece)
		}
		return quantity, label
	}

	switch u {
	case common.UnitKilogram:
		return quantity * Factor(u), "g"
	case common.UnitLiter:
		return quantity * Factor(u), "ml"
	}
	return quantity * Factor(u), strings.TrimSpace(token)
}
