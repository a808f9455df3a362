package catalog

import (
	"testing"

	"recipe-costing/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRows_ColumnAliases(t *testing.T) {
	header := []string{"Item", "Type", "Price", "Qty", "UOM"}
	rows := [][]string{
		{"Flour", "Grain", "45", "1", "kg"},
		{"Milk", "Dairy", "30", "2", "l"},
	}

	out := MapRows(header, rows)
	require.Len(t, out, 2)

	assert.Equal(t, "Flour", out[0].Name)
	assert.Equal(t, "grain", out[0].Category)
	assert.Equal(t, common.UnitKilogram, out[0].PurchaseUnit)
	assert.Equal(t, 45.0, out[0].PurchaseCost)
	assert.Equal(t, 1.0, out[0].PurchaseQuantity)

	assert.Equal(t, common.UnitLiter, out[1].PurchaseUnit)
}

func TestMapRows_MissingNameColumn(t *testing.T) {
	header := []string{"Price", "Qty"}
	rows := [][]string{{"45", "1"}}

	assert.Nil(t, MapRows(header, rows))
}

func TestMapRows_ExcludesUnusableRows(t *testing.T) {
	header := []string{"name", "cost", "quantity", "unit"}
	rows := [][]string{
		{"Flour", "45", "1", "kg"},
		{"", "30", "1", "g"},      // 無名稱
		{"Gift", "0", "1", "g"},   // 成本為零
		{"Candy", "-5", "1", "g"}, // 成本為負
		{"Salt", "12", "", "g"},   // 數量缺漏 → 預設 1
	}

	out := MapRows(header, rows)
	require.Len(t, out, 2)
	assert.Equal(t, "Flour", out[0].Name)
	assert.Equal(t, "Salt", out[1].Name)
	assert.Equal(t, 1.0, out[1].PurchaseQuantity)
}

func TestMapRows_OptionalColumnsAbsent(t *testing.T) {
	// 只有名稱與成本欄位：分類落到 other、單位落到 piece
	header := []string{"Ingredient", "Cost"}
	rows := [][]string{{"Egg", "8"}}

	out := MapRows(header, rows)
	require.Len(t, out, 1)
	assert.Equal(t, "other", out[0].Category)
	assert.Equal(t, common.UnitPiece, out[0].PurchaseUnit)
	assert.Equal(t, 1.0, out[0].PurchaseQuantity)
}

func TestMapRows_ThousandsSeparator(t *testing.T) {
	header := []string{"name", "cost", "quantity", "unit"}
	rows := [][]string{{"Saffron", "1,200", "10", "g"}}

	out := MapRows(header, rows)
	require.Len(t, out, 1)
	assert.Equal(t, 1200.0, out[0].PurchaseCost)
}

func TestResolveColumns_FirstAliasWins(t *testing.T) {
	// 同一欄位出現兩個別名時採用先出現者
	header := []string{"name", "ingredient", "cost"}
	columns := resolveColumns(header)

	assert.Equal(t, 0, columns["name"])
	assert.Equal(t, 2, columns["cost"])
}
