package catalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"recipe-costing/internal/core/unit"
	"recipe-costing/internal/pkg/common"

	"github.com/xuri/excelize/v2"
)

// 欄位別名（不分大小寫），對應試算表欄位到食材欄位
var columnAliases = map[string]string{
	"name":              "name",
	"ingredient":        "name",
	"ingredient name":   "name",
	"item":              "name",
	"category":          "category",
	"type":              "category",
	"group":             "category",
	"cost":              "cost",
	"price":             "cost",
	"purchase cost":     "cost",
	"quantity":          "quantity",
	"qty":               "quantity",
	"purchase quantity": "quantity",
	"amount":            "quantity",
	"unit":              "unit",
	"uom":               "unit",
	"measure":           "unit",
}

// resolveColumns 將表頭對應到食材欄位索引，未識別的欄位忽略
func resolveColumns(header []string) map[string]int {
	columns := make(map[string]int)
	for i, cell := range header {
		key := strings.ToLower(strings.TrimSpace(cell))
		if field, ok := columnAliases[key]; ok {
			if _, taken := columns[field]; !taken {
				columns[field] = i
			}
		}
	}
	return columns
}

// MapRows 將試算表列轉換為候選食材。
// 缺少可解析名稱或成本不為正的列在進入 BulkAdd 前即被排除。
func MapRows(header []string, rows [][]string) []common.Ingredient {
	columns := resolveColumns(header)
	if _, hasName := columns["name"]; !hasName {
		return nil
	}

	var out []common.Ingredient
	for _, row := range rows {
		name := cellAt(row, colIdx(columns, "name"))
		if strings.TrimSpace(name) == "" {
			continue
		}

		cost := parseFloat(cellAt(row, colIdx(columns, "cost")))
		if cost <= 0 {
			continue
		}

		quantity := parseFloat(cellAt(row, colIdx(columns, "quantity")))
		if quantity <= 0 {
			quantity = 1
		}

		out = append(out, common.Ingredient{
			Name:             strings.TrimSpace(name),
			Category:         common.NormalizeCategory(cellAt(row, colIdx(columns, "category"))),
			PurchaseUnit:     unit.Classify(cellAt(row, colIdx(columns, "unit"))),
			PurchaseCost:     cost,
			PurchaseQuantity: quantity,
		})
	}
	return out
}

func colIdx(columns map[string]int, field string) int {
	if i, ok := columns[field]; ok {
		return i
	}
	return -1
}

// ParseXLSX 讀取試算表第一個工作表，回傳表頭與資料列
func ParseXLSX(r io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	return rows[0], rows[1:], nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
