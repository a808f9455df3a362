package catalog

import (
	"strings"

	"recipe-costing/internal/core/unit"
	"recipe-costing/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeLister 引用完整性檢查所需的食譜讀取介面
type RecipeLister interface {
	List() ([]common.Recipe, error)
}

// Service 食材目錄服務
type Service struct {
	repo    Repository
	recipes RecipeLister
}

// NewService 創建食材目錄服務
func NewService(repo Repository, recipes RecipeLister) *Service {
	return &Service{
		repo:    repo,
		recipes: recipes,
	}
}

// Get 依識別碼取得食材
func (s *Service) Get(id string) (*common.Ingredient, error) {
	return s.repo.Get(id)
}

// List 列出全部食材
func (s *Service) List() ([]common.Ingredient, error) {
	return s.repo.List()
}

// Add 新增食材。識別碼留空時自動產生；
// cost_per_base_unit 一律由採購欄位重新計算。
func (s *Service) Add(ing common.Ingredient) (*common.Ingredient, error) {
	if err := validate(ing); err != nil {
		return nil, err
	}

	if ing.ID == "" {
		ing.ID = common.GenerateUUID()
	}
	ing.Category = common.NormalizeCategory(ing.Category)
	ing.CostPerBaseUnit = unit.CostPerBaseUnit(ing.PurchaseUnit, ing.PurchaseCost, ing.PurchaseQuantity)

	if err := s.repo.Add(ing); err != nil {
		return nil, err
	}
	return &ing, nil
}

// Update 替換既有食材。即使呼叫端傳入過期的衍生值，
// cost_per_base_unit 仍防禦性地由採購欄位重新計算。
func (s *Service) Update(ing common.Ingredient) (*common.Ingredient, error) {
	if err := validate(ing); err != nil {
		return nil, err
	}

	ing.Category = common.NormalizeCategory(ing.Category)
	ing.CostPerBaseUnit = unit.CostPerBaseUnit(ing.PurchaseUnit, ing.PurchaseCost, ing.PurchaseQuantity)

	if err := s.repo.Update(ing); err != nil {
		return nil, err
	}
	return &ing, nil
}

// Delete 移除食材。仍被任何食譜引用時拒絕刪除且不做任何變更。
func (s *Service) Delete(id string) error {
	recipes, err := s.recipes.List()
	if err != nil {
		return err
	}

	for _, recipe := range recipes {
		for _, item := range recipe.Ingredients {
			if item.IngredientID == id {
				return common.NewReferentialIntegrityError(id, recipe.Name)
			}
		}
	}

	return s.repo.Delete(id)
}

// BulkAdd 批次新增食材，等價於逐筆 Add。
// 每列獨立驗證，驗證失敗的列靜默排除而不中斷整批，回傳實際收錄筆數。
func (s *Service) BulkAdd(rows []common.Ingredient) int {
	admitted := 0
	for _, row := range rows {
		if err := validateBulkRow(row); err != nil {
			common.LogDebug("批次匯入排除無效列",
				zap.String("name", row.Name),
				zap.Error(err),
			)
			continue
		}
		if _, err := s.Add(row); err != nil {
			common.LogDebug("批次匯入排除無效列",
				zap.String("name", row.Name),
				zap.Error(err),
			)
			continue
		}
		admitted++
	}
	return admitted
}

// validate 檢查目錄寫入的必要欄位
func validate(ing common.Ingredient) error {
	if strings.TrimSpace(ing.Name) == "" {
		return common.NewValidationError("ingredient name is required")
	}
	if ing.PurchaseCost < 0 {
		return common.NewValidationError("purchase cost must not be negative")
	}
	if ing.PurchaseQuantity <= 0 {
		return common.NewValidationError("purchase quantity must be positive")
	}
	return nil
}

// validateBulkRow 批次列的前置條件：名稱非空、成本大於零
func validateBulkRow(ing common.Ingredient) error {
	if strings.TrimSpace(ing.Name) == "" {
		return common.NewValidationError("ingredient name is required")
	}
	if ing.PurchaseCost <= 0 {
		return common.NewValidationError("purchase cost must be positive")
	}
	return nil
}
