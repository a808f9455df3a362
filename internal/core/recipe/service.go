package recipe

import (
	"strings"

	"recipe-costing/internal/core/unit"
	"recipe-costing/internal/infrastructure/config"
	"recipe-costing/internal/pkg/common"
)

// Service 食譜服務。寫入時套用單一換算紀律：
// 食材數量一律換算成基礎單位儲存，原始單位字串僅作顯示標籤。
type Service struct {
	repo    Repository
	costing config.CostingConfig
}

// NewService 創建食譜服務
func NewService(repo Repository, costing config.CostingConfig) *Service {
	return &Service{
		repo:    repo,
		costing: costing,
	}
}

// Get 依識別碼取得食譜
func (s *Service) Get(id string) (*common.Recipe, error) {
	return s.repo.Get(id)
}

// List 列出全部食譜
func (s *Service) List() ([]common.Recipe, error) {
	return s.repo.List()
}

// Create 建立食譜，缺省欄位以設定檔預設值補齊
func (s *Service) Create(rec common.Recipe) (*common.Recipe, error) {
	normalized, err := s.normalize(rec)
	if err != nil {
		return nil, err
	}

	if normalized.ID == "" {
		normalized.ID = common.GenerateUUID()
	}

	if err := s.repo.Add(*normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// Update 以整個實體替換既有食譜
func (s *Service) Update(rec common.Recipe) (*common.Recipe, error) {
	normalized, err := s.normalize(rec)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(*normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// Delete 移除食譜
func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}

// normalize 驗證並補齊食譜欄位，食材數量換算為基礎單位
func (s *Service) normalize(rec common.Recipe) (*common.Recipe, error) {
	if strings.TrimSpace(rec.Name) == "" {
		return nil, common.NewValidationError("recipe name is required")
	}
	if rec.LaborCost < 0 {
		return nil, common.NewValidationError("labor cost must not be negative")
	}
	if rec.OverheadPercentage < 0 {
		return nil, common.NewValidationError("overhead percentage must not be negative")
	}

	if rec.Servings <= 0 {
		rec.Servings = s.costing.DefaultServings
	}
	if rec.TargetFoodCostPercentage <= 0 || rec.TargetFoodCostPercentage > 100 {
		rec.TargetFoodCostPercentage = s.costing.DefaultTargetFoodCostPct
	}

	for i, item := range rec.Ingredients {
		if item.Quantity < 0 {
			return nil, common.NewValidationError("ingredient quantity must not be negative")
		}
		qty, label := unit.Rebase(item.Unit, item.Quantity)
		rec.Ingredients[i].Quantity = qty
		rec.Ingredients[i].Unit = label
	}
	if rec.Ingredients == nil {
		rec.Ingredients = []common.RecipeIngredient{}
	}

	return &rec, nil
}
