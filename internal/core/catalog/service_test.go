package catalog

import (
	"testing"

	"recipe-costing/internal/core/storage"
	"recipe-costing/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRecipeLister 固定回傳指定食譜清單的測試替身
type stubRecipeLister struct {
	recipes []common.Recipe
}

func (s *stubRecipeLister) List() ([]common.Recipe, error) {
	return s.recipes, nil
}

func newTestService(t *testing.T, recipes []common.Recipe) *Service {
	t.Helper()
	repo, err := NewRepository(storage.NewMemoryStore())
	require.NoError(t, err)
	return NewService(repo, &stubRecipeLister{recipes: recipes})
}

func TestServiceAdd_DerivesCostPerBaseUnit(t *testing.T) {
	svc := newTestService(t, nil)

	added, err := svc.Add(common.Ingredient{
		Name:             "Bread Flour",
		Category:         "GRAIN",
		PurchaseUnit:     common.UnitKilogram,
		PurchaseCost:     45,
		PurchaseQuantity: 1,
		CostPerBaseUnit:  999, // 呼叫端給的衍生值必須被忽略
	})
	require.NoError(t, err)

	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "grain", added.Category)
	// 45 / (1 × 1000) = 0.045 元/克
	assert.InDelta(t, 0.045, added.CostPerBaseUnit, 1e-9)
}

func TestServiceAdd_Validation(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Add(common.Ingredient{Name: "  ", PurchaseCost: 10, PurchaseQuantity: 1})
	assert.Error(t, err)

	_, err = svc.Add(common.Ingredient{Name: "Salt", PurchaseCost: -1, PurchaseQuantity: 1})
	assert.Error(t, err)

	_, err = svc.Add(common.Ingredient{Name: "Salt", PurchaseCost: 10, PurchaseQuantity: 0})
	assert.Error(t, err)
}

func TestServiceUpdate_RecomputesDerivedField(t *testing.T) {
	svc := newTestService(t, nil)

	added, err := svc.Add(common.Ingredient{
		Name:             "Olive Oil",
		Category:         "oil",
		PurchaseUnit:     common.UnitLiter,
		PurchaseCost:     300,
		PurchaseQuantity: 1,
	})
	require.NoError(t, err)

	added.PurchaseCost = 600
	added.CostPerBaseUnit = 12345 // 過期的衍生值
	updated, err := svc.Update(*added)
	require.NoError(t, err)

	// 600 / (1 × 1000) = 0.6 元/毫升
	assert.InDelta(t, 0.6, updated.CostPerBaseUnit, 1e-9)
}

func TestServiceDelete_ReferencedIngredientRefused(t *testing.T) {
	recipes := []common.Recipe{
		{
			ID:   "rec-1",
			Name: "Carbonara",
			Ingredients: []common.RecipeIngredient{
				{IngredientID: "ing-guanciale", Quantity: 150, Unit: "g"},
			},
		},
	}
	svc := newTestService(t, recipes)

	_, err := svc.Add(common.Ingredient{
		ID:               "ing-guanciale",
		Name:             "Guanciale",
		PurchaseUnit:     common.UnitKilogram,
		PurchaseCost:     800,
		PurchaseQuantity: 1,
	})
	require.NoError(t, err)

	err = svc.Delete("ing-guanciale")
	require.Error(t, err)
	assert.True(t, common.IsReferentialIntegrityError(err))
	assert.Contains(t, err.Error(), "Carbonara")

	// 拒絕刪除後目錄必須原封不動
	items, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestServiceDelete_UnreferencedIngredientRemoved(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Add(common.Ingredient{
		ID:               "ing-basil",
		Name:             "Basil",
		PurchaseUnit:     common.UnitGram,
		PurchaseCost:     20,
		PurchaseQuantity: 100,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete("ing-basil"))

	_, err = svc.Get("ing-basil")
	assert.ErrorIs(t, err, common.ErrIngredientNotFound)
}

func TestServiceBulkAdd_InvalidRowsSilentlyExcluded(t *testing.T) {
	svc := newTestService(t, nil)

	rows := make([]common.Ingredient, 0, 10)
	for i := 0; i < 8; i++ {
		rows = append(rows, common.Ingredient{
			Name:             "Ingredient " + string(rune('A'+i)),
			PurchaseUnit:     common.UnitGram,
			PurchaseCost:     10,
			PurchaseQuantity: 1,
		})
	}
	// 成本為零的列在不中斷整批的情況下被排除
	rows = append(rows,
		common.Ingredient{Name: "Free Sample", PurchaseUnit: common.UnitGram, PurchaseCost: 0, PurchaseQuantity: 1},
		common.Ingredient{Name: "Another Freebie", PurchaseUnit: common.UnitGram, PurchaseCost: 0, PurchaseQuantity: 1},
	)

	admitted := svc.BulkAdd(rows)
	assert.Equal(t, 8, admitted)

	items, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, items, 8)
}

func TestRepositoryAdd_DuplicateIDRejected(t *testing.T) {
	repo, err := NewRepository(storage.NewMemoryStore())
	require.NoError(t, err)

	ing := common.Ingredient{ID: "ing-1", Name: "Sugar"}
	require.NoError(t, repo.Add(ing))
	assert.ErrorIs(t, repo.Add(ing), common.ErrDuplicateID)
}

func TestRepository_PersistsAcrossReload(t *testing.T) {
	store := storage.NewMemoryStore()

	repo, err := NewRepository(store)
	require.NoError(t, err)
	require.NoError(t, repo.Add(common.Ingredient{ID: "ing-1", Name: "Sugar", PurchaseCost: 30}))

	// 以同一個端口重建倉儲，資料必須還在
	reloaded, err := NewRepository(store)
	require.NoError(t, err)
	got, err := reloaded.Get("ing-1")
	require.NoError(t, err)
	assert.Equal(t, "Sugar", got.Name)
}
