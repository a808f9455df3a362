package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"recipe-costing/internal/core/storage"
	"recipe-costing/internal/pkg/common"
)

// Repository 食材目錄的存取介面
type Repository interface {
	Get(id string) (*common.Ingredient, error)
	List() ([]common.Ingredient, error)
	Add(ing common.Ingredient) error
	Update(ing common.Ingredient) error
	Delete(id string) error
}

// storeRepository 以持久化端口實現的食材倉儲。
// 單一邏輯會話擁有整個集合，更新以整個實體替換、後寫者勝。
type storeRepository struct {
	mu    sync.RWMutex
	store storage.Store
	items []common.Ingredient
}

// NewRepository 創建食材倉儲並載入既有資料
func NewRepository(store storage.Store) (Repository, error) {
	data, err := store.Read(storage.KeyIngredients)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}

	var items []common.Ingredient
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse ingredients: %w", err)
	}

	return &storeRepository{
		store: store,
		items: items,
	}, nil
}

// Get 依識別碼取得食材
func (r *storeRepository) Get(id string) (*common.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ing := range r.items {
		if ing.ID == id {
			found := ing
			return &found, nil
		}
	}
	return nil, common.ErrIngredientNotFound
}

// List 列出全部食材
func (r *storeRepository) List() ([]common.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]common.Ingredient, len(r.items))
	copy(out, r.items)
	return out, nil
}

// Add 新增食材，識別碼必須唯一
func (r *storeRepository) Add(ing common.Ingredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.ID == ing.ID {
			return common.ErrDuplicateID
		}
	}

	r.items = append(r.items, ing)
	return r.persist()
}

// Update 以識別碼替換整個食材實體
func (r *storeRepository) Update(ing common.Ingredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.items {
		if existing.ID == ing.ID {
			r.items[i] = ing
			return r.persist()
		}
	}
	return common.ErrIngredientNotFound
}

// Delete 移除食材（引用完整性檢查在服務層完成）
func (r *storeRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.items {
		if existing.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return r.persist()
		}
	}
	return common.ErrIngredientNotFound
}

// persist 將目前集合寫回持久化端口，呼叫時必須持有寫鎖
func (r *storeRepository) persist() error {
	data, err := json.Marshal(r.items)
	if err != nil {
		return fmt.Errorf("failed to marshal ingredients: %w", err)
	}
	return r.store.Write(storage.KeyIngredients, data)
}
