package recipe

import (
	"encoding/json"
	"fmt"
	"sync"

	"recipe-costing/internal/core/storage"
	"recipe-costing/internal/pkg/common"
)

// Repository 食譜集合的存取介面
type Repository interface {
	Get(id string) (*common.Recipe, error)
	List() ([]common.Recipe, error)
	Add(r common.Recipe) error
	Update(r common.Recipe) error
	Delete(id string) error
}

// storeRepository 以持久化端口實現的食譜倉儲
type storeRepository struct {
	mu    sync.RWMutex
	store storage.Store
	items []common.Recipe
}

// NewRepository 創建食譜倉儲並載入既有資料
func NewRepository(store storage.Store) (Repository, error) {
	data, err := store.Read(storage.KeyRecipes)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	var items []common.Recipe
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse recipes: %w", err)
	}

	return &storeRepository{
		store: store,
		items: items,
	}, nil
}

// Get 依識別碼取得食譜
func (r *storeRepository) Get(id string) (*common.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.items {
		if rec.ID == id {
			found := rec
			return &found, nil
		}
	}
	return nil, common.ErrRecipeNotFound
}

// List 列出全部食譜
func (r *storeRepository) List() ([]common.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]common.Recipe, len(r.items))
	copy(out, r.items)
	return out, nil
}

// Add 新增食譜，識別碼必須唯一
func (r *storeRepository) Add(rec common.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.ID == rec.ID {
			return common.ErrDuplicateID
		}
	}

	r.items = append(r.items, rec)
	return r.persist()
}

// Update 以識別碼替換整個食譜實體
func (r *storeRepository) Update(rec common.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.items {
		if existing.ID == rec.ID {
			r.items[i] = rec
			return r.persist()
		}
	}
	return common.ErrRecipeNotFound
}

// Delete 移除食譜，沒有任何實體依賴食譜，不需引用防護
func (r *storeRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.items {
		if existing.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return r.persist()
		}
	}
	return common.ErrRecipeNotFound
}

// persist 將目前集合寫回持久化端口，呼叫時必須持有寫鎖
func (r *storeRepository) persist() error {
	data, err := json.Marshal(r.items)
	if err != nil {
		return fmt.Errorf("failed to marshal recipes: %w", err)
	}
	return r.store.Write(storage.KeyRecipes, data)
}
