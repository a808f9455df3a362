package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// 持久化狀態的固定鍵：兩個頂層集合，各自是一個 JSON 陣列。
// 沒有 schema 版本欄位，結構變更即為相容性破壞。
const (
	KeyIngredients = "ingredients"
	KeyRecipes     = "recipes"
)

// Store 持久化端口，食材與食譜集合以固定鍵讀寫
type Store interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
}

// FileStore 以 JSON 檔案實現的持久化端口
type FileStore struct {
	dir string
}

// NewFileStore 創建檔案持久化端口，目錄不存在時建立
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Read 讀取集合內容，檔案不存在時回傳空集合
func (s *FileStore) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return []byte("[]"), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Write 以暫存檔加改名的方式原子寫入集合
func (s *FileStore) Write(key string, data []byte) error {
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
