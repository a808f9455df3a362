package storage

import (
	"sync"
)

// MemoryStore 記憶體持久化端口，供測試與無磁碟環境使用
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore 創建記憶體持久化端口
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

// Read 讀取集合內容，鍵不存在時回傳空集合
func (s *MemoryStore) Read(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if data, ok := s.data[key]; ok {
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}
	return []byte("[]"), nil
}

// Write 寫入集合內容
func (s *MemoryStore) Write(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]byte, len(data))
	copy(out, data)
	s.data[key] = out
	return nil
}
