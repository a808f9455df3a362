package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_MissingKeyReadsEmptyCollection(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	data, err := store.Read(KeyIngredients)
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), data)
}

func TestFileStore_WriteThenRead(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	payload := []byte(`[{"id":"ing-1","name":"Sugar"}]`)
	require.NoError(t, store.Write(KeyIngredients, payload))

	data, err := store.Read(KeyIngredients)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	// 各集合獨立成檔
	data, err = store.Read(KeyRecipes)
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), data)
}

func TestFileStore_WriteLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Write(KeyRecipes, []byte("[]")))

	_, err = os.Stat(filepath.Join(dir, KeyRecipes+".json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMemoryStore_CopiesOnReadAndWrite(t *testing.T) {
	store := NewMemoryStore()

	payload := []byte(`[{"id":"rec-1"}]`)
	require.NoError(t, store.Write(KeyRecipes, payload))

	// 呼叫端改動自己的切片不可汙染儲存內容
	payload[0] = 'X'

	data, err := store.Read(KeyRecipes)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"rec-1"}]`), data)

	data[0] = 'Y'
	again, err := store.Read(KeyRecipes)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"rec-1"}]`), again)
}
