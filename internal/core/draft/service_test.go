package draft

import (
	"context"
	"errors"
	"testing"

	"recipe-costing/internal/infrastructure/config"
	"recipe-costing/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator 固定回傳指定內容的生成器替身
type stubGenerator struct {
	content string
	err     error
	calls   int
}

func (s *stubGenerator) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.content, s.err
}

func draftConfig(enabled bool) *config.Config {
	return &config.Config{
		OpenRouter: config.OpenRouterConfig{Enabled: enabled},
	}
}

func TestParseDraft_PlainJSON(t *testing.T) {
	content := `{
		"description": "酥脆薄餅",
		"servings": 4,
		"instructions": "混合後煎熟",
		"ingredients": [
			{"name": "All-Purpose Flour", "quantity": 0.5, "unit": "kg", "estimated_cost": 22.5}
		]
	}`

	d, err := ParseDraft(content)
	require.NoError(t, err)
	assert.Equal(t, "酥脆薄餅", d.Description)
	assert.Equal(t, 4, d.Servings)
	require.Len(t, d.Ingredients, 1)
	assert.Equal(t, 0.5, d.Ingredients[0].Quantity)
	assert.Equal(t, "kg", d.Ingredients[0].Unit)
}

func TestParseDraft_CodeFenceAndSurroundingText(t *testing.T) {
	content := "好的，以下是建議：\n```json\n{\"description\": \"d\", \"servings\": 2, \"ingredients\": []}\n```\n希望有幫助！"

	d, err := ParseDraft(content)
	require.NoError(t, err)
	assert.Equal(t, "d", d.Description)
	assert.Equal(t, 2, d.Servings)
}

func TestParseDraft_RejectsMalformedContent(t *testing.T) {
	cases := []string{
		"",
		"完全不是 JSON 的回應",
		`{"description": "d", "servings": -1, "ingredients": []}`,
		`{"description": "d", "ingredients": [{"quantity": 1}]}`,
		`{"description": "d", "ingredients": [{"name": "x", "quantity": -2}]}`,
	}
	for _, content := range cases {
		_, err := ParseDraft(content)
		assert.Error(t, err, "content: %q", content)
	}
}

func TestGenerateDraft_DisabledService(t *testing.T) {
	gen := &stubGenerator{}
	svc := NewService(draftConfig(false), gen, nil)

	_, err := svc.GenerateDraft(context.Background(), "Pancakes", nil)
	assert.ErrorIs(t, err, common.ErrAIServiceError)
	assert.Zero(t, gen.calls)
}

func TestGenerateDraft_ClientErrorPropagates(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream timeout")}
	svc := NewService(draftConfig(true), gen, nil)

	_, err := svc.GenerateDraft(context.Background(), "Pancakes", nil)
	assert.Error(t, err)
}

func TestGenerateDraft_ParsesClientResponse(t *testing.T) {
	gen := &stubGenerator{content: `{"description": "家常煎餅", "servings": 4, "ingredients": [{"name": "Egg", "quantity": 2, "unit": "piece"}]}`}
	svc := NewService(draftConfig(true), gen, nil)

	known := []common.Ingredient{{ID: "ing-egg", Name: "Egg"}}
	d, err := svc.GenerateDraft(context.Background(), "Pancakes", known)
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	require.Len(t, d.Ingredients, 1)
	assert.Equal(t, "Egg", d.Ingredients[0].Name)
}

func TestBuildDraftPrompt_ListsKnownIngredients(t *testing.T) {
	known := []common.Ingredient{
		{Name: "Egg"},
		{Name: "Whole Milk"},
	}
	prompt := buildDraftPrompt("Pancakes", known)

	assert.Contains(t, prompt, "Pancakes")
	assert.Contains(t, prompt, "- Egg")
	assert.Contains(t, prompt, "- Whole Milk")
}
