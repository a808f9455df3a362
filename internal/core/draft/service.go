package draft

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-costing/internal/core/draft/cache"
	"recipe-costing/internal/infrastructure/config"
	"recipe-costing/internal/pkg/common"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// generator 草稿生成所需的外部服務契約
type generator interface {
	GenerateResponse(ctx context.Context, prompt string) (string, error)
}

var validate = validator.New()

// Service 草稿生成服務。外部服務失敗時呼叫端以空草稿
// 進入調和流程，失敗不會汙染目錄或食譜。
type Service struct {
	config *config.Config
	client generator
	cache  cache.Cache
}

// NewService 創建草稿生成服務
func NewService(cfg *config.Config, client generator, c cache.Cache) *Service {
	return &Service{
		config: cfg,
		client: client,
		cache:  c,
	}
}

// GenerateDraft 以食譜名稱與已知食材名稱向生成式服務請求草稿。
// 單次請求、無重試；回應經嚴格解析與驗證後才成為草稿。
func (s *Service) GenerateDraft(ctx context.Context, recipeName string, known []common.Ingredient) (*common.RecipeDraft, error) {
	if !s.config.OpenRouter.Enabled {
		return nil, common.ErrAIServiceError
	}

	prompt := buildDraftPrompt(recipeName, known)

	// 檢查快取
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, prompt); err == nil && val != "" {
			return ParseDraft(val)
		}
	}

	start := time.Now()
	content, err := s.client.GenerateResponse(ctx, prompt)
	common.LogAICall(prompt, time.Since(start), err, "")
	if err != nil {
		return nil, fmt.Errorf("AI service error: %w", err)
	}

	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("empty AI response")
	}

	parsed, err := ParseDraft(content)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, prompt, content)
	}

	return parsed, nil
}

// ParseDraft 嚴格解析生成式服務的回應。
// 解析或驗證失敗回傳錯誤，由呼叫端以空草稿走 fail-soft 路徑，
// 而不是靠未定義欄位的寬容行為矇混過關。
func ParseDraft(content string) (*common.RecipeDraft, error) {
	text := common.ExtractJSONObject(content)
	text = common.QuoteJSONKeys(text)

	common.LogDebug("AI 回應內容 (draft)",
		zap.Int("ai_response_length", len(text)),
	)

	var result common.RecipeDraft
	if err := common.ParseJSON(text, &result); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	if err := validate.Struct(&result); err != nil {
		return nil, fmt.Errorf("invalid draft shape: %w", err)
	}

	return &result, nil
}

// buildDraftPrompt 構建草稿請求：食譜名稱加已知食材名稱清單
func buildDraftPrompt(recipeName string, known []common.Ingredient) string {
	var sb strings.Builder
	sb.WriteString("你是一位餐廳成本控管助理，請為下列菜名草擬一份食譜建議。\n")
	sb.WriteString(fmt.Sprintf("菜名：%s\n", recipeName))
	sb.WriteString("目前目錄中已有的食材名稱：\n")
	sb.WriteString(common.FormatIngredientNames(known))
	sb.WriteString("要求：\n")
	sb.WriteString("1. ingredients 只能使用上列目錄中的食材名稱，名稱必須逐字一致\n")
	sb.WriteString("2. quantity 為數字，unit 使用 g、kg、ml、l、piece 等常見單位縮寫\n")
	sb.WriteString("3. estimated_cost 為該食材用量的估計成本，數字，無法估計時填 0\n")
	sb.WriteString("4. servings 為正整數份數\n")
	sb.WriteString("5. 所有字段都必須使用雙引號，不要輸出 JSON 以外的任何文字或程式碼區塊標記\n")
	sb.WriteString("請以以下 JSON 格式返回：\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"description\": \"食譜描述\",\n")
	sb.WriteString("  \"servings\": 4,\n")
	sb.WriteString("  \"instructions\": \"作法說明\",\n")
	sb.WriteString("  \"ingredients\": [\n")
	sb.WriteString("    {\"name\": \"食材名稱\", \"quantity\": 0.5, \"unit\": \"kg\", \"estimated_cost\": 0}\n")
	sb.WriteString("  ]\n")
	sb.WriteString("}\n")
	return sb.String()
}
