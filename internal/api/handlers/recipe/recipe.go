package recipe

import (
	"net/http"
	"strconv"

	"recipe-costing/internal/api/handlers"
	"recipe-costing/internal/core/catalog"
	"recipe-costing/internal/core/costing"
	"recipe-costing/internal/core/draft"
	recipeService "recipe-costing/internal/core/recipe"
	"recipe-costing/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler 食譜處理程序
type Handler struct {
	recipes *recipeService.Service
	catalog *catalog.Service
	drafts  *draft.Service
}

// NewHandler 創建食譜處理程序
func NewHandler(recipes *recipeService.Service, catalogService *catalog.Service, drafts *draft.Service) *Handler {
	return &Handler{
		recipes: recipes,
		catalog: catalogService,
		drafts:  drafts,
	}
}

// HandleList 列出全部食譜
func (h *Handler) HandleList(c *gin.Context) {
	items, err := h.recipes.List()
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// HandleGet 取得單一食譜
func (h *Handler) HandleGet(c *gin.Context) {
	rec, err := h.recipes.Get(c.Param("id"))
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// HandleCreate 建立食譜
func (h *Handler) HandleCreate(c *gin.Context) {
	var req common.Recipe
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	created, err := h.recipes.Create(req)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// HandleUpdate 替換既有食譜，路徑參數為權威識別碼
func (h *Handler) HandleUpdate(c *gin.Context) {
	var req common.Recipe
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	req.ID = c.Param("id")

	updated, err := h.recipes.Update(req)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// HandleDelete 刪除食譜
func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.recipes.Delete(c.Param("id")); err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleCost 計算成本拆解。純讀取投影，從不持久化；
// 可選的 actual_price 查詢參數觸發毛利計算。
func (h *Handler) HandleCost(c *gin.Context) {
	rec, err := h.recipes.Get(c.Param("id"))
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	var actualPrice *float64
	if raw := c.Query("actual_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid actual_price"})
			return
		}
		actualPrice = &v
	}

	breakdown := costing.ComputeCostBreakdown(rec, h.catalog, actualPrice)
	c.JSON(http.StatusOK, breakdown)
}

// HandleDraft 為既有食譜請求生成式草稿並調和。
// 生成失敗走 fail-soft 路徑：以空草稿調和，回應未變動的食譜。
// 調和結果不持久化，保存必須透過顯式 PUT。
func (h *Handler) HandleDraft(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	rec, err := h.recipes.Get(c.Param("id"))
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	known, err := h.catalog.List()
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	d, err := h.drafts.GenerateDraft(c.Request.Context(), rec.Name, known)
	if err != nil {
		common.LogWarn("草稿生成失敗，以空草稿調和",
			zap.Error(err),
			zap.String("recipe_id", rec.ID),
			zap.String("request_id", requestID),
		)
		d = &common.RecipeDraft{}
	}

	merged := draft.Reconcile(d, known, *rec)
	c.JSON(http.StatusOK, merged)
}

// HandleReconcile 以呼叫端提供的草稿調和既有食譜。
// 與 HandleDraft 相同的合併策略，同樣不持久化。
func (h *Handler) HandleReconcile(c *gin.Context) {
	rec, err := h.recipes.Get(c.Param("id"))
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	var d common.RecipeDraft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	known, err := h.catalog.List()
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	merged := draft.Reconcile(&d, known, *rec)
	c.JSON(http.StatusOK, merged)
}
