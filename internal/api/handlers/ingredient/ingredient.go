package ingredient

import (
	"net/http"
	"strings"

	"recipe-costing/internal/api/handlers"
	"recipe-costing/internal/core/catalog"
	"recipe-costing/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食材目錄處理程序
type Handler struct {
	catalog *catalog.Service
}

// NewHandler 創建食材目錄處理程序
func NewHandler(catalogService *catalog.Service) *Handler {
	return &Handler{
		catalog: catalogService,
	}
}

// HandleList 列出全部食材
func (h *Handler) HandleList(c *gin.Context) {
	items, err := h.catalog.List()
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// HandleGet 取得單一食材
func (h *Handler) HandleGet(c *gin.Context) {
	ing, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

// HandleCreate 新增食材
func (h *Handler) HandleCreate(c *gin.Context) {
	var req common.Ingredient
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("新增食材請求格式無效",
			zap.Error(err),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	added, err := h.catalog.Add(req)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, added)
}

// HandleUpdate 替換既有食材，路徑參數為權威識別碼
func (h *Handler) HandleUpdate(c *gin.Context) {
	var req common.Ingredient
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	req.ID = c.Param("id")

	updated, err := h.catalog.Update(req)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// HandleDelete 刪除食材，仍被食譜引用時回應 409
func (h *Handler) HandleDelete(c *gin.Context) {
	id := c.Param("id")
	if err := h.catalog.Delete(id); err != nil {
		if common.IsReferentialIntegrityError(err) {
			common.LogInfo("拒絕刪除被引用的食材",
				zap.String("ingredient_id", id),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
			)
		}
		handlers.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportResult 批次匯入結果
type ImportResult struct {
	Admitted int `json:"admitted"`
	Skipped  int `json:"skipped"`
}

// HandleImport 批次匯入食材。
// multipart 上傳視為試算表，其餘視為 JSON 列陣列；
// 無效列靜默排除，回應實際收錄與排除筆數。
func (h *Handler) HandleImport(c *gin.Context) {
	rows, err := h.readImportRows(c)
	if err != nil {
		common.LogWarn("批次匯入內容無法解析",
			zap.Error(err),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable import payload"})
		return
	}

	admitted := h.catalog.BulkAdd(rows)
	result := ImportResult{
		Admitted: admitted,
		Skipped:  len(rows) - admitted,
	}

	common.LogInfo("批次匯入完成",
		zap.Int("admitted", result.Admitted),
		zap.Int("skipped", result.Skipped),
		zap.String("request_id", c.GetHeader("X-Request-ID")),
	)
	c.JSON(http.StatusOK, result)
}

// readImportRows 依內容型態讀出候選食材列
func (h *Handler) readImportRows(c *gin.Context) ([]common.Ingredient, error) {
	contentType := c.ContentType()

	if strings.HasPrefix(contentType, "multipart/") {
		file, _, err := c.Request.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()

		header, rows, err := catalog.ParseXLSX(file)
		if err != nil {
			return nil, err
		}
		return catalog.MapRows(header, rows), nil
	}

	var rows []common.Ingredient
	if err := common.DecodeJSON(c.Request.Body, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
