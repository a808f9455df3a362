package handlers

import (
	"net/http"

	"recipe-costing/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// WriteError 將領域錯誤映射為統一的 HTTP 錯誤響應
func WriteError(c *gin.Context, err error) {
	switch {
	case common.IsValidationError(err):
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
	case common.IsReferentialIntegrityError(err):
		c.JSON(http.StatusConflict, common.ErrorResponse{
			Code:    common.ErrCodeConflict,
			Message: err.Error(),
		})
	default:
		if ce, ok := err.(*common.CustomError); ok {
			c.JSON(ce.Status, common.ErrorResponse{
				Code:    ce.Code,
				Message: ce.Message,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, common.ErrorResponse{
			Code:    common.ErrCodeInternalError,
			Message: "internal server error",
		})
	}
}
