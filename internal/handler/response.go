package handler

import (
	"errors"
	"net/http"

	"github.com/blues/rfs/internal/ledger"
	"github.com/blues/rfs/internal/logger"
	"github.com/blues/rfs/internal/logic"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// HandleError 按错误类别映射HTTP状态码
func HandleError(c *gin.Context, err error) {
	var e *logic.Error
	switch {
	case errors.As(err, &e):
		ErrorResponse(c, statusForKind(e.Kind), e.Code, e.Message)
	case errors.Is(err, ledger.ErrInsufficientFunds):
		ErrorResponse(c, http.StatusPaymentRequired, "InsufficientFunds", "账户余额不足")
	case errors.Is(err, ledger.ErrUnauthorizedSigner):
		ErrorResponse(c, http.StatusForbidden, "UnauthorizedSigner", "签名身份与账户不符")
	case errors.Is(err, ledger.ErrAccountNotFound):
		ErrorResponse(c, http.StatusNotFound, "AccountNotFound", "账户不存在")
	case errors.Is(err, ledger.ErrInvalidTransfer):
		ErrorResponse(c, http.StatusBadRequest, "InvalidTransfer", "无效的转账")
	default:
		logger.Error("Unexpected error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		ErrorResponse(c, http.StatusInternalServerError, "InternalError", "服务器内部错误")
	}
}

func statusForKind(kind logic.ErrorKind) int {
	switch kind {
	case logic.KindInputValidation:
		return http.StatusBadRequest
	case logic.KindStateGate:
		return http.StatusConflict
	case logic.KindAuthorization:
		return http.StatusForbidden
	case logic.KindEconomicLimit:
		return http.StatusUnprocessableEntity
	case logic.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// badRequest 请求参数错误
func badRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BadRequest", message)
}
