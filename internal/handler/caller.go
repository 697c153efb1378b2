package handler

import (
	"net/http"

	"github.com/blues/rfs/internal/chain"
	"github.com/gin-gonic/gin"
)

const (
	// CallerHeader 调用者身份请求头，身份验证由网关完成
	CallerHeader = "X-Caller-Address"
	callerKey    = "caller"
)

// CallerMiddleware 读取并规范化调用者地址
func CallerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(CallerHeader)
		if raw == "" {
			c.Next()
			return
		}

		address, err := chain.NormalizeAddress(raw)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "InvalidAddress", "调用者地址格式无效")
			c.Abort()
			return
		}
		c.Set(callerKey, address)
		c.Next()
	}
}

// requireCaller 当前请求的调用者，缺失时直接响应401
func requireCaller(c *gin.Context) (string, bool) {
	address := c.GetString(callerKey)
	if address == "" {
		ErrorResponse(c, http.StatusUnauthorized, "MissingCaller", "缺少调用者身份")
		return "", false
	}
	return address, true
}
