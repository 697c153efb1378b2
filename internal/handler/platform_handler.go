package handler

import (
	"net/http"
	"time"

	"github.com/blues/rfs/internal/logic"
	"github.com/gin-gonic/gin"
)

type PlatformHandler struct {
	platformLogic *logic.PlatformLogic
}

func NewPlatformHandler(platformLogic *logic.PlatformLogic) *PlatformHandler {
	return &PlatformHandler{platformLogic: platformLogic}
}

// GetPlatform 获取平台状态
func (h *PlatformHandler) GetPlatform(c *gin.Context) {
	state, err := h.platformLogic.GetPlatformState()
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取平台状态成功", state)
}

// Initialize 初始化平台
func (h *PlatformHandler) Initialize(c *gin.Context) {
	authority, ok := requireCaller(c)
	if !ok {
		return
	}

	var req InitializePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	state, err := h.platformLogic.Initialize(authority, req.FeeRate, req.MinFundingAmount, time.Now().UTC())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "平台初始化成功", state)
}

// Pause 暂停平台
func (h *PlatformHandler) Pause(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	state, err := h.platformLogic.Pause(caller, time.Now().UTC())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "平台已暂停", state)
}

// Unpause 恢复平台
func (h *PlatformHandler) Unpause(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	state, err := h.platformLogic.Unpause(caller, time.Now().UTC())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "平台已恢复", state)
}
