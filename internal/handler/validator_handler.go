package handler

import (
	"net/http"
	"time"

	"github.com/blues/rfs/internal/logic"
	"github.com/gin-gonic/gin"
)

type ValidatorHandler struct {
	validatorLogic *logic.ValidatorLogic
}

func NewValidatorHandler(validatorLogic *logic.ValidatorLogic) *ValidatorHandler {
	return &ValidatorHandler{validatorLogic: validatorLogic}
}

// RegisterValidator 登记审核人
func (h *ValidatorHandler) RegisterValidator(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req RegisterValidatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	validator, err := h.validatorLogic.RegisterValidator(caller, req.Address, time.Now().UTC())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "审核人登记成功", validator)
}

// RevokeValidator 撤销审核人
func (h *ValidatorHandler) RevokeValidator(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	validator, err := h.validatorLogic.RevokeValidator(caller, c.Param("address"), time.Now().UTC())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "审核人已撤销", validator)
}

// GetValidator 获取审核人
func (h *ValidatorHandler) GetValidator(c *gin.Context) {
	validator, err := h.validatorLogic.GetValidator(c.Param("address"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取审核人成功", validator)
}

// GetValidators 获取审核人列表
func (h *ValidatorHandler) GetValidators(c *gin.Context) {
	validators, err := h.validatorLogic.GetValidators(c.Query("active") == "true")
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取审核人列表成功", validators)
}
