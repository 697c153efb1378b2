package handler

import (
	"net/http"
	"time"

	"github.com/blues/rfs/internal/logic"
	"github.com/gin-gonic/gin"
)

type MilestoneHandler struct {
	milestoneLogic *logic.MilestoneLogic
}

func NewMilestoneHandler(milestoneLogic *logic.MilestoneLogic) *MilestoneHandler {
	return &MilestoneHandler{milestoneLogic: milestoneLogic}
}

// SubmitMilestone 创建者提交里程碑证明
func (h *MilestoneHandler) SubmitMilestone(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := projectIdParam(c)
	if !ok {
		return
	}
	index, ok := milestoneIndexParam(c)
	if !ok {
		return
	}

	var req SubmitMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	milestone, err := h.milestoneLogic.CompleteMilestone(id, index, req.EvidenceHash, caller, time.Now().UTC())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "里程碑已提交审核", milestone)
}

// ValidateMilestone 审核人审核里程碑
func (h *MilestoneHandler) ValidateMilestone(c *gin.Context) {
	validator, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := projectIdParam(c)
	if !ok {
		return
	}
	index, ok := milestoneIndexParam(c)
	if !ok {
		return
	}

	var req ValidateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.milestoneLogic.ValidateMilestone(id, index, *req.Approved, validator, time.Now().UTC())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "里程碑审核完成", result)
}
