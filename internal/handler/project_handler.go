package handler

import (
	"net/http"
	"time"

	"github.com/blues/rfs/internal/logic"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
}

func NewProjectHandler(projectLogic *logic.ProjectLogic) *ProjectHandler {
	return &ProjectHandler{projectLogic: projectLogic}
}

// CreateProject 创建项目
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	creator, ok := requireCaller(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	params := logic.CreateProjectParams{
		ProjectId:    req.ProjectId,
		Title:        req.Title,
		Description:  req.Description,
		FundingGoal:  req.FundingGoal,
		DurationDays: req.DurationDays,
	}
	for _, m := range req.Milestones {
		params.Milestones = append(params.Milestones, logic.MilestoneParams{
			Title:             m.Title,
			Description:       m.Description,
			FundingPercentage: m.FundingPercentage,
		})
	}

	project, err := h.projectLogic.CreateResearchProject(creator, params, time.Now().UTC())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "项目创建成功", project)
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	page, pageSize := pageParams(c)
	projects, total, err := h.projectLogic.GetProjects(c.Query("status"), c.Query("creator"), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目列表成功", ProjectListResponse{
		Projects:   projects,
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetProject 获取单个项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := projectIdParam(c)
	if !ok {
		return
	}

	project, err := h.projectLogic.GetProject(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取项目详情成功", project)
}

// FundProject 贡献资金
func (h *ProjectHandler) FundProject(c *gin.Context) {
	contributor, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := projectIdParam(c)
	if !ok {
		return
	}

	var req FundProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	project, err := h.projectLogic.FundProject(id, contributor, req.Amount, time.Now().UTC())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "贡献成功", project)
}

// CancelProject 取消项目
func (h *ProjectHandler) CancelProject(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := projectIdParam(c)
	if !ok {
		return
	}

	project, err := h.projectLogic.CancelProject(id, caller, time.Now().UTC())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "项目已取消", project)
}

// GetContributors 获取项目贡献者
func (h *ProjectHandler) GetContributors(c *gin.Context) {
	id, ok := projectIdParam(c)
	if !ok {
		return
	}

	contributors, err := h.projectLogic.GetContributors(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取贡献者成功", contributors)
}
