package handler

import (
	"github.com/blues/rfs/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

func newPagination(page, pageSize int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}

// 平台相关请求模型

// InitializePlatformRequest 初始化平台请求，调用者成为平台管理员
type InitializePlatformRequest struct {
	FeeRate          uint16 `json:"feeRate"`
	MinFundingAmount uint64 `json:"minFundingAmount" binding:"required"`
}

// 审核人与账本请求模型

type RegisterValidatorRequest struct {
	Address string `json:"address" binding:"required"`
}

type DepositRequest struct {
	Amount uint64 `json:"amount" binding:"required"`
}

// 项目相关请求模型

// MilestoneRequest 里程碑定义
type MilestoneRequest struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	FundingPercentage uint8  `json:"fundingPercentage"`
}

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	ProjectId    uint64             `json:"projectId"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	FundingGoal  uint64             `json:"fundingGoal"`
	DurationDays uint32             `json:"durationDays"`
	Milestones   []MilestoneRequest `json:"milestones"`
}

// FundProjectRequest 贡献请求，金额校验交给业务层
type FundProjectRequest struct {
	Amount uint64 `json:"amount"`
}

// SubmitMilestoneRequest 提交里程碑证明
type SubmitMilestoneRequest struct {
	EvidenceHash string `json:"evidenceHash" binding:"required"`
}

// ValidateMilestoneRequest 审核里程碑
type ValidateMilestoneRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// 响应模型

// ProjectListResponse 项目列表响应
type ProjectListResponse struct {
	Projects   []model.ProjectModel `json:"projects"`
	Pagination Pagination           `json:"pagination"`
}

// EventListResponse 事件列表响应
type EventListResponse struct {
	Events     []model.EventModel `json:"events"`
	Pagination Pagination         `json:"pagination"`
}

// TransferListResponse 账本流水响应
type TransferListResponse struct {
	Transfers  []model.LedgerTransferModel `json:"transfers"`
	Pagination Pagination                  `json:"pagination"`
}
