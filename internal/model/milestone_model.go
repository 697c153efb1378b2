package model

import (
	"time"
)

// ProjectMilestoneModel 项目里程碑，按 MilestoneIndex 寻址，顺序在创建时固定
type ProjectMilestoneModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId         uint64          `json:"project_id" gorm:"not null;uniqueIndex:idx_project_milestone"`
	MilestoneIndex    int             `json:"milestone_index" gorm:"not null;uniqueIndex:idx_project_milestone"`
	Title             string          `json:"title" gorm:"type:varchar(64);not null"`
	Description       string          `json:"description" gorm:"type:text"`
	FundingPercentage uint8           `json:"funding_percentage" gorm:"not null"`
	Status            MilestoneStatus `json:"status" gorm:"type:varchar(16);not null"`

	EvidenceHash   string     `json:"evidence_hash" gorm:"type:varchar(66)"` // 证明材料摘要，只设置一次
	SubmittedAt    *time.Time `json:"submitted_at"`
	ApprovedAt     *time.Time `json:"approved_at"`
	ReviewedBy     string     `json:"reviewed_by" gorm:"type:varchar(42)"`
	ReleasedAmount uint64     `json:"released_amount" gorm:"not null;default:0"`
}

// MilestoneStatus 里程碑状态，只能 Pending→UnderReview→{Completed|Rejected}
type MilestoneStatus string

const (
	MilestoneStatusPending     MilestoneStatus = "pending"      // 待提交
	MilestoneStatusUnderReview MilestoneStatus = "under_review" // 审核中
	MilestoneStatusCompleted   MilestoneStatus = "completed"    // 已完成
	MilestoneStatusRejected    MilestoneStatus = "rejected"     // 已驳回
)

// TableName 自定义表名
func (ProjectMilestoneModel) TableName() string {
	return "project_milestone"
}

// IsResolved 里程碑是否已审核完毕
func (m *ProjectMilestoneModel) IsResolved() bool {
	return m.Status == MilestoneStatusCompleted || m.Status == MilestoneStatusRejected
}
