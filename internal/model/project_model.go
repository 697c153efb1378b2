package model

import (
	"time"
)

// 项目文本与容量上限
const (
	MaxMilestones             = 10
	MaxTitleLength            = 100
	MaxDescriptionLength      = 1000
	MaxMilestoneTitle         = 64
	MaxMilestoneDescription   = 256
	MaxContributorsPerProject = 1000
)

// ProjectModel 科研众筹项目
type ProjectModel struct {
	ProjectId uint64    `json:"project_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Creator     string `json:"creator" gorm:"type:varchar(42);not null;index"`
	Title       string `json:"title" gorm:"type:varchar(100);not null"`
	Description string `json:"description" gorm:"type:text"`

	// 众筹信息
	FundingGoal    uint64 `json:"funding_goal" gorm:"not null"`
	CurrentFunding uint64 `json:"current_funding" gorm:"not null;default:0"`
	DurationDays   uint32 `json:"duration_days" gorm:"not null;default:0"`

	// 状态
	Status ProjectStatus `json:"status" gorm:"type:varchar(16);not null;index"`

	// 托管账户地址，由项目ID派生
	EscrowAddress string `json:"escrow_address" gorm:"type:varchar(42);not null"`

	// 关联
	Milestones   []ProjectMilestoneModel `json:"milestones,omitempty" gorm:"foreignKey:ProjectId;references:ProjectId"`
	Contributors []ContributorModel      `json:"contributors,omitempty" gorm:"foreignKey:ProjectId;references:ProjectId"`
}

// ProjectStatus 项目状态，只能前进：Active→Funded→Completed 或 Active→Cancelled
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"    // 筹款中
	ProjectStatusFunded    ProjectStatus = "funded"    // 已筹满
	ProjectStatusCompleted ProjectStatus = "completed" // 已完成
	ProjectStatusCancelled ProjectStatus = "cancelled" // 已取消
)

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "project"
}

// IsTerminal 项目是否已进入终态
func (p *ProjectModel) IsTerminal() bool {
	return p.Status == ProjectStatusCompleted || p.Status == ProjectStatusCancelled
}

// FindContributor 按地址查找贡献者
func (p *ProjectModel) FindContributor(address string) *ContributorModel {
	for i := range p.Contributors {
		if p.Contributors[i].Address == address {
			return &p.Contributors[i]
		}
	}
	return nil
}

// ExpiresAt 项目截止时间，DurationDays 为0时没有截止时间
func (p *ProjectModel) ExpiresAt() (time.Time, bool) {
	if p.DurationDays == 0 {
		return time.Time{}, false
	}
	return p.CreatedAt.Add(time.Duration(p.DurationDays) * 24 * time.Hour), true
}
