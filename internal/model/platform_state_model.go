package model

import (
	"time"
)

// PlatformStateId 平台状态单例的固定主键
const PlatformStateId = 1

// MaxFeeRate 手续费率上限（基点）
const MaxFeeRate = 10000

// PlatformStateModel 平台全局配置与统计
type PlatformStateModel struct {
	Id        int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Authority        string `json:"authority" gorm:"type:varchar(42);not null"`
	FeeRate          uint16 `json:"fee_rate" gorm:"not null"`           // 基点 0-10000
	MinFundingAmount uint64 `json:"min_funding_amount" gorm:"not null"` // 最低筹款目标
	TotalProjects    uint64 `json:"total_projects" gorm:"not null;default:0"`
	TotalFunding     uint64 `json:"total_funding" gorm:"not null;default:0"`
	IsPaused         bool   `json:"is_paused" gorm:"not null;default:false"`
}

// TableName 自定义表名
func (PlatformStateModel) TableName() string {
	return "platform_state"
}
