package model

import (
	"time"
)

// ContributorModel 项目贡献者，每个地址在一个项目中只有一条记录
type ContributorModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId uint64    `json:"project_id" gorm:"not null;uniqueIndex:idx_project_contributor"`
	Address   string    `json:"address" gorm:"type:varchar(42);not null;uniqueIndex:idx_project_contributor"`
	Amount    uint64    `json:"amount" gorm:"not null"`    // 累计贡献金额
	Timestamp time.Time `json:"timestamp" gorm:"not null"` // 最近一次贡献时间
}

// TableName 自定义表名
func (ContributorModel) TableName() string {
	return "project_contributor"
}
