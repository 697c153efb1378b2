package model

import (
	"time"

	"gorm.io/datatypes"
)

// EventModel 核心操作产生的事件，与操作在同一事务中写入
type EventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId   uint64         `json:"project_id" gorm:"not null;index"`
	EventType   string         `json:"event_type" gorm:"type:varchar(32);not null;index"`
	Topic       string         `json:"topic" gorm:"type:varchar(66);not null"` // ABI 事件签名哈希
	RawData     []byte         `json:"-"`                                      // ABI 编码的事件参数
	Data        datatypes.JSON `json:"data"`
	Processed   bool           `json:"processed" gorm:"not null;default:false;index"`
	ProcessedAt *time.Time     `json:"processed_at"`
}

// TableName 自定义表名
func (EventModel) TableName() string {
	return "event"
}
