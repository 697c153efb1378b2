package model

import (
	"time"
)

// ValidatorModel 里程碑审核人
type ValidatorModel struct {
	Address   string    `json:"address" gorm:"primaryKey;type:varchar(42)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	IsValidator          bool   `json:"is_validator" gorm:"not null;default:true"`
	ReputationScore      uint32 `json:"reputation_score" gorm:"not null;default:0"`
	ValidationsCompleted uint64 `json:"validations_completed" gorm:"not null;default:0"`
}

// TableName 自定义表名
func (ValidatorModel) TableName() string {
	return "validator"
}
