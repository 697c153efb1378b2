package model

import (
	"time"
)

// LedgerAccountModel 账本账户
type LedgerAccountModel struct {
	Address   string    `json:"address" gorm:"primaryKey;type:varchar(42)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner   string `json:"owner" gorm:"type:varchar(42);not null"` // 有权签名转出的身份
	Balance uint64 `json:"balance" gorm:"not null;default:0"`
}

// TableName 自定义表名
func (LedgerAccountModel) TableName() string {
	return "ledger_account"
}

// LedgerTransferModel 转账流水
type LedgerTransferModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	FromAddress string `json:"from_address" gorm:"type:varchar(42);index"` // 充值时为空
	ToAddress   string `json:"to_address" gorm:"type:varchar(42);not null;index"`
	Amount      uint64 `json:"amount" gorm:"not null"`
	Authority   string `json:"authority" gorm:"type:varchar(42);not null"`
	Memo        string `json:"memo" gorm:"type:varchar(64)"`
}

// TableName 自定义表名
func (LedgerTransferModel) TableName() string {
	return "ledger_transfer"
}
