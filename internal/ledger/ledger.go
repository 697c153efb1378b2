package ledger

import (
	"errors"
	"fmt"

	"github.com/blues/rfs/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAccountNotFound    = errors.New("ledger account not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrUnauthorizedSigner = errors.New("authority does not own the source account")
	ErrInvalidTransfer    = errors.New("invalid transfer")
)

// Ledger 账本转账原语
// 所有方法都在调用方传入的事务中执行，失败时由调用方整体回滚
type Ledger interface {
	OpenAccount(tx *gorm.DB, address, owner string) error
	Transfer(tx *gorm.DB, from, to string, amount uint64, authority, memo string) error
}

// DBLedger 基于数据库的账本实现
type DBLedger struct{}

// NewDBLedger 创建数据库账本
func NewDBLedger() *DBLedger {
	return &DBLedger{}
}

// OpenAccount 开户并指定签名身份，账户已存在时只改写 owner，余额保留
func (l *DBLedger) OpenAccount(tx *gorm.DB, address, owner string) error {
	account := model.LedgerAccountModel{Address: address, Owner: owner}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{"owner", "updated_at"}),
	}).Create(&account).Error; err != nil {
		return fmt.Errorf("failed to open account %s: %w", address, err)
	}
	return nil
}

// ensureAccount 入账前按需开户，已存在的账户保持原样
func (l *DBLedger) ensureAccount(tx *gorm.DB, address string) error {
	account := model.LedgerAccountModel{Address: address, Owner: address}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&account).Error; err != nil {
		return fmt.Errorf("failed to open account %s: %w", address, err)
	}
	return nil
}

// Transfer 以 authority 的身份从 from 转账到 to，目标账户不存在时自动开户
func (l *DBLedger) Transfer(tx *gorm.DB, from, to string, amount uint64, authority, memo string) error {
	if amount == 0 {
		return nil
	}
	if from == to {
		return ErrInvalidTransfer
	}

	var source model.LedgerAccountModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&source, "address = ?", from).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, from)
	}
	if err != nil {
		return fmt.Errorf("failed to load account %s: %w", from, err)
	}

	if source.Owner != authority {
		return ErrUnauthorizedSigner
	}
	if source.Balance < amount {
		return fmt.Errorf("%w: balance %d, required %d", ErrInsufficientFunds, source.Balance, amount)
	}

	result := tx.Model(&model.LedgerAccountModel{}).
		Where("address = ? AND balance >= ?", from, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to debit %s: %w", from, result.Error)
	}
	if result.RowsAffected != 1 {
		return ErrInsufficientFunds
	}

	if err := l.credit(tx, to, amount); err != nil {
		return err
	}

	return l.record(tx, from, to, amount, authority, memo)
}

// Credit 向账户充值，仅供平台管理员使用
func (l *DBLedger) Credit(tx *gorm.DB, address string, amount uint64, authority string) error {
	if amount == 0 {
		return ErrInvalidTransfer
	}
	if err := l.credit(tx, address, amount); err != nil {
		return err
	}
	return l.record(tx, "", address, amount, authority, "deposit")
}

// GetAccount 查询账户
func (l *DBLedger) GetAccount(db *gorm.DB, address string) (*model.LedgerAccountModel, error) {
	var account model.LedgerAccountModel
	if err := db.First(&account, "address = ?", address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
		}
		return nil, fmt.Errorf("failed to load account %s: %w", address, err)
	}
	return &account, nil
}

// credit 入账
func (l *DBLedger) credit(tx *gorm.DB, address string, amount uint64) error {
	if err := l.ensureAccount(tx, address); err != nil {
		return err
	}
	if err := tx.Model(&model.LedgerAccountModel{}).
		Where("address = ?", address).
		Update("balance", gorm.Expr("balance + ?", amount)).Error; err != nil {
		return fmt.Errorf("failed to credit %s: %w", address, err)
	}
	return nil
}

// record 记录转账流水
func (l *DBLedger) record(tx *gorm.DB, from, to string, amount uint64, authority, memo string) error {
	transfer := model.LedgerTransferModel{
		FromAddress: from,
		ToAddress:   to,
		Amount:      amount,
		Authority:   authority,
		Memo:        memo,
	}
	if err := tx.Create(&transfer).Error; err != nil {
		return fmt.Errorf("failed to record transfer: %w", err)
	}
	return nil
}
