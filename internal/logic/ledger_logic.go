package logic

import (
	"fmt"
	"math"

	"github.com/blues/rfs/internal/ledger"
	"github.com/blues/rfs/internal/logger"
	"github.com/blues/rfs/internal/model"
	"gorm.io/gorm"
)

// LedgerLogic 账本查询与充值
type LedgerLogic struct {
	db     *gorm.DB
	ledger *ledger.DBLedger
}

// NewLedgerLogic 创建账本业务逻辑
func NewLedgerLogic(db *gorm.DB, l *ledger.DBLedger) *LedgerLogic {
	return &LedgerLogic{db: db, ledger: l}
}

// Deposit 平台管理员向地址充值
func (l *LedgerLogic) Deposit(caller, address string, amount uint64) (*model.LedgerAccountModel, error) {
	caller, err := normalizeAddress(caller)
	if err != nil {
		return nil, err
	}
	address, err = normalizeAddress(address)
	if err != nil {
		return nil, err
	}
	if amount == 0 || amount > math.MaxInt64 {
		return nil, ErrInvalidAmount
	}

	var account *model.LedgerAccountModel
	err = l.db.Transaction(func(tx *gorm.DB) error {
		if _, err := requireActivePlatform(tx); err != nil {
			return err
		}
		if _, err := requireAuthority(tx, caller); err != nil {
			return err
		}
		if err := l.ledger.Credit(tx, address, amount, caller); err != nil {
			return fmt.Errorf("充值失败: %w", err)
		}
		var err error
		account, err = l.ledger.GetAccount(tx, address)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Deposited %d to %s", amount, address)
	return account, nil
}

// GetAccount 获取账户余额
func (l *LedgerLogic) GetAccount(address string) (*model.LedgerAccountModel, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}
	return l.ledger.GetAccount(l.db, address)
}

// GetTransfers 获取账户相关流水
func (l *LedgerLogic) GetTransfers(address string, page, pageSize int) ([]model.LedgerTransferModel, int64, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return nil, 0, err
	}

	var transfers []model.LedgerTransferModel
	var total int64
	query := l.db.Model(&model.LedgerTransferModel{}).Where("from_address = ? OR to_address = ?", address, address)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取流水总数失败: %w", err)
	}

	page, pageSize = normalizePage(page, pageSize)
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Order("id ASC").Find(&transfers).Error; err != nil {
		return nil, 0, fmt.Errorf("获取流水失败: %w", err)
	}
	return transfers, total, nil
}
