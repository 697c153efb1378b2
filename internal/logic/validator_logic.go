package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/rfs/internal/logger"
	"github.com/blues/rfs/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ValidatorLogic 审核人业务逻辑
type ValidatorLogic struct {
	db *gorm.DB
}

// NewValidatorLogic 创建审核人业务逻辑
func NewValidatorLogic(db *gorm.DB) *ValidatorLogic {
	return &ValidatorLogic{db: db}
}

// RegisterValidator 登记审核人，已撤销的审核人重新启用并保留信誉
func (v *ValidatorLogic) RegisterValidator(caller, address string, now time.Time) (*model.ValidatorModel, error) {
	caller, err := normalizeAddress(caller)
	if err != nil {
		return nil, err
	}
	address, err = normalizeAddress(address)
	if err != nil {
		return nil, err
	}

	var validator model.ValidatorModel
	err = v.db.Transaction(func(tx *gorm.DB) error {
		if _, err := requireAuthority(tx, caller); err != nil {
			return err
		}

		err := tx.First(&validator, "address = ?", address).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			validator = model.ValidatorModel{
				Address:     address,
				CreatedAt:   now,
				UpdatedAt:   now,
				IsValidator: true,
			}
			return tx.Create(&validator).Error
		}
		if err != nil {
			return fmt.Errorf("获取审核人失败: %w", err)
		}

		validator.IsValidator = true
		validator.UpdatedAt = now
		return tx.Model(&model.ValidatorModel{}).Where("address = ?", address).
			Updates(map[string]interface{}{"is_validator": true, "updated_at": now}).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Registered validator %s", address)
	return &validator, nil
}

// RevokeValidator 撤销审核资格
func (v *ValidatorLogic) RevokeValidator(caller, address string, now time.Time) (*model.ValidatorModel, error) {
	caller, err := normalizeAddress(caller)
	if err != nil {
		return nil, err
	}
	address, err = normalizeAddress(address)
	if err != nil {
		return nil, err
	}

	var validator *model.ValidatorModel
	err = v.db.Transaction(func(tx *gorm.DB) error {
		if _, err := requireAuthority(tx, caller); err != nil {
			return err
		}
		var err error
		if validator, err = loadValidator(tx, address, true); err != nil {
			return err
		}
		validator.IsValidator = false
		validator.UpdatedAt = now
		return tx.Model(&model.ValidatorModel{}).Where("address = ?", address).
			Updates(map[string]interface{}{"is_validator": false, "updated_at": now}).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Revoked validator %s", address)
	return validator, nil
}

// GetValidator 获取审核人
func (v *ValidatorLogic) GetValidator(address string) (*model.ValidatorModel, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}
	return loadValidator(v.db, address, false)
}

// GetValidators 获取审核人列表
func (v *ValidatorLogic) GetValidators(activeOnly bool) ([]model.ValidatorModel, error) {
	var validators []model.ValidatorModel
	query := v.db.Model(&model.ValidatorModel{})
	if activeOnly {
		query = query.Where("is_validator = ?", true)
	}
	if err := query.Order("address ASC").Find(&validators).Error; err != nil {
		return nil, fmt.Errorf("获取审核人列表失败: %w", err)
	}
	return validators, nil
}

func loadValidator(tx *gorm.DB, address string, forUpdate bool) (*model.ValidatorModel, error) {
	query := tx
	if forUpdate {
		query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var validator model.ValidatorModel
	if err := query.First(&validator, "address = ?", address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidatorNotFound
		}
		return nil, fmt.Errorf("获取审核人失败: %w", err)
	}
	return &validator, nil
}
