package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/rfs/internal/logger"
	"github.com/blues/rfs/internal/model"
	"gorm.io/gorm"
)

// PlatformLogic 平台配置业务逻辑
type PlatformLogic struct {
	db *gorm.DB
}

// NewPlatformLogic 创建平台配置业务逻辑
func NewPlatformLogic(db *gorm.DB) *PlatformLogic {
	return &PlatformLogic{db: db}
}

// Initialize 初始化平台，只能执行一次
func (p *PlatformLogic) Initialize(authority string, feeRate uint16, minFundingAmount uint64, now time.Time) (*model.PlatformStateModel, error) {
	authority, err := normalizeAddress(authority)
	if err != nil {
		return nil, err
	}
	if feeRate > model.MaxFeeRate || minFundingAmount == 0 {
		return nil, ErrInvalidAmount
	}

	state := model.PlatformStateModel{
		Id:               model.PlatformStateId,
		CreatedAt:        now,
		UpdatedAt:        now,
		Authority:        authority,
		FeeRate:          feeRate,
		MinFundingAmount: minFundingAmount,
	}

	err = p.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.PlatformStateModel{}).Count(&count).Error; err != nil {
			return fmt.Errorf("获取平台状态失败: %w", err)
		}
		if count > 0 {
			return ErrAlreadyInitialized
		}
		if err := tx.Create(&state).Error; err != nil {
			return fmt.Errorf("初始化平台失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Platform initialized with authority %s, fee rate %d bps, min funding %d", authority, feeRate, minFundingAmount)
	return &state, nil
}

// EnsureInitialized 启动时按配置初始化平台，已初始化则直接返回现有状态
func (p *PlatformLogic) EnsureInitialized(authority string, feeRate uint16, minFundingAmount uint64, now time.Time) (*model.PlatformStateModel, error) {
	state, err := p.Initialize(authority, feeRate, minFundingAmount, now)
	if errors.Is(err, ErrAlreadyInitialized) {
		return p.GetPlatformState()
	}
	return state, err
}

// GetPlatformState 获取平台状态
func (p *PlatformLogic) GetPlatformState() (*model.PlatformStateModel, error) {
	return loadPlatformState(p.db, false)
}

// Pause 暂停平台
func (p *PlatformLogic) Pause(caller string, now time.Time) (*model.PlatformStateModel, error) {
	return p.setPaused(caller, true, now)
}

// Unpause 恢复平台
func (p *PlatformLogic) Unpause(caller string, now time.Time) (*model.PlatformStateModel, error) {
	return p.setPaused(caller, false, now)
}

func (p *PlatformLogic) setPaused(caller string, paused bool, now time.Time) (*model.PlatformStateModel, error) {
	caller, err := normalizeAddress(caller)
	if err != nil {
		return nil, err
	}

	var state *model.PlatformStateModel
	err = p.db.Transaction(func(tx *gorm.DB) error {
		var err error
		state, err = requireAuthority(tx, caller)
		if err != nil {
			return err
		}
		state.IsPaused = paused
		state.UpdatedAt = now
		return tx.Model(&model.PlatformStateModel{}).
			Where("id = ?", model.PlatformStateId).
			Updates(map[string]interface{}{"is_paused": paused, "updated_at": now}).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Platform paused=%t by %s", paused, caller)
	return state, nil
}
