package logic

import (
	"errors"
	"fmt"

	"github.com/blues/rfs/internal/chain"
	"github.com/blues/rfs/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// normalizeAddress 校验并规范化身份地址
func normalizeAddress(address string) (string, error) {
	normalized, err := chain.NormalizeAddress(address)
	if err != nil {
		return "", ErrInvalidAddress
	}
	return normalized, nil
}

// projectAuthority 项目托管账户的签名身份，不是合法地址，任何调用者都无法冒用
func projectAuthority(projectId uint64) string {
	return fmt.Sprintf("project:%d", projectId)
}

// escrowAddress 项目托管账户地址
func escrowAddress(projectId uint64) string {
	return chain.EscrowAddress(projectId).Hex()
}

// loadPlatformState 读取平台状态单例
func loadPlatformState(tx *gorm.DB, forUpdate bool) (*model.PlatformStateModel, error) {
	query := tx
	if forUpdate {
		query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var state model.PlatformStateModel
	if err := query.First(&state, "id = ?", model.PlatformStateId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlatformNotInitialized
		}
		return nil, fmt.Errorf("获取平台状态失败: %w", err)
	}
	return &state, nil
}

// requireActivePlatform 所有变更操作的暂停检查
func requireActivePlatform(tx *gorm.DB) (*model.PlatformStateModel, error) {
	state, err := loadPlatformState(tx, true)
	if err != nil {
		return nil, err
	}
	if state.IsPaused {
		return nil, ErrPlatformPaused
	}
	return state, nil
}

// requireAuthority 校验调用者为平台管理员
func requireAuthority(tx *gorm.DB, caller string) (*model.PlatformStateModel, error) {
	state, err := loadPlatformState(tx, true)
	if err != nil {
		return nil, err
	}
	if state.Authority != caller {
		return nil, ErrUnauthorized
	}
	return state, nil
}

// loadProject 加载项目及其里程碑、贡献者
func loadProject(tx *gorm.DB, projectId uint64, forUpdate bool) (*model.ProjectModel, error) {
	query := tx
	if forUpdate {
		query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var project model.ProjectModel
	err := query.
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("milestone_index ASC")
		}).
		Preload("Contributors", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&project, "project_id = ?", projectId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("获取项目详情失败: %w", err)
	}
	return &project, nil
}

// normalizePage 规范化分页参数
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
