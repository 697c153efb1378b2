package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/rfs/internal/logger"
	"github.com/blues/rfs/internal/model"
	"gorm.io/gorm"
)

var errSkipProject = errors.New("project no longer eligible")

// CancelProject 创建者取消筹款中的项目，并原路退还全部贡献
func (p *ProjectLogic) CancelProject(projectId uint64, caller string, now time.Time) (*model.ProjectModel, error) {
	caller, err := normalizeAddress(caller)
	if err != nil {
		return nil, err
	}

	var refunded uint64
	err = p.db.Transaction(func(tx *gorm.DB) error {
		if _, err := requireActivePlatform(tx); err != nil {
			return err
		}
		project, err := loadProject(tx, projectId, true)
		if err != nil {
			return err
		}
		if project.Creator != caller {
			return ErrUnauthorized
		}
		if project.Status != model.ProjectStatusActive {
			return ErrProjectNotActive
		}

		refunded, err = p.refundAndCancel(tx, project, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Project %d cancelled by creator, refunded %d", projectId, refunded)
	return p.GetProject(projectId)
}

// CancelExpiredProjects 取消已过截止时间仍未筹满的项目，返回取消数量
func (p *ProjectLogic) CancelExpiredProjects(now time.Time) (int, error) {
	state, err := loadPlatformState(p.db, false)
	if err != nil {
		return 0, err
	}
	if state.IsPaused {
		logger.Debug("Platform paused, skipping project expiry")
		return 0, nil
	}

	var candidates []model.ProjectModel
	if err := p.db.Where("status = ? AND duration_days > 0", model.ProjectStatusActive).
		Order("project_id ASC").
		Find(&candidates).Error; err != nil {
		return 0, fmt.Errorf("获取筹款中项目失败: %w", err)
	}

	cancelled := 0
	for i := range candidates {
		if !isExpired(&candidates[i], now) {
			continue
		}

		projectId := candidates[i].ProjectId
		var refunded uint64
		err := p.db.Transaction(func(tx *gorm.DB) error {
			if _, err := requireActivePlatform(tx); err != nil {
				return err
			}
			project, err := loadProject(tx, projectId, true)
			if err != nil {
				return err
			}
			if project.Status != model.ProjectStatusActive || !isExpired(project, now) {
				return errSkipProject
			}
			refunded, err = p.refundAndCancel(tx, project, now)
			return err
		})
		if errors.Is(err, errSkipProject) {
			continue
		}
		if err != nil {
			logger.Error("Failed to cancel expired project %d: %v", projectId, err)
			continue
		}

		cancelled++
		logger.Info("Project %d expired, refunded %d", projectId, refunded)
	}

	return cancelled, nil
}

// refundAndCancel 以项目托管身份退还每位贡献者，然后将项目置为已取消
func (p *ProjectLogic) refundAndCancel(tx *gorm.DB, project *model.ProjectModel, now time.Time) (uint64, error) {
	authority := projectAuthority(project.ProjectId)
	memo := fmt.Sprintf("refund:%d", project.ProjectId)

	var total uint64
	for _, c := range project.Contributors {
		if err := p.ledger.Transfer(tx, project.EscrowAddress, c.Address, c.Amount, authority, memo); err != nil {
			return 0, err
		}
		if err := p.events.Emit(tx, model.ContributionRefundedEvent{
			ProjectId:   project.ProjectId,
			Contributor: c.Address,
			Amount:      c.Amount,
		}, now); err != nil {
			return 0, err
		}
		total += c.Amount
	}

	if err := tx.Model(&model.ProjectModel{}).Where("project_id = ?", project.ProjectId).Updates(map[string]interface{}{
		"status":     model.ProjectStatusCancelled,
		"updated_at": now,
	}).Error; err != nil {
		return 0, fmt.Errorf("更新项目状态失败: %w", err)
	}

	return total, p.events.Emit(tx, model.ProjectCancelledEvent{
		ProjectId:     project.ProjectId,
		TotalRefunded: total,
	}, now)
}
