package logic

import (
	"fmt"
	"time"

	"github.com/blues/rfs/internal/logger"
	"github.com/blues/rfs/internal/model"
	"gorm.io/gorm"
)

// FundProject 向项目托管账户贡献资金
func (p *ProjectLogic) FundProject(projectId uint64, contributor string, amount uint64, now time.Time) (*model.ProjectModel, error) {
	contributor, err := normalizeAddress(contributor)
	if err != nil {
		return nil, err
	}

	var funded bool
	err = p.db.Transaction(func(tx *gorm.DB) error {
		if _, err := requireActivePlatform(tx); err != nil {
			return err
		}
		if amount == 0 {
			return ErrInvalidAmount
		}

		project, err := loadProject(tx, projectId, true)
		if err != nil {
			return err
		}
		if project.Status != model.ProjectStatusActive || isExpired(project, now) {
			return ErrProjectNotActive
		}
		// 先比较剩余额度，避免 current+amount 溢出
		if amount > project.FundingGoal-project.CurrentFunding {
			return ErrExceedsFundingGoal
		}

		existing := project.FindContributor(contributor)
		if existing == nil && len(project.Contributors) >= model.MaxContributorsPerProject {
			return ErrContributorCapacityReached
		}

		memo := fmt.Sprintf("fund:%d", projectId)
		if err := p.ledger.Transfer(tx, contributor, project.EscrowAddress, amount, contributor, memo); err != nil {
			return err
		}

		project.CurrentFunding += amount
		updates := map[string]interface{}{
			"current_funding": project.CurrentFunding,
			"updated_at":      now,
		}
		if project.CurrentFunding == project.FundingGoal {
			funded = true
			updates["status"] = model.ProjectStatusFunded
		}
		if err := tx.Model(&model.ProjectModel{}).Where("project_id = ?", projectId).Updates(updates).Error; err != nil {
			return fmt.Errorf("更新项目筹款失败: %w", err)
		}

		if err := upsertContributor(tx, projectId, existing, contributor, amount, now); err != nil {
			return err
		}

		if err := tx.Model(&model.PlatformStateModel{}).
			Where("id = ?", model.PlatformStateId).
			Update("total_funding", gorm.Expr("total_funding + ?", amount)).Error; err != nil {
			return fmt.Errorf("更新平台统计失败: %w", err)
		}

		if funded {
			if err := p.events.Emit(tx, model.ProjectFundedEvent{
				ProjectId:    projectId,
				TotalFunding: project.CurrentFunding,
			}, now); err != nil {
				return err
			}
		}
		return p.events.Emit(tx, model.ProjectContributionEvent{
			ProjectId:    projectId,
			Contributor:  contributor,
			Amount:       amount,
			TotalFunding: project.CurrentFunding,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Project %d received %d from %s", projectId, amount, contributor)
	if funded {
		logger.Info("Project %d reached its funding goal", projectId)
	}
	return p.GetProject(projectId)
}

// upsertContributor 同一地址的多次贡献累加到一条记录
func upsertContributor(tx *gorm.DB, projectId uint64, existing *model.ContributorModel, address string, amount uint64, now time.Time) error {
	if existing != nil {
		if err := tx.Model(&model.ContributorModel{}).Where("id = ?", existing.Id).Updates(map[string]interface{}{
			"amount":     existing.Amount + amount,
			"timestamp":  now,
			"updated_at": now,
		}).Error; err != nil {
			return fmt.Errorf("更新贡献记录失败: %w", err)
		}
		return nil
	}

	record := model.ContributorModel{
		CreatedAt: now,
		UpdatedAt: now,
		ProjectId: projectId,
		Address:   address,
		Amount:    amount,
		Timestamp: now,
	}
	if err := tx.Create(&record).Error; err != nil {
		return fmt.Errorf("创建贡献记录失败: %w", err)
	}
	return nil
}
