package logic

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/blues/rfs/internal/chain"
	"github.com/blues/rfs/internal/ledger"
	"github.com/blues/rfs/internal/logger"
	"github.com/blues/rfs/internal/model"
	"gorm.io/gorm"
)

// MilestoneLogic 里程碑业务逻辑
type MilestoneLogic struct {
	db     *gorm.DB
	ledger ledger.Ledger
	events *EventLogic
}

// NewMilestoneLogic 创建里程碑业务逻辑
func NewMilestoneLogic(db *gorm.DB, l ledger.Ledger, events *EventLogic) *MilestoneLogic {
	return &MilestoneLogic{db: db, ledger: l, events: events}
}

// ValidationResult 审核结果
type ValidationResult struct {
	Milestone     model.ProjectMilestoneModel `json:"milestone"`
	ReleaseAmount uint64                      `json:"release_amount"`
	ProjectStatus model.ProjectStatus         `json:"project_status"`
}

// CompleteMilestone 创建者提交里程碑证明，进入审核
func (m *MilestoneLogic) CompleteMilestone(projectId uint64, milestoneIndex int, evidenceHash, caller string, now time.Time) (*model.ProjectMilestoneModel, error) {
	caller, err := normalizeAddress(caller)
	if err != nil {
		return nil, err
	}
	hash, err := chain.ParseHash(evidenceHash)
	if err != nil {
		return nil, ErrInvalidEvidenceHash
	}

	var milestone model.ProjectMilestoneModel
	err = m.db.Transaction(func(tx *gorm.DB) error {
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
		if project.Status != model.ProjectStatusFunded {
			return ErrProjectNotFunded
		}
		if milestoneIndex < 0 || milestoneIndex >= len(project.Milestones) {
			return ErrInvalidMilestone
		}

		milestone = project.Milestones[milestoneIndex]
		if milestone.Status != model.MilestoneStatusPending {
			return ErrMilestoneAlreadyCompleted
		}

		milestone.Status = model.MilestoneStatusUnderReview
		milestone.EvidenceHash = hash.Hex()
		milestone.SubmittedAt = &now
		milestone.UpdatedAt = now
		if err := tx.Model(&model.ProjectMilestoneModel{}).Where("id = ?", milestone.Id).Updates(map[string]interface{}{
			"status":        milestone.Status,
			"evidence_hash": milestone.EvidenceHash,
			"submitted_at":  now,
			"updated_at":    now,
		}).Error; err != nil {
			return fmt.Errorf("更新里程碑失败: %w", err)
		}

		return m.events.Emit(tx, model.MilestoneSubmittedEvent{
			ProjectId:      projectId,
			MilestoneIndex: uint8(milestoneIndex),
			EvidenceHash:   milestone.EvidenceHash,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Project %d milestone %d submitted for review", projectId, milestoneIndex)
	return &milestone, nil
}

// ValidateMilestone 审核人通过或驳回里程碑，通过时从托管账户向创建者放款
func (m *MilestoneLogic) ValidateMilestone(projectId uint64, milestoneIndex int, approved bool, validator string, now time.Time) (*ValidationResult, error) {
	validator, err := normalizeAddress(validator)
	if err != nil {
		return nil, err
	}

	var result ValidationResult
	err = m.db.Transaction(func(tx *gorm.DB) error {
		if _, err := requireActivePlatform(tx); err != nil {
			return err
		}
		v, err := loadValidator(tx, validator, true)
		if errors.Is(err, ErrValidatorNotFound) {
			return ErrNotValidator
		}
		if err != nil {
			return err
		}
		if !v.IsValidator {
			return ErrNotValidator
		}

		project, err := loadProject(tx, projectId, true)
		if err != nil {
			return err
		}
		if milestoneIndex < 0 || milestoneIndex >= len(project.Milestones) {
			return ErrInvalidMilestone
		}

		milestone := &project.Milestones[milestoneIndex]
		if milestone.Status != model.MilestoneStatusUnderReview {
			return ErrInvalidMilestoneStatus
		}

		milestone.ReviewedBy = validator
		milestone.UpdatedAt = now
		updates := map[string]interface{}{
			"reviewed_by": validator,
			"updated_at":  now,
		}

		if approved {
			release := ReleaseAmount(project.CurrentFunding, milestone.FundingPercentage)
			memo := fmt.Sprintf("release:%d:%d", projectId, milestoneIndex)
			if err := m.ledger.Transfer(tx, project.EscrowAddress, project.Creator, release, projectAuthority(projectId), memo); err != nil {
				return err
			}

			milestone.Status = model.MilestoneStatusCompleted
			milestone.ApprovedAt = &now
			milestone.ReleasedAmount = release
			updates["approved_at"] = now
			updates["released_amount"] = release
			result.ReleaseAmount = release
		} else {
			milestone.Status = model.MilestoneStatusRejected
		}
		updates["status"] = milestone.Status

		if err := tx.Model(&model.ProjectMilestoneModel{}).Where("id = ?", milestone.Id).Updates(updates).Error; err != nil {
			return fmt.Errorf("更新里程碑失败: %w", err)
		}

		if approved {
			err = m.events.Emit(tx, model.MilestoneCompletedEvent{
				ProjectId:      projectId,
				MilestoneIndex: uint8(milestoneIndex),
				FundsReleased:  result.ReleaseAmount,
			}, now)
		} else {
			err = m.events.Emit(tx, model.MilestoneRejectedEvent{
				ProjectId:      projectId,
				MilestoneIndex: uint8(milestoneIndex),
				Validator:      validator,
			}, now)
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&model.ValidatorModel{}).Where("address = ?", validator).Updates(map[string]interface{}{
			"validations_completed": gorm.Expr("validations_completed + ?", 1),
			"reputation_score":      gorm.Expr("reputation_score + ?", 1),
			"updated_at":            now,
		}).Error; err != nil {
			return fmt.Errorf("更新审核人统计失败: %w", err)
		}

		result.ProjectStatus = project.Status
		if allMilestonesResolved(project.Milestones) {
			if err := m.completeProject(tx, project, now); err != nil {
				return err
			}
			result.ProjectStatus = model.ProjectStatusCompleted
		}

		result.Milestone = *milestone
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Project %d milestone %d reviewed by %s: approved=%t, released %d",
		projectId, milestoneIndex, validator, approved, result.ReleaseAmount)
	return &result, nil
}

// completeProject 所有里程碑审核完毕后项目完成
func (m *MilestoneLogic) completeProject(tx *gorm.DB, project *model.ProjectModel, now time.Time) error {
	var released uint64
	for _, ms := range project.Milestones {
		released += ms.ReleasedAmount
	}

	if err := tx.Model(&model.ProjectModel{}).Where("project_id = ?", project.ProjectId).Updates(map[string]interface{}{
		"status":     model.ProjectStatusCompleted,
		"updated_at": now,
	}).Error; err != nil {
		return fmt.Errorf("更新项目状态失败: %w", err)
	}

	return m.events.Emit(tx, model.ProjectCompletedEvent{
		ProjectId:     project.ProjectId,
		TotalReleased: released,
	}, now)
}

func allMilestonesResolved(milestones []model.ProjectMilestoneModel) bool {
	for i := range milestones {
		if !milestones[i].IsResolved() {
			return false
		}
	}
	return true
}

// ReleaseAmount 计算放款金额 floor(currentFunding*percentage/100)
func ReleaseAmount(currentFunding uint64, fundingPercentage uint8) uint64 {
	amount := new(big.Int).SetUint64(currentFunding)
	amount.Mul(amount, big.NewInt(int64(fundingPercentage)))
	amount.Quo(amount, big.NewInt(100))
	return amount.Uint64()
}
